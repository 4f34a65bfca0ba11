// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for cached
// screenshot binaries (one row per app, overwritten on regeneration).
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appshowcase/internal/domain"
)

// UpsertScreenshot stores (or replaces) the cached screenshot for appID.
// The unique index on app_id drives the ON CONFLICT upsert.
func UpsertScreenshot(ctx context.Context, db *gorm.DB, appID, contentType string, data []byte) (*domain.Screenshot, error) {
	s := &domain.Screenshot{
		ID:          uuid.NewString(),
		AppID:       appID,
		ContentType: contentType,
		Data:        data,
		UpdatedAt:   time.Now().UTC(),
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "app_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"content_type", "data", "updated_at"}),
		}).
		Create(s).Error
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetScreenshotByApp fetches the cached screenshot for appID, or ErrNotFound.
func GetScreenshotByApp(ctx context.Context, db *gorm.DB, appID string) (*domain.Screenshot, error) {
	var s domain.Screenshot
	if err := db.WithContext(ctx).Where("app_id = ?", appID).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteScreenshotByApp removes the cached screenshot for appID. Missing
// rows are not an error; the app cascade calls this unconditionally.
func DeleteScreenshotByApp(ctx context.Context, db *gorm.DB, appID string) error {
	return db.WithContext(ctx).
		Where("app_id = ?", appID).
		Delete(&domain.Screenshot{}).Error
}
