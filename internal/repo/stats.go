// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate statistics used for cheap
// cache validation (ETag) on listing endpoints.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"appshowcase/internal/domain"
)

// AppsStats summarizes the apps table of one owner for ETag computation:
// if neither the row count nor the latest update time changed, the listing
// payload cannot have changed either.
type AppsStats struct {
	Count         int64
	LastUpdatedAt time.Time
}

// GetAppsStats returns row count and max(updated_at) for ownerID's apps.
func GetAppsStats(ctx context.Context, db *gorm.DB, ownerID string) (AppsStats, error) {
	var out AppsStats

	err := db.WithContext(ctx).
		Model(&domain.App{}).
		Where("owner_id = ?", ownerID).
		Count(&out.Count).Error
	if err != nil {
		return AppsStats{}, err
	}
	if out.Count == 0 {
		return out, nil
	}

	var last *time.Time
	err = db.WithContext(ctx).
		Model(&domain.App{}).
		Where("owner_id = ?", ownerID).
		Select("MAX(updated_at)").
		Scan(&last).Error
	if err != nil {
		return AppsStats{}, err
	}
	if last != nil {
		out.LastUpdatedAt = last.UTC()
	}
	return out, nil
}
