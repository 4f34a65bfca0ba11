// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the like/favorite toggle primitives.
//
// The like toggle keeps App.Likes in lockstep with the number of Like rows:
// insert and increment (or delete and decrement) happen inside the same
// transaction, and the decrement clamps at zero so a drifted counter can
// never go negative.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appshowcase/internal/domain"
)

// ToggleLike flips userID's like on appID. Returns the post-toggle state
// (liked) and the resulting denormalized counter value.
func ToggleLike(ctx context.Context, db *gorm.DB, appID, userID string) (liked bool, likes int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.Like
		findErr := tx.Where("app_id = ? AND user_id = ?", appID, userID).First(&row).Error

		switch {
		case findErr == nil:
			// Already liked: remove the row and decrement, clamped at zero.
			if err := tx.Delete(&row).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.App{}).
				Where("id = ?", appID).
				Update("likes", gorm.Expr("MAX(likes - 1, 0)")).Error; err != nil {
				return err
			}
			liked = false
		case findErr == gorm.ErrRecordNotFound:
			row = domain.Like{
				ID:        uuid.NewString(),
				AppID:     appID,
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := tx.Model(&domain.App{}).
				Where("id = ?", appID).
				Update("likes", gorm.Expr("likes + 1")).Error; err != nil {
				return err
			}
			liked = true
		default:
			return findErr
		}

		return tx.Model(&domain.App{}).
			Where("id = ?", appID).
			Pluck("likes", &likes).Error
	})
	return liked, likes, err
}

// ToggleFavorite flips userID's favorite on appID. Returns the post-toggle
// state and the derived favorite count for the app (no counter column).
func ToggleFavorite(ctx context.Context, db *gorm.DB, appID, userID string) (favorited bool, count int64, err error) {
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row domain.Favorite
		findErr := tx.Where("app_id = ? AND user_id = ?", appID, userID).First(&row).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&row).Error; err != nil {
				return err
			}
			favorited = false
		case findErr == gorm.ErrRecordNotFound:
			row = domain.Favorite{
				ID:        uuid.NewString(),
				AppID:     appID,
				UserID:    userID,
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			favorited = true
		default:
			return findErr
		}

		return tx.Model(&domain.Favorite{}).
			Where("app_id = ?", appID).
			Count(&count).Error
	})
	return favorited, count, err
}

// ListFavoriteApps returns the published apps userID has favorited, most
// recently favorited first. Apps pulled back to draft drop out of the list
// but the favorite row stays, so they reappear on re-publish.
func ListFavoriteApps(ctx context.Context, db *gorm.DB, userID string) ([]domain.App, error) {
	var out []domain.App
	err := db.WithContext(ctx).
		Model(&domain.App{}).
		Joins("JOIN favorites ON favorites.app_id = apps.id").
		Where("favorites.user_id = ? AND apps.is_published = ?", userID, true).
		Order("favorites.created_at desc").
		Find(&out).Error
	return out, err
}

// FavoriteTimesByUser returns appID -> favorited-at for every favorite row
// owned by userID.
func FavoriteTimesByUser(ctx context.Context, db *gorm.DB, userID string) (map[string]time.Time, error) {
	var rows []domain.Favorite
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		out[r.AppID] = r.CreatedAt
	}
	return out, nil
}

// CountAppLikes counts Like rows for appID. Used by tests to verify the
// denormalized counter stays consistent, and by repair tooling.
func CountAppLikes(ctx context.Context, db *gorm.DB, appID string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Like{}).
		Where("app_id = ?", appID).
		Count(&n).Error
	return n, err
}
