// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the App model.
//
// The public listing query is composed here from a PublishedFilter built by
// the service layer; the repo stays mechanical (WHERE/ORDER/LIMIT plumbing)
// and leaves category/sort policy to services.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"appshowcase/internal/domain"
)

// Published listing sort orders, resolved by the service layer.
const (
	SortLatest   = "latest"   // createdAt desc
	SortPopular  = "popular"  // likes desc, views desc
	SortViews    = "views"    // views desc
	SortUpdated  = "updated"  // updatedAt desc
	SortTrending = "trending" // likes desc, createdAt desc tiebreak
	SortRandom   = "random"   // daily picks
)

// PublishedFilter narrows and orders the public app listing.
//
// Category and Search are expected pre-normalized (trimmed, case-folded
// pattern for Search). Offset/Limit come from clamped pagination.
type PublishedFilter struct {
	Category string // empty = all categories
	Search   string // empty = no text filter; otherwise a LIKE pattern
	Sort     string // one of the Sort* constants; empty = SortLatest
	Offset   int
	Limit    int
}

// CreateApp inserts a new App row owned by ownerID. New apps start
// unpublished; publication is a separate owner-only toggle.
func CreateApp(ctx context.Context, db *gorm.DB, app *domain.App) (*domain.App, error) {
	if app.ID == "" {
		app.ID = uuid.NewString()
	}
	app.CreatedAt = time.Now().UTC()
	app.UpdatedAt = app.CreatedAt
	if err := db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// GetApp fetches a single app by ID, or ErrNotFound.
func GetApp(ctx context.Context, db *gorm.DB, id string) (*domain.App, error) {
	var a domain.App
	if err := db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAppsByOwner returns all apps belonging to ownerID, newest first.
func ListAppsByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.App, error) {
	var out []domain.App
	err := db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// publishedQuery applies the shared WHERE clauses of a PublishedFilter.
func publishedQuery(db *gorm.DB, f PublishedFilter) *gorm.DB {
	q := db.Model(&domain.App{}).Where("is_published = ?", true)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where(
			"lower(title) LIKE ? OR lower(description) LIKE ? OR lower(tags) LIKE ?",
			f.Search, f.Search, f.Search,
		)
	}
	return q
}

// CountPublishedApps returns the total rows matching the filter (ignoring
// pagination), for pagination metadata.
func CountPublishedApps(ctx context.Context, db *gorm.DB, f PublishedFilter) (int64, error) {
	var total int64
	err := publishedQuery(db.WithContext(ctx), f).Count(&total).Error
	return total, err
}

// ListPublishedApps returns one page of published apps ordered per the
// filter's sort. SortRandom samples rows (ORDER BY RANDOM()), which is the
// "daily picks" behavior; it still honors Limit but Offset is meaningless
// and ignored by callers.
func ListPublishedApps(ctx context.Context, db *gorm.DB, f PublishedFilter) ([]domain.App, error) {
	q := publishedQuery(db.WithContext(ctx), f)

	switch f.Sort {
	case SortPopular:
		q = q.Order("likes desc").Order("views desc")
	case SortViews:
		q = q.Order("views desc")
	case SortUpdated:
		q = q.Order("updated_at desc")
	case SortTrending:
		q = q.Order("likes desc").Order("created_at desc")
	case SortRandom:
		q = q.Order("RANDOM()")
	default:
		q = q.Order("created_at desc")
	}

	if f.Sort != SortRandom {
		q = q.Offset(f.Offset)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []domain.App
	err := q.Find(&out).Error
	return out, err
}

// SetAppPublished flips the publication flag of an app owned by ownerID.
// Returns ErrNotFound when the app is missing or owned by someone else;
// ownership is part of the WHERE clause so non-owners cannot probe.
func SetAppPublished(ctx context.Context, db *gorm.DB, id, ownerID string, published bool) error {
	res := db.WithContext(ctx).
		Model(&domain.App{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(map[string]any{"is_published": published, "updated_at": time.Now().UTC()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SetAppScreenshotURL records the external preview URL for an app. Used by
// the asynchronous screenshot pipeline; failures there must not disturb
// the rest of the row, hence the single-column update.
func SetAppScreenshotURL(ctx context.Context, db *gorm.DB, id, screenshotURL string) error {
	return db.WithContext(ctx).
		Model(&domain.App{}).
		Where("id = ?", id).
		Update("screenshot_url", screenshotURL).Error
}

// IncrementAppViews bumps the view counter by one. Best effort; callers
// ignore the error so a hot row never blocks a read path.
func IncrementAppViews(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).
		Model(&domain.App{}).
		Where("id = ?", id).
		Update("views", gorm.Expr("views + 1")).Error
}

// DeleteAppCascade removes an app and everything hanging off it (comments,
// likes, favorites, cached screenshot) in one transaction. The schema also
// declares ON DELETE CASCADE; the explicit deletes keep the behavior
// driver-independent.
func DeleteAppCascade(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("app_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", id).Delete(&domain.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("app_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		if err := DeleteScreenshotByApp(ctx, tx, id); err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&domain.App{}).Error
	})
}

// LikedAppIDs returns the subset of appIDs that userID has liked, as a set.
// Powers the isLikedByCurrentUser annotation on the public listing.
func LikedAppIDs(ctx context.Context, db *gorm.DB, userID string, appIDs []string) (map[string]struct{}, error) {
	return joinRowAppIDs(ctx, db, &domain.Like{}, userID, appIDs)
}

// FavoritedAppIDs returns the subset of appIDs that userID has favorited.
func FavoritedAppIDs(ctx context.Context, db *gorm.DB, userID string, appIDs []string) (map[string]struct{}, error) {
	return joinRowAppIDs(ctx, db, &domain.Favorite{}, userID, appIDs)
}

func joinRowAppIDs(ctx context.Context, db *gorm.DB, model any, userID string, appIDs []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(appIDs))
	if len(appIDs) == 0 {
		return out, nil
	}
	var ids []string
	err := db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND app_id IN ?", userID, appIDs).
		Pluck("app_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// CommentCountsByApp returns comment totals keyed by app id for the given
// set of apps. Apps with zero comments are absent from the map.
func CommentCountsByApp(ctx context.Context, db *gorm.DB, appIDs []string) (map[string]int64, error) {
	out := make(map[string]int64, len(appIDs))
	if len(appIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AppID string
		N     int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Comment{}).
		Select("app_id, COUNT(*) AS n").
		Where("app_id IN ?", appIDs).
		Group("app_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AppID] = r.N
	}
	return out, nil
}
