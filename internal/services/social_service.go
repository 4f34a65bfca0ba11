// Package services – SocialService
//
// This file implements the SocialService, which governs the like and
// favorite toggles and the per-user favorites listing. Toggles are
// idempotent pairs: calling twice returns the original state, and the
// denormalized like counter moves with the row inside one transaction.
package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"appshowcase/internal/domain"
	"appshowcase/internal/repo"
)

// SocialService implements the use-cases around likes and favorites.
type SocialService struct {
	// DB is the database handle used for all social operations.
	DB *gorm.DB
}

// LikeState is the client-visible outcome of a like toggle.
type LikeState struct {
	IsLiked bool  `json:"isLiked"`
	Likes   int64 `json:"likes"`
}

// FavoriteState is the client-visible outcome of a favorite toggle.
type FavoriteState struct {
	IsFavorite bool  `json:"isFavorite"`
	Favorites  int64 `json:"favorites"`
}

// FavoriteApp is a favorited app together with when the user favorited it.
// The embedded App keeps the wire shape flat.
type FavoriteApp struct {
	domain.App
	FavoritedAt time.Time `json:"favoritedAt"`
}

// ToggleLike flips userID's like on appID and returns the resulting state.
// The app must exist (published or not); otherwise ErrAppNotFound.
func (s *SocialService) ToggleLike(ctx context.Context, userID, appID string) (*LikeState, error) {
	ctx, span := otel.Tracer("services").Start(ctx, "SocialService.ToggleLike")
	defer span.End()
	span.SetAttributes(attribute.String("app.id", appID))

	if _, err := repo.GetApp(ctx, s.DB, appID); err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	liked, likes, err := repo.ToggleLike(ctx, s.DB, appID, userID)
	if err != nil {
		return nil, err
	}
	return &LikeState{IsLiked: liked, Likes: likes}, nil
}

// ToggleFavorite flips userID's favorite on appID and returns the
// resulting state with the derived favorite count.
func (s *SocialService) ToggleFavorite(ctx context.Context, userID, appID string) (*FavoriteState, error) {
	ctx, span := otel.Tracer("services").Start(ctx, "SocialService.ToggleFavorite")
	defer span.End()
	span.SetAttributes(attribute.String("app.id", appID))

	if _, err := repo.GetApp(ctx, s.DB, appID); err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	favorited, count, err := repo.ToggleFavorite(ctx, s.DB, appID, userID)
	if err != nil {
		return nil, err
	}
	return &FavoriteState{IsFavorite: favorited, Favorites: count}, nil
}

// ListFavorites returns the published apps userID has favorited, most
// recently favorited first, each stamped with its favorited-at time.
func (s *SocialService) ListFavorites(ctx context.Context, userID string) ([]FavoriteApp, error) {
	apps, err := repo.ListFavoriteApps(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	times, err := repo.FavoriteTimesByUser(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	out := make([]FavoriteApp, 0, len(apps))
	for _, a := range apps {
		out = append(out, FavoriteApp{App: a, FavoritedAt: times[a.ID]})
	}
	return out, nil
}
