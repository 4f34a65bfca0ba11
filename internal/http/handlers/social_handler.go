// Like and favorite HTTP handlers.
//
// This file exposes REST endpoints for the social toggles:
//   - POST /apps/{id}/like      (toggle like, returns state + counter)
//   - POST /apps/{id}/favorite  (toggle favorite, returns state + count)
//   - GET  /favorites           (apps the current user favorited)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appshowcase/internal/services"
)

// SocialService defines like/favorite operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type SocialService interface {
	// ToggleLike flips the user's like on an app.
	ToggleLike(ctx context.Context, userID, appID string) (*services.LikeState, error)
	// ToggleFavorite flips the user's favorite on an app.
	ToggleFavorite(ctx context.Context, userID, appID string) (*services.FavoriteState, error)
	// ListFavorites returns the published apps the user has favorited,
	// each stamped with its favorited-at time.
	ListFavorites(ctx context.Context, userID string) ([]services.FavoriteApp, error)
}

// FavoritesResponse wraps the current user's favorited apps.
type FavoritesResponse struct {
	Apps []services.FavoriteApp `json:"apps"`
}

// ToggleLike godoc
// @ID          toggleLike
// @Summary     Toggle a like
// @Description Likes the app if not yet liked, removes the like otherwise. Returns the new state and like counter.
// @Tags        Social
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "App ID (UUID)"  format(uuid)
//
// @Success     200  {object} services.LikeState
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/like [post]
func (h *Handlers) ToggleLike(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	state, err := h.socialSvc.ToggleLike(c.Request.Context(), userID(c), appID)
	if err != nil {
		if errors.Is(err, services.ErrAppNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, state)
}

// ToggleFavorite godoc
// @ID          toggleFavorite
// @Summary     Toggle a favorite
// @Description Favorites the app if not yet favorited, removes it otherwise. Returns the new state and derived count.
// @Tags        Social
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "App ID (UUID)"  format(uuid)
//
// @Success     200  {object} services.FavoriteState
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/favorite [post]
func (h *Handlers) ToggleFavorite(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	state, err := h.socialSvc.ToggleFavorite(c.Request.Context(), userID(c), appID)
	if err != nil {
		if errors.Is(err, services.ErrAppNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, state)
}

// ListFavorites godoc
// @ID          listFavorites
// @Summary     List my favorites
// @Description Returns the published apps the current user has favorited, most recently favorited first, each with its favoritedAt timestamp.
// @Tags        Social
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object} handlers.FavoritesResponse
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /favorites [get]
func (h *Handlers) ListFavorites(c *gin.Context) {
	apps, err := h.socialSvc.ListFavorites(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, FavoritesResponse{Apps: apps})
}
