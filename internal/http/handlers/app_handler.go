// App HTTP handlers.
//
// This file exposes REST endpoints for app submissions:
//   - POST   /apps               (create, kicks off screenshot warm-up)
//   - GET    /apps               (owner's apps, ETag support)
//   - GET    /apps/published     (public catalog with filters)
//   - PATCH  /apps/{id}/publish  (toggle visibility)
//   - DELETE /apps/{id}          (owner-only cascade delete)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"appshowcase/internal/domain"
	"appshowcase/internal/repo"
	"appshowcase/internal/services"
)

// defaultCatalogPageSize is the page size for the public catalog when the
// client sends no limit.
const defaultCatalogPageSize = 20

// AppService defines app lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AppService interface {
	// Create inserts a new app owned by (ownerID, ownerName).
	Create(ctx context.Context, ownerID, ownerName string, in services.NewAppInput) (*domain.App, error)
	// ListMine returns every app owned by ownerID, published or not.
	ListMine(ctx context.Context, ownerID string) ([]domain.App, error)
	// ListPublished returns one page of the public catalog with annotations.
	ListPublished(ctx context.Context, in services.ListPublishedInput) ([]services.PublishedApp, int64, error)
	// SetPublished flips publication on an app owned by ownerID.
	SetPublished(ctx context.Context, ownerID, appID string, published bool) (*domain.App, error)
	// Delete removes an app and its dependents (owner-only).
	Delete(ctx context.Context, ownerID, appID string) error
}

// CreateAppRequest is the JSON payload for submitting an app.
//
// IsPublished is a pointer so that an explicit `false` still satisfies the
// required binding.
type CreateAppRequest struct {
	Title       string   `json:"title"       binding:"required,min=1,max=255" example:"Tiny pixel game"`
	Description string   `json:"description" binding:"max=4000"`
	URL         string   `json:"url"         binding:"required,url" example:"https://game.example.com"`
	Category    string   `json:"category"    example:"game"`
	Tags        []string `json:"tags"`
	IsPublished *bool    `json:"isPublished"`
}

// PublishRequest is the JSON payload for toggling app visibility.
type PublishRequest struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

// ListAppsResponse wraps the owner's apps.
type ListAppsResponse struct {
	Apps []domain.App `json:"apps"`
}

// PublishedAppsResponse wraps a page of the public catalog.
type PublishedAppsResponse struct {
	Apps       []services.PublishedApp `json:"apps"`
	Pagination Pagination              `json:"pagination"`
}

// CreateApp godoc
// @ID          createApp
// @Summary     Submit an app
// @Description Creates an app owned by the current user and schedules a screenshot render in the background.
// @Tags        Apps
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CreateAppRequest  true  "App payload"
//
// @Success     201  {object}  domain.App
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     409  {object}  handlers.ErrorResponse  "URL already in the catalog"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /apps [post]
func (h *Handlers) CreateApp(c *gin.Context) {
	var req CreateAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and a valid url are required")
		return
	}

	in := services.NewAppInput{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Category:    req.Category,
		Tags:        req.Tags,
	}
	if req.IsPublished != nil {
		in.IsPublished = *req.IsPublished
	}

	app, err := h.appSvc.Create(c.Request.Context(), userID(c), username(c), in)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateURL) {
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}

	// Render the preview off the request path; creation never waits on it.
	if h.shotSvc != nil {
		go h.shotSvc.WarmUp(app.ID)
	}

	ok(c, http.StatusCreated, app)
}

// ListMyApps godoc
// @ID          listMyApps
// @Summary     List my apps
// @Description Returns every app owned by the current user, drafts included. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Apps
// @Produce     json
// @Security    BearerAuth
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {object} handlers.ListAppsResponse
// @Header      200  {string} ETag  "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps [get]
func (h *Handlers) ListMyApps(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.appSvc.(*services.AppService); ok {
		db = svc.DB
	}
	if db != nil {
		if stats, err := repo.GetAppsStats(ctx, db, uid); err == nil {
			etag := fmt.Sprintf(`W/"apps:%s:%d:%d"`, uid, stats.Count, stats.LastUpdatedAt.Unix())
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	apps, err := h.appSvc.ListMine(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ListAppsResponse{Apps: apps})
}

// ListPublishedApps godoc
// @ID          listPublishedApps
// @Summary     Browse the public catalog
// @Description Returns published apps with comment counts. With a bearer token (or userId param), each app also carries per-viewer like/favorite flags.
// @Tags        Apps
// @Produce     json
//
// @Param       category  query  string  false "Category filter; 'trending' and 'daily' select sort orders"  Enums(game, tool, demo, art, other, trending, daily, all)
// @Param       search    query  string  false "Case-insensitive match on title, description, tags"
// @Param       sort      query  string  false "Sort order"  Enums(latest, popular, views, updated)  default(latest)
// @Param       page      query  int     false "Page number"     minimum(1) default(1)
// @Param       limit     query  int     false "Items per page"  minimum(1) maximum(100) default(20)
// @Param       userId    query  string  false "Viewer id for like/favorite flags when unauthenticated"
//
// @Success     200  {object} handlers.PublishedAppsResponse
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/published [get]
func (h *Handlers) ListPublishedApps(c *gin.Context) {
	page, pageSize := clampPagination(c, defaultCatalogPageSize)

	viewer := userID(c)
	if viewer == "" {
		viewer = c.Query("userId")
	}

	apps, total, err := h.appSvc.ListPublished(c.Request.Context(), services.ListPublishedInput{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Page:     page,
		PageSize: pageSize,
		ViewerID: viewer,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, PublishedAppsResponse{
		Apps:       apps,
		Pagination: newPagination(page, pageSize, total),
	})
}

// PublishApp godoc
// @ID          publishApp
// @Summary     Publish or unpublish an app
// @Description Sets the visibility of an app owned by the current user.
// @Tags        Apps
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "App ID (UUID)"  format(uuid)
// @Param       body  body  handlers.PublishRequest  true  "Visibility payload"
//
// @Success     200  {object} domain.App
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/publish [patch]
func (h *Handlers) PublishApp(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPublished == nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "isPublished (boolean) is required")
		return
	}

	app, err := h.appSvc.SetPublished(c.Request.Context(), userID(c), appID, *req.IsPublished)
	if err != nil {
		if errors.Is(err, services.ErrAppNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, app)
}

// DeleteApp godoc
// @ID          deleteApp
// @Summary     Delete an app
// @Description Removes an app and all of its comments, likes, favorites, and cached screenshot.
// @Tags        Apps
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "App ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id} [delete]
func (h *Handlers) DeleteApp(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	err := h.appSvc.Delete(c.Request.Context(), userID(c), appID)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrAppNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
	case errors.Is(err, services.ErrNotOwner):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "only the owner can delete an app")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
