// Screenshot HTTP handlers.
//
// This file exposes REST endpoints for app preview images:
//   - GET  /apps/{id}/screenshot             (public; binary image or 302)
//   - POST /apps/{id}/regenerate-screenshot  (owner-only re-render)
//
// The GET endpoint is tri-modal: it answers with inline image bytes when a
// rendered copy is available, a 302 redirect to the app's external preview
// URL as a fallback, or a JSON error envelope when neither exists.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"appshowcase/internal/services"
)

// ScreenshotService defines screenshot operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type ScreenshotService interface {
	// Get resolves the preview image for an app (cache, render, fallback).
	Get(ctx context.Context, appID string, forceRefresh bool) (*services.ScreenshotResult, error)
	// Regenerate force-renders and replaces the cached copy (owner-only).
	Regenerate(ctx context.Context, ownerID, appID string) (*services.ScreenshotResult, error)
	// WarmUp renders and caches an app's screenshot in the background.
	WarmUp(appID string)
}

// writeScreenshot shapes a ScreenshotResult into the HTTP response: inline
// bytes with caching headers, or a redirect to the external preview.
func writeScreenshot(c *gin.Context, res *services.ScreenshotResult) {
	if res.RedirectURL != "" {
		c.Redirect(http.StatusFound, res.RedirectURL)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, res.ContentType, res.Data)
}

// GetScreenshot godoc
// @ID          getScreenshot
// @Summary     Fetch an app's preview image
// @Description Serves the cached screenshot, rendering one on demand. Falls back to a 302 redirect to the app's external preview URL. Pass force_refresh=true to discard the cache.
// @Tags        Screenshots
// @Produce     png
//
// @Param       id             path   string  true   "App ID (UUID)"  format(uuid)
// @Param       force_refresh  query  bool    false  "Re-render even when a cached copy exists"
//
// @Success     200  {file}   file "Image bytes"
// @Success     302  {string} string "Redirect to external preview"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     502  {object} handlers.ErrorResponse "Render service unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/screenshot [get]
func (h *Handlers) GetScreenshot(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}
	force := c.Query("force_refresh") == "true"

	res, err := h.shotSvc.Get(c.Request.Context(), appID, force)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
		case errors.Is(err, services.ErrScreenshotUnavailable):
			fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, "screenshot unavailable")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	writeScreenshot(c, res)
}

// RegenerateScreenshot godoc
// @ID          regenerateScreenshot
// @Summary     Re-render an app's preview image
// @Description Forces a fresh render through the screenshot service and replaces the cached copy. Owner-only.
// @Tags        Screenshots
// @Produce     png
// @Security    BearerAuth
//
// @Param       id  path  string  true  "App ID (UUID)"  format(uuid)
//
// @Success     200  {file}   file "Image bytes"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     403  {object} handlers.ErrorResponse "Not the owner"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     502  {object} handlers.ErrorResponse "Render service unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/regenerate-screenshot [post]
func (h *Handlers) RegenerateScreenshot(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	res, err := h.shotSvc.Regenerate(c.Request.Context(), userID(c), appID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAppNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
		case errors.Is(err, services.ErrNotOwner):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "only the owner can regenerate the screenshot")
		case errors.Is(err, services.ErrScreenshotUnavailable):
			fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, "screenshot unavailable")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	writeScreenshot(c, res)
}
