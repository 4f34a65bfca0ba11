// Package services – ScreenshotService
//
// This file implements the ScreenshotService, which serves app preview
// images. Rendered images are cached in the database (one row per app)
// and only re-rendered on demand; when rendering fails the service falls
// back to the cached copy, then to the app's external screenshot URL.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"appshowcase/internal/repo"
)

// Renderer is the external collaborator that turns a page URL into an
// image. Implemented by screenshot.Client.
type Renderer interface {
	Capture(ctx context.Context, target string) (data []byte, contentType string, err error)
}

// ScreenshotService implements the use-cases around app preview images.
type ScreenshotService struct {
	// DB is the database handle used for cache reads and writes.
	DB *gorm.DB
	// Renderer captures fresh screenshots; nil disables rendering so only
	// cached copies and external URLs are served.
	Renderer Renderer
}

// ScreenshotResult is the tri-modal outcome of a screenshot fetch: either
// image bytes to serve inline, or a URL to redirect to. Exactly one of
// Data and RedirectURL is set.
type ScreenshotResult struct {
	Data        []byte
	ContentType string
	RedirectURL string
}

// Get returns the preview image for appID.
//
// Resolution order:
//  1. cached copy, unless forceRefresh is set
//  2. fresh render through the collaborator (cached on success)
//  3. cached copy again (stale beats nothing when the render failed)
//  4. redirect to the app's external screenshot URL
//
// A missing app yields ErrAppNotFound; exhausting all four sources yields
// ErrScreenshotUnavailable. Each fetch bumps the app's view counter, best
// effort: the preview request is the catalog's view event.
func (s *ScreenshotService) Get(ctx context.Context, appID string, forceRefresh bool) (*ScreenshotResult, error) {
	app, err := repo.GetApp(ctx, s.DB, appID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}

	if err := repo.IncrementAppViews(ctx, s.DB, appID); err != nil {
		log.Warn().Err(err).Str("app_id", appID).Msg("view counter bump failed")
	}

	if !forceRefresh {
		if cached, err := repo.GetScreenshotByApp(ctx, s.DB, appID); err == nil {
			return &ScreenshotResult{Data: cached.Data, ContentType: cached.ContentType}, nil
		} else if !isNotFound(err) {
			return nil, err
		}
	}

	if s.Renderer != nil {
		data, ct, renderErr := s.Renderer.Capture(ctx, app.URL)
		if renderErr == nil {
			if _, err := repo.UpsertScreenshot(ctx, s.DB, appID, ct, data); err != nil {
				// Serve the fresh image even if caching it failed.
				log.Warn().Err(err).Str("app_id", appID).Msg("screenshot cache write failed")
			}
			return &ScreenshotResult{Data: data, ContentType: ct}, nil
		}
		log.Warn().Err(renderErr).Str("app_id", appID).Msg("screenshot render failed")
	}

	if cached, err := repo.GetScreenshotByApp(ctx, s.DB, appID); err == nil {
		return &ScreenshotResult{Data: cached.Data, ContentType: cached.ContentType}, nil
	} else if !isNotFound(err) {
		return nil, err
	}

	if app.ScreenshotURL != "" {
		return &ScreenshotResult{RedirectURL: app.ScreenshotURL}, nil
	}
	return nil, ErrScreenshotUnavailable
}

// Regenerate force-renders the screenshot for an app owned by ownerID and
// replaces the cached copy. Owner-only; non-owners get ErrNotOwner.
func (s *ScreenshotService) Regenerate(ctx context.Context, ownerID, appID string) (*ScreenshotResult, error) {
	app, err := repo.GetApp(ctx, s.DB, appID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	if app.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	if s.Renderer == nil {
		return nil, ErrScreenshotUnavailable
	}

	data, ct, err := s.Renderer.Capture(ctx, app.URL)
	if err != nil {
		log.Warn().Err(err).Str("app_id", appID).Msg("screenshot regenerate failed")
		return nil, ErrScreenshotUnavailable
	}
	if _, err := repo.UpsertScreenshot(ctx, s.DB, appID, ct, data); err != nil {
		return nil, err
	}
	return &ScreenshotResult{Data: data, ContentType: ct}, nil
}

// WarmUp renders and caches the screenshot for a freshly created app in
// the background. Failures are logged and swallowed; app creation never
// depends on the render service being up.
func (s *ScreenshotService) WarmUp(appID string) {
	if s.Renderer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	app, err := repo.GetApp(ctx, s.DB, appID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn().Err(err).Str("app_id", appID).Msg("screenshot warm-up lookup failed")
		}
		return
	}
	data, ct, err := s.Renderer.Capture(ctx, app.URL)
	if err != nil {
		log.Warn().Err(err).Str("app_id", appID).Msg("screenshot warm-up render failed")
		return
	}
	if _, err := repo.UpsertScreenshot(ctx, s.DB, appID, ct, data); err != nil {
		log.Warn().Err(err).Str("app_id", appID).Msg("screenshot warm-up cache failed")
	}
}
