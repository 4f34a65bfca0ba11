// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
//   - Explicit split between the public surface and the token-gated surface
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"appshowcase/internal/ai"
	"appshowcase/internal/config"
	"appshowcase/internal/domain"
	"appshowcase/internal/http/handlers"
	"appshowcase/internal/http/middleware"
	"appshowcase/internal/repo"
	"appshowcase/internal/screenshot"
	"appshowcase/internal/services"
)

// appRepoShim adapts the repository free functions to the services.AppRepo
// interface expected by the AppService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type appRepoShim struct{}

// CreateApp proxies repo.CreateApp.
func (appRepoShim) CreateApp(ctx context.Context, db *gorm.DB, app *domain.App) (*domain.App, error) {
	return repo.CreateApp(ctx, db, app)
}

// GetApp proxies repo.GetApp.
func (appRepoShim) GetApp(ctx context.Context, db *gorm.DB, id string) (*domain.App, error) {
	return repo.GetApp(ctx, db, id)
}

// ListAppsByOwner proxies repo.ListAppsByOwner.
func (appRepoShim) ListAppsByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.App, error) {
	return repo.ListAppsByOwner(ctx, db, ownerID)
}

// SetAppPublished proxies repo.SetAppPublished.
func (appRepoShim) SetAppPublished(ctx context.Context, db *gorm.DB, id, ownerID string, published bool) error {
	return repo.SetAppPublished(ctx, db, id, ownerID, published)
}

// DeleteAppCascade proxies repo.DeleteAppCascade.
func (appRepoShim) DeleteAppCascade(ctx context.Context, db *gorm.DB, id string) error {
	return repo.DeleteAppCascade(ctx, db, id)
}

// ListPublishedApps proxies repo.ListPublishedApps.
func (appRepoShim) ListPublishedApps(ctx context.Context, db *gorm.DB, f repo.PublishedFilter) ([]domain.App, error) {
	return repo.ListPublishedApps(ctx, db, f)
}

// CountPublishedApps proxies repo.CountPublishedApps.
func (appRepoShim) CountPublishedApps(ctx context.Context, db *gorm.DB, f repo.PublishedFilter) (int64, error) {
	return repo.CountPublishedApps(ctx, db, f)
}

// LikedAppIDs proxies repo.LikedAppIDs.
func (appRepoShim) LikedAppIDs(ctx context.Context, db *gorm.DB, userID string, appIDs []string) (map[string]struct{}, error) {
	return repo.LikedAppIDs(ctx, db, userID, appIDs)
}

// FavoritedAppIDs proxies repo.FavoritedAppIDs.
func (appRepoShim) FavoritedAppIDs(ctx context.Context, db *gorm.DB, userID string, appIDs []string) (map[string]struct{}, error) {
	return repo.FavoritedAppIDs(ctx, db, userID, appIDs)
}

// CommentCountsByApp proxies repo.CommentCountsByApp.
func (appRepoShim) CommentCountsByApp(ctx context.Context, db *gorm.DB, appIDs []string) (map[string]int64, error) {
	return repo.CommentCountsByApp(ctx, db, appIDs)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting,
// CORS and security headers, compression, health endpoints, and then mounts
// the API under cfg.APIBasePath with a public group and a bearer-gated group.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Gzip compression (JSON payloads; image and metrics paths excluded)
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{
			"Authorization",
		},
	}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress JSON responses; screenshots are already-compressed images.
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics"}),
		gzip.WithExcludedExtensions([]string{".png", ".jpg", ".jpeg", ".webp"}),
	))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound,
			"route not found: "+c.Request.Method+" "+c.Request.URL.Path)
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← repo/db/collaborators
	secret := []byte(cfg.Auth.JWTSecret)

	accountSvc := &services.AccountService{
		DB:          db,
		TokenSecret: secret,
		TokenTTL:    cfg.Auth.TokenTTL,
		BcryptCost:  cfg.Auth.BcryptCost,
	}
	appSvc := services.NewAppService(db, appRepoShim{})
	socialSvc := &services.SocialService{DB: db}
	commentSvc := &services.CommentService{DB: db}

	shotSvc := &services.ScreenshotService{DB: db}
	if cfg.Screenshot.APIURL != "" {
		shotSvc.Renderer = screenshot.NewClient(cfg.Screenshot.APIURL, cfg.Screenshot.Timeout)
	}
	describeSvc := &services.DescribeService{}
	if cfg.OpenAI.APIKey != "" {
		describeSvc.Gen = ai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model)
	}

	h := handlers.New(accountSvc, appSvc, socialSvc, commentSvc, shotSvc, describeSvc)

	api := groupWithPrefix(r, cfg.APIBasePath) // e.g. "/api"
	{
		// Readiness probe; /test is the legacy alias the client pings.
		health := healthHandler(db, cfg)
		api.GET("/health", health)
		api.GET("/test", health)

		// Auth
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)

		// Public catalog. OptionalAuth feeds the per-viewer annotations.
		api.GET("/apps/published", middleware.OptionalAuth(secret), h.ListPublishedApps)
		api.GET("/apps/:id/comments", h.ListComments)
		api.GET("/apps/:id/screenshot", h.GetScreenshot)
	}

	authed := api.Group("", middleware.BearerAuth(secret))
	{
		// Apps
		authed.POST("/apps", h.CreateApp)
		authed.GET("/apps", h.ListMyApps)
		authed.PATCH("/apps/:id/publish", h.PublishApp)
		authed.DELETE("/apps/:id", h.DeleteApp)
		authed.POST("/generate-description", h.GenerateDescription)

		// Social
		authed.POST("/apps/:id/like", h.ToggleLike)
		authed.POST("/apps/:id/favorite", h.ToggleFavorite)
		authed.GET("/favorites", h.ListFavorites)

		// Comments
		authed.POST("/apps/:id/comments", h.CreateComment)
		authed.DELETE("/apps/:id/comments/:commentId", h.DeleteComment)

		// Screenshots
		authed.POST("/apps/:id/regenerate-screenshot", h.RegenerateScreenshot)
	}
}

// healthHandler reports API readiness: a database ping plus whether the
// description generator is configured. Always 200; the flags tell the
// caller which collaborators are usable.
func healthHandler(db *gorm.DB, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		dbStatus := "connected"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			dbStatus = "disconnected"
		}
		aiStatus := "not configured"
		if cfg.OpenAI.APIKey != "" {
			aiStatus = "configured"
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "API is working",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"database":  dbStatus,
			"ai":        aiStatus,
		})
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
