// Handler wiring and shared helpers.
//
// This file groups the HTTP endpoints behind a single Handlers struct bound
// to abstract service interfaces (declared next to the handlers that consume
// them), keeping transport concerns separate from business logic. It also
// holds the identity helpers that read the claims placed in the Gin context
// by the bearer-token middleware, and the shared pagination plumbing.
package handlers

import (
	"github.com/gin-gonic/gin"

	"appshowcase/internal/utils"
)

// Handlers groups HTTP endpoints for accounts, apps, likes/favorites,
// comments, screenshots, and description generation.
type Handlers struct {
	accountSvc  AccountService
	appSvc      AppService
	socialSvc   SocialService
	commentSvc  CommentService
	shotSvc     ScreenshotService
	describeSvc DescriptionService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(
	accountSvc AccountService,
	appSvc AppService,
	socialSvc SocialService,
	commentSvc CommentService,
	shotSvc ScreenshotService,
	describeSvc DescriptionService,
) *Handlers {
	return &Handlers{
		accountSvc:  accountSvc,
		appSvc:      appSvc,
		socialSvc:   socialSvc,
		commentSvc:  commentSvc,
		shotSvc:     shotSvc,
		describeSvc: describeSvc,
	}
}

// userID extracts the authenticated user id from the Gin context (set by
// the bearer-token middleware). Empty on public endpoints hit without a
// token.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// username extracts the authenticated username from the Gin context.
func username(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// clampPagination parses and bounds page and limit query params, returning
// (page, pageSize). "page_size" is accepted as an alias of "limit"; absent
// or malformed sizes fall back to defaultPageSize.
func clampPagination(c *gin.Context, defaultPageSize int) (page, pageSize int) {
	const (
		defaultPage = 1
		maxPageSize = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	limit := c.Query("limit")
	if limit == "" {
		limit = c.Query("page_size")
	}
	pageSize = utils.AtoiDefault(limit, defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// newPagination derives the metadata block from a page fetch.
func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}
