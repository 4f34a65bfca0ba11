// Package services – AppService
//
// This file implements the AppService, which manages the lifecycle of app
// submissions: creation with URL uniqueness, owner listings, publication
// toggling, cascade deletion, and the public catalog listing with
// category/search/sort filters and per-viewer annotations.
//
// Service-level errors (e.g. ErrAppNotFound, ErrDuplicateURL) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"appshowcase/internal/domain"
	"appshowcase/internal/repo"
)

// Known catalog categories. Anything else is stored as CategoryOther.
const (
	CategoryGame  = "game"
	CategoryTool  = "tool"
	CategoryDemo  = "demo"
	CategoryArt   = "art"
	CategoryOther = "other"
)

// Pseudo-categories resolved into sort orders rather than WHERE clauses.
const (
	categoryTrending = "trending"
	categoryDaily    = "daily"
)

// AppRepo defines the repository contract required by AppService.
// Implementations are responsible for persistence of app aggregates.
type AppRepo interface {
	// CreateApp inserts a new app row.
	CreateApp(ctx context.Context, db *gorm.DB, app *domain.App) (*domain.App, error)

	// GetApp fetches an app by ID.
	GetApp(ctx context.Context, db *gorm.DB, id string) (*domain.App, error)

	// ListAppsByOwner returns all apps belonging to the owner.
	ListAppsByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.App, error)

	// SetAppPublished flips the publication flag (owner-scoped).
	SetAppPublished(ctx context.Context, db *gorm.DB, id, ownerID string, published bool) error

	// DeleteAppCascade removes an app and its dependents atomically.
	DeleteAppCascade(ctx context.Context, db *gorm.DB, id string) error

	// ListPublishedApps returns one page of the public catalog.
	ListPublishedApps(ctx context.Context, db *gorm.DB, f repo.PublishedFilter) ([]domain.App, error)

	// CountPublishedApps returns the total matching the filter.
	CountPublishedApps(ctx context.Context, db *gorm.DB, f repo.PublishedFilter) (int64, error)

	// LikedAppIDs returns which of appIDs the user has liked.
	LikedAppIDs(ctx context.Context, db *gorm.DB, userID string, appIDs []string) (map[string]struct{}, error)

	// FavoritedAppIDs returns which of appIDs the user has favorited.
	FavoritedAppIDs(ctx context.Context, db *gorm.DB, userID string, appIDs []string) (map[string]struct{}, error)

	// CommentCountsByApp returns comment totals keyed by app id.
	CommentCountsByApp(ctx context.Context, db *gorm.DB, appIDs []string) (map[string]int64, error)
}

// AppService provides app-level operations. It enforces ownership
// constraints and normalizes categories and search input.
type AppService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the app repository used by this service.
	Repo AppRepo
}

// NewAppService constructs an AppService.
func NewAppService(db *gorm.DB, r AppRepo) *AppService {
	return &AppService{DB: db, Repo: r}
}

// NewAppInput carries the validated fields of an app submission.
type NewAppInput struct {
	Title       string
	Description string
	URL         string
	Category    string
	Tags        []string
	IsPublished bool
}

// Create inserts a new app owned by (ownerID, ownerName). The URL must be
// unique across the catalog; a clash yields ErrDuplicateURL.
func (s *AppService) Create(ctx context.Context, ownerID, ownerName string, in NewAppInput) (*domain.App, error) {
	app := &domain.App{
		OwnerID:     ownerID,
		OwnerName:   ownerName,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		URL:         strings.TrimSpace(in.URL),
		Category:    NormalizeCategory(in.Category),
		Tags:        in.Tags,
		IsPublished: in.IsPublished,
	}
	created, err := s.Repo.CreateApp(ctx, s.DB, app)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateURL
		}
		return nil, err
	}
	return created, nil
}

// Get fetches a single app, or ErrAppNotFound.
func (s *AppService) Get(ctx context.Context, id string) (*domain.App, error) {
	app, err := s.Repo.GetApp(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	return app, nil
}

// ListMine returns every app (published or not) owned by ownerID.
func (s *AppService) ListMine(ctx context.Context, ownerID string) ([]domain.App, error) {
	return s.Repo.ListAppsByOwner(ctx, s.DB, ownerID)
}

// SetPublished flips publication on an app owned by ownerID. A missing app
// and someone else's app are both ErrAppNotFound; ownership is not leaked.
func (s *AppService) SetPublished(ctx context.Context, ownerID, appID string, published bool) (*domain.App, error) {
	if err := s.Repo.SetAppPublished(ctx, s.DB, appID, ownerID, published); err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	return s.Get(ctx, appID)
}

// Delete removes an app and all of its dependents. Only the owner may
// delete; non-owners get ErrNotOwner so accidental cross-account deletes
// surface loudly rather than as silent 404s.
func (s *AppService) Delete(ctx context.Context, ownerID, appID string) error {
	app, err := s.Repo.GetApp(ctx, s.DB, appID)
	if err != nil {
		if isNotFound(err) {
			return ErrAppNotFound
		}
		return err
	}
	if app.OwnerID != ownerID {
		return ErrNotOwner
	}
	return s.Repo.DeleteAppCascade(ctx, s.DB, appID)
}

// PublishedApp is an App decorated with viewer annotations for the public
// catalog. The per-viewer flags are pointers so they disappear from the
// JSON payload entirely when no viewer is identified.
type PublishedApp struct {
	domain.App
	CommentCount            int64 `json:"commentCount"`
	IsLikedByCurrentUser    *bool `json:"isLikedByCurrentUser,omitempty"`
	IsFavoriteByCurrentUser *bool `json:"isFavoriteByCurrentUser,omitempty"`
}

// ListPublishedInput narrows the public catalog listing.
type ListPublishedInput struct {
	// Category filters by normalized category; "trending" and "daily" are
	// pseudo-categories that select a sort order instead.
	Category string
	// Search matches title, description, or tags case-insensitively.
	Search string
	// Sort is one of latest (default), popular, views, updated.
	Sort string
	// Page / PageSize paginate the result (1-based page).
	Page     int
	PageSize int
	// ViewerID, when non-empty, enables the per-viewer like/favorite flags.
	ViewerID string
}

// ListPublished returns one page of the public catalog with comment counts
// and, when a viewer is identified, like/favorite flags.
func (s *AppService) ListPublished(ctx context.Context, in ListPublishedInput) ([]PublishedApp, int64, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.PageSize <= 0 {
		in.PageSize = 20
	}

	f := repo.PublishedFilter{
		Sort:   resolveSort(in.Sort),
		Offset: (in.Page - 1) * in.PageSize,
		Limit:  in.PageSize,
	}
	switch cat := strings.ToLower(strings.TrimSpace(in.Category)); cat {
	case "", "all":
	case categoryTrending:
		f.Sort = repo.SortTrending
	case categoryDaily:
		f.Sort = repo.SortRandom
	default:
		f.Category = NormalizeCategory(cat)
	}
	if q := foldSearch(in.Search); q != "" {
		f.Search = "%" + q + "%"
	}

	total, err := s.Repo.CountPublishedApps(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []PublishedApp{}, 0, nil
	}

	apps, err := s.Repo.ListPublishedApps(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, len(apps))
	for i := range apps {
		ids[i] = apps[i].ID
	}
	counts, err := s.Repo.CommentCountsByApp(ctx, s.DB, ids)
	if err != nil {
		return nil, 0, err
	}

	var liked, faved map[string]struct{}
	if in.ViewerID != "" {
		if liked, err = s.Repo.LikedAppIDs(ctx, s.DB, in.ViewerID, ids); err != nil {
			return nil, 0, err
		}
		if faved, err = s.Repo.FavoritedAppIDs(ctx, s.DB, in.ViewerID, ids); err != nil {
			return nil, 0, err
		}
	}

	out := make([]PublishedApp, len(apps))
	for i, a := range apps {
		p := PublishedApp{App: a, CommentCount: counts[a.ID]}
		if in.ViewerID != "" {
			isLiked := setHas(liked, a.ID)
			isFaved := setHas(faved, a.ID)
			p.IsLikedByCurrentUser = &isLiked
			p.IsFavoriteByCurrentUser = &isFaved
		}
		out[i] = p
	}
	return out, total, nil
}

// resolveSort maps the public sort parameter to a repo sort constant.
// Unknown values fall back to newest-first.
func resolveSort(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case repo.SortPopular:
		return repo.SortPopular
	case repo.SortViews:
		return repo.SortViews
	case repo.SortUpdated:
		return repo.SortUpdated
	default:
		return repo.SortLatest
	}
}

// NormalizeCategory lowercases and validates a category, mapping unknown
// values to CategoryOther.
func NormalizeCategory(cat string) string {
	switch strings.ToLower(strings.TrimSpace(cat)) {
	case CategoryGame:
		return CategoryGame
	case CategoryTool:
		return CategoryTool
	case CategoryDemo:
		return CategoryDemo
	case CategoryArt:
		return CategoryArt
	default:
		return CategoryOther
	}
}

// foldSearch normalizes a search query for case-insensitive matching,
// using Unicode case folding rather than ASCII lowercasing.
func foldSearch(q string) string {
	q = strings.TrimSpace(q)
	if q == "" {
		return ""
	}
	return cases.Fold().String(q)
}

func setHas(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
