// Package domain defines the persistence models for users, apps, likes,
// favorites, comments, and cached screenshots. These types are mapped with
// GORM and form the core data layer of the showcase application.
//
// JSON tags use camelCase because the web client consumes these records
// directly (e.g. `isPublished`, `createdAt`).
package domain

import (
	"time"
)

// User is a registered account. It is the identity behind every
// authenticated operation.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: unique display/login name.
//   - Email: unique contact address, also accepted as a login id.
//   - PasswordHash: bcrypt hash; never serialized.
//   - CreatedAt: timestamp managed by GORM.
type User struct {
	ID           string    `json:"id"        gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username"  gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	Email        string    `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `json:"-"         gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// App is a user-published reference to an externally hosted web project.
//
// Lifecycle: created unpublished by its owner, toggled public via the
// publish endpoint, and deletable only by the owner (comments, likes,
// favorites, and the cached screenshot go with it).
//
// Likes is a denormalized counter maintained by ±1 updates inside the
// like-toggle transaction; it must always equal the number of Like rows
// referencing the app. Favorites intentionally have no counter column
// (counts are derived), mirroring the upstream data model.
type App struct {
	ID          string   `json:"id"          gorm:"type:char(36);primaryKey"`
	OwnerID     string   `json:"ownerId"     gorm:"type:char(36);not null;index:idx_apps_owner"`
	OwnerName   string   `json:"authorName"  gorm:"type:varchar(64);not null"`
	Title       string   `json:"title"       gorm:"type:varchar(255);not null"`
	Description string   `json:"description" gorm:"type:text"`
	URL         string   `json:"url"         gorm:"type:varchar(2048);not null;uniqueIndex:ux_apps_url"`
	Category    string   `json:"category"    gorm:"type:varchar(64);not null;default:'other'"`
	Tags        []string `json:"tags"        gorm:"serializer:json"`
	IsPublished bool     `json:"isPublished" gorm:"not null;default:false;index:idx_apps_published"`
	Likes       int64    `json:"likes"       gorm:"not null;default:0"`
	Views       int64    `json:"views"       gorm:"not null;default:0"`

	// ScreenshotURL points at an externally hosted preview image. When a
	// rendered screenshot is cached locally (see Screenshot) the binary
	// takes precedence and this field is only a fallback redirect target.
	ScreenshotURL string `json:"screenshotUrl,omitempty" gorm:"type:varchar(2048)"`

	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_apps_created"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Owner is the publishing user. Apps are cascade-deleted if the
	// account is removed.
	Owner User `json:"-" gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for App.
func (App) TableName() string { return "apps" }

// Screenshot caches the rendered preview image for one app. At most one
// row exists per app (unique index); regeneration overwrites in place.
type Screenshot struct {
	ID          string    `json:"id"          gorm:"type:char(36);primaryKey"`
	AppID       string    `json:"appId"       gorm:"type:char(36);not null;uniqueIndex:ux_screenshots_app"`
	ContentType string    `json:"contentType" gorm:"type:varchar(64);not null"`
	Data        []byte    `json:"-"           gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt"`

	App App `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Screenshot.
func (Screenshot) TableName() string { return "screenshots" }

// Like is the join row behind the like toggle. Row existence is exactly
// the client-visible toggle state: a user likes a given app at most once
// (enforced by the unique index) and toggling off deletes the row.
type Like struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	AppID     string    `json:"appId"     gorm:"type:char(36);not null;index;uniqueIndex:ux_likes_app_user"`
	UserID    string    `json:"userId"    gorm:"type:char(36);not null;index;uniqueIndex:ux_likes_app_user"`
	CreatedAt time.Time `json:"createdAt"`

	App App `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Like.
func (Like) TableName() string { return "likes" }

// Favorite is the join row behind the favorite toggle. Same uniqueness
// invariant as Like, but without a denormalized counter on App.
type Favorite struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	AppID     string    `json:"appId"     gorm:"type:char(36);not null;index;uniqueIndex:ux_favorites_app_user"`
	UserID    string    `json:"userId"    gorm:"type:char(36);not null;index;uniqueIndex:ux_favorites_app_user"`
	CreatedAt time.Time `json:"createdAt"`

	App App `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }

// Comment is a bounded (≤500 runes) remark on an app, deletable only by
// its author. UserName is denormalized so listings render without a join.
type Comment struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	AppID     string    `json:"appId"     gorm:"type:char(36);not null;index:idx_comments_app,priority:1"`
	UserID    string    `json:"userId"    gorm:"type:char(36);not null;index"`
	UserName  string    `json:"userName"  gorm:"type:varchar(64);not null"`
	Content   string    `json:"content"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_comments_app,priority:2"`

	App App `json:"-" gorm:"foreignKey:AppID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }
