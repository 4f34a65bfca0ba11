// Package services defines the business logic for accounts, apps, likes,
// favorites, comments, and screenshots. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler/controller layer.
package services

import "errors"

// Account-related errors.
var (
	// ErrEmailTaken indicates an existing account already uses the email.
	// Checked before username so the conflict message names email first.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken indicates an existing account already uses the username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned on login when the user does not
	// exist or the password does not match. One error for both cases so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound indicates the authenticated user's account no longer
	// exists, e.g. a valid token outliving its user row.
	ErrUserNotFound = errors.New("user not found")
)

// App-related errors.
var (
	// ErrAppNotFound indicates that the requested app does not exist or is
	// not accessible to the current user.
	ErrAppNotFound = errors.New("app not found")

	// ErrNotOwner is returned when a user attempts an owner-only operation
	// on an app they did not publish.
	ErrNotOwner = errors.New("not the app owner")

	// ErrDuplicateURL is returned when an app submission reuses a URL that
	// is already in the catalog.
	ErrDuplicateURL = errors.New("an app with this URL already exists")
)

// Comment-related errors.
var (
	// ErrCommentNotFound indicates that the requested comment does not exist.
	ErrCommentNotFound = errors.New("comment not found")

	// ErrCommentTooLong is returned when comment content exceeds the
	// maximum allowed rune length.
	ErrCommentTooLong = errors.New("comment too long")

	// ErrEmptyComment is returned when comment content is blank after trimming.
	ErrEmptyComment = errors.New("comment is empty")

	// ErrNotCommentAuthor is returned when a user attempts to delete a
	// comment written by someone else.
	ErrNotCommentAuthor = errors.New("not the comment author")
)

// Collaborator errors.
var (
	// ErrScreenshotUnavailable is returned when the rendering collaborator
	// fails and no cached image or fallback URL exists.
	ErrScreenshotUnavailable = errors.New("screenshot unavailable")

	// ErrDescriptionUnavailable is returned when the description generator
	// fails or returns an empty completion.
	ErrDescriptionUnavailable = errors.New("description generation failed")
)
