// Package services – CommentService
//
// This file implements the CommentService, which manages comments on apps.
// It enforces the content length cap by rune count, requires the target
// app to exist, and restricts deletion to the comment's author.
package services

import (
	"context"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"appshowcase/internal/domain"
	"appshowcase/internal/repo"
)

// DefaultMaxCommentRunes caps comment content length.
const DefaultMaxCommentRunes = 500

// CommentService implements the use-cases around app comments.
type CommentService struct {
	// DB is the database handle used for all comment operations.
	DB *gorm.DB

	// MaxRunes caps content length; zero means DefaultMaxCommentRunes.
	MaxRunes int
}

// Add creates a comment by userID on appID. The stored display name comes
// from the user record, not the token, so renamed accounts comment under
// their current name.
//
// Validation:
//   - content must be non-blank after trimming; otherwise ErrEmptyComment.
//   - content must be at most MaxRunes runes; otherwise ErrCommentTooLong.
//     Rune count, not bytes, so multi-byte scripts get the full budget.
//   - appID must exist; otherwise ErrAppNotFound.
//   - userID must still exist; otherwise ErrUserNotFound.
func (s *CommentService) Add(ctx context.Context, userID, appID, content string) (*domain.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	max := s.MaxRunes
	if max <= 0 {
		max = DefaultMaxCommentRunes
	}
	if utf8.RuneCountInString(content) > max {
		return nil, ErrCommentTooLong
	}

	if _, err := repo.GetApp(ctx, s.DB, appID); err != nil {
		if isNotFound(err) {
			return nil, ErrAppNotFound
		}
		return nil, err
	}
	user, err := repo.GetUserByID(ctx, s.DB, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return repo.CreateComment(ctx, s.DB, appID, userID, user.Username, content)
}

// List returns one page of comments on appID, newest first, plus the total
// comment count for pagination. The app must exist. A pageSize <= 0 returns
// every comment in one page.
func (s *CommentService) List(ctx context.Context, appID string, page, pageSize int) ([]domain.Comment, int64, error) {
	if _, err := repo.GetApp(ctx, s.DB, appID); err != nil {
		if isNotFound(err) {
			return nil, 0, ErrAppNotFound
		}
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	comments, err := repo.ListCommentsByApp(ctx, s.DB, appID, offset, pageSize)
	if err != nil {
		return nil, 0, err
	}
	counts, err := repo.CommentCountsByApp(ctx, s.DB, []string{appID})
	if err != nil {
		return nil, 0, err
	}
	return comments, counts[appID], nil
}

// Delete removes commentID on behalf of userID. Missing comments yield
// ErrCommentNotFound; existing comments by another author yield
// ErrNotCommentAuthor so the client can distinguish the two.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	c, err := repo.GetComment(ctx, s.DB, commentID)
	if err != nil {
		if isNotFound(err) {
			return ErrCommentNotFound
		}
		return err
	}
	if c.UserID != userID {
		return ErrNotCommentAuthor
	}
	return repo.DeleteCommentByAuthor(ctx, s.DB, commentID, userID)
}
