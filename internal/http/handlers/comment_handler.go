// Comment HTTP handlers.
//
// This file exposes REST endpoints for app comments:
//   - GET    /apps/{id}/comments                 (public paginated listing, newest first)
//   - POST   /apps/{id}/comments                 (create, authenticated)
//   - DELETE /apps/{id}/comments/{commentId}     (author-only delete)
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

	"appshowcase/internal/domain"
	"appshowcase/internal/services"
)

// CommentService defines comment operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type CommentService interface {
	// Add creates a comment by userID on an app; the display name is
	// resolved from the user record.
	Add(ctx context.Context, userID, appID, content string) (*domain.Comment, error)
	// List returns one page of comments on an app, newest first, plus the
	// total comment count.
	List(ctx context.Context, appID string, page, pageSize int) ([]domain.Comment, int64, error)
	// Delete removes a comment on behalf of its author.
	Delete(ctx context.Context, userID, commentID string) error
}

// defaultCommentPageSize is the page size for comment listings when the
// client sends no limit.
const defaultCommentPageSize = 10

// CreateCommentRequest is the JSON payload for posting a comment.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required" example:"Love the color palette!"`
}

// CommentsResponse wraps one page of an app's comments.
type CommentsResponse struct {
	Comments   []domain.Comment `json:"comments"`
	Pagination Pagination       `json:"pagination"`
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments on an app
// @Description Returns one page of comments on an app, newest first. Public.
// @Tags        Comments
// @Produce     json
//
// @Param       id     path   string  true  "App ID (UUID)"  format(uuid)
// @Param       page   query  int     false "Page number"       minimum(1) default(1)
// @Param       limit  query  int     false "Comments per page" minimum(1) maximum(100) default(10)
//
// @Success     200  {object} handlers.CommentsResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	page, pageSize := clampPagination(c, defaultCommentPageSize)

	comments, total, err := h.commentSvc.List(c.Request.Context(), appID, page, pageSize)
	if err != nil {
		if errors.Is(err, services.ErrAppNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, CommentsResponse{
		Comments:   comments,
		Pagination: newPagination(page, pageSize, total),
	})
}

// CreateComment godoc
// @ID          createComment
// @Summary     Comment on an app
// @Description Posts a comment (max 500 characters) on an app as the current user.
// @Tags        Comments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string  true  "App ID (UUID)"  format(uuid)
// @Param       body  body  handlers.CreateCommentRequest  true  "Comment payload"
//
// @Success     201  {object} domain.Comment
// @Failure     400  {object} handlers.ErrorResponse "Empty or too-long content"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     404  {object} handlers.ErrorResponse "App not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/comments [post]
func (h *Handlers) CreateComment(c *gin.Context) {
	appID := c.Param("id")
	if _, err := uuid.Parse(appID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content is required")
		return
	}

	comment, err := h.commentSvc.Add(c.Request.Context(), userID(c), appID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyComment), errors.Is(err, services.ErrCommentTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrAppNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "app not found")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "account no longer exists")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, comment)
}

// DeleteComment godoc
// @ID          deleteComment
// @Summary     Delete a comment
// @Description Removes a comment. Only the author may delete it.
// @Tags        Comments
// @Produce     json
// @Security    BearerAuth
//
// @Param       id         path  string  true  "App ID (UUID)"      format(uuid)
// @Param       commentId  path  string  true  "Comment ID (UUID)"  format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     403  {object} handlers.ErrorResponse "Not the author"
// @Failure     404  {object} handlers.ErrorResponse "Comment not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /apps/{id}/comments/{commentId} [delete]
func (h *Handlers) DeleteComment(c *gin.Context) {
	if _, err := uuid.Parse(c.Param("id")); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "app id must be a UUID")
		return
	}
	commentID := c.Param("commentId")
	if _, err := uuid.Parse(commentID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment id must be a UUID")
		return
	}

	err := h.commentSvc.Delete(c.Request.Context(), userID(c), commentID)
	switch {
	case err == nil:
		noContent(c)
	case errors.Is(err, services.ErrCommentNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "comment not found")
	case errors.Is(err, services.ErrNotCommentAuthor):
		fail(c, http.StatusForbidden, ErrCodeForbidden, "only the author can delete a comment")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
