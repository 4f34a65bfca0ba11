// Description generation HTTP handler.
//
// This file exposes the endpoint that drafts app descriptions through the
// chat-completions collaborator:
//   - POST /generate-description
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"appshowcase/internal/services"
)

// DescriptionService defines the description-drafting operation consumed by
// HTTP handlers.
type DescriptionService interface {
	// Generate drafts a short description from app metadata.
	Generate(ctx context.Context, title, appURL string, tags []string) (string, error)
}

// GenerateDescriptionRequest is the JSON payload for drafting a description.
type GenerateDescriptionRequest struct {
	Title string   `json:"title" binding:"required,min=1,max=255" example:"Tiny pixel game"`
	URL   string   `json:"url"   binding:"required,url" example:"https://game.example.com"`
	Tags  []string `json:"tags"`
}

// GenerateDescriptionResponse carries the drafted text.
type GenerateDescriptionResponse struct {
	Description string `json:"description"`
}

// GenerateDescription godoc
// @ID          generateDescription
// @Summary     Draft an app description
// @Description Asks the language-model collaborator for a short storefront description of the app.
// @Tags        Apps
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.GenerateDescriptionRequest  true  "App metadata"
//
// @Success     200  {object} handlers.GenerateDescriptionResponse
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     401  {object} handlers.ErrorResponse "Missing or invalid token"
// @Failure     502  {object} handlers.ErrorResponse "Generator unavailable"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /generate-description [post]
func (h *Handlers) GenerateDescription(c *gin.Context) {
	var req GenerateDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and a valid url are required")
		return
	}

	text, err := h.describeSvc.Generate(c.Request.Context(), req.Title, req.URL, req.Tags)
	if err != nil {
		if errors.Is(err, services.ErrDescriptionUnavailable) {
			fail(c, http.StatusBadGateway, ErrCodeUpstreamFailed, "description generation failed")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, GenerateDescriptionResponse{Description: text})
}
