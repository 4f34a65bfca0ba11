// Package services – DescribeService
//
// This file implements the DescribeService, a thin policy layer over the
// chat-completions collaborator that drafts app descriptions. The service
// trims inputs and maps collaborator failures to a stable sentinel so the
// handler can answer with a single upstream-failure code.
package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

// DescriptionGenerator is the external collaborator that writes copy.
// Implemented by ai.Client.
type DescriptionGenerator interface {
	GenerateDescription(ctx context.Context, title, appURL string, tags []string) (string, error)
}

// DescribeService implements the description-drafting use-case.
type DescribeService struct {
	// Gen produces descriptions; nil disables the feature.
	Gen DescriptionGenerator
}

// Generate drafts a description for the given app metadata. Collaborator
// errors and empty completions both yield ErrDescriptionUnavailable.
func (s *DescribeService) Generate(ctx context.Context, title, appURL string, tags []string) (string, error) {
	if s.Gen == nil {
		return "", ErrDescriptionUnavailable
	}
	title = strings.TrimSpace(title)
	appURL = strings.TrimSpace(appURL)

	text, err := s.Gen.GenerateDescription(ctx, title, appURL, tags)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("description generation failed")
		return "", ErrDescriptionUnavailable
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrDescriptionUnavailable
	}
	return text, nil
}
