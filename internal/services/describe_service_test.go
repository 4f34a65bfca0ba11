package services

import (
	"context"
	"errors"
	"testing"
)

type stubGenerator struct {
	text string
	err  error

	gotTitle string
	gotURL   string
	gotTags  []string
}

func (s *stubGenerator) GenerateDescription(ctx context.Context, title, appURL string, tags []string) (string, error) {
	s.gotTitle, s.gotURL, s.gotTags = title, appURL, tags
	return s.text, s.err
}

func TestDescribeService_Generate(t *testing.T) {
	gen := &stubGenerator{text: "  A tidy little puzzle game.  "}
	svc := &DescribeService{Gen: gen}

	out, err := svc.Generate(context.Background(), "  Puzzler  ", " https://example.com/puzzler ", []string{"puzzle"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if out != "A tidy little puzzle game." {
		t.Fatalf("expected trimmed completion, got %q", out)
	}
	// Inputs are trimmed before they reach the collaborator.
	if gen.gotTitle != "Puzzler" || gen.gotURL != "https://example.com/puzzler" {
		t.Fatalf("expected trimmed inputs, got %q / %q", gen.gotTitle, gen.gotURL)
	}
}

func TestDescribeService_Generate_Failures(t *testing.T) {
	ctx := context.Background()

	// Feature disabled.
	if _, err := (&DescribeService{}).Generate(ctx, "t", "u", nil); !errors.Is(err, ErrDescriptionUnavailable) {
		t.Fatalf("nil generator: expected ErrDescriptionUnavailable, got %v", err)
	}

	// Collaborator error.
	svc := &DescribeService{Gen: &stubGenerator{err: errors.New("quota")}}
	if _, err := svc.Generate(ctx, "t", "u", nil); !errors.Is(err, ErrDescriptionUnavailable) {
		t.Fatalf("collaborator error: expected ErrDescriptionUnavailable, got %v", err)
	}

	// Blank completion.
	svc = &DescribeService{Gen: &stubGenerator{text: "   "}}
	if _, err := svc.Generate(ctx, "t", "u", nil); !errors.Is(err, ErrDescriptionUnavailable) {
		t.Fatalf("blank completion: expected ErrDescriptionUnavailable, got %v", err)
	}
}
