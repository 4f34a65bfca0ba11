package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestCommentService_Add_Validation(t *testing.T) {
	db := newTestDB(t)
	appSvc := NewAppService(db, gormAppRepo{})
	svc := &CommentService{DB: db}
	ctx := context.Background()

	ada := seedUser(t, db, "ada")
	bob := seedUser(t, db, "bob")
	app := seedApp(t, appSvc, ada, "discussed", NewAppInput{IsPublished: true})

	// Blank content, including whitespace-only.
	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Add(ctx, bob.ID, app.ID, content); !errors.Is(err, ErrEmptyComment) {
			t.Fatalf("content %q: expected ErrEmptyComment, got %v", content, err)
		}
	}

	// The cap counts runes, not bytes: 500 two-byte runes are fine.
	atCap := strings.Repeat("é", DefaultMaxCommentRunes)
	c, err := svc.Add(ctx, bob.ID, app.ID, atCap)
	if err != nil {
		t.Fatalf("at-cap comment: %v", err)
	}
	if c.Content != atCap || c.UserName != "bob" {
		t.Fatalf("unexpected comment: %+v", c)
	}

	over := strings.Repeat("é", DefaultMaxCommentRunes+1)
	if _, err := svc.Add(ctx, bob.ID, app.ID, over); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("over-cap: expected ErrCommentTooLong, got %v", err)
	}

	if _, err := svc.Add(ctx, bob.ID, uuid.NewString(), "hi"); !errors.Is(err, ErrAppNotFound) {
		t.Fatalf("missing app: expected ErrAppNotFound, got %v", err)
	}

	// A token can outlive its account; the comment must not be created
	// under a ghost user.
	if _, err := svc.Add(ctx, uuid.NewString(), app.ID, "hi"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("missing user: expected ErrUserNotFound, got %v", err)
	}
}

func TestCommentService_Add_TrimsBeforeMeasuring(t *testing.T) {
	db := newTestDB(t)
	appSvc := NewAppService(db, gormAppRepo{})
	svc := &CommentService{DB: db, MaxRunes: 5}
	ctx := context.Background()

	ada := seedUser(t, db, "ada")
	app := seedApp(t, appSvc, ada, "short", NewAppInput{})

	// Padding does not count against the cap.
	c, err := svc.Add(ctx, ada.ID, app.ID, "   12345   ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if c.Content != "12345" {
		t.Fatalf("content = %q, want trimmed", c.Content)
	}
	if _, err := svc.Add(ctx, ada.ID, app.ID, "123456"); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}
}

func TestCommentService_List(t *testing.T) {
	db := newTestDB(t)
	appSvc := NewAppService(db, gormAppRepo{})
	svc := &CommentService{DB: db}
	ctx := context.Background()

	ada := seedUser(t, db, "ada")
	app := seedApp(t, appSvc, ada, "discussed", NewAppInput{})

	if _, _, err := svc.List(ctx, uuid.NewString(), 1, 10); !errors.Is(err, ErrAppNotFound) {
		t.Fatalf("missing app: expected ErrAppNotFound, got %v", err)
	}

	out, total, err := svc.List(ctx, app.ID, 1, 10)
	if err != nil || len(out) != 0 || total != 0 {
		t.Fatalf("empty list: %v total=%d (%v)", out, total, err)
	}

	for _, content := range []string{"first", "second", "third"} {
		if _, err := svc.Add(ctx, ada.ID, app.ID, content); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	out, total, err = svc.List(ctx, app.ID, 1, 10)
	if err != nil || len(out) != 3 || total != 3 {
		t.Fatalf("list after adds: %v total=%d (%v)", out, total, err)
	}

	// Paged: total reflects all comments, the page holds its slice.
	page2, total, err := svc.List(ctx, app.ID, 2, 2)
	if err != nil || len(page2) != 1 || total != 3 {
		t.Fatalf("page 2: %v total=%d (%v)", page2, total, err)
	}
}

func TestCommentService_Delete_AuthorOnly(t *testing.T) {
	db := newTestDB(t)
	appSvc := NewAppService(db, gormAppRepo{})
	svc := &CommentService{DB: db}
	ctx := context.Background()

	ada := seedUser(t, db, "ada")
	bob := seedUser(t, db, "bob")
	app := seedApp(t, appSvc, ada, "discussed", NewAppInput{})

	c, err := svc.Add(ctx, bob.ID, app.ID, "mine")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(ctx, ada.ID, c.ID); !errors.Is(err, ErrNotCommentAuthor) {
		t.Fatalf("non-author: expected ErrNotCommentAuthor, got %v", err)
	}
	if err := svc.Delete(ctx, bob.ID, uuid.NewString()); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("missing: expected ErrCommentNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, bob.ID, c.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if err := svc.Delete(ctx, bob.ID, c.ID); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("double delete: expected ErrCommentNotFound, got %v", err)
	}
}
