package repo

import (
	"context"
	"testing"
	"time"

	"appshowcase/internal/domain"
)

func TestToggleLike_CounterStaysConsistent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "ada")
	fan := seedUser(t, db, "bob")
	app := seedApp(t, db, owner, "likeable", nil)

	liked, likes, err := ToggleLike(ctx, db, app.ID, fan.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !liked || likes != 1 {
		t.Fatalf("toggle on = (%v, %d), want (true, 1)", liked, likes)
	}

	// Second toggle removes the like and decrements.
	liked, likes, err = ToggleLike(ctx, db, app.ID, fan.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if liked || likes != 0 {
		t.Fatalf("toggle off = (%v, %d), want (false, 0)", liked, likes)
	}

	// Counter equals actual row count after any number of toggles.
	if _, _, err := ToggleLike(ctx, db, app.ID, fan.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, _, err := ToggleLike(ctx, db, app.ID, owner.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	rows, err := CountAppLikes(ctx, db, app.ID)
	if err != nil {
		t.Fatalf("CountAppLikes: %v", err)
	}
	got, _ := GetApp(ctx, db, app.ID)
	if rows != 2 || got.Likes != rows {
		t.Fatalf("counter drift: rows=%d counter=%d", rows, got.Likes)
	}
}

func TestToggleLike_DecrementClampsAtZero(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "ada")
	fan := seedUser(t, db, "bob")
	app := seedApp(t, db, owner, "drifted", nil)

	// Simulate a drifted counter: a like row exists but the counter is 0.
	if _, _, err := ToggleLike(ctx, db, app.ID, fan.ID); err != nil {
		t.Fatalf("seed like: %v", err)
	}
	db.Model(&domain.App{}).Where("id = ?", app.ID).Update("likes", 0)

	_, likes, err := ToggleLike(ctx, db, app.ID, fan.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if likes != 0 {
		t.Fatalf("counter must clamp at zero, got %d", likes)
	}
}

func TestToggleFavorite_DerivedCount(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "ada")
	fan := seedUser(t, db, "bob")
	app := seedApp(t, db, owner, "favable", nil)

	fav, count, err := ToggleFavorite(ctx, db, app.ID, fan.ID)
	if err != nil {
		t.Fatalf("toggle on: %v", err)
	}
	if !fav || count != 1 {
		t.Fatalf("toggle on = (%v, %d), want (true, 1)", fav, count)
	}

	if _, count, err = ToggleFavorite(ctx, db, app.ID, owner.ID); err != nil || count != 2 {
		t.Fatalf("second user = count %d (%v), want 2", count, err)
	}

	fav, count, err = ToggleFavorite(ctx, db, app.ID, fan.ID)
	if err != nil {
		t.Fatalf("toggle off: %v", err)
	}
	if fav || count != 1 {
		t.Fatalf("toggle off = (%v, %d), want (false, 1)", fav, count)
	}
}

func TestListFavoriteApps_MostRecentFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "ada")
	fan := seedUser(t, db, "bob")
	publish := func(a *domain.App) { a.IsPublished = true }
	a1 := seedApp(t, db, owner, "older-fav", publish)
	a2 := seedApp(t, db, owner, "newer-fav", publish)
	draft := seedApp(t, db, owner, "draft-fav", nil)
	seedApp(t, db, owner, "not-fav", publish)

	if _, _, err := ToggleFavorite(ctx, db, a1.ID, fan.ID); err != nil {
		t.Fatalf("favorite a1: %v", err)
	}
	// Backdate so the second favorite sorts first.
	db.Model(&domain.Favorite{}).Where("app_id = ?", a1.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour))
	if _, _, err := ToggleFavorite(ctx, db, a2.ID, fan.ID); err != nil {
		t.Fatalf("favorite a2: %v", err)
	}
	// Unpublished favorites stay out of the listing.
	if _, _, err := ToggleFavorite(ctx, db, draft.ID, fan.ID); err != nil {
		t.Fatalf("favorite draft: %v", err)
	}

	out, err := ListFavoriteApps(ctx, db, fan.ID)
	if err != nil {
		t.Fatalf("ListFavoriteApps: %v", err)
	}
	if len(out) != 2 || out[0].ID != a2.ID || out[1].ID != a1.ID {
		t.Fatalf("expected [newer, older], got %v", out)
	}

	// A user with no favorites gets an empty list, not an error.
	none, err := ListFavoriteApps(ctx, db, owner.ID)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected empty list, got %v (%v)", none, err)
	}
}

func TestFavoriteTimesByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	owner := seedUser(t, db, "ada")
	fan := seedUser(t, db, "bob")
	app := seedApp(t, db, owner, "timed-fav", nil)

	if _, _, err := ToggleFavorite(ctx, db, app.ID, fan.ID); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	times, err := FavoriteTimesByUser(ctx, db, fan.ID)
	if err != nil {
		t.Fatalf("FavoriteTimesByUser: %v", err)
	}
	at, okTime := times[app.ID]
	if len(times) != 1 || !okTime || at.IsZero() {
		t.Fatalf("expected one timestamped entry, got %v", times)
	}

	empty, err := FavoriteTimesByUser(ctx, db, owner.ID)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty map, got %v (%v)", empty, err)
	}
}
