package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func paginationContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func TestClampPagination(t *testing.T) {
	cases := []struct {
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"", 1, 20},
		{"page=3&limit=50", 3, 50},
		{"page=0&limit=0", 1, 1},
		{"page=-2&limit=-5", 1, 1},
		{"limit=1000", 1, 100},
		{"page=abc&limit=xyz", 1, 20},
		{"page_size=30", 1, 30},
		{"limit=10&page_size=30", 1, 10}, // limit wins over the alias
	}
	for _, tc := range cases {
		c := paginationContext(t, tc.query)
		page, pageSize := clampPagination(c, 20)
		if page != tc.wantPage || pageSize != tc.wantPageSize {
			t.Fatalf("clampPagination(%q) = (%d, %d), want (%d, %d)",
				tc.query, page, pageSize, tc.wantPage, tc.wantPageSize)
		}
	}

	c := paginationContext(t, "")
	if _, pageSize := clampPagination(c, 10); pageSize != 10 {
		t.Fatalf("default page size not honored: got %d, want 10", pageSize)
	}
}

func TestNewPagination(t *testing.T) {
	p := newPagination(1, 20, 45)
	if p.TotalPages != 3 || !p.HasNext {
		t.Fatalf("unexpected pagination: %+v", p)
	}

	last := newPagination(3, 20, 45)
	if last.HasNext {
		t.Fatalf("last page must not advertise a next page: %+v", last)
	}

	empty := newPagination(1, 20, 0)
	if empty.TotalPages != 0 || empty.HasNext {
		t.Fatalf("empty result pagination: %+v", empty)
	}
}

func TestIdentityHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	// Unset keys read as empty, never panic.
	if userID(c) != "" || username(c) != "" {
		t.Fatalf("expected empty identity on bare context")
	}

	c.Set("userID", "u1")
	c.Set("username", "ada")
	if userID(c) != "u1" || username(c) != "ada" {
		t.Fatalf("identity not read back")
	}

	// Wrong types are ignored.
	c.Set("userID", 42)
	if userID(c) != "" {
		t.Fatalf("non-string userID must read as empty")
	}
}
