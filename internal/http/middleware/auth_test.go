package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"appshowcase/internal/auth"
)

var authSecret = []byte("middleware-test-secret")

func authTestRouter(t *testing.T, mw gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userID":   c.GetString(CtxKeyUserID),
			"username": c.GetString(CtxKeyUsername),
		})
	})
	return r
}

func doWhoami(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerAuth_ValidToken(t *testing.T) {
	r := authTestRouter(t, BearerAuth(authSecret))

	tok, err := auth.NewToken(authSecret, "u1", "ada", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	w := doWhoami(r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["userID"] != "u1" || body["username"] != "ada" {
		t.Fatalf("identity not set: %v", body)
	}
}

func TestBearerAuth_Rejections(t *testing.T) {
	r := authTestRouter(t, BearerAuth(authSecret))

	expired, _ := auth.NewToken(authSecret, "u1", "ada", -time.Hour)
	foreign, _ := auth.NewToken([]byte("other"), "u1", "ada", time.Hour)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc"},
		{"empty token", "Bearer   "},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong secret", "Bearer " + foreign},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doWhoami(r, tc.header)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["code"] != "unauthorized" {
				t.Fatalf("code = %v", body["code"])
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	r := authTestRouter(t, OptionalAuth(authSecret))

	// Anonymous passes through with no identity.
	w := doWhoami(r, "")
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous status = %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["userID"] != "" {
		t.Fatalf("anonymous must carry no identity: %v", body)
	}

	// Valid token sets the identity.
	tok, _ := auth.NewToken(authSecret, "u1", "ada", time.Hour)
	w = doWhoami(r, "Bearer "+tok)
	json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || body["userID"] != "u1" {
		t.Fatalf("valid token: status %d body %v", w.Code, body)
	}

	// Invalid token is ignored, not rejected.
	w = doWhoami(r, "Bearer garbage")
	json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || body["userID"] != "" {
		t.Fatalf("invalid token: status %d body %v", w.Code, body)
	}
}
