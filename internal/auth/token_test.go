package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var secret = []byte("unit-test-secret")

func TestNewToken_And_Parse_RoundTrip(t *testing.T) {
	tok, err := NewToken(secret, "u1", "ada", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	claims, err := Parse(secret, tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "ada" || claims.Subject != "u1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) <= 0 {
		t.Fatalf("expected future expiry, got %v", claims.ExpiresAt)
	}
}

func TestNewToken_ZeroTTL_UsesDefault(t *testing.T) {
	tok, err := NewToken(secret, "u1", "ada", 0)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	claims, err := Parse(secret, tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	// Expiry should land near now+DefaultTTL.
	want := time.Now().Add(DefaultTTL)
	if got := claims.ExpiresAt.Time; got.Before(want.Add(-time.Minute)) || got.After(want.Add(time.Minute)) {
		t.Fatalf("expiry %v not near %v", got, want)
	}
}

func TestParse_Expired(t *testing.T) {
	tok, err := NewToken(secret, "u1", "ada", -time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if _, err := Parse(secret, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParse_WrongSecret(t *testing.T) {
	tok, err := NewToken(secret, "u1", "ada", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if _, err := Parse([]byte("other-secret"), tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := Parse(secret, tok); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestParse_RejectsNonHMAC(t *testing.T) {
	// Token signed with "none" must never verify.
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := Parse(secret, tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestParse_MissingUserID(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := Parse(secret, raw); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for empty userId claim, got %v", err)
	}
}
