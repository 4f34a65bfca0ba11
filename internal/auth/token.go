// Package auth issues and verifies the JWT bearer tokens that back every
// authenticated endpoint. Tokens are HMAC-signed (HS256) and carry the
// user's ID and username so handlers never need a DB round trip to
// establish identity.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime applied when the configuration does not
// override it.
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken is returned by Parse for any token that fails
// verification: bad signature, expired, malformed, or wrong claims shape.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the JWT payload. RegisteredClaims supplies exp/iat/sub
// handling; UserID duplicates Subject for explicit access.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

// NewToken signs a token for the given user, valid for ttl from now.
func NewToken(secret []byte, userID, username string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Parse verifies tokenString against secret and returns its claims.
// Only HS256 is accepted; anything else fails with ErrInvalidToken.
func Parse(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
