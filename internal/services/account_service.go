// Package services – AccountService
//
// This file implements the AccountService, which manages registration and
// login. It hashes passwords with bcrypt, enforces username/email
// uniqueness with field-specific conflict errors, and issues the signed
// bearer tokens used by the authenticated API surface.
//
// Service-level errors (e.g. ErrEmailTaken, ErrInvalidCredentials) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"appshowcase/internal/auth"
	"appshowcase/internal/domain"
	"appshowcase/internal/repo"
)

// AccountService implements the use-cases around user accounts.
type AccountService struct {
	// DB is the database handle used for all account operations.
	DB *gorm.DB

	// TokenSecret signs issued bearer tokens.
	TokenSecret []byte
	// TokenTTL is the issued-token lifetime; zero means auth.DefaultTTL.
	TokenTTL time.Duration
	// BcryptCost overrides bcrypt.DefaultCost when > 0. Tests lower it.
	BcryptCost int
}

// Register creates a new account and returns the user plus a fresh token,
// so clients are signed in immediately after registering.
//
// Conflict order matters: the email check runs before the username check,
// and the first match wins, so a request clashing on both reports the
// email conflict.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := repo.FindUserByUsernameOrEmail(ctx, s.DB, username, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		if strings.EqualFold(existing.Email, email) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", ErrUsernameTaken
	}

	cost := s.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, "", err
	}

	u, err := repo.CreateUser(ctx, s.DB, username, email, string(hash))
	if err != nil {
		// Concurrent registration can slip past the pre-check; map the
		// unique-index violation to the same conflict errors.
		if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicate(err) {
			if strings.Contains(strings.ToLower(err.Error()), "email") {
				return nil, "", ErrEmailTaken
			}
			return nil, "", ErrUsernameTaken
		}
		return nil, "", err
	}

	token, err := auth.NewToken(s.TokenSecret, u.ID, u.Username, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// Login verifies credentials and issues a token. loginID may be either a
// username or an email address. Unknown account and wrong password both
// yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, loginID, password string) (*domain.User, string, error) {
	loginID = strings.TrimSpace(loginID)

	u, err := repo.GetUserByLogin(ctx, s.DB, loginID)
	if err != nil {
		if isNotFound(err) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.NewToken(s.TokenSecret, u.ID, u.Username, s.TokenTTL)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// isNotFound treats repo-level not found sentinels as "not found" in a
// driver-agnostic way.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// isDuplicate attempts to detect unique-constraint violations across drivers
// that may not map to gorm.ErrDuplicatedKey.
func isDuplicate(err error) bool {
	// SQLite typically: "UNIQUE constraint failed"
	// Postgres typically: "duplicate key value violates unique constraint"
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
