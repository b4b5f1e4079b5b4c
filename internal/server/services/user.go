// Package services contains server-side business logic. This file implements
// UserService, which handles signup, login, logout, and resolving session
// tokens back to user identities.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/auth"
	"github.com/dmitrijs2005/contactbook/internal/server/config"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
	"github.com/google/uuid"
)

// UserService provides authentication-related operations:
// - SignUp: validate credentials and create users
// - Login: verify credentials and mint a session token
// - Logout: clear the stored session token
// - Authenticate: resolve a presented token to a user identity
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	hasher                auth.PasswordHasher
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		hasher:                hasher,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// SignUp validates the payload and creates a new user on the starter tier.
// A taken email yields common.ErrorAlreadyExists; the store is written
// exactly once, and only on full success.
func (s *UserService) SignUp(ctx context.Context, email, password string) (*models.User, error) {
	if verr := validation.ValidateCredentials(email, password); verr != nil {
		return nil, verr
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Subscription: models.SubscriptionStarter,
	}

	user, err = repo.Create(ctx, user)
	if err != nil {
		// two signups may race for the same email; the store picks the winner
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %v", err)
	}

	return user, nil
}

// Login verifies the credentials and, on success, issues a new session token
// and persists it onto the user record, superseding any previously issued
// token. An unknown email yields common.ErrorNotFound; a wrong password
// yields common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if verr := validation.ValidateCredentials(email, password); verr != nil {
		return nil, "", verr
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorNotFound
		}
		return nil, "", common.ErrorInternal
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	if !ok {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	if err := repo.SetToken(ctx, user.ID, &token); err != nil {
		return nil, "", common.ErrorInternal
	}

	user.Token = sql.NullString{String: token, Valid: true}

	return user, token, nil
}

// Logout clears the stored session token, invalidating it immediately.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	repo := s.repomanager.Users(s.db)

	err := repo.SetToken(ctx, userID, nil)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

// Current returns the user record for an authenticated id.
func (s *UserService) Current(ctx context.Context, userID string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// UpdateSubscription switches the user to another tier.
func (s *UserService) UpdateSubscription(ctx context.Context, userID, subscription string) (*models.User, error) {
	if !models.ValidSubscription(subscription) {
		return nil, &validation.Error{
			Field:   "subscription",
			Message: `"subscription" must be one of [starter, pro, business]`,
		}
	}

	repo := s.repomanager.Users(s.db)

	if err := repo.SetSubscription(ctx, userID, subscription); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return s.Current(ctx, userID)
}

// Authenticate resolves a presented session token to a user. It fails with
// common.ErrTokenExpired or common.ErrInvalidToken for bad tokens, and with
// common.ErrorUnauthorized when the user is gone or the token has been
// superseded by a newer login. Callers at the transport boundary collapse
// all of these into a single unauthorized response.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	// single active session: only the latest issued token is accepted
	if !user.Token.Valid || user.Token.String != token {
		return nil, common.ErrorUnauthorized
	}

	return user, nil
}
