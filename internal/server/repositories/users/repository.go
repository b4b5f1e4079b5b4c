package users

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Repository is the credential store contract. Create must enforce email
// uniqueness atomically: when two signups race for the same email, exactly
// one wins and the loser observes common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	SetToken(ctx context.Context, userID string, token *string) error
	SetSubscription(ctx context.Context, userID string, subscription string) error
}
