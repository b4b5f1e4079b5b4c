package contacts

import (
	"context"

	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

// Filter narrows ListByOwner results. Favorite is optional; Page/Limit
// paginate when Limit > 0.
type Filter struct {
	Favorite *bool
	Page     int
	Limit    int
}

// Repository is the contact store contract. All lookups are scoped to the
// owning user; a contact id from another owner behaves as absent.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string, f Filter) ([]*models.Contact, error)
	GetByID(ctx context.Context, ownerID, id string) (*models.Contact, error)
	Create(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) (*models.Contact, error)
	Delete(ctx context.Context, ownerID, id string) error
	SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error)
	ExistsDuplicate(ctx context.Context, ownerID, name, email, phone string) (bool, error)
}
