package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/contactbook/internal/server/validation"
	"github.com/google/uuid"
)

// ContactService implements the per-user contact list operations. Every
// operation is scoped to the owning user id supplied by the caller.
type ContactService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewContactService(db *sql.DB, m repomanager.RepositoryManager) *ContactService {
	return &ContactService{db: db, repomanager: m}
}

// List returns the owner's contacts, optionally filtered by favorite and
// paginated.
func (s *ContactService) List(ctx context.Context, ownerID string, f contacts.Filter) ([]*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)

	list, err := repo.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if list == nil {
		list = []*models.Contact{}
	}
	return list, nil
}

func (s *ContactService) Get(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)

	contact, err := repo.GetByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return contact, nil
}

// Create validates the payload, rejects a duplicate of an existing contact
// (same name, email, and phone for the owner), and stores the new entry.
func (s *ContactService) Create(ctx context.Context, ownerID, name, email, phone string, favorite bool) (*models.Contact, error) {
	if verr := validation.ValidateContact(name, email, phone); verr != nil {
		return nil, verr
	}

	repo := s.repomanager.Contacts(s.db)

	taken, err := repo.ExistsDuplicate(ctx, ownerID, name, email, phone)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if taken {
		return nil, common.ErrorAlreadyExists
	}

	contact := &models.Contact{
		ID:       uuid.NewString(),
		OwnerID:  ownerID,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Favorite: favorite,
	}

	contact, err = repo.Create(ctx, contact)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, ownerID, id, name, email, phone string, favorite bool) (*models.Contact, error) {
	if verr := validation.ValidateContact(name, email, phone); verr != nil {
		return nil, verr
	}

	repo := s.repomanager.Contacts(s.db)

	contact, err := repo.Update(ctx, &models.Contact{
		ID:       id,
		OwnerID:  ownerID,
		Name:     name,
		Email:    email,
		Phone:    phone,
		Favorite: favorite,
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, ownerID, id string) error {
	repo := s.repomanager.Contacts(s.db)

	err := repo.Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}
	return nil
}

func (s *ContactService) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error) {
	repo := s.repomanager.Contacts(s.db)

	contact, err := repo.SetFavorite(ctx, ownerID, id, favorite)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return contact, nil
}
