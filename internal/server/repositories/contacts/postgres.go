package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/contactbook/internal/common"
	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const contactColumns = `id, owner_id, name, email, phone, favorite, created_at`

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, f Filter) ([]*models.Contact, error) {

	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1`
	args := []any{ownerID}

	if f.Favorite != nil {
		query += fmt.Sprintf(" AND favorite = $%d", len(args)+1)
		args = append(args, *f.Favorite)
	}

	query += " ORDER BY created_at, id"

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, f.Limit)
		if f.Page > 1 {
			query += fmt.Sprintf(" OFFSET $%d", len(args)+1)
			args = append(args, (f.Page-1)*f.Limit)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}
	defer rows.Close()

	var result []*models.Contact
	for rows.Next() {
		c := &models.Contact{}
		if err := rows.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("error performing sql request: %v", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, ownerID, id string) (*models.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE owner_id = $1 AND id = $2`

	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Contact, error) {
	c := &models.Contact{}
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Email, &c.Phone, &c.Favorite, &c.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, contact *models.Contact) (*models.Contact, error) {

	query :=
		`INSERT INTO contacts (id, owner_id, name, email, phone, favorite)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		contact.ID, contact.OwnerID, contact.Name, contact.Email, contact.Phone, contact.Favorite).
		Scan(&contact.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %v", err)
	}

	return contact, nil
}

func (r *PostgresRepository) Update(ctx context.Context, contact *models.Contact) (*models.Contact, error) {

	query :=
		`UPDATE contacts SET name = $3, email = $4, phone = $5, favorite = $6
		 WHERE owner_id = $1 AND id = $2
		 RETURNING ` + contactColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query,
		contact.OwnerID, contact.ID, contact.Name, contact.Email, contact.Phone, contact.Favorite))
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM contacts WHERE owner_id = $1 AND id = $2`

	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) SetFavorite(ctx context.Context, ownerID, id string, favorite bool) (*models.Contact, error) {
	query :=
		`UPDATE contacts SET favorite = $3
		 WHERE owner_id = $1 AND id = $2
		 RETURNING ` + contactColumns

	return r.scanOne(r.db.QueryRowContext(ctx, query, ownerID, id, favorite))
}

// ExistsDuplicate reports whether the owner already has a contact with the
// same name, email, and phone.
func (r *PostgresRepository) ExistsDuplicate(ctx context.Context, ownerID, name, email, phone string) (bool, error) {
	query :=
		`SELECT EXISTS (
		   SELECT 1 FROM contacts
		   WHERE owner_id = $1 AND name = $2 AND email = $3 AND phone = $4
		 )`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, ownerID, name, email, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %v", err)
	}

	return exists, nil
}
