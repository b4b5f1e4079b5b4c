package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/contactbook/internal/dbx"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/contacts"
	"github.com/dmitrijs2005/contactbook/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX and
// exposes a schema migration hook.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Contacts(db dbx.DBTX) contacts.Repository
}
