// Package repomanager vends repository implementations bound to a database
// handle, so services can run repository calls either directly or inside a
// transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/legalvault/internal/dbx"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/activities"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/documents"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/users"
)

// RepositoryManager returns repositories bound to the provided DBTX
// (*sql.DB or *sql.Tx) and owns schema migrations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Documents(db dbx.DBTX) documents.Repository
	Activities(db dbx.DBTX) activities.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
