// Package repomanager vends storage-backend-specific repository
// implementations and owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dkoval/tasktrack/internal/dbx"
	"github.com/dkoval/tasktrack/internal/server/repositories/tasks"
	"github.com/dkoval/tasktrack/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX (a *sql.DB or a
// transaction) so services can compose multi-step operations.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
