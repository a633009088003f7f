// Package tasks persists task records. Every statement is scoped to the
// owning user: a task id that exists but belongs to someone else behaves
// exactly like a missing row.
package tasks

import (
	"context"

	"github.com/dkoval/tasktrack/internal/server/models"
)

// FlagPatch is a partial update of the lifecycle flags. Nil fields are left
// untouched.
type FlagPatch struct {
	Completed *bool
	Archived  *bool
}

// Repository is the task store's persistence contract. ownerID always comes
// from the authenticated identity, never from the request body.
type Repository interface {
	// Create inserts a fully populated task row.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)

	// ListByOwner returns every task the user owns, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.Task, error)

	// SetFlags applies patch to the task if the user owns it. A missing or
	// foreign-owned row yields common.ErrorNotFound, so a flag update racing
	// a delete never reports success.
	SetFlags(ctx context.Context, ownerID, taskID string, patch FlagPatch) error

	// Restore clears the archived flag, but only on a currently archived
	// task. Other flags are left untouched.
	Restore(ctx context.Context, ownerID, taskID string) error

	// Delete removes the row permanently if the user owns it.
	Delete(ctx context.Context, ownerID, taskID string) error
}
