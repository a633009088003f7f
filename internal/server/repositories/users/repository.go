// Package users persists user identity records. It is the only component
// that reads or writes the users table.
package users

import (
	"context"

	"github.com/dkoval/tasktrack/internal/server/models"
)

// Repository is the credential store's persistence contract.
type Repository interface {
	// Create inserts a new user. A username collision yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUsername looks a user up by exact (case-sensitive) username.
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdateNickname sets the display nickname. Idempotent; nicknames carry
	// no uniqueness constraint.
	UpdateNickname(ctx context.Context, userID, nickname string) error
}
