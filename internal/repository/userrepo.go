// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/anilvs/casetrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides account storage. Users are never hard-deleted:
// complaints, cases and audit rows reference them by id.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by unique email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetByBadge loads an officer by badge number.
	GetByBadge(ctx context.Context, badge string) (*model.User, error)
}
