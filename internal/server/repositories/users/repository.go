// Package users persists user accounts.
package users

import (
	"context"

	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

// Repository is the persistence contract for users.
type Repository interface {
	// Create inserts a new user. A duplicate email is reported as
	// common.ErrorValidation.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail returns the user with the given email, or
	// common.ErrorNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns the user with the given ID, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
