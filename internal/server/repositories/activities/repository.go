// Package activities persists reminder definitions and owns the flag
// transitions the scheduler relies on for its at-most-once guarantee.
package activities

import (
	"context"
	"time"

	"github.com/dmitrijs2005/legalvault/internal/server/models"
)

// Repository is the persistence contract for activities.
type Repository interface {
	// Create inserts a new activity and returns it with ID and CreatedAt
	// populated.
	Create(ctx context.Context, a *models.Activity) (*models.Activity, error)

	// ListForOwner returns the owner's activities sorted by (date, time)
	// ascending.
	ListForOwner(ctx context.Context, ownerID string) ([]*models.Activity, error)

	// SelectDue returns unsent activities whose calendar date falls within
	// [from, to]. This is the coarse date-level filter; the scheduler
	// re-checks the precise due instant per activity.
	SelectDue(ctx context.Context, from, to time.Time) ([]*models.Activity, error)

	// ClaimReminder atomically flips email_reminder_sent from false to
	// true and reports whether this caller won the claim. Two concurrent
	// sweeps can never both claim the same occurrence.
	ClaimReminder(ctx context.Context, id string) (bool, error)

	// ReleaseReminder clears email_reminder_sent so a failed dispatch is
	// retried by a later sweep.
	ReleaseReminder(ctx context.Context, id string) error

	// Advance moves a repeating activity to its next occurrence date and
	// clears email_reminder_sent in the same statement.
	Advance(ctx context.Context, id string, next time.Time) error
}
