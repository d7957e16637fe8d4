package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/legalvault/internal/common"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/repomanager"
)

// ActivityService handles reminder creation and listing. Scheduling itself
// lives in the scheduler package.
type ActivityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewActivityService(db *sql.DB, m repomanager.RepositoryManager) *ActivityService {
	return &ActivityService{db: db, repomanager: m}
}

// Create validates and stores a new activity. Time must match HH:mm
// (00–23:00–59); repeat frequency defaults to none.
func (s *ActivityService) Create(ctx context.Context, ownerID, title, description string, date time.Time, clock string, freq models.RepeatFrequency) (*models.Activity, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}
	if date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", common.ErrorValidation)
	}
	if _, _, err := models.ParseClock(clock); err != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrorValidation, err)
	}
	if freq == "" {
		freq = models.RepeatNone
	}
	if !freq.Valid() {
		return nil, fmt.Errorf("%w: unknown repeat frequency %q", common.ErrorValidation, freq)
	}

	a := &models.Activity{
		OwnerID:         ownerID,
		Title:           title,
		Description:     description,
		Date:            date,
		Time:            clock,
		RepeatFrequency: freq,
	}

	return s.repomanager.Activities(s.db).Create(ctx, a)
}

// ListForOwner returns the owner's activities sorted by (date, time).
func (s *ActivityService) ListForOwner(ctx context.Context, ownerID string) ([]*models.Activity, error) {
	return s.repomanager.Activities(s.db).ListForOwner(ctx, ownerID)
}
