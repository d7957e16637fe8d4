package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/legalvault/internal/common"
	"github.com/dmitrijs2005/legalvault/internal/dbx"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/activities"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/documents"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/users"
)

type fakeActivitiesRepo struct {
	items []*models.Activity
}

func (f *fakeActivitiesRepo) Create(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	a.ID = fmt.Sprintf("a-%d", len(f.items)+1)
	f.items = append(f.items, a)
	return a, nil
}

func (f *fakeActivitiesRepo) ListForOwner(ctx context.Context, ownerID string) ([]*models.Activity, error) {
	var result []*models.Activity
	for _, a := range f.items {
		if a.OwnerID == ownerID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (f *fakeActivitiesRepo) SelectDue(ctx context.Context, from, to time.Time) ([]*models.Activity, error) {
	return nil, nil
}

func (f *fakeActivitiesRepo) ClaimReminder(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (f *fakeActivitiesRepo) ReleaseReminder(ctx context.Context, id string) error { return nil }

func (f *fakeActivitiesRepo) Advance(ctx context.Context, id string, next time.Time) error {
	return nil
}

type activitiesManager struct {
	acts *fakeActivitiesRepo
}

func (m *activitiesManager) Users(db dbx.DBTX) users.Repository           { return nil }
func (m *activitiesManager) Documents(db dbx.DBTX) documents.Repository   { return nil }
func (m *activitiesManager) Activities(db dbx.DBTX) activities.Repository { return m.acts }
func (m *activitiesManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}

func TestActivityCreate(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	svc := NewActivityService(nil, &activitiesManager{acts: repo})

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	a, err := svc.Create(context.Background(), "u1", "Court hearing", "", date, "09:30", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.RepeatFrequency != models.RepeatNone {
		t.Fatalf("want default frequency none, got %s", a.RepeatFrequency)
	}
	if a.EmailReminderSent {
		t.Fatal("new activity must start with reminder flag clear")
	}
}

func TestActivityCreate_Validation(t *testing.T) {
	svc := NewActivityService(nil, &activitiesManager{acts: &fakeActivitiesRepo{}})

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		title string
		date  time.Time
		clock string
		freq  models.RepeatFrequency
	}{
		{"missing title", "", date, "09:30", ""},
		{"missing date", "Hearing", time.Time{}, "09:30", ""},
		{"malformed time", "Hearing", date, "9:30", ""},
		{"out-of-range time", "Hearing", date, "24:00", ""},
		{"unknown frequency", "Hearing", date, "09:30", "hourly"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "u1", tc.title, "", tc.date, tc.clock, tc.freq)
			if !errors.Is(err, common.ErrorValidation) {
				t.Fatalf("want validation error, got %v", err)
			}
		})
	}
}

func TestActivityListForOwner(t *testing.T) {
	repo := &fakeActivitiesRepo{}
	svc := NewActivityService(nil, &activitiesManager{acts: repo})

	date := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	for _, owner := range []string{"u1", "u2", "u1"} {
		if _, err := svc.Create(context.Background(), owner, "Task", "", date, "10:00", ""); err != nil {
			t.Fatalf("create error: %v", err)
		}
	}

	got, err := svc.ListForOwner(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 activities for u1, got %d", len(got))
	}
}
