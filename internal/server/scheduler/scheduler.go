// Package scheduler runs the periodic reminder sweep: it finds activities
// due within the next window, dispatches one notification per due
// occurrence and advances or seals each activity.
//
// The at-most-once guarantee comes from claiming before processing: the
// repository's compare-and-set on email_reminder_sent ensures two
// overlapping sweeps never dispatch the same occurrence twice. Activity
// times are interpreted in the server's local timezone.
package scheduler

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/legalvault/internal/logging"
	"github.com/dmitrijs2005/legalvault/internal/server/models"
	"github.com/dmitrijs2005/legalvault/internal/server/notify"
	"github.com/dmitrijs2005/legalvault/internal/server/repositories/repomanager"
)

// Config holds sweep timing. Interval is how often a sweep runs, Window how
// far ahead of now an occurrence may be to fire, NotifyTimeout bounds one
// notifier call so a stuck delivery cannot starve the rest of the sweep.
type Config struct {
	Interval      time.Duration
	Window        time.Duration
	NotifyTimeout time.Duration
}

// Scheduler is the single periodic background task that owns date and
// email_reminder_sent transitions for activities.
type Scheduler struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	logger      logging.Logger
	cfg         Config

	// clock and loc are injectable for deterministic tests.
	clock func() time.Time
	loc   *time.Location

	// sweepMu keeps ticks non-reentrant: a tick that fires while the
	// previous sweep is still running is skipped.
	sweepMu sync.Mutex
}

func New(db *sql.DB, m repomanager.RepositoryManager, n notify.Notifier, l logging.Logger, cfg Config) *Scheduler {
	return &Scheduler{
		db:          db,
		repomanager: m,
		notifier:    n,
		logger:      l.With("module", "scheduler"),
		cfg:         cfg,
		clock:       time.Now,
		loc:         time.Local,
	}
}

// Run executes sweeps on a fixed interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.logger.Info(ctx, "starting reminder scheduler",
		"interval", s.cfg.Interval.String(), "window", s.cfg.Window.String())

	for {
		select {
		case <-ctx.Done():
			s.logger.Info(ctx, "stopping reminder scheduler")
			return
		case <-ticker.C:
			if !s.sweepMu.TryLock() {
				s.logger.Warn(ctx, "previous sweep still running, skipping tick")
				continue
			}
			s.Sweep(ctx, s.clock())
			s.sweepMu.Unlock()
		}
	}
}

// Sweep processes every activity due in [now, now+Window]. Per-activity
// failures are logged and never abort the sweep for other candidates.
func (s *Scheduler) Sweep(ctx context.Context, now time.Time) {
	windowEnd := now.Add(s.cfg.Window)

	repo := s.repomanager.Activities(s.db)

	candidates, err := repo.SelectDue(ctx, now, windowEnd)
	if err != nil {
		s.logger.Error(ctx, "selecting due activities", "error", err.Error())
		return
	}

	for _, a := range candidates {
		if err := s.process(ctx, a, now, windowEnd); err != nil {
			s.logger.Error(ctx, "reminder not delivered",
				"activity_id", a.ID, "error", err.Error())
		}
	}
}

func (s *Scheduler) process(ctx context.Context, a *models.Activity, now, windowEnd time.Time) error {
	dueAt, err := a.DueAt(s.loc)
	if err != nil {
		return fmt.Errorf("malformed activity time: %w", err)
	}

	// The coarse date filter admits activities whose clock time falls
	// outside the window (e.g. earlier today). Only the precise instant
	// decides.
	if dueAt.Before(now) || dueAt.After(windowEnd) {
		return nil
	}

	repo := s.repomanager.Activities(s.db)

	claimed, err := repo.ClaimReminder(ctx, a.ID)
	if err != nil {
		return fmt.Errorf("claiming reminder: %w", err)
	}
	if !claimed {
		// Another sweep owns this occurrence.
		return nil
	}

	owner, err := s.repomanager.Users(s.db).GetByID(ctx, a.OwnerID)
	if err != nil {
		s.release(ctx, a.ID)
		return fmt.Errorf("looking up owner %s: %w", a.OwnerID, err)
	}

	subject, body := notify.ComposeReminder(a)

	nctx, cancel := context.WithTimeout(ctx, s.cfg.NotifyTimeout)
	defer cancel()

	if err := s.notifier.Send(nctx, owner.Email, subject, body); err != nil {
		// Leave date untouched and give the claim back so the next
		// sweep retries.
		s.release(ctx, a.ID)
		return err
	}

	if a.RepeatFrequency == models.RepeatNone {
		// Terminal: the claim already set email_reminder_sent.
		return nil
	}

	next := NextOccurrence(a.Date, a.RepeatFrequency)
	if err := repo.Advance(ctx, a.ID, next); err != nil {
		// The reminder went out, so releasing the claim would risk a
		// second send. The activity is now stuck sealed with a stale
		// date until an operator clears email_reminder_sent.
		s.logger.Error(ctx, "recurrence stuck after dispatch, needs manual reset",
			"activity_id", a.ID, "next_date", next.Format("2006-01-02"), "error", err.Error())
		return nil
	}

	return nil
}

func (s *Scheduler) release(ctx context.Context, id string) {
	if err := s.repomanager.Activities(s.db).ReleaseReminder(ctx, id); err != nil {
		s.logger.Error(ctx, "releasing reminder claim",
			"activity_id", id, "error", err.Error())
	}
}

// NextOccurrence advances a recurrence date one step: daily +1 day, weekly
// +7 days, monthly +1 calendar month clamped to the last day of the target
// month (Jan 31 -> Feb 28/29).
func NextOccurrence(date time.Time, freq models.RepeatFrequency) time.Time {
	switch freq {
	case models.RepeatDaily:
		return date.AddDate(0, 0, 1)
	case models.RepeatWeekly:
		return date.AddDate(0, 0, 7)
	case models.RepeatMonthly:
		year, month, day := date.Date()
		if last := daysIn(year, month+1); day > last {
			day = last
		}
		return time.Date(year, month+1, day, 0, 0, 0, 0, date.Location())
	default:
		return date
	}
}

// daysIn returns the number of days in the given month; month may be
// out of range (time.Date normalizes).
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
