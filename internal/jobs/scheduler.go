// Package jobs runs periodic maintenance over the ledgers.
package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/berkaygencdogan/camp-track-backend/internal/ledger"
)

// jobTimeout bounds a single maintenance run.
const jobTimeout = 5 * time.Minute

// Scheduler prunes old notifications and reconciles the userTeams index on a
// cron schedule.
type Scheduler struct {
	cron          *cron.Cron
	notifications *ledger.Notifications
	membership    *ledger.Membership
	retention     time.Duration
	now           func() time.Time
}

// NewScheduler creates a scheduler. Seen notifications older than retention
// are pruned on every run.
func NewScheduler(notifications *ledger.Notifications, membership *ledger.Membership, retention time.Duration) *Scheduler {
	logger := cronLogger{slog.Default().With("component", "cron")}
	return &Scheduler{
		cron: cron.New(cron.WithLogger(logger), cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		notifications: notifications,
		membership:    membership,
		retention:     retention,
		now:           time.Now,
	}
}

// Start registers the maintenance jobs on schedule and starts the scheduler.
// schedule is a standard cron spec or a descriptor such as "@every 1h".
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.runPrune); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	if _, err := s.cron.AddFunc(schedule, s.runReconcile); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", schedule, err)
	}
	s.cron.Start()
	slog.Info("Maintenance scheduler started", "schedule", schedule, "retention", s.retention)
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("Maintenance scheduler stopped")
}

// PruneNotifications deletes seen notifications older than the retention
// window.
func (s *Scheduler) PruneNotifications(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.retention).UnixMilli()
	return s.notifications.PruneSeen(ctx, cutoff)
}

// ReconcileTeams repairs the userTeams reverse index.
func (s *Scheduler) ReconcileTeams(ctx context.Context) (ledger.IndexRepair, error) {
	return s.membership.ReconcileUserTeams(ctx)
}

func (s *Scheduler) runPrune() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	pruned, err := s.PruneNotifications(ctx)
	if err != nil {
		slog.Error("Notification prune failed", "pruned", pruned, "error", err)
		return
	}
	slog.Info("Notification prune finished", "pruned", pruned)
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	repair, err := s.ReconcileTeams(ctx)
	if err != nil {
		slog.Error("userTeams reconciliation failed", "error", err)
		return
	}
	slog.Info("userTeams reconciliation finished", "added", repair.Added, "removed", repair.Removed)
}

// cronLogger routes cron's own logging to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
