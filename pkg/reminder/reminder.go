// Package reminder runs a scheduled sweep over persisted workflow states
// and publishes a session.stale event for every user who has been idle too
// long at a non-terminal step. The bot transport turns those events into
// nudge messages; this package never mutates state.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/procura-ai/procura/pkg/eventbus"
	"github.com/procura-ai/procura/pkg/events"
	"github.com/procura-ai/procura/pkg/models"
	"github.com/procura-ai/procura/pkg/persistence"
)

// terminalSteps need no nudge: there is nothing left for the user to do.
var terminalSteps = map[models.WorkflowStep]bool{
	models.StepProjectToBeCreated: true,
	models.StepPublished:          true,
}

type Reminder struct {
	logger        *slog.Logger
	persistence   persistence.Persistence
	publisher     eventbus.EventPublisher
	idleThreshold time.Duration

	cron *cron.Cron
}

func NewReminder(
	logger *slog.Logger,
	persistence persistence.Persistence,
	publisher eventbus.EventPublisher,
	idleThreshold time.Duration,
) *Reminder {
	return &Reminder{
		logger:        logger,
		persistence:   persistence,
		publisher:     publisher,
		idleThreshold: idleThreshold,
	}
}

// Start schedules the sweep with the given cron expression and begins
// running it.
func (r *Reminder) Start(ctx context.Context, schedule string) error {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", schedule, err)
	}

	r.cron = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
		cron.Recover(cron.DefaultLogger),
	))

	_, err := r.cron.AddFunc(schedule, func() {
		if err := r.Sweep(ctx); err != nil {
			r.logger.Error("Reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add reminder sweep job: %w", err)
	}

	r.cron.Start()
	r.logger.Info("Reminder started", "schedule", schedule, "idle_threshold", r.idleThreshold)

	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (r *Reminder) Stop() {
	if r.cron == nil {
		return
	}

	<-r.cron.Stop().Done()
}

// Sweep walks every persisted state once and publishes a stale event per
// idle user.
func (r *Reminder) Sweep(ctx context.Context) error {
	repository := r.persistence.StateRepository()

	userIDs, err := repository.ListUserIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	cutoff := time.Now().UTC().Add(-r.idleThreshold)
	stale := 0

	for _, userID := range userIDs {
		state, err := repository.GetByUser(ctx, userID)
		if err != nil {
			r.logger.Error("Failed to load state during sweep", "user_id", userID, "error", err)

			continue
		}

		if state == nil || terminalSteps[state.CurrentStep] {
			continue
		}

		if state.LastActivityTime.After(cutoff) {
			continue
		}

		event := events.SessionStale{
			BaseEvent: events.NewBaseEvent(events.SessionStaleEvent, state.UserID, state.CurrentStep),
			IdleSince: state.LastActivityTime,
		}

		if err := r.publisher.Publish(ctx, state.UserID, event); err != nil {
			r.logger.Error("Failed to publish stale-session event", "user_id", userID, "error", err)

			continue
		}

		stale++
	}

	r.logger.Info("Reminder sweep finished", "users", len(userIDs), "stale", stale)

	return nil
}
