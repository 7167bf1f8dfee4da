// Package janitor periodically blanks out expired OTP fields so stale codes
// do not linger in user documents. Correctness does not depend on it: every
// OTP check also compares the stored expiry against the clock.
package janitor

import (
	"context"
	"log/slog"
	"time"

	"github.com/asanbekov/account-api/internal/metrics"
	"github.com/asanbekov/account-api/internal/repository"
	"github.com/robfig/cron/v3"
)

type Janitor struct {
	users  repository.UserRepository
	logger *slog.Logger
	cron   *cron.Cron
}

func New(users repository.UserRepository, logger *slog.Logger) *Janitor {
	return &Janitor{
		users:  users,
		logger: logger.With("component", "janitor"),
		cron:   cron.New(),
	}
}

// Start schedules the cleanup with a cron spec (e.g. "@hourly") and runs it
// until Stop is called.
func (j *Janitor) Start(schedule string) error {
	_, err := j.cron.AddFunc(schedule, j.sweep)
	if err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("janitor started", "schedule", schedule)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	<-j.cron.Stop().Done()
}

func (j *Janitor) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cleared, err := j.users.ClearExpiredOtps(ctx, time.Now().UnixMilli())
	if err != nil {
		j.logger.Error("clear expired otps", "error", err)
		return
	}
	if cleared > 0 {
		metrics.JanitorClearedTotal.Add(float64(cleared))
		j.logger.Info("cleared expired otps", "count", cleared)
	}
}
