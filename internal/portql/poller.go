package portql

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/ethicic/workbench/internal/models"
)

// DefaultPollInterval matches the dashboard's job refresh cadence.
const DefaultPollInterval = 10 * time.Second

// JobUpdate is one observed job state, or the error that prevented observing
// it. Transient poll errors do not stop the watch.
type JobUpdate struct {
	Job models.BacktestJob
	Err error
}

// Poller watches backtest jobs by polling their status on a fixed schedule
// until they reach a terminal state.
type Poller struct {
	client   *Client
	interval time.Duration
	logger   *logrus.Logger
}

// NewPoller creates a poller. A non-positive interval falls back to the
// default 10s cadence.
func NewPoller(client *Client, interval time.Duration, logger *logrus.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger,
	}
}

// Watch polls runID until the job reaches a terminal status or ctx is
// cancelled. Every observed state is delivered on the returned channel, which
// is closed when the watch ends.
func (p *Poller) Watch(ctx context.Context, runID string) <-chan JobUpdate {
	updates := make(chan JobUpdate, 1)
	done := make(chan struct{})
	var closeOnce sync.Once
	finish := func() { closeOnce.Do(func() { close(done) }) }

	poll := func() {
		pollCtx, cancel := context.WithTimeout(ctx, p.interval)
		defer cancel()

		job, err := p.client.Status(pollCtx, runID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.logger.WithField("run_id", runID).WithError(err).Warn("Backtest status poll failed")
			select {
			case updates <- JobUpdate{Err: err}:
			case <-ctx.Done():
			}
			return
		}

		select {
		case updates <- JobUpdate{Job: job}:
		case <-ctx.Done():
			return
		}

		if job.Status.Terminal() {
			p.logger.WithFields(logrus.Fields{
				"run_id": runID,
				"status": job.Status,
			}).Info("Backtest reached terminal state")
			finish()
		}
	}

	scheduler := cron.New(cron.WithLocation(time.UTC))
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", p.interval), poll); err != nil {
		// @every with a positive duration always parses; guard anyway.
		updates <- JobUpdate{Err: fmt.Errorf("failed to schedule poll: %w", err)}
		close(updates)
		return updates
	}

	go func() {
		defer close(updates)

		// First observation immediately; cron fires only after the first
		// interval elapses.
		poll()

		scheduler.Start()
		defer scheduler.Stop()

		select {
		case <-ctx.Done():
		case <-done:
		}
	}()

	return updates
}
