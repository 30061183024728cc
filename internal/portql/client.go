// Package portql provides the client for the external PortQL quant API:
// backtest job enqueueing, status polling and cancellation. Jobs are owned by
// the server; the client never mutates job state locally.
package portql

import (
	"context"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ethicic/workbench/internal/httpx"
	"github.com/ethicic/workbench/internal/models"
)

// Client calls the PortQL job API.
type Client struct {
	http     *httpx.Client
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewClient creates a PortQL client over the given HTTP wrapper.
func NewClient(http *httpx.Client, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &Client{
		http:     http,
		validate: validator.New(),
		logger:   logger,
	}
}

// Status fetches the current state of a backtest job.
func (c *Client) Status(ctx context.Context, runID string) (models.BacktestJob, error) {
	var job models.BacktestJob
	err := c.http.Get(ctx, fmt.Sprintf("/status/%s", runID), httpx.NewParams(), &job)
	return job, err
}

// Enqueue submits a new backtest run. When the request carries no run ID one
// is assigned client-side, so the caller can poll immediately even if the
// enqueue response is lost.
func (c *Client) Enqueue(ctx context.Context, req models.BacktestRequest) (models.BacktestJob, error) {
	if err := c.validate.Struct(req); err != nil {
		return models.BacktestJob{}, fmt.Errorf("invalid backtest request: %w", err)
	}
	if req.RunID == "" {
		req.RunID = uuid.New().String()
	}

	var job models.BacktestJob
	if err := c.http.Post(ctx, "/enqueue", req, &job); err != nil {
		return models.BacktestJob{}, err
	}

	c.logger.WithFields(logrus.Fields{
		"run_id":   job.RunID,
		"strategy": req.Strategy,
	}).Info("Backtest enqueued")
	return job, nil
}

// Cancel stops a queued or running job.
func (c *Client) Cancel(ctx context.Context, runID string) error {
	if err := c.http.Post(ctx, fmt.Sprintf("/cancel/%s", runID), nil, nil); err != nil {
		return err
	}
	c.logger.WithField("run_id", runID).Info("Backtest cancelled")
	return nil
}
