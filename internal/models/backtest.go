package models

// JobStatus is the lifecycle state of a PortQL backtest job.
type JobStatus string

const (
	JobQueued   JobStatus = "QUEUED"
	JobRunning  JobStatus = "RUNNING"
	JobComplete JobStatus = "COMPLETE"
	JobFailed   JobStatus = "FAILED"
	JobFinished JobStatus = "FINISHED"
)

// Terminal reports whether the job will receive no further updates.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobComplete, JobFailed, JobFinished:
		return true
	}
	return false
}

// BacktestJob is the polled state of a backtest run. The server is the single
// source of truth; clients never mutate a job locally.
type BacktestJob struct {
	RunID         string             `json:"runId"`
	JobKey        string             `json:"jobKey"`
	Status        JobStatus          `json:"status"`
	QueuePosition *int               `json:"queuePosition"`
	Progress      *string            `json:"progress"`
	Result        *BacktestResult    `json:"result"`
	Error         *string            `json:"error"`
	Request       *BacktestJobParams `json:"request,omitempty"`
}

// BacktestJobParams echoes the request a job was enqueued with.
type BacktestJobParams struct {
	Strategy           string `json:"strategy"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	ExclusionScenario  string `json:"exclusion_scenario"`
	RebalanceFrequency string `json:"rebalance_frequency"`
}

// BacktestResult holds the metrics of a completed run.
type BacktestResult struct {
	Metrics  map[string]float64 `json:"metrics"`
	Trades   int                `json:"trades,omitempty"`
	Duration string             `json:"duration,omitempty"`
}

// BacktestRequest enqueues a new backtest run. RunID may be left empty and
// will be assigned client-side before submission.
type BacktestRequest struct {
	Strategy           string   `json:"strategy" validate:"required"`
	StartDate          string   `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate            string   `json:"end_date" validate:"required,datetime=2006-01-02"`
	InitialCash        *float64 `json:"initial_cash,omitempty"`
	ExclusionScenario  string   `json:"exclusion_scenario,omitempty"`
	RebalanceFrequency string   `json:"rebalance_frequency,omitempty"`
	RunID              string   `json:"run_id,omitempty"`
}
