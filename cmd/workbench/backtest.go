package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/health"
	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/portql"
)

var (
	btStrategy     string
	btStartDate    string
	btEndDate      string
	btInitialCash  float64
	btScenario     string
	btRebalance    string
	btRunID        string
	btWatch        bool
	btPollInterval time.Duration
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Enqueue and monitor PortQL backtest jobs",
}

var backtestStatusCmd = &cobra.Command{
	Use:   "status <run-id>",
	Short: "Show the current state of a backtest job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := pqClient.Status(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printJobLine(job)
		if job.Result != nil {
			return printJSON(job.Result)
		}
		return nil
	},
}

var backtestRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Enqueue a backtest run",
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.BacktestRequest{
			Strategy:           btStrategy,
			StartDate:          btStartDate,
			EndDate:            btEndDate,
			ExclusionScenario:  btScenario,
			RebalanceFrequency: btRebalance,
			RunID:              btRunID,
		}
		if btInitialCash > 0 {
			req.InitialCash = &btInitialCash
		}

		job, err := pqClient.Enqueue(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Enqueued backtest %s\n", job.RunID)
		printJobLine(job)

		if btWatch {
			return watchJob(cmd, job.RunID)
		}
		return nil
	},
}

var backtestCancelCmd = &cobra.Command{
	Use:   "cancel <run-id>",
	Short: "Cancel a queued or running backtest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := pqClient.Cancel(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Cancelled backtest %s\n", args[0])
		return nil
	},
}

var backtestWatchCmd = &cobra.Command{
	Use:   "watch <run-id>",
	Short: "Poll a backtest until it reaches a terminal state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchJob(cmd, args[0])
	},
}

// watchJob polls until the job finishes, fails or the user interrupts. During
// long watches the health server exposes /metrics so the session can be
// scraped like any other service.
func watchJob(cmd *cobra.Command, runID string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Metrics.Enabled {
		srv := health.NewServer(health.Config{
			ServiceName: "workbench",
			Version:     Version,
			Commit:      GitCommit,
			Port:        cfg.Metrics.Port,
			Logger:      appLog,
		})
		if err := srv.Start(ctx); err != nil {
			return err
		}
		srv.SetReady(true)
	}

	interval := btPollInterval
	if interval <= 0 {
		interval = cfg.PortQL.PollInterval()
	}
	poller := portql.NewPoller(pqClient, interval, appLog)

	var last models.BacktestJob
	for update := range poller.Watch(ctx, runID) {
		if update.Err != nil {
			fmt.Fprintf(os.Stderr, "poll error: %v\n", update.Err)
			continue
		}
		last = update.Job
		printJobLine(last)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("watch interrupted: %w", err)
	}
	if last.Status == models.JobFailed {
		msg := "unknown error"
		if last.Error != nil {
			msg = *last.Error
		}
		return fmt.Errorf("backtest %s failed: %s", runID, msg)
	}
	if last.Result != nil {
		return printJSON(last.Result)
	}
	return nil
}

func printJobLine(job models.BacktestJob) {
	line := fmt.Sprintf("%s  %s", job.RunID, job.Status)
	if job.QueuePosition != nil {
		line += fmt.Sprintf("  queue=%d", *job.QueuePosition)
	}
	if job.Progress != nil {
		line += fmt.Sprintf("  progress=%s", *job.Progress)
	}
	fmt.Println(line)
}

func init() {
	backtestRunCmd.Flags().StringVar(&btStrategy, "strategy", "", "Strategy name")
	backtestRunCmd.Flags().StringVar(&btStartDate, "start", "", "Start date (YYYY-MM-DD)")
	backtestRunCmd.Flags().StringVar(&btEndDate, "end", "", "End date (YYYY-MM-DD)")
	backtestRunCmd.Flags().Float64Var(&btInitialCash, "initial-cash", 0, "Initial cash")
	backtestRunCmd.Flags().StringVar(&btScenario, "scenario", "", "Exclusion scenario")
	backtestRunCmd.Flags().StringVar(&btRebalance, "rebalance", "", "Rebalance frequency")
	backtestRunCmd.Flags().StringVar(&btRunID, "run-id", "", "Run id; generated when empty")
	backtestRunCmd.Flags().BoolVar(&btWatch, "watch", false, "Watch the job after enqueueing")
	backtestRunCmd.MarkFlagRequired("strategy")
	backtestRunCmd.MarkFlagRequired("start")
	backtestRunCmd.MarkFlagRequired("end")

	backtestWatchCmd.Flags().DurationVar(&btPollInterval, "interval", 0, "Poll interval; defaults to config")
	backtestRunCmd.Flags().DurationVar(&btPollInterval, "interval", 0, "Poll interval; defaults to config")

	backtestCmd.AddCommand(backtestStatusCmd, backtestRunCmd, backtestCancelCmd, backtestWatchCmd)
}
