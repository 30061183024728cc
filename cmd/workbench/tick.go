package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/workbench"
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Read and update manual tick scores",
}

var tickGetCmd = &cobra.Command{
	Use:   "get <symbol>",
	Short: "Show the current tick score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := wbClient.Tick.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if score.Score == nil {
			fmt.Printf("%s: no score\n", args[0])
			return nil
		}
		updated := ""
		if score.UpdatedAt != nil {
			updated = " (updated " + *score.UpdatedAt + ")"
		}
		fmt.Printf("%s: %d%s\n", args[0], *score.Score, updated)
		return nil
	},
}

var tickSetCmd = &cobra.Command{
	Use:   "set <symbol> <score>",
	Short: "Set the tick score, in [-100, 100]",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		score, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[1], err)
		}
		result, err := wbClient.Tick.Update(cmd.Context(), args[0], score)
		if err != nil {
			return err
		}
		audit.LogTickScoreChange(args[0], score)
		if result.Score != nil {
			fmt.Printf("Saved tick score %d for %s\n", *result.Score, args[0])
		}
		return nil
	},
}

var tickEditCmd = &cobra.Command{
	Use:   "edit <symbol>",
	Short: "Interactively edit the tick score with debounced autosave",
	Long: `Reads scores from stdin, one per line. Rapid edits collapse into a
single save after the configured quiet period; only the latest edit is ever
persisted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		symbol := args[0]

		saver := workbench.NewAutosaver(wbClient.Tick, bus, cfg.Autosave.Delay(), appLog)
		defer saver.Stop()

		ch, cancel := bus.Subscribe()
		defer cancel()
		go printNotifications(ch)

		fmt.Printf("Editing %s. Enter scores in [-100, 100], empty line to finish.\n", symbol)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				break
			}
			score, err := strconv.Atoi(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "not a number: %s\n", line)
				continue
			}
			saver.Edit(symbol, score)
		}

		// Push the trailing edit through before shutdown.
		saver.Flush()
		return scanner.Err()
	},
}

func init() {
	tickCmd.AddCommand(tickGetCmd, tickSetCmd, tickEditCmd)
}
