package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	chartRange    string
	chartInterval string

	excludeReason string
)

var securityCmd = &cobra.Command{
	Use:   "security",
	Short: "Inspect a single security",
}

var securityShowCmd = &cobra.Command{
	Use:   "show <symbol>",
	Short: "Show security detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, err := wbClient.Securities.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(detail)
	},
}

var securityChartCmd = &cobra.Command{
	Use:   "chart <symbol>",
	Short: "Fetch chart data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chart, err := wbClient.Securities.Chart(cmd.Context(), args[0], chartRange, chartInterval)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d candles (%s/%s)\n", args[0], len(chart.OHLC.T), chartRange, chartInterval)
		return printJSON(chart)
	},
}

var securityFundamentalsCmd = &cobra.Command{
	Use:   "fundamentals <symbol>",
	Short: "Fetch fundamentals series",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := wbClient.Securities.Fundamentals(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(data)
	},
}

var securityHistoryCmd = &cobra.Command{
	Use:   "history <symbol>",
	Short: "Fetch tick score history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := wbClient.Securities.TickHistory(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(history)
	},
}

var securityExcludeCmd = &cobra.Command{
	Use:   "exclude <symbol>",
	Short: "Exclude a security from the investable universe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wbClient.Securities.Exclude(cmd.Context(), args[0], excludeReason); err != nil {
			return err
		}
		audit.LogSecurityExcluded(args[0], excludeReason)
		fmt.Printf("Excluded %s from universe\n", args[0])
		return nil
	},
}

var securityIncludeCmd = &cobra.Command{
	Use:   "include <symbol>",
	Short: "Restore an excluded security to the investable universe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wbClient.Securities.Include(cmd.Context(), args[0]); err != nil {
			return err
		}
		audit.LogSecurityIncluded(args[0])
		fmt.Printf("Included %s back in universe\n", args[0])
		return nil
	},
}

func init() {
	securityChartCmd.Flags().StringVar(&chartRange, "range", "5y", "Chart range")
	securityChartCmd.Flags().StringVar(&chartInterval, "interval", "1w", "Candle interval")
	securityExcludeCmd.Flags().StringVar(&excludeReason, "reason", "", "Reason for the exclusion")
	securityExcludeCmd.MarkFlagRequired("reason")
	securityCmd.AddCommand(
		securityShowCmd,
		securityChartCmd,
		securityFundamentalsCmd,
		securityHistoryCmd,
		securityExcludeCmd,
		securityIncludeCmd,
	)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
