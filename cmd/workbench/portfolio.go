package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/models"
)

var (
	portfolioMinTick int

	tradeQty   float64
	tradePrice float64
	tradeDate  string
	tradeNote  string
)

var portfolioCmd = &cobra.Command{
	Use:     "portfolio",
	Aliases: []string{"pf"},
	Short:   "Manage portfolios and strategy assignments",
}

var portfolioListCmd = &cobra.Command{
	Use:   "list",
	Short: "List portfolios",
	RunE: func(cmd *cobra.Command, args []string) error {
		portfolios, err := wbClient.Portfolios.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tMIN TICK")
		for _, p := range portfolios {
			minTick := "-"
			if p.MinTick != nil {
				minTick = strconv.Itoa(*p.MinTick)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, minTick)
		}
		return w.Flush()
	},
}

var portfolioCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.CreatePortfolioRequest{Name: args[0]}
		if cmd.Flags().Changed("min-tick") {
			req.MinTick = &portfolioMinTick
		}
		created, err := wbClient.Portfolios.Create(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Printf("Created portfolio %s (id %s)\n", created.Name, created.ID)
		return nil
	},
}

var portfolioHoldingsCmd = &cobra.Command{
	Use:   "holdings <portfolio-id>",
	Short: "List the holdings of a portfolio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		holdings, err := wbClient.Portfolios.Holdings(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tWEIGHT\tQTY\tPRICE")
		for _, h := range holdings {
			qty, price := "-", "-"
			if h.Qty != nil {
				qty = strconv.FormatFloat(*h.Qty, 'f', -1, 64)
			}
			if h.Price != nil {
				price = strconv.FormatFloat(*h.Price, 'f', 2, 64)
			}
			fmt.Fprintf(w, "%s\t%.2f%%\t%s\t%s\n", h.Symbol, h.Weight*100, qty, price)
		}
		return w.Flush()
	},
}

var portfolioAddTradeCmd = &cobra.Command{
	Use:   "add-trade <portfolio-id> <symbol>",
	Short: "Record a trade against a portfolio",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		trade := models.Trade{
			Date:   tradeDate,
			Symbol: args[1],
			Qty:    tradeQty,
			Price:  tradePrice,
			Note:   tradeNote,
		}
		if trade.Date == "" {
			trade.Date = time.Now().Format("2006-01-02")
		}
		if err := wbClient.Portfolios.AddTrade(cmd.Context(), args[0], trade); err != nil {
			return err
		}
		fmt.Printf("Added %s to portfolio %s\n", args[1], args[0])
		return nil
	},
}

var portfolioStrategiesCmd = &cobra.Command{
	Use:   "strategies <symbol>",
	Short: "Show the strategy assignments for a security",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		assignment, err := wbClient.Portfolios.Strategies(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(assignment.Strategies) == 0 {
			fmt.Printf("%s: no strategies assigned\n", args[0])
			return nil
		}
		fmt.Printf("%s: %s\n", args[0], strings.Join(assignment.Strategies, ", "))
		return nil
	},
}

var portfolioSetStrategiesCmd = &cobra.Command{
	Use:   "set-strategies <symbol> [strategy,...]",
	Short: "Replace the strategy assignments for a security",
	Long: `Replaces the full assignment set, e.g. "growth,income". Pass no
strategies to clear all assignments.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategies := []string{}
		if len(args) == 2 {
			for _, s := range strings.Split(args[1], ",") {
				if s = strings.TrimSpace(s); s != "" {
					strategies = append(strategies, s)
				}
			}
		}
		updated, err := wbClient.Portfolios.UpdateStrategies(cmd.Context(), args[0], strategies)
		if err != nil {
			return err
		}
		if len(updated.Strategies) == 0 {
			fmt.Printf("Cleared strategy assignments for %s\n", args[0])
			return nil
		}
		fmt.Printf("Assigned %s to: %s\n", args[0], strings.Join(updated.Strategies, ", "))
		return nil
	},
}

func init() {
	portfolioCreateCmd.Flags().IntVar(&portfolioMinTick, "min-tick", 0, "Minimum tick score for inclusion")

	portfolioAddTradeCmd.Flags().Float64Var(&tradeQty, "qty", 0, "Quantity")
	portfolioAddTradeCmd.Flags().Float64Var(&tradePrice, "price", 0, "Execution price")
	portfolioAddTradeCmd.Flags().StringVar(&tradeDate, "date", "", "Trade date (YYYY-MM-DD), defaults to today")
	portfolioAddTradeCmd.Flags().StringVar(&tradeNote, "note", "", "Free-form trade note")
	portfolioAddTradeCmd.MarkFlagRequired("qty")
	portfolioAddTradeCmd.MarkFlagRequired("price")

	portfolioCmd.AddCommand(
		portfolioListCmd,
		portfolioCreateCmd,
		portfolioHoldingsCmd,
		portfolioAddTradeCmd,
		portfolioStrategiesCmd,
		portfolioSetStrategiesCmd,
	)
}
