package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/universe"
)

var (
	universeSearch       string
	universeSector       string
	universeLimit        int
	universeShuffle      bool
	universeReviewBefore string
	universeFilter       string
	universeSort         string
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Search and browse the security universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			securities []models.Security
			err        error
		)
		if universeSearch == "" && universeSector == "" && universeReviewBefore == "" {
			// With no server-side filters the default view is the
			// top-ticked investable universe.
			securities, err = wbClient.Securities.InvestableTicks(ctx)
		} else {
			securities, err = wbClient.Securities.Search(ctx, models.SearchParams{
				Search:       universeSearch,
				Sector:       universeSector,
				Limit:        universeLimit,
				Shuffle:      universeShuffle,
				ReviewBefore: universeReviewBefore,
			})
		}
		if err != nil {
			return err
		}

		securities = universe.Filter(securities, universeFilter, "")
		securities = universe.SortBy(securities, universe.SortKey(universeSort))

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SYMBOL\tNAME\tSECTOR\tTICK\tEXCLUDED")
		for _, s := range securities {
			tick := "-"
			if s.TickScore != nil {
				tick = fmt.Sprintf("%d", *s.TickScore)
			}
			excluded := ""
			if s.IsExcluded {
				excluded = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", s.Symbol, s.Name, s.Sector, tick, excluded)
		}
		return w.Flush()
	},
}

func init() {
	universeCmd.Flags().StringVar(&universeSearch, "search", "", "Server-side search query")
	universeCmd.Flags().StringVar(&universeSector, "sector", "", "Sector filter")
	universeCmd.Flags().IntVar(&universeLimit, "limit", 50, "Maximum results")
	universeCmd.Flags().BoolVar(&universeShuffle, "shuffle", false, "Shuffle results server-side")
	universeCmd.Flags().StringVar(&universeReviewBefore, "review-before", "", "Only securities not reviewed since this date")
	universeCmd.Flags().StringVar(&universeFilter, "filter", "", "Client-side substring filter on symbol/name")
	universeCmd.Flags().StringVar(&universeSort, "sort", "symbol", "Sort key: symbol, name or score")
}
