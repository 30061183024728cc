package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/models"
)

var (
	guidanceText     string
	guidanceKeywords string
	guidanceExamples string
	guidanceLink     string
)

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Exclusions dashboard reports",
}

var dashStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Headline dataset counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := wbClient.Dashboard.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Companies:  %d\n", stats.Companies)
		fmt.Printf("Exclusions: %d\n", stats.Exclusions)
		fmt.Printf("Sources:    %d\n", stats.Sources)
		fmt.Printf("Categories: %d\n", stats.Categories)
		return nil
	},
}

var dashLogsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Recent ingestion log lines",
	RunE: func(cmd *cobra.Command, args []string) error {
		logs, err := wbClient.Dashboard.RecentLogs(cmd.Context())
		if err != nil {
			return err
		}
		for _, l := range logs {
			fmt.Printf("%s [%s] %s\n", l.Timestamp, l.Source, l.Message)
		}
		return nil
	},
}

var dashCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Per-category aggregates and overlaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := wbClient.Dashboard.Categories(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tCOMPANIES\tEXCLUSIONS\tSOURCES")
		for _, c := range report.Categories {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", c.Category, c.Companies, c.Exclusions, c.Sources)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		if len(report.Overlaps) > 0 {
			fmt.Println("\nOverlaps:")
			for _, o := range report.Overlaps {
				fmt.Printf("  %s in %d categories (%s)\n", o.Company, o.CategoryCount, o.Categories)
			}
		}
		return nil
	},
}

var dashSourcesCmd = &cobra.Command{
	Use:   "source-mappings",
	Short: "How upstream sources map onto categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		mappings, err := wbClient.Dashboard.SourceMappings(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(mappings)
	},
}

var dashQualityCmd = &cobra.Command{
	Use:   "data-quality",
	Short: "Duplicate and completeness checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := wbClient.Dashboard.DataQuality(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var dashSharadarCmd = &cobra.Command{
	Use:   "sharadar",
	Short: "Exclusions coverage against the Sharadar ticker universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := wbClient.Dashboard.SharadarCoverage(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var dashIngestionCmd = &cobra.Command{
	Use:   "ingestion-logs",
	Short: "Recent and failed ingestion runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := wbClient.Dashboard.IngestionLogs(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(report)
	},
}

var dashGuidanceCmd = &cobra.Command{
	Use:   "guidance <category>",
	Short: "Show analyst guidance for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := wbClient.Dashboard.CategoryGuidance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(g)
	},
}

var dashSetGuidanceCmd = &cobra.Command{
	Use:   "set-guidance <category>",
	Short: "Replace analyst guidance for a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := models.CategoryGuidance{
			Category:   args[0],
			AIGuidance: guidanceText,
			Examples:   guidanceExamples,
			PolicyLink: guidanceLink,
		}
		if guidanceKeywords != "" {
			for _, kw := range strings.Split(guidanceKeywords, ",") {
				if kw = strings.TrimSpace(kw); kw != "" {
					g.Keywords = append(g.Keywords, kw)
				}
			}
		}
		updated, err := wbClient.Dashboard.UpdateCategoryGuidance(cmd.Context(), args[0], g)
		if err != nil {
			return err
		}
		fmt.Printf("Updated guidance for %s\n", updated.Category)
		return nil
	},
}

func init() {
	dashSetGuidanceCmd.Flags().StringVar(&guidanceText, "text", "", "Guidance text")
	dashSetGuidanceCmd.Flags().StringVar(&guidanceKeywords, "keywords", "", "Comma-separated keywords")
	dashSetGuidanceCmd.Flags().StringVar(&guidanceExamples, "examples", "", "Worked examples")
	dashSetGuidanceCmd.Flags().StringVar(&guidanceLink, "policy-link", "", "Link to the policy document")

	dashboardCmd.AddCommand(
		dashStatsCmd,
		dashLogsCmd,
		dashCategoriesCmd,
		dashSourcesCmd,
		dashQualityCmd,
		dashSharadarCmd,
		dashIngestionCmd,
		dashGuidanceCmd,
		dashSetGuidanceCmd,
	)
}
