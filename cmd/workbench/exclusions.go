package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ethicic/workbench/internal/models"
	"github.com/ethicic/workbench/internal/workbench"
)

var (
	exclSymbol     string
	exclCategory   string
	exclActiveOnly bool
	exclInactive   bool
	exclLimit      int
	exclOffset     int

	exclReason     string
	exclCategoryID int
	exclSource     string

	exclReviewNotes string

	exclExportFormat string
	exclExportOut    string

	catDescription string
	catColor       string
	catPriority    int
)

var exclusionsCmd = &cobra.Command{
	Use:     "exclusions",
	Aliases: []string{"excl"},
	Short:   "Manage the exclusions list",
}

var exclListCmd = &cobra.Command{
	Use:   "list",
	Short: "List exclusions",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := wbClient.Exclusions.List(cmd.Context(), exclusionFilter())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSYMBOL\tCATEGORY\tACTIVE\tSOURCE\tREASON")
		for _, e := range list {
			active := ""
			if e.IsActive != 0 {
				active = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Symbol, e.CategoryName, active, e.Source, e.Reason)
		}
		return w.Flush()
	},
}

var exclAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Add an exclusion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := models.CreateExclusionRequest{
			Symbol: args[0],
			Reason: exclReason,
			Source: exclSource,
		}
		if exclCategoryID > 0 {
			req.CategoryID = &exclCategoryID
		}
		created, err := wbClient.Exclusions.Create(cmd.Context(), req)
		if err != nil {
			return err
		}
		audit.LogExclusionCreated(created.ID, created.Symbol, req.Reason, req.Source, req.CategoryID)
		fmt.Printf("Excluded %s (id %d)\n", created.Symbol, created.ID)
		return nil
	},
}

var exclRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an exclusion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid exclusion id %q: %w", args[0], err)
		}
		if err := wbClient.Exclusions.Delete(cmd.Context(), id); err != nil {
			return err
		}
		audit.LogExclusionRemoved(id)
		fmt.Printf("Removed exclusion %d\n", id)
		return nil
	},
}

var exclReviewCmd = &cobra.Command{
	Use:   "review <id> <approve|reject>",
	Short: "Approve or reject an unreviewed exclusion",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid exclusion id %q: %w", args[0], err)
		}
		reviewed, err := wbClient.Exclusions.Review(cmd.Context(), id, models.ReviewDecision(args[1]), exclReviewNotes)
		if err != nil {
			return err
		}
		audit.LogExclusionReviewed(reviewed.ID, args[1], exclReviewNotes)
		fmt.Printf("Exclusion %d %sd\n", reviewed.ID, args[1])
		return nil
	},
}

var exclHistoryCmd = &cobra.Command{
	Use:   "history <id>",
	Short: "Show the audit trail for an exclusion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid exclusion id %q: %w", args[0], err)
		}
		events, err := wbClient.Exclusions.History(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(events)
	},
}

var exclCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List exclusion categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		cats, err := wbClient.Exclusions.Categories(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRIORITY\tDESCRIPTION")
		for _, c := range cats {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", c.ID, c.Name, c.Priority, c.Description)
		}
		return w.Flush()
	},
}

var exclAddCategoryCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Create an exclusion category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := wbClient.Exclusions.CreateCategory(cmd.Context(), models.CreateCategoryRequest{
			Name:        args[0],
			Color:       catColor,
			Priority:    catPriority,
			Description: catDescription,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Created category %s (id %d)\n", created.Name, created.ID)
		return nil
	},
}

var exclExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the exclusions list as CSV or JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := wbClient.Exclusions.Export(cmd.Context(), models.ExportFormat(exclExportFormat), exclusionFilter())
		if err != nil {
			return err
		}
		if exclExportOut == "" || exclExportOut == "-" {
			_, err = os.Stdout.Write(blob)
			return err
		}
		if err := os.WriteFile(exclExportOut, blob, 0o644); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d bytes to %s\n", len(blob), exclExportOut)
		return nil
	},
}

var exclBulkImportCmd = &cobra.Command{
	Use:   "bulk-import <file>",
	Short: "Bulk import exclusions from a symbol,reason[,category_id] file",
	Long: `Each non-blank line is one candidate exclusion. Malformed lines are
reported with their line number; well-formed lines are submitted in a single
batch and partial success is reported rather than failing the whole import.
Pass "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}

		rows, parseErrs := workbench.ParseBulkLines(string(data))
		for _, pe := range parseErrs {
			fmt.Fprintf(os.Stderr, "row %d: %s\n", pe.Row, pe.Error)
		}
		if len(rows) == 0 {
			return workbench.ErrNoBulkRows
		}

		result, err := wbClient.Exclusions.BulkCreate(cmd.Context(), rows)
		if err != nil {
			return err
		}
		for _, re := range result.Errors {
			fmt.Fprintf(os.Stderr, "row %d: %s\n", re.Row, re.Error)
		}
		audit.LogBulkImport(len(rows), result.Created, len(parseErrs)+len(result.Errors))
		fmt.Printf("Created %d of %d exclusions (%d rejected locally, %d rejected by server)\n",
			result.Created, len(rows), len(parseErrs), len(result.Errors))
		return nil
	},
}

func exclusionFilter() models.ExclusionFilter {
	filter := models.ExclusionFilter{
		Symbol:   exclSymbol,
		Category: exclCategory,
		Limit:    exclLimit,
		Offset:   exclOffset,
	}
	// --active and --inactive are mutually exclusive flags over one tri-state.
	if exclActiveOnly {
		t := true
		filter.IsActive = &t
	} else if exclInactive {
		f := false
		filter.IsActive = &f
	}
	return filter
}

func init() {
	exclListCmd.Flags().StringVar(&exclSymbol, "symbol", "", "Filter by symbol")
	exclListCmd.Flags().StringVar(&exclCategory, "category", "", "Filter by category")
	exclListCmd.Flags().BoolVar(&exclActiveOnly, "active", false, "Only active exclusions")
	exclListCmd.Flags().BoolVar(&exclInactive, "inactive", false, "Only inactive exclusions")
	exclListCmd.Flags().IntVar(&exclLimit, "limit", 100, "Maximum results")
	exclListCmd.Flags().IntVar(&exclOffset, "offset", 0, "Result offset")
	exclListCmd.MarkFlagsMutuallyExclusive("active", "inactive")

	exclAddCmd.Flags().StringVar(&exclReason, "reason", "", "Reason for the exclusion")
	exclAddCmd.Flags().IntVar(&exclCategoryID, "category-id", 0, "Category id")
	exclAddCmd.Flags().StringVar(&exclSource, "source", "manual", "Exclusion source tag")
	exclAddCmd.MarkFlagRequired("reason")

	exclReviewCmd.Flags().StringVar(&exclReviewNotes, "notes", "", "Reviewer notes")

	exclAddCategoryCmd.Flags().StringVar(&catColor, "color", "#888888", "Display color")
	exclAddCategoryCmd.Flags().IntVar(&catPriority, "priority", 0, "Category priority")
	exclAddCategoryCmd.Flags().StringVar(&catDescription, "description", "", "Category description")

	exclExportCmd.Flags().StringVar(&exclExportFormat, "format", "csv", "Export format: csv or json")
	exclExportCmd.Flags().StringVarP(&exclExportOut, "output", "o", "-", "Output file, - for stdout")
	exclExportCmd.Flags().StringVar(&exclSymbol, "symbol", "", "Filter by symbol")
	exclExportCmd.Flags().StringVar(&exclCategory, "category", "", "Filter by category")
	exclExportCmd.Flags().BoolVar(&exclActiveOnly, "active", false, "Only active exclusions")

	exclusionsCmd.AddCommand(
		exclListCmd,
		exclAddCmd,
		exclRmCmd,
		exclReviewCmd,
		exclHistoryCmd,
		exclCategoriesCmd,
		exclAddCategoryCmd,
		exclExportCmd,
		exclBulkImportCmd,
	)
}
