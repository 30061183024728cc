package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	notesLimit  int
	notesOffset int
	notesBody   string
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Manage markdown research notes",
}

var notesListCmd = &cobra.Command{
	Use:   "list <symbol>",
	Short: "List notes for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := wbClient.Notes.List(cmd.Context(), args[0], notesLimit, notesOffset)
		if err != nil {
			return err
		}
		for _, n := range page.Items {
			fmt.Printf("[%s] %s\n%s\n\n", n.ID, n.UpdatedAt, n.BodyMD)
		}
		fmt.Printf("%d of %d notes\n", len(page.Items), page.Total)
		return nil
	},
}

var notesLatestCmd = &cobra.Command{
	Use:   "latest <symbol>",
	Short: "Show the most recent note for a symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		note, err := wbClient.Notes.Latest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if note == nil {
			fmt.Printf("no notes for %s\n", args[0])
			return nil
		}
		fmt.Printf("[%s] %s\n%s\n", note.ID, note.UpdatedAt, note.BodyMD)
		return nil
	},
}

var notesAddCmd = &cobra.Command{
	Use:   "add <symbol>",
	Short: "Create a note; body from --body or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := noteBody()
		if err != nil {
			return err
		}
		note, err := wbClient.Notes.Create(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}
		fmt.Printf("Created note %s for %s\n", note.ID, args[0])
		return nil
	},
}

var notesEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Replace a note's body; body from --body or stdin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := noteBody()
		if err != nil {
			return err
		}
		note, err := wbClient.Notes.Update(cmd.Context(), args[0], body)
		if err != nil {
			return err
		}
		fmt.Printf("Updated note %s\n", note.ID)
		return nil
	},
}

var notesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := wbClient.Notes.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Deleted note %s\n", args[0])
		return nil
	},
}

func noteBody() (string, error) {
	if notesBody != "" {
		return notesBody, nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read note body from stdin: %w", err)
	}
	body := strings.TrimSpace(string(data))
	if body == "" {
		return "", fmt.Errorf("note body is empty; pass --body or pipe content on stdin")
	}
	return body, nil
}

func init() {
	notesListCmd.Flags().IntVar(&notesLimit, "limit", 50, "Maximum notes per page")
	notesListCmd.Flags().IntVar(&notesOffset, "offset", 0, "Page offset")
	notesAddCmd.Flags().StringVar(&notesBody, "body", "", "Note body in markdown")
	notesEditCmd.Flags().StringVar(&notesBody, "body", "", "Note body in markdown")
	notesCmd.AddCommand(notesListCmd, notesLatestCmd, notesAddCmd, notesEditCmd, notesRmCmd)
}
