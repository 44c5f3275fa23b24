package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/storage"
)

func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List decks in the library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := storage.OpenSQLite("")
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			lib := library.New(store)
			summaries, err := lib.ListLibrary(context.Background())
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return outputListJSON(cmd, summaries)
			case "table":
				outputListTable(cmd, summaries)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type listOutputEntry struct {
	ContentID      string `json:"contentId"`
	Title          string `json:"title"`
	UploadedAt     string `json:"uploadedAt"`
	Total          int    `json:"total"`
	Marked         int    `json:"marked"`
	NetScore       int    `json:"netScore"`
	LastReviewedAt string `json:"lastReviewedAt,omitempty"`
}

func outputListJSON(cmd *cobra.Command, summaries []deck.Summary) error {
	output := make([]listOutputEntry, 0, len(summaries))
	for _, summary := range summaries {
		item := listOutputEntry{
			ContentID:  summary.ContentID,
			Title:      summary.Title,
			UploadedAt: summary.UploadedAt.Format(time.RFC3339),
			Total:      summary.Stats.Total,
			Marked:     summary.Stats.Marked,
			NetScore:   summary.Stats.NetScore,
		}
		if summary.Stats.LastReviewedAt != nil {
			item.LastReviewedAt = summary.Stats.LastReviewedAt.Format(time.RFC3339)
		}
		output = append(output, item)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func getTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	// Default width if terminal size cannot be determined
	return 80
}

// titleWidth reserves the leftover terminal width for the title column. The
// fixed columns (id, clues, marked, score, dates) take roughly 60 cells.
func titleWidth(termWidth int) int {
	width := termWidth - 60
	if width < 12 {
		width = 12
	}
	if width > 48 {
		width = 48
	}
	return width
}

func outputListTable(cmd *cobra.Command, summaries []deck.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)

	maxTitle := titleWidth(getTerminalWidth())

	t.AppendHeader(table.Row{"Title", "ID", "Clues", "Marked", "Score", "Uploaded", "Reviewed"})

	for _, summary := range summaries {
		reviewed := ""
		if summary.Stats.LastReviewedAt != nil {
			reviewed = summary.Stats.LastReviewedAt.Format("2006-01-02 15:04")
		}

		t.AppendRow(table.Row{
			runewidth.Truncate(summary.Title, maxTitle, "..."),
			summary.ContentID,
			summary.Stats.Total,
			summary.Stats.Marked,
			summary.Stats.NetScore,
			summary.UploadedAt.Format("2006-01-02 15:04"),
			reviewed,
		})
	}

	t.Render()
}
