package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/storage"
)

func newInfoCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "info <id>",
		Short: "Show deck metadata and score statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contentID := args[0]

			store, err := storage.OpenSQLite("")
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			lib := library.New(store)
			ctx := context.Background()

			summary, err := lib.FindSummary(ctx, contentID)
			if err != nil {
				return err
			}
			if summary == nil {
				return fmt.Errorf("deck not found: %s", contentID)
			}

			// A listed summary whose bundle is gone is still a missing deck.
			bundle, err := lib.LoadDeck(ctx, contentID)
			if err != nil {
				return err
			}
			if bundle == nil {
				return fmt.Errorf("deck not found: %s", contentID)
			}

			switch format {
			case "json":
				return outputInfoJSON(cmd, summary, bundle)
			case "table":
				outputInfoTable(cmd, summary, bundle)
				return nil
			default:
				return fmt.Errorf("invalid format: %s (valid values: table, json)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")

	return cmd
}

type infoOutputEntry struct {
	ContentID      string `json:"contentId"`
	Title          string `json:"title"`
	UploadedAt     string `json:"uploadedAt"`
	ShowID         string `json:"showId,omitempty"`
	AirDate        string `json:"airDate,omitempty"`
	GameType       string `json:"gameType,omitempty"`
	Total          int    `json:"total"`
	Marked         int    `json:"marked"`
	Correct        int    `json:"correct"`
	NetScore       int    `json:"netScore"`
	LastReviewedAt string `json:"lastReviewedAt,omitempty"`
	Shuffle        bool   `json:"shuffle"`
	ReviewOnly     bool   `json:"reviewOnly"`
}

func outputInfoJSON(cmd *cobra.Command, summary *deck.Summary, bundle *deck.Bundle) error {
	output := infoOutputEntry{
		ContentID:  summary.ContentID,
		Title:      summary.Title,
		UploadedAt: summary.UploadedAt.Format(time.RFC3339),
		ShowID:     summary.SourceMeta.ShowID,
		AirDate:    summary.SourceMeta.AirDate,
		GameType:   summary.SourceMeta.GameType,
		Total:      summary.Stats.Total,
		Marked:     summary.Stats.Marked,
		Correct:    summary.Stats.Correct,
		NetScore:   summary.Stats.NetScore,
		Shuffle:    bundle.Settings.Shuffle,
		ReviewOnly: bundle.Settings.ReviewOnly,
	}
	if summary.Stats.LastReviewedAt != nil {
		output.LastReviewedAt = summary.Stats.LastReviewedAt.Format(time.RFC3339)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func outputInfoTable(cmd *cobra.Command, summary *deck.Summary, bundle *deck.Bundle) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Title:       %s\n", summary.Title)
	fmt.Fprintf(out, "ID:          %s\n", summary.ContentID)
	fmt.Fprintf(out, "Uploaded:    %s\n", summary.UploadedAt.Format("2006-01-02 15:04:05"))

	if summary.SourceMeta.ShowID != "" {
		fmt.Fprintf(out, "Show:        %s\n", summary.SourceMeta.ShowID)
	}
	if summary.SourceMeta.AirDate != "" {
		fmt.Fprintf(out, "Air Date:    %s\n", summary.SourceMeta.AirDate)
	}
	if summary.SourceMeta.GameType != "" {
		fmt.Fprintf(out, "Game Type:   %s\n", summary.SourceMeta.GameType)
	}

	fmt.Fprintf(out, "Clues:       %d\n", summary.Stats.Total)
	fmt.Fprintf(out, "Marked:      %d\n", summary.Stats.Marked)
	fmt.Fprintf(out, "Correct:     %d\n", summary.Stats.Correct)
	fmt.Fprintf(out, "Coryat:      %d\n", summary.Stats.NetScore)

	if summary.Stats.LastReviewedAt != nil {
		fmt.Fprintf(out, "Reviewed:    %s\n", summary.Stats.LastReviewedAt.Format("2006-01-02 15:04:05"))
	}

	fmt.Fprintf(out, "Shuffle:     %t\n", bundle.Settings.Shuffle)
	fmt.Fprintf(out, "Review-only: %t\n", bundle.Settings.ReviewOnly)
}
