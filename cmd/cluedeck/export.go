package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/session"
	"github.com/cluedeck/cluedeck/internal/storage"
)

func newExportCmd() *cobra.Command {
	var (
		outPath string
		marked  bool
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a deck, or every marked clue, as CSV",
		Long: `Export writes one deck as CSV in its current presentation order,
including the chosen category, the review flag, and the original record
index. With --marked it instead writes every review-flagged clue across all
decks, in library order.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if marked == (len(args) == 1) {
				return fmt.Errorf("provide either a deck id or --marked")
			}

			store, err := storage.OpenSQLite("")
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			lib := library.New(store)
			ctx := context.Background()

			out := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer func() {
					_ = f.Close()
				}()
				out = f
			}

			if marked {
				return exportMarked(ctx, lib, out)
			}
			return exportDeck(ctx, lib, args[0], out)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write CSV to a file instead of stdout")
	cmd.Flags().BoolVar(&marked, "marked", false, "Export review-flagged clues from every deck")

	return cmd
}

func exportDeck(ctx context.Context, lib *library.Library, contentID string, out io.Writer) error {
	sess, err := session.Open(ctx, lib, contentID)
	if err != nil {
		if errors.Is(err, library.ErrDeckNotFound) {
			return fmt.Errorf("deck not found: %s", contentID)
		}
		return err
	}

	return deck.WriteDeckCSV(out, sess.Records(), sess.Annotations(), sess.Order())
}

func exportMarked(ctx context.Context, lib *library.Library, out io.Writer) error {
	rows, err := lib.MarkedRows(ctx)
	if err != nil {
		return err
	}
	return deck.WriteMarkedCSV(out, rows)
}
