package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/storage"
)

func newImportCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a CSV clue set as a deck",
		Long: `Import reads a delimited clue file (header row with topic, money,
question, and answer columns in any order) and stores it as a deck keyed by
its content hash. Importing the same content twice updates the existing deck
in place and keeps its title, upload time, and annotations.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			raw, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if strings.TrimSpace(string(raw)) == "" {
				// Empty selection is a no-op, not an error.
				return nil
			}

			deckTitle := title
			if deckTitle == "" {
				deckTitle = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			store, err := storage.OpenSQLite("")
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			lib := library.New(store)
			summary, err := lib.Import(context.Background(), string(raw), deckTitle, time.Now())
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported '%s' (%d clues) as %s\n", summary.Title, summary.Stats.Total, summary.ContentID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Deck title (defaults to the file name)")

	return cmd
}
