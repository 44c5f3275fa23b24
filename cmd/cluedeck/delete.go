package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/storage"
)

func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a deck and its library entry",
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

			// Confirmation prompt
			if !force {
				message := fmt.Sprintf("Delete deck '%s' and its annotations? (y/N) ", summary.Title)

				reader := bufio.NewReader(os.Stdin)
				fmt.Fprint(cmd.ErrOrStderr(), message)
				answer, err := reader.ReadString('\n')
				if err != nil {
					return err
				}

				answer = strings.TrimSpace(strings.ToLower(answer))
				if answer != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			if err := lib.DeleteDeck(ctx, contentID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck '%s'\n", summary.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
