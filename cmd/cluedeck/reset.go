package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/session"
	"github.com/cluedeck/cluedeck/internal/storage"
)

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset <id>",
		Short: "Clear a deck's annotations and position",
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

			sess, err := session.Open(ctx, lib, contentID)
			if err != nil {
				if errors.Is(err, library.ErrDeckNotFound) {
					return fmt.Errorf("deck not found: %s", contentID)
				}
				return err
			}

			if err := sess.Reset(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Reset deck %s\n", contentID)
			return nil
		},
	}

	return cmd
}
