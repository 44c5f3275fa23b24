package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/session"
	"github.com/cluedeck/cluedeck/internal/storage"
)

// ANSI escape codes
const (
	clearScreen = "\033[2J\033[H"
	reset       = "\033[0m"
	bold        = "\033[1m"
	dim         = "\033[2m"
	yellow      = "\033[33m"
	green       = "\033[32m"
	cyan        = "\033[36m"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <id>",
		Short: "Step through a deck as flip cards",
		Long: `Review runs an interactive flip-card pass over a deck. Every mark,
category, or setting change is saved immediately, so a session can be
resumed where it left off.

Keys:
  space/enter  flip the card
  n / p        next / previous card
  r            toggle marked-for-review
  1-9          set category
  s            toggle shuffle
  o            toggle review-only filter
  x            clear all annotations
  q            quit`,
		Args: cobra.ExactArgs(1),
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

			fd := int(os.Stdin.Fd())
			if !term.IsTerminal(fd) {
				return fmt.Errorf("review needs an interactive terminal")
			}

			oldState, err := term.MakeRaw(fd)
			if err != nil {
				return err
			}
			defer func() {
				_ = term.Restore(fd, oldState)
			}()

			if err := reviewLoop(ctx, cmd.OutOrStdout(), sess); err != nil {
				return err
			}

			_ = term.Restore(fd, oldState)
			printSessionSummary(cmd.OutOrStdout(), sess)
			return nil
		},
	}

	return cmd
}

func reviewLoop(ctx context.Context, out io.Writer, sess *session.Session) error {
	buf := make([]byte, 1)

	for {
		renderCard(out, sess)

		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return nil
		}

		key := buf[0]
		switch {
		case key == ' ' || key == '\r' || key == '\n':
			sess.Flip()
		case key == 'n':
			if err := sess.Next(ctx); err != nil {
				return err
			}
		case key == 'p':
			if err := sess.Prev(ctx); err != nil {
				return err
			}
		case key == 'r':
			if err := sess.ToggleReview(ctx); err != nil {
				return err
			}
		case key >= '1' && key <= '9':
			idx := int(key - '1')
			if idx < len(deck.Categories) {
				if err := sess.SetCategory(ctx, deck.Categories[idx]); err != nil {
					return err
				}
			}
		case key == 's':
			if err := sess.ToggleShuffle(ctx); err != nil {
				return err
			}
		case key == 'o':
			if err := sess.ToggleReviewOnly(ctx); err != nil {
				return err
			}
		case key == 'x':
			if err := sess.Reset(ctx); err != nil {
				return err
			}
		case key == 'q' || key == '\x03': // q or Ctrl+C
			return nil
		}
	}
}

func renderCard(out io.Writer, sess *session.Session) {
	fmt.Fprint(out, clearScreen)

	record, _, ok := sess.Current()
	if !ok {
		fmt.Fprintf(out, "%sNo cards match the current filter.%s\r\n\r\n", dim, reset)
		fmt.Fprintf(out, "%s[o] show all  [q] quit%s\r\n", dim, reset)
		return
	}

	ann := sess.Annotation()
	settings := sess.Settings()

	marker := " "
	if ann.Review {
		marker = yellow + "*" + reset
	}

	flags := ""
	if settings.Shuffle {
		flags += " shuffle"
	}
	if settings.ReviewOnly {
		flags += " review-only"
	}

	fmt.Fprintf(out, "%sCard %d/%d%s %s %s%s%s\r\n",
		dim, sess.Position()+1, len(sess.Order()), reset, marker, dim, flags, reset)
	fmt.Fprintf(out, "%s%s%s - %s\r\n\r\n", cyan, record.Topic, reset, record.Money)
	fmt.Fprintf(out, "%s%s%s\r\n\r\n", bold, record.Question, reset)

	if sess.Revealed() {
		fmt.Fprintf(out, "%s%s%s\r\n\r\n", green, record.Answer, reset)
	} else {
		fmt.Fprintf(out, "%s(press space to reveal)%s\r\n\r\n", dim, reset)
	}

	fmt.Fprintf(out, "%sCategory: %s%s\r\n", dim, ann.Category, reset)
	fmt.Fprintf(out, "%s[space] flip  [n/p] move  [r] mark  [1-9] category  [s] shuffle  [o] filter  [q] quit%s\r\n",
		dim, reset)
}

func printSessionSummary(out io.Writer, sess *session.Session) {
	stats := sess.DeckStats()
	fmt.Fprintf(out, "\n%d clues, %d marked for review, %d correct\n", stats.Total, stats.Marked, stats.Correct)
	fmt.Fprintf(out, "Coryat score: %d\n", stats.NetScore)
}
