package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
	"github.com/cluedeck/cluedeck/internal/storage"
)

const sampleCSV = "topic,money,question,answer\nScience,$200,What is H2O?,Water\nScience,$400,What is Au?,Gold\nArt,$100,Who painted the Mona Lisa?,Da Vinci\n"

func setupSession(t *testing.T) (*Session, *library.Library) {
	t.Helper()
	lib := library.New(storage.NewMemory())
	ctx := context.Background()

	summary, err := lib.Import(ctx, sampleCSV, "Sample", time.Now())
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	sess, err := Open(ctx, lib, summary.ContentID)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return sess, lib
}

func TestOpenUnknownDeck(t *testing.T) {
	lib := library.New(storage.NewMemory())

	_, err := Open(context.Background(), lib, "ffffffff")
	if !errors.Is(err, library.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}
}

func TestNavigationWrapsAndHidesAnswer(t *testing.T) {
	sess, _ := setupSession(t)
	ctx := context.Background()

	if sess.Position() != 0 {
		t.Fatalf("expected start position 0, got %d", sess.Position())
	}

	sess.Flip()
	if !sess.Revealed() {
		t.Fatalf("expected card revealed after flip")
	}

	if err := sess.Next(ctx); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if sess.Revealed() {
		t.Fatalf("expected answer hidden after moving")
	}
	if sess.Position() != 1 {
		t.Fatalf("expected position 1, got %d", sess.Position())
	}

	if err := sess.Prev(ctx); err != nil {
		t.Fatalf("Prev failed: %v", err)
	}
	if err := sess.Prev(ctx); err != nil {
		t.Fatalf("Prev failed: %v", err)
	}
	if sess.Position() != len(sess.Order())-1 {
		t.Fatalf("expected wrap to last card, got %d", sess.Position())
	}
}

func TestToggleReviewPersists(t *testing.T) {
	sess, lib := setupSession(t)
	ctx := context.Background()

	_, position, ok := sess.Current()
	if !ok {
		t.Fatalf("expected a current card")
	}

	if err := sess.ToggleReview(ctx); err != nil {
		t.Fatalf("ToggleReview failed: %v", err)
	}

	reopened, err := Open(ctx, lib, deck.ContentID(sampleCSV))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reopened.Annotations().Get(position).Review {
		t.Fatalf("review flag did not survive reopen")
	}

	summary, err := lib.FindSummary(ctx, deck.ContentID(sampleCSV))
	if err != nil {
		t.Fatalf("FindSummary failed: %v", err)
	}
	if summary.Stats.Marked != 1 {
		t.Fatalf("summary not refreshed after toggle: %+v", summary.Stats)
	}
}

func TestReviewOnlyFilterClampsPosition(t *testing.T) {
	sess, _ := setupSession(t)
	ctx := context.Background()

	// Move to the last card, then filter down to nothing.
	if err := sess.Prev(ctx); err != nil {
		t.Fatalf("Prev failed: %v", err)
	}
	if err := sess.ToggleReviewOnly(ctx); err != nil {
		t.Fatalf("ToggleReviewOnly failed: %v", err)
	}

	if len(sess.Order()) != 0 {
		t.Fatalf("expected empty order with nothing marked, got %v", sess.Order())
	}
	if sess.Position() != 0 {
		t.Fatalf("expected position reset to 0, got %d", sess.Position())
	}
	if _, _, ok := sess.Current(); ok {
		t.Fatalf("expected no current card for empty order")
	}

	// Unmarking state: flag the first record and the order returns.
	if err := sess.ToggleReviewOnly(ctx); err != nil {
		t.Fatalf("ToggleReviewOnly failed: %v", err)
	}
	if err := sess.ToggleReview(ctx); err != nil {
		t.Fatalf("ToggleReview failed: %v", err)
	}
	if err := sess.ToggleReviewOnly(ctx); err != nil {
		t.Fatalf("ToggleReviewOnly failed: %v", err)
	}
	if len(sess.Order()) != 1 {
		t.Fatalf("expected 1 card after marking, got %v", sess.Order())
	}
}

func TestLastPositionRestoredClamped(t *testing.T) {
	sess, lib := setupSession(t)
	ctx := context.Background()

	if err := sess.Next(ctx); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := sess.Next(ctx); err != nil {
		t.Fatalf("Next failed: %v", err)
	}

	reopened, err := Open(ctx, lib, deck.ContentID(sampleCSV))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Position() != 2 {
		t.Fatalf("expected restored position 2, got %d", reopened.Position())
	}

	// A stored position past the end of the order resets to 0.
	bundle, err := lib.LoadDeck(ctx, deck.ContentID(sampleCSV))
	if err != nil {
		t.Fatalf("LoadDeck failed: %v", err)
	}
	bundle.LastPosition = 99
	if err := lib.SaveDeck(ctx, bundle); err != nil {
		t.Fatalf("SaveDeck failed: %v", err)
	}

	clamped, err := Open(ctx, lib, deck.ContentID(sampleCSV))
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if clamped.Position() != 0 {
		t.Fatalf("expected out-of-range position reset to 0, got %d", clamped.Position())
	}
}

func TestSetCategory(t *testing.T) {
	sess, _ := setupSession(t)
	ctx := context.Background()

	if err := sess.SetCategory(ctx, "Science"); err != nil {
		t.Fatalf("SetCategory failed: %v", err)
	}
	if sess.Annotation().Category != "Science" {
		t.Fatalf("expected category Science, got %q", sess.Annotation().Category)
	}
}

func TestResetClearsAnnotationsAndPosition(t *testing.T) {
	sess, _ := setupSession(t)
	ctx := context.Background()

	if err := sess.ToggleReview(ctx); err != nil {
		t.Fatalf("ToggleReview failed: %v", err)
	}
	if err := sess.Next(ctx); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	sess.Flip()

	if err := sess.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if len(sess.Annotations()) != 0 {
		t.Fatalf("expected empty annotations after reset")
	}
	if sess.Revealed() {
		t.Fatalf("expected answer hidden after reset")
	}
	if sess.Position() != 0 {
		t.Fatalf("expected position 0 after reset, got %d", sess.Position())
	}

	stats := sess.DeckStats()
	if stats.Marked != 0 || stats.NetScore != 700 {
		t.Fatalf("unexpected stats after reset: %+v", stats)
	}
}

func TestToggleShuffleKeepsOrderAPermutation(t *testing.T) {
	sess, _ := setupSession(t)
	ctx := context.Background()

	if err := sess.ToggleShuffle(ctx); err != nil {
		t.Fatalf("ToggleShuffle failed: %v", err)
	}

	order := sess.Order()
	if len(order) != 3 {
		t.Fatalf("expected 3 positions, got %v", order)
	}
	seen := map[int]bool{}
	for _, pos := range order {
		if pos < 0 || pos > 2 || seen[pos] {
			t.Fatalf("order is not a permutation: %v", order)
		}
		seen[pos] = true
	}
	if !sess.Settings().Shuffle {
		t.Fatalf("shuffle setting not persisted in session state")
	}
}
