// Package session drives one deck through a review pass: it owns the
// presentation order, the current position, and the reveal state, and
// persists the bundle after every mutation before the next interaction is
// processed.
package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/library"
)

// Session is the live state of one deck under review. All mutating methods
// recompute the presentation order where needed, clamp the position, hide
// the answer, and write the bundle back before returning.
type Session struct {
	lib    *library.Library
	bundle *deck.Bundle

	records  []deck.Record
	order    []int
	pos      int
	revealed bool
	rng      *rand.Rand
	now      func() time.Time
}

// Open loads a deck into a session, restoring its stored settings and last
// position. It returns library.ErrDeckNotFound when no bundle exists for
// the id.
func Open(ctx context.Context, lib *library.Library, contentID string) (*Session, error) {
	bundle, err := lib.LoadDeck(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		return nil, library.ErrDeckNotFound
	}

	records, err := deck.Parse(bundle.RawText)
	if err != nil {
		return nil, err
	}

	s := &Session{
		lib:     lib,
		bundle:  bundle,
		records: records,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		now:     time.Now,
	}
	s.reorder()
	s.pos = clamp(bundle.LastPosition, len(s.order))
	return s, nil
}

// Records exposes the parsed records, in raw order.
func (s *Session) Records() []deck.Record { return s.records }

// Annotations exposes the deck's current annotation map.
func (s *Session) Annotations() deck.Annotations { return s.bundle.Annotations }

// Order exposes the current presentation order.
func (s *Session) Order() []int { return s.order }

// Settings reports the deck's current view settings.
func (s *Session) Settings() deck.Settings { return s.bundle.Settings }

// Position reports the current index within the presentation order.
func (s *Session) Position() int { return s.pos }

// Revealed reports whether the current card shows its answer.
func (s *Session) Revealed() bool { return s.revealed }

// Current returns the record under the cursor and its raw position. ok is
// false when the filtered order is empty.
func (s *Session) Current() (record deck.Record, position int, ok bool) {
	if len(s.order) == 0 {
		return deck.Record{}, 0, false
	}
	position = s.order[s.pos]
	return s.records[position], position, true
}

// Annotation returns the current card's annotation.
func (s *Session) Annotation() deck.Annotation {
	_, position, ok := s.Current()
	if !ok {
		return deck.Annotation{Category: deck.DefaultCategory()}
	}
	return s.bundle.Annotations.Get(position)
}

// Flip toggles the reveal state of the current card.
func (s *Session) Flip() {
	if len(s.order) == 0 {
		return
	}
	s.revealed = !s.revealed
}

// Next advances to the following card, wrapping at the end, and hides the
// answer.
func (s *Session) Next(ctx context.Context) error {
	return s.step(ctx, 1)
}

// Prev moves to the preceding card, wrapping at the start, and hides the
// answer.
func (s *Session) Prev(ctx context.Context) error {
	return s.step(ctx, -1)
}

func (s *Session) step(ctx context.Context, delta int) error {
	if len(s.order) == 0 {
		return nil
	}
	s.pos = (s.pos + delta + len(s.order)) % len(s.order)
	s.revealed = false
	return s.persist(ctx)
}

// ToggleReview flips the review flag on the current card. With the
// review-only filter active the order shrinks or grows, so it is recomputed
// and the cursor re-clamped.
func (s *Session) ToggleReview(ctx context.Context) error {
	_, position, ok := s.Current()
	if !ok {
		return nil
	}
	s.bundle.Annotations = s.bundle.Annotations.ToggleReview(position)
	if s.bundle.Settings.ReviewOnly {
		s.reorder()
	}
	return s.persist(ctx)
}

// SetCategory assigns a category to the current card.
func (s *Session) SetCategory(ctx context.Context, category string) error {
	_, position, ok := s.Current()
	if !ok {
		return nil
	}
	s.bundle.Annotations = s.bundle.Annotations.SetCategory(position, category)
	return s.persist(ctx)
}

// ToggleShuffle flips the shuffle setting and recomputes the order.
func (s *Session) ToggleShuffle(ctx context.Context) error {
	s.bundle.Settings.Shuffle = !s.bundle.Settings.Shuffle
	s.reorder()
	return s.persist(ctx)
}

// ToggleReviewOnly flips the review-only filter and recomputes the order.
func (s *Session) ToggleReviewOnly(ctx context.Context) error {
	s.bundle.Settings.ReviewOnly = !s.bundle.Settings.ReviewOnly
	s.reorder()
	return s.persist(ctx)
}

// Reset clears all annotations, returns to the first card, and hides the
// answer.
func (s *Session) Reset(ctx context.Context) error {
	s.bundle.Annotations = deck.Annotations{}
	s.reorder()
	s.pos = 0
	return s.persist(ctx)
}

// Stats computes the session summary over the current presentation order.
func (s *Session) Stats() deck.Stats {
	return deck.ComputeStats(s.records, s.bundle.Annotations, s.order)
}

// DeckStats computes statistics over the whole deck regardless of filter.
func (s *Session) DeckStats() deck.Stats {
	return deck.ComputeStats(s.records, s.bundle.Annotations, nil)
}

// reorder recomputes the presentation order from scratch and resets the
// cursor state that depends on it.
func (s *Session) reorder() {
	s.order = deck.ComputeOrder(s.records, s.bundle.Annotations, s.bundle.Settings, s.rng)
	s.pos = clamp(s.pos, len(s.order))
	s.revealed = false
}

func (s *Session) persist(ctx context.Context) error {
	s.bundle.LastPosition = s.pos
	if err := s.lib.SaveDeck(ctx, s.bundle); err != nil {
		return err
	}
	return s.lib.RefreshSummary(ctx, s.bundle, s.now())
}

func clamp(pos, length int) int {
	if length == 0 {
		return 0
	}
	if pos < 0 || pos >= length {
		return 0
	}
	return pos
}
