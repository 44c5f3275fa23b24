// Package library is the persistence adapter: it maps deck bundles and the
// library index onto the key-value store and keeps per-deck summaries in
// step with bundle state.
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cluedeck/cluedeck/internal/deck"
	"github.com/cluedeck/cluedeck/internal/storage"
)

// ErrDeckNotFound is returned when a deck id resolves to no stored bundle.
// A summary whose bundle is missing reports the same condition.
var ErrDeckNotFound = errors.New("library: deck not found")

const (
	deckKeyPrefix = "deck:"
	indexKey      = "library"
)

// Library exposes the deck and index operations over a Store.
type Library struct {
	store storage.Store
}

// New creates a Library over the given backing store.
func New(store storage.Store) *Library {
	return &Library{store: store}
}

func deckKey(contentID string) string {
	return deckKeyPrefix + contentID
}

// LoadDeck returns the stored bundle for a content id, or nil when the key
// is absent or holds malformed data. Corrupt stored state is never an
// error; it reads as missing.
func (l *Library) LoadDeck(ctx context.Context, contentID string) (*deck.Bundle, error) {
	raw, err := l.store.Get(ctx, deckKey(contentID))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var bundle deck.Bundle
	if err := json.Unmarshal([]byte(raw), &bundle); err != nil {
		return nil, nil
	}
	if bundle.Annotations == nil {
		bundle.Annotations = deck.Annotations{}
	}
	return &bundle, nil
}

// SaveDeck overwrites the stored bundle wholesale; there are no partial
// patches.
func (l *Library) SaveDeck(ctx context.Context, bundle *deck.Bundle) error {
	raw, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode deck %s: %w", bundle.ContentID, err)
	}
	return l.store.Set(ctx, deckKey(bundle.ContentID), string(raw))
}

// ListLibrary returns the library index, most recently uploaded first.
// Missing or malformed index data reads as an empty library.
func (l *Library) ListLibrary(ctx context.Context) ([]deck.Summary, error) {
	raw, err := l.store.Get(ctx, indexKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var summaries []deck.Summary
	if err := json.Unmarshal([]byte(raw), &summaries); err != nil {
		return nil, nil
	}
	return summaries, nil
}

// UpsertSummary replaces the matching index entry in place, or prepends the
// summary when its content id is new, so the index stays ordered by first
// upload, newest first.
func (l *Library) UpsertSummary(ctx context.Context, summary deck.Summary) error {
	summaries, err := l.ListLibrary(ctx)
	if err != nil {
		return err
	}

	replaced := false
	for i := range summaries {
		if summaries[i].ContentID == summary.ContentID {
			summaries[i] = summary
			replaced = true
			break
		}
	}
	if !replaced {
		summaries = append([]deck.Summary{summary}, summaries...)
	}

	return l.saveIndex(ctx, summaries)
}

// FindSummary returns the index entry for a content id, or nil when absent.
func (l *Library) FindSummary(ctx context.Context, contentID string) (*deck.Summary, error) {
	summaries, err := l.ListLibrary(ctx)
	if err != nil {
		return nil, err
	}
	for i := range summaries {
		if summaries[i].ContentID == contentID {
			return &summaries[i], nil
		}
	}
	return nil, nil
}

// DeleteDeck removes a deck's bundle and, when both are present, its index
// entry. The two keys are independent; if only the first removal lands the
// orphaned summary reads as deck-not-found on the next access.
func (l *Library) DeleteDeck(ctx context.Context, contentID string) error {
	if err := l.store.Delete(ctx, deckKey(contentID)); err != nil {
		return err
	}

	summaries, err := l.ListLibrary(ctx)
	if err != nil {
		return err
	}

	kept := summaries[:0]
	for _, summary := range summaries {
		if summary.ContentID != contentID {
			kept = append(kept, summary)
		}
	}
	if len(kept) == len(summaries) {
		return nil
	}
	return l.saveIndex(ctx, kept)
}

func (l *Library) saveIndex(ctx context.Context, summaries []deck.Summary) error {
	if summaries == nil {
		summaries = []deck.Summary{}
	}
	raw, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to encode library index: %w", err)
	}
	return l.store.Set(ctx, indexKey, string(raw))
}

// Import parses raw text into a deck, stores its bundle, and upserts its
// summary. Re-importing identical content keeps the existing bundle (and
// with it the user's annotations) and preserves the original title and
// upload time; only the stats refresh.
func (l *Library) Import(ctx context.Context, rawText, title string, now time.Time) (*deck.Summary, error) {
	records, err := deck.Parse(rawText)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.New("no clue rows found")
	}

	contentID := deck.ContentID(rawText)

	bundle, err := l.LoadDeck(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if bundle == nil {
		bundle = &deck.Bundle{
			ContentID:   contentID,
			RawText:     rawText,
			Annotations: deck.Annotations{},
			SourceMeta:  deck.ExtractMeta(rawText),
		}
		if err := l.SaveDeck(ctx, bundle); err != nil {
			return nil, err
		}
	}

	summary := deck.Summary{
		ContentID:  contentID,
		Title:      title,
		UploadedAt: now,
		SourceMeta: bundle.SourceMeta,
		Stats:      deck.ComputeStats(records, bundle.Annotations, nil),
	}
	if existing, err := l.FindSummary(ctx, contentID); err != nil {
		return nil, err
	} else if existing != nil {
		summary.Title = existing.Title
		summary.UploadedAt = existing.UploadedAt
		summary.Stats.LastReviewedAt = existing.Stats.LastReviewedAt
	}

	if err := l.UpsertSummary(ctx, summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// RefreshSummary recomputes a deck's summary from its bundle after a state
// change. Summaries are derived wholesale, never incrementally patched.
func (l *Library) RefreshSummary(ctx context.Context, bundle *deck.Bundle, reviewedAt time.Time) error {
	existing, err := l.FindSummary(ctx, bundle.ContentID)
	if err != nil {
		return err
	}
	if existing == nil {
		// Bundle without an index entry: nothing to refresh.
		return nil
	}

	records, err := deck.Parse(bundle.RawText)
	if err != nil {
		return err
	}

	updated := *existing
	updated.Stats = deck.ComputeStats(records, bundle.Annotations, nil)
	updated.Stats.LastReviewedAt = &reviewedAt
	return l.UpsertSummary(ctx, updated)
}

// MarkedRows collects every review-flagged record across all decks,
// iterating the library newest-first and records in raw position order
// within each deck. Listed decks whose bundles are gone are skipped.
func (l *Library) MarkedRows(ctx context.Context) ([]deck.ExportRow, error) {
	summaries, err := l.ListLibrary(ctx)
	if err != nil {
		return nil, err
	}

	var rows []deck.ExportRow
	for _, summary := range summaries {
		bundle, err := l.LoadDeck(ctx, summary.ContentID)
		if err != nil {
			return nil, err
		}
		if bundle == nil {
			continue
		}

		records, err := deck.Parse(bundle.RawText)
		if err != nil {
			continue
		}
		rows = append(rows, deck.MarkedRows(summary.Title, records, bundle.Annotations)...)
	}
	return rows, nil
}
