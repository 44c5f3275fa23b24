// Package deck implements the deck-state and scoring engine: parsing raw
// delimited text into clue records, deriving a presentation order from
// records and annotations, and computing Coryat-style score statistics.
package deck

import "time"

// Record is one clue: a topic, a monetary value, a question, and its answer.
// Records are immutable once parsed and carry no persistent identity of
// their own; their 0-based position in the parsed sequence is the identity
// annotations key on. Money keeps its original textual form for display and
// is only coerced to a number at scoring time.
type Record struct {
	Topic    string `json:"topic"`
	Money    string `json:"money"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Annotation is the mutable per-record marker: flagged for review or not,
// plus a chosen category label.
type Annotation struct {
	Review   bool   `json:"review"`
	Category string `json:"category"`
}

// Settings holds the pure view-filter configuration for a deck. Neither
// field mutates records or annotations.
type Settings struct {
	Shuffle    bool `json:"shuffle"`
	ReviewOnly bool `json:"reviewOnly"`
}

// SourceMeta carries optional provenance columns read from the first data
// row of an imported file. Absent columns stay empty.
type SourceMeta struct {
	ShowID   string `json:"showId,omitempty"`
	AirDate  string `json:"airDate,omitempty"`
	GameType string `json:"gameType,omitempty"`
}

// Stats aggregates scoring statistics over a set of record positions.
// Total == Marked + Correct always holds.
type Stats struct {
	Total          int        `json:"total"`
	Marked         int        `json:"marked"`
	Correct        int        `json:"correct"`
	NetScore       int        `json:"netScore"`
	LastReviewedAt *time.Time `json:"lastReviewedAt,omitempty"`
}

// Bundle is the unit of persistence for one deck. RawText is the single
// source of truth for records; they are re-derived from it on every load and
// never stored separately. ContentID is always ContentID(RawText).
type Bundle struct {
	ContentID    string      `json:"contentId"`
	RawText      string      `json:"rawText"`
	Annotations  Annotations `json:"annotations"`
	LastPosition int         `json:"lastPosition"`
	Settings     Settings    `json:"settings"`
	SourceMeta   SourceMeta  `json:"sourceMeta,omitzero"`
}

// Summary is one library entry: deck metadata plus its recomputed stats.
// There is exactly one summary per distinct content id.
type Summary struct {
	ContentID  string     `json:"contentId"`
	Title      string     `json:"title"`
	UploadedAt time.Time  `json:"uploadedAt"`
	SourceMeta SourceMeta `json:"sourceMeta,omitzero"`
	Stats      Stats      `json:"stats"`
}

// ExportRow is one review-flagged record flattened for the cross-deck
// marked-only export.
type ExportRow struct {
	SourceTitle   string
	Topic         string
	Money         string
	Question      string
	Answer        string
	OriginalIndex int
}
