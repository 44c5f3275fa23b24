package deck

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteDeckCSV writes one deck as CSV in the given presentation order. Each
// row carries the record fields plus the chosen category, the review flag as
// literal true/false, and the 0-based raw record position. Fields containing
// commas, quotes, or newlines are quoted with embedded quotes doubled.
func WriteDeckCSV(w io.Writer, records []Record, anns Annotations, order []int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"topic", "money", "question", "answer", "chosen_category", "marked_for_review", "original_index"}); err != nil {
		return err
	}

	for _, pos := range order {
		record := records[pos]
		ann := anns.Get(pos)
		row := []string{
			record.Topic,
			record.Money,
			record.Question,
			record.Answer,
			ann.Category,
			strconv.FormatBool(ann.Review),
			strconv.Itoa(pos),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMarkedCSV writes the cross-deck marked-only export. Rows are expected
// in deck-then-position order; this just renders them.
func WriteMarkedCSV(w io.Writer, rows []ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"show_title", "topic", "money", "question", "answer", "original_index"}); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.SourceTitle,
			row.Topic,
			row.Money,
			row.Question,
			row.Answer,
			strconv.Itoa(row.OriginalIndex),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
