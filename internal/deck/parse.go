package deck

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrNoHeader is returned when the input contains no rows at all, so no
// header can be matched.
var ErrNoHeader = errors.New("deck: input has no header row")

// The four field names the header row is matched against,
// case-insensitively and in any column order.
const (
	fieldTopic    = "topic"
	fieldMoney    = "money"
	fieldQuestion = "question"
	fieldAnswer   = "answer"
)

// Optional provenance columns read by ExtractMeta.
const (
	fieldShowID   = "show_id"
	fieldAirDate  = "air_date"
	fieldGameType = "game_type"
)

// Parse converts raw delimited text into an ordered sequence of records.
// It first attempts the stricter encoding/csv reader; if that rejects the
// input it retries with the fallback parser, which tolerates anything.
// Extra columns are ignored and missing expected columns yield empty string
// values rather than an error.
func Parse(raw string) ([]Record, error) {
	rows, err := parsePrimary(raw)
	if err != nil {
		rows = parseFallback(raw)
	}
	return rowsToRecords(rows)
}

// ExtractMeta reads the optional show_id/air_date/game_type columns from the
// first data row. Absent columns and absent rows yield empty fields, never
// an error.
func ExtractMeta(raw string) SourceMeta {
	rows, err := parsePrimary(raw)
	if err != nil {
		rows = parseFallback(raw)
	}
	if len(rows) < 2 {
		return SourceMeta{}
	}

	idx := headerIndex(rows[0])
	first := rows[1]
	return SourceMeta{
		ShowID:   cellAt(first, idx.lookup(fieldShowID)),
		AirDate:  cellAt(first, idx.lookup(fieldAirDate)),
		GameType: cellAt(first, idx.lookup(fieldGameType)),
	}
}

func parsePrimary(raw string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(raw))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// parseFallback splits raw text into rows and fields by hand. It implements
// the whole quoting convention: fields may be wrapped in double quotes, an
// embedded quote is escaped by doubling it, and commas and newlines inside
// quotes are literal. Blank lines are dropped. It never fails.
func parseFallback(raw string) [][]string {
	var (
		rows     [][]string
		row      []string
		field    strings.Builder
		inQuotes bool
	)

	endField := func() {
		row = append(row, field.String())
		field.Reset()
	}
	endRow := func() {
		endField()
		if !blankRow(row) {
			rows = append(rows, row)
		}
		row = nil
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if inQuotes {
			if c == '"' {
				if i+1 < len(raw) && raw[i+1] == '"' {
					field.WriteByte('"')
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field.WriteByte(c)
			continue
		}

		switch c {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\r':
			// Swallowed here; the following \n (if any) ends the row.
			if i+1 >= len(raw) || raw[i+1] != '\n' {
				endRow()
			}
		case '\n':
			endRow()
		default:
			field.WriteByte(c)
		}
	}

	if field.Len() > 0 || len(row) > 0 {
		endRow()
	}
	return rows
}

// blankRow reports whether a split row came from a blank line.
func blankRow(row []string) bool {
	return len(row) == 1 && strings.TrimSpace(row[0]) == ""
}

func rowsToRecords(rows [][]string) ([]Record, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	idx := headerIndex(rows[0])
	topicCol := idx.lookup(fieldTopic)
	moneyCol := idx.lookup(fieldMoney)
	questionCol := idx.lookup(fieldQuestion)
	answerCol := idx.lookup(fieldAnswer)

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, Record{
			Topic:    cellAt(row, topicCol),
			Money:    cellAt(row, moneyCol),
			Question: cellAt(row, questionCol),
			Answer:   cellAt(row, answerCol),
		})
	}
	return records, nil
}

type columnIndex map[string]int

// headerIndex maps lowercased header cell names to their column index. The
// first occurrence of a name wins.
func headerIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for col, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, seen := idx[name]; !seen {
			idx[name] = col
		}
	}
	return idx
}

// lookup returns the column for a header name, or -1 when the name never
// appeared in the header row.
func (idx columnIndex) lookup(name string) int {
	col, ok := idx[name]
	if !ok {
		return -1
	}
	return col
}

// cellAt returns the cell at a column index, or "" when the column is
// absent or the row is too short.
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
