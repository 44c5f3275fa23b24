package deck

import "strconv"

// MoneyToNumber coerces a monetary text value to an integer by keeping only
// its digit characters, so "$1,200" becomes 1200. Empty or digit-free text
// coerces to 0; this never fails.
func MoneyToNumber(money string) int {
	digits := make([]byte, 0, len(money))
	for i := 0; i < len(money); i++ {
		if money[i] >= '0' && money[i] <= '9' {
			digits = append(digits, money[i])
		}
	}
	if len(digits) == 0 {
		return 0
	}

	value, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0
	}
	return value
}

// ComputeStats computes Coryat-style scoring statistics over the given
// record positions, or over all records when positions is nil. A record
// flagged for review counts as missed and subtracts its value; every other
// record counts as correct and adds it. The result depends only on the set
// of positions, not their order, and is always re-derivable from persisted
// state.
func ComputeStats(records []Record, anns Annotations, positions []int) Stats {
	if positions == nil {
		positions = make([]int, len(records))
		for i := range records {
			positions[i] = i
		}
	}

	stats := Stats{Total: len(positions)}
	for _, pos := range positions {
		value := MoneyToNumber(records[pos].Money)
		if anns.Get(pos).Review {
			stats.Marked++
			stats.NetScore -= value
		} else {
			stats.Correct++
			stats.NetScore += value
		}
	}
	return stats
}

// MarkedRows flattens every review-flagged record of one deck into export
// rows, in raw record order. Concatenating the result across decks in
// library order produces the cross-deck marked-only export.
func MarkedRows(title string, records []Record, anns Annotations) []ExportRow {
	var rows []ExportRow
	for i, record := range records {
		if !anns.Get(i).Review {
			continue
		}
		rows = append(rows, ExportRow{
			SourceTitle:   title,
			Topic:         record.Topic,
			Money:         record.Money,
			Question:      record.Question,
			Answer:        record.Answer,
			OriginalIndex: i,
		})
	}
	return rows
}
