package deck

import "math/rand"

// ComputeOrder derives the sequence of record positions to present. It is
// recomputed from scratch whenever settings or the review filter change,
// never incrementally maintained.
//
// Positions flagged for review are the only ones kept when ReviewOnly is
// set. With Shuffle the filtered set gets a uniform Fisher-Yates
// permutation from rng; without it the set is grouped by topic, topics
// ordered by first appearance in the raw sequence and records keeping their
// relative order within each topic. A nil rng disables shuffling.
//
// Callers must clamp their current position and hide any revealed answer
// whenever the order they hold changes; an empty filtered set yields an
// empty order.
func ComputeOrder(records []Record, anns Annotations, settings Settings, rng *rand.Rand) []int {
	positions := make([]int, 0, len(records))
	for i := range records {
		if settings.ReviewOnly && !anns.Get(i).Review {
			continue
		}
		positions = append(positions, i)
	}

	if settings.Shuffle && rng != nil {
		for i := len(positions) - 1; i >= 1; i-- {
			j := rng.Intn(i + 1)
			positions[i], positions[j] = positions[j], positions[i]
		}
		return positions
	}

	return groupByTopic(records, positions)
}

// groupByTopic is a stable bucket sort keyed by the first-occurrence rank of
// each distinct topic value.
func groupByTopic(records []Record, positions []int) []int {
	rank := make(map[string]int)
	var buckets [][]int
	for _, pos := range positions {
		topic := records[pos].Topic
		r, ok := rank[topic]
		if !ok {
			r = len(buckets)
			rank[topic] = r
			buckets = append(buckets, nil)
		}
		buckets[r] = append(buckets[r], pos)
	}

	ordered := make([]int, 0, len(positions))
	for _, bucket := range buckets {
		ordered = append(ordered, bucket...)
	}
	return ordered
}
