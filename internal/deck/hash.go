package deck

import "fmt"

// ContentID derives the stable short identifier for a piece of raw text: a
// 32-bit FNV-1a fold rendered as 8 zero-padded lowercase hex digits. The id
// doubles as the persistence key and the deck identity, so two texts that
// collide are indistinguishable to the rest of the system.
func ContentID(text string) string {
	h := uint32(0x811c9dc5)
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h += (h << 1) + (h << 4) + (h << 7) + (h << 8) + (h << 24)
	}
	return fmt.Sprintf("%08x", h)
}
