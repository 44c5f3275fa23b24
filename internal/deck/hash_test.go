package deck

import (
	"regexp"
	"testing"
)

func TestContentIDKnownValues(t *testing.T) {
	// 32-bit FNV-1a vectors.
	cases := map[string]string{
		"":    "811c9dc5",
		"a":   "e40c292c",
		"foo": "a9f37ed7",
	}

	for input, want := range cases {
		if got := ContentID(input); got != want {
			t.Fatalf("ContentID(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestContentIDShape(t *testing.T) {
	hexRe := regexp.MustCompile(`^[0-9a-f]{8}$`)

	inputs := []string{"", "x", "topic,money\nScience,$200\n", "\x00\xff", "日本語"}
	for _, input := range inputs {
		got := ContentID(input)
		if !hexRe.MatchString(got) {
			t.Fatalf("ContentID(%q) = %q, not 8 lowercase hex digits", input, got)
		}
		if again := ContentID(input); again != got {
			t.Fatalf("ContentID(%q) not deterministic: %q then %q", input, got, again)
		}
	}
}

func TestContentIDSensitivity(t *testing.T) {
	if ContentID("deck one") == ContentID("deck two") {
		t.Fatalf("distinct inputs produced identical ids")
	}
}
