package graphemes_test

import (
	"testing"

	"github.com/clipperhouse/textrope/graphemes"
)

func collect(s string) []string {
	var out []string
	g := graphemes.FromString(s)
	for g.Next() {
		out = append(out, g.Value())
	}
	return out
}

func TestBasicASCII(t *testing.T) {
	got := collect("abc")
	want := []string{"a", "b", "c"}
	assertEqual(t, got, want)
}

func TestCRLFIsOneCluster(t *testing.T) {
	got := collect("a\r\nb")
	want := []string{"a", "\r\n", "b"}
	assertEqual(t, got, want)
}

func TestZWJJoinsClusters(t *testing.T) {
	// family emoji built from ZWJ sequences collapses to a single cluster
	s := "\U0001F468‍\U0001F469‍\U0001F467"
	got := collect(s)
	if len(got) != 1 {
		t.Fatalf("expected 1 cluster, got %d: %q", len(got), got)
	}
}

func TestRegionalIndicatorPairing(t *testing.T) {
	// two flags back-to-back should be two clusters, each 2 codepoints
	s := "\U0001F1FA\U0001F1F8\U0001F1E8\U0001F1E6" // US CA
	got := collect(s)
	if len(got) != 2 {
		t.Fatalf("expected 2 flag clusters, got %d: %q", len(got), got)
	}
}

func TestHangulSyllableBlock(t *testing.T) {
	got := collect("한")
	if len(got) != 1 {
		t.Fatalf("expected a single precomposed Hangul syllable to be one cluster, got %d", len(got))
	}
}

func TestInvalidUTF8DoesNotPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panicked on invalid UTF-8: %v", r)
		}
	}()
	collect(string([]byte{0xff, 0xfe, 'a', 0x80}))
}

func assertEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
