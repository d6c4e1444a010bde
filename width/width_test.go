package width_test

import (
	"testing"

	"github.com/clipperhouse/textrope/width"
)

func TestASCIIWidth(t *testing.T) {
	if got := width.OfString("a", 4, 0); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestTabExpandsToNextStop(t *testing.T) {
	cases := []struct {
		tabWidth, colOffset, want int
	}{
		{4, 0, 4},
		{4, 1, 3},
		{4, 3, 1},
		{4, 4, 4},
		{8, 5, 3},
	}
	for _, c := range cases {
		got := width.OfString("\t", c.tabWidth, c.colOffset)
		if got != c.want {
			t.Errorf("tabWidth=%d colOffset=%d: got %d, want %d", c.tabWidth, c.colOffset, got, c.want)
		}
	}
}

func TestRegionalIndicatorPairIsWidthTwo(t *testing.T) {
	us := "\U0001F1FA\U0001F1F8"
	if got := width.OfString(us, 4, 0); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestReplacementCharWidthIsOne(t *testing.T) {
	invalid := string([]byte{0xff})
	if got := width.OfString(invalid, 4, 0); got != width.ReplacementChar {
		t.Fatalf("got %d, want %d", got, width.ReplacementChar)
	}
}

func TestEmptyClusterIsWidthZero(t *testing.T) {
	if got := width.OfString("", 4, 0); got != 0 {
		t.Fatalf("got %d, want 0", got)
	}
}
