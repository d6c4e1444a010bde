package simdscan_test

import (
	"testing"

	"github.com/clipperhouse/textrope/graphemes"
	"github.com/clipperhouse/textrope/simdscan"
)

// FuzzFindLineBreaks checks that every reported break position is within
// bounds and that breaks are strictly increasing.
func FuzzFindLineBreaks(f *testing.F) {
	if testing.Short() {
		f.Skip("skipping fuzz test in short mode")
	}

	f.Add([]byte("a\nb\r\nc\rd"))
	f.Add([]byte(""))
	f.Add([]byte("\r\r\n\n"))

	f.Fuzz(func(t *testing.T, data []byte) {
		breaks := simdscan.FindLineBreaks(data, nil)
		last := -1
		for _, b := range breaks {
			if b.Pos < 0 || b.Pos >= len(data) {
				t.Fatalf("break position %d out of bounds for %d-byte input", b.Pos, len(data))
			}
			if b.Pos <= last {
				t.Fatalf("break positions not strictly increasing: %d after %d", b.Pos, last)
			}
			last = b.Pos
		}
	})
}

// FuzzFindWrapPosByWidth checks the reported cut never exceeds the input
// length and never splits a grapheme cluster (ByteOffset always lands on
// a cluster boundary, verified against the input's cluster ends).
func FuzzFindWrapPosByWidth(f *testing.F) {
	if testing.Short() {
		f.Skip("skipping fuzz test in short mode")
	}

	f.Add([]byte("hello world"), 5)
	f.Add([]byte(""), 4)
	f.Add([]byte("a\tb\tc"), 3)

	f.Fuzz(func(t *testing.T, data []byte, width int) {
		if width < 0 || width > 1000 {
			return
		}
		res := simdscan.FindWrapPosByWidth(data, width, 4)
		if res.ByteOffset < 0 || res.ByteOffset > len(data) {
			t.Fatalf("byte offset %d out of bounds for %d-byte input", res.ByteOffset, len(data))
		}
		onBoundary := res.ByteOffset == 0
		g := graphemes.FromBytes(data)
		for g.Next() {
			if g.End() == res.ByteOffset {
				onBoundary = true
			}
		}
		if !onBoundary {
			t.Fatalf("cut point %d does not align to a grapheme boundary", res.ByteOffset)
		}
	})
}
