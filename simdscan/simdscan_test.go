package simdscan_test

import (
	"testing"

	"github.com/clipperhouse/textrope/simdscan"
)

func TestFindLineBreaksCRLF(t *testing.T) {
	data := []byte("a\r\nb\nc\rd")
	got := simdscan.FindLineBreaks(data, nil)
	want := []simdscan.LineBreak{
		{Pos: 2, Kind: simdscan.CRLF},
		{Pos: 4, Kind: simdscan.LF},
		{Pos: 6, Kind: simdscan.CR},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d breaks, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFindTabStops(t *testing.T) {
	data := []byte("a\tb\t\tc")
	got := simdscan.FindTabStops(data, nil)
	want := []int{1, 3, 4}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestIsASCIIOnly(t *testing.T) {
	if !simdscan.IsASCIIOnly([]byte("hello world")) {
		t.Fatal("expected plain ASCII to pass")
	}
	if simdscan.IsASCIIOnly([]byte("héllo")) {
		t.Fatal("expected non-ASCII to fail")
	}
	if simdscan.IsASCIIOnly([]byte("tab\ttab")) {
		t.Fatal("tab is outside [0x20,0x7E] and must fail the range check")
	}
}

func TestFindWrapBreaksASCII(t *testing.T) {
	data := []byte("hello world-foo")
	got := simdscan.FindWrapBreaks(data, nil)
	if len(got) != 2 {
		t.Fatalf("got %d wrap breaks, want 2: %+v", len(got), got)
	}
	if got[0].ByteOffset != 5 || got[1].ByteOffset != 11 {
		t.Fatalf("unexpected offsets: %+v", got)
	}
}

func TestFindPosByWidthWrapModeStopsBeforeOverflow(t *testing.T) {
	data := []byte("hello world")
	res := simdscan.FindPosByWidth(data, 5, 4, simdscan.ModeWrap)
	if res.ColumnsUsed != 5 || res.ByteOffset != 5 {
		t.Fatalf("got %+v", res)
	}
}

func TestFindPosByWidthPosModeStopsAtOrAfter(t *testing.T) {
	data := []byte("hello world")
	res := simdscan.FindPosByWidth(data, 5, 4, simdscan.ModePos)
	if res.ByteOffset != 6 {
		t.Fatalf("got %+v, want ByteOffset 6", res)
	}
}

func TestFindPosByWidthHandlesTabs(t *testing.T) {
	data := []byte("a\tb")
	res := simdscan.FindWrapPosByWidth(data, 4, 4)
	// 'a' = col 1, '\t' expands to fill to col 4 (tabWidth 4, offset 1 -> 3 cols), 'b' would overflow.
	if res.ColumnsUsed != 4 || res.ByteOffset != 2 {
		t.Fatalf("got %+v", res)
	}
}
