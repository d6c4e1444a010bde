package view_test

import (
	"testing"

	"github.com/clipperhouse/textrope/buffer"
	"github.com/clipperhouse/textrope/view"
)

func TestNoWrapEmitsOneVirtualLinePerLogicalLine(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("hello\nworld"))
	v := view.New(b)

	lines, err := v.GetVirtualLines()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d virtual lines, want 2", len(lines))
	}
	if lines[0].Width != 5 || lines[1].Width != 5 {
		t.Fatalf("unexpected widths: %+v", lines)
	}
}

func TestCharWrapSplitsAtWidth(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abcdefghij"))
	v := view.New(b)
	v.SetWrapMode(view.WrapChar)
	v.SetWrapWidth(4)

	lines, err := v.GetVirtualLines()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d virtual lines, want 3 (4+4+2), got %+v", len(lines), lines)
	}
	if lines[0].Width != 4 || lines[1].Width != 4 || lines[2].Width != 2 {
		t.Fatalf("unexpected split widths: %+v", lines)
	}
}

func TestWordWrapBreaksAtSpace(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("aaa bbb cc"))
	v := view.New(b)
	v.SetWrapMode(view.WrapWord)
	v.SetWrapWidth(7)

	lines, err := v.GetVirtualLines()
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) < 2 {
		t.Fatalf("expected the line to wrap, got %+v", lines)
	}
	if lines[0].Width > 7 {
		t.Fatalf("first virtual line exceeds wrap width: %+v", lines[0])
	}
}

func TestOverWideWordFallsThroughToCharCut(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("aaaaaaaaaa"))
	v := view.New(b)
	v.SetWrapMode(view.WrapWord)
	v.SetWrapWidth(4)

	lines, err := v.GetVirtualLines()
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, l := range lines {
		if l.Width > 4 {
			t.Fatalf("virtual line exceeds wrap width: %+v", l)
		}
		total += l.CharCount
	}
	if total != 10 {
		t.Fatalf("got %d total chars across virtual lines, want 10", total)
	}
}

func TestLogicalToVisualAndBack(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abcdefghij"))
	v := view.New(b)
	v.SetWrapMode(view.WrapChar)
	v.SetWrapWidth(4)

	vrow, vcol, err := v.LogicalToVisual(0, 5)
	if err != nil {
		t.Fatal(err)
	}
	row, col, err := v.VisualToLogical(vrow, vcol)
	if err != nil {
		t.Fatal(err)
	}
	if row != 0 || col != 5 {
		t.Fatalf("round trip mismatch: got (%d,%d), want (0,5)", row, col)
	}
}

func TestGetVirtualLinesInRange(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("a\nb\nc\nd"))
	v := view.New(b)

	lines, err := v.GetVirtualLinesInRange(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].SourceLine != 1 || lines[1].SourceLine != 2 {
		t.Fatalf("unexpected range slice: %+v", lines)
	}
}

func TestRebuildTriggersOnBufferVersionChange(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abc"))
	v := view.New(b)
	v.GetVirtualLines()

	b.SetText([]byte("abcdef"))
	lines, err := v.GetVirtualLines()
	if err != nil {
		t.Fatal(err)
	}
	if lines[0].Width != 6 {
		t.Fatalf("view did not rebuild after buffer mutation: %+v", lines)
	}
}
