package buffer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/clipperhouse/textrope/buffer"
)

func TestSetTextAndPlainTextRoundTrip(t *testing.T) {
	b := buffer.New()
	if err := b.SetText([]byte("hello\nworld")); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 2 {
		t.Fatalf("got %d lines, want 2", b.LineCount())
	}
	if b.Length() != 10 {
		t.Fatalf("got length %d, want 10", b.Length())
	}

	buf := make([]byte, 64)
	n := b.GetPlainTextInto(buf)
	if got := string(buf[:n]); got != "hello\nworld" {
		t.Fatalf("got %q", got)
	}
}

func TestTrailingNewlineProducesExtraEmptyLine(t *testing.T) {
	b := buffer.New()
	if err := b.SetText([]byte("hello\n")); err != nil {
		t.Fatal(err)
	}
	if b.LineCount() != 2 {
		t.Fatalf("got %d lines, want 2 (trailing empty line)", b.LineCount())
	}
}

func TestClearKeepsRegistryButDropsContent(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abc"))
	b.Clear()
	if b.LineCount() != 0 {
		t.Fatalf("got %d lines after Clear, want 0", b.LineCount())
	}
	if b.Length() != 0 {
		t.Fatalf("got length %d after Clear, want 0", b.Length())
	}
}

func TestHighlightSweepShadowsLowerPriority(t *testing.T) {
	b := buffer.New()
	if err := b.SetText([]byte("abcdefg")); err != nil {
		t.Fatal(err)
	}
	const errStyle, warnStyle = 1, 2
	if err := b.AddHighlight(0, 0, 5, errStyle, 10, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddHighlight(0, 2, 4, warnStyle, 5, 2); err != nil {
		t.Fatal(err)
	}

	spans, err := b.GetLineSpans(0)
	if err != nil {
		t.Fatal(err)
	}
	want := []buffer.StyleSpan{
		{Col: 0, StyleID: errStyle, NextCol: 5},
		{Col: 5, StyleID: 0, NextCol: 7},
	}
	if len(spans) != len(want) {
		t.Fatalf("got %+v, want %+v", spans, want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Fatalf("span %d: got %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestRemoveHighlightsByRefClearsAndRebuilds(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abcdefg"))
	b.AddHighlight(0, 0, 5, 1, 10, 1)
	b.RemoveHighlightsByRef(1)

	spans, err := b.GetLineSpans(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 0 {
		t.Fatalf("got %+v, want no spans after removing the only highlight", spans)
	}
}

func TestHighlightsTransactionDefersNothingObservable(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abcdefg"))

	b.StartHighlightsTransaction()
	b.AddHighlight(0, 0, 3, 1, 1, 1)
	b.AddHighlight(0, 3, 7, 2, 1, 2)
	b.EndHighlightsTransaction()

	spans, err := b.GetLineSpans(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 2 {
		t.Fatalf("got %+v, want 2 spans", spans)
	}
}

func TestAddHighlightByCharRangeSpansLines(t *testing.T) {
	b := buffer.New()
	b.SetText([]byte("abc\ndef"))
	// chars: a(0) b(1) c(2) \n(3, synthetic) d(4) e(5) f(6)
	if err := b.AddHighlightByCharRange(2, 5, 7, 1, 1); err != nil {
		t.Fatal(err)
	}
	line0, err := b.GetLineSpans(0)
	if err != nil {
		t.Fatal(err)
	}
	if !spansContainStyle(line0, 7) {
		t.Fatalf("expected line 0 to carry style 7 near its end, got %+v", line0)
	}
	line1, err := b.GetLineSpans(1)
	if err != nil {
		t.Fatal(err)
	}
	if !spansContainStyle(line1, 7) {
		t.Fatalf("expected line 1 to carry style 7, got %+v", line1)
	}
}

func spansContainStyle(spans []buffer.StyleSpan, style int) bool {
	for _, s := range spans {
		if s.StyleID == style {
			return true
		}
	}
	return false
}

func TestSetStyledTextAppliesPerChunkStyles(t *testing.T) {
	b := buffer.New()
	err := b.SetStyledText([]buffer.StyledChunk{
		{Text: []byte("func "), Style: "keyword"},
		{Text: []byte("main"), Style: "ident"},
	})
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 32)
	n := b.GetPlainTextInto(buf)
	if string(buf[:n]) != "func main" {
		t.Fatalf("got %q", buf[:n])
	}
	spans, err := b.GetLineSpans(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) == 0 {
		t.Fatal("expected spans from styled chunks")
	}
}

func TestAddLineAppendsStreamingly(t *testing.T) {
	b := buffer.New()
	b.AddLine([]byte("one"))
	b.AddLine([]byte("two"))
	if b.LineCount() != 2 {
		t.Fatalf("got %d lines, want 2", b.LineCount())
	}
	buf := make([]byte, 16)
	n := b.GetPlainTextInto(buf)
	if string(buf[:n]) != "one\ntwo" {
		t.Fatalf("got %q", buf[:n])
	}
}

func TestLoadFileDetectsLineEndings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.txt")
	if err := os.WriteFile(path, []byte("a\r\nb\r\nc"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := buffer.New()
	stats, err := b.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Dominant != buffer.LineEndingCRLF {
		t.Fatalf("got dominant %v, want CRLF", stats.Dominant)
	}
	if b.LineCount() != 3 {
		t.Fatalf("got %d lines, want 3", b.LineCount())
	}
}
