package buffer

import "github.com/clipperhouse/textrope/textropeerr"

// Highlight is one priority-ranked style range on a single logical
// line, identified by column (not byte) so it survives re-tokenization
// of the underlying bytes as long as line layout doesn't change.
type Highlight struct {
	Ref      int64
	ColStart int
	ColEnd   int
	StyleID  int
	Priority int
}

func (b *Buffer) markLineDirty(line int) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	if b.inTxn {
		if b.txnDirty == nil {
			b.txnDirty = make(map[int]bool)
		}
		b.txnDirty[line] = true
		return
	}
	b.lines[line].dirty = true
	b.lines[line].spans = nil
}

// AddHighlight adds a highlight to a single line by column range.
func (b *Buffer) AddHighlight(line, colStart, colEnd, styleID, priority int, ref int64) error {
	if line < 0 || line >= len(b.lines) {
		return textropeerr.New(textropeerr.InvalidIndex, "buffer: AddHighlight line out of range")
	}
	if colEnd < colStart {
		return textropeerr.New(textropeerr.InvalidDimensions, "buffer: AddHighlight colEnd before colStart")
	}
	b.lines[line].highlights = append(b.lines[line].highlights, Highlight{
		Ref: ref, ColStart: colStart, ColEnd: colEnd, StyleID: styleID, Priority: priority,
	})
	b.markLineDirty(line)
	return nil
}

// AddHighlightByCoords is AddHighlight by (startLine,startCol) to
// (endLine,endCol), added per touched line.
func (b *Buffer) AddHighlightByCoords(startLine, startCol, endLine, endCol, styleID, priority int, ref int64) error {
	if startLine < 0 || endLine >= len(b.lines) || startLine > endLine {
		return textropeerr.New(textropeerr.InvalidIndex, "buffer: AddHighlightByCoords range out of bounds")
	}
	for line := startLine; line <= endLine; line++ {
		w, err := b.lineWidth(line)
		if err != nil {
			return err
		}
		lo, hi := 0, w
		if line == startLine {
			lo = startCol
		}
		if line == endLine {
			hi = endCol
		}
		if lo > hi {
			continue
		}
		if err := b.AddHighlight(line, lo, hi, styleID, priority, ref); err != nil {
			return err
		}
	}
	return nil
}

// AddHighlightByCharRange expands a global character-offset range
// [start, end) into per-line (colStart, colEnd) highlights by walking
// line boundaries, then delegates to AddHighlight per touched line.
func (b *Buffer) AddHighlightByCharRange(start, end, styleID, priority int, ref int64) error {
	if end < start {
		return textropeerr.New(textropeerr.InvalidDimensions, "buffer: AddHighlightByCharRange end before start")
	}
	pos := 0
	for line := 0; line < len(b.lines); line++ {
		data, err := b.lineBytes(line)
		if err != nil {
			return err
		}
		_, chars := chunkMeasure(data, b.tabWidth)
		lineStart, lineEnd := pos, pos+chars
		pos = lineEnd + 1 // account for the newline between lines

		lo, hi := lineStart, lineEnd
		if start > lo {
			lo = start
		}
		if end < hi {
			hi = end
		}
		if lo >= hi {
			continue
		}
		if err := b.AddHighlight(line, lo-lineStart, hi-lineStart, styleID, priority, ref); err != nil {
			return err
		}
	}
	return nil
}

// RemoveHighlightsByRef drops every highlight across every line whose
// Ref matches ref, and marks the affected lines dirty.
func (b *Buffer) RemoveHighlightsByRef(ref int64) {
	for line := range b.lines {
		kept := b.lines[line].highlights[:0]
		removed := false
		for _, h := range b.lines[line].highlights {
			if h.Ref == ref {
				removed = true
				continue
			}
			kept = append(kept, h)
		}
		b.lines[line].highlights = kept
		if removed {
			b.markLineDirty(line)
		}
	}
}

// ClearLineHighlights drops every highlight on a single line.
func (b *Buffer) ClearLineHighlights(line int) {
	if line < 0 || line >= len(b.lines) {
		return
	}
	b.lines[line].highlights = nil
	b.markLineDirty(line)
}

// ClearAllHighlights drops every highlight on every line.
func (b *Buffer) ClearAllHighlights() {
	for line := range b.lines {
		b.lines[line].highlights = nil
		b.markLineDirty(line)
	}
}

// StartHighlightsTransaction defers span rebuilds until
// EndHighlightsTransaction, for batches of highlight edits.
func (b *Buffer) StartHighlightsTransaction() {
	b.inTxn = true
	b.txnDirty = nil
}

// EndHighlightsTransaction marks every line touched during the
// transaction dirty (span rebuilds themselves stay lazy, happening on
// next read) and ends batch mode.
func (b *Buffer) EndHighlightsTransaction() {
	b.inTxn = false
	for line := range b.txnDirty {
		b.lines[line].dirty = true
		b.lines[line].spans = nil
	}
	b.txnDirty = nil
}
