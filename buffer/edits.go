package buffer

import (
	"bytes"

	"github.com/clipperhouse/textrope/graphemes"
	"github.com/clipperhouse/textrope/rope"
	"github.com/clipperhouse/textrope/segment"
	"github.com/clipperhouse/textrope/textropeerr"
	"github.com/clipperhouse/textrope/width"
)

// weightAt converts a (row, col) logical coordinate to the rope's
// weight space (display columns, with every LineStart contributing 1):
// the count of LineStart leaves through row, plus the display width of
// every earlier line, plus col clamped to row's own width.
func (b *Buffer) weightAt(row, col int) (int, error) {
	if row < 0 || row >= len(b.lines) {
		return 0, textropeerr.New(textropeerr.InvalidIndex, "buffer: row out of range")
	}
	w := row + 1
	for r := 0; r < row; r++ {
		lw, err := b.lineWidth(r)
		if err != nil {
			return 0, err
		}
		w += lw
	}
	lw, err := b.lineWidth(row)
	if err != nil {
		return 0, err
	}
	if col < 0 {
		col = 0
	}
	if col > lw {
		col = lw
	}
	return w + col, nil
}

// charsInCoordRange sums the content (non-newline) character count
// covered by [(startRow,startCol), (endRow,endCol)), columns being
// display columns.
func (b *Buffer) charsInCoordRange(startRow, startCol, endRow, endCol int) (int, error) {
	// byteAtCol cuts at a display column the way makeSplitLeaf does: a
	// cluster that starts before col stays whole on the left.
	byteAtCol := func(data []byte, col int) int {
		c, off := 0, 0
		g := graphemes.FromBytes(data)
		for g.Next() {
			if c >= col {
				break
			}
			c += width.Of(g.Value(), b.tabWidth, c)
			off += len(g.Value())
		}
		return off
	}
	total := 0
	for r := startRow; r <= endRow; r++ {
		data, err := b.lineBytes(r)
		if err != nil {
			return 0, err
		}
		lo, hi := 0, len(data)
		if r == startRow {
			lo = byteAtCol(data, startCol)
		}
		if r == endRow {
			hi = byteAtCol(data, endCol)
		}
		if lo > hi {
			lo = hi
		}
		_, chars := chunkMeasure(data[lo:hi], b.tabWidth)
		total += chars
	}
	return total, nil
}

// makeSplitLeaf returns the split_leaf callback the rope's weight-based
// insert/delete use to bisect a TextChunk: it walks the chunk's bytes
// grapheme-by-grapheme, accumulating display width until wInLeaf is
// reached, never cutting inside a cluster.
func (b *Buffer) makeSplitLeaf() rope.SplitLeafFunc[segment.Leaf] {
	return func(leaf segment.Leaf, wInLeaf int) (segment.Leaf, segment.Leaf) {
		if leaf.Kind != segment.KindTextChunk {
			return leaf, leaf
		}
		data, err := b.registry.Bytes(leaf.MemID, leaf.ByteStart, leaf.ByteEnd)
		if err != nil {
			return leaf, leaf
		}
		col, byteOff := 0, 0
		g := graphemes.FromBytes(data)
		for g.Next() {
			c := g.Value()
			if col >= wInLeaf {
				break
			}
			col += width.Of(c, b.tabWidth, col)
			byteOff += len(c)
		}
		left := segment.TextChunk(leaf.MemID, leaf.ByteStart, leaf.ByteStart+byteOff, col, leaf.Flags)
		right := segment.TextChunk(leaf.MemID, leaf.ByteStart+byteOff, leaf.ByteEnd, leaf.Width-col, leaf.Flags)
		return left, right
	}
}

// appendEdit appends data to the buffer's edit arena (grown with plain
// append, unlike the styled-text scratch region's explicit doubling)
// and keeps the memory registry's region pointed at the current backing
// array, returning the byte range data now occupies.
func (b *Buffer) appendEdit(data []byte) (memID uint8, start, end int, err error) {
	start = len(b.editArena)
	b.editArena = append(b.editArena, data...)
	end = len(b.editArena)
	if !b.hasEditMemID {
		id, regErr := b.registry.Register(b.editArena)
		if regErr != nil {
			return 0, 0, 0, regErr
		}
		b.editMemID = id
		b.hasEditMemID = true
	} else {
		b.registry.Replace(b.editMemID, b.editArena)
	}
	return b.editMemID, start, end, nil
}

// buildInsertLeaves segmentizes data the same way SetText does, but
// drops the leading LineStart: the inserted text continues whatever
// line it lands in rather than starting a new one. extraLines is the
// number of new logical lines the insertion creates.
func (b *Buffer) buildInsertLeaves(data []byte, memID uint8, byteStart int) (leaves []segment.Leaf, extraLines, chars int) {
	all, lineCount, charCount := segmentize(data, memID, byteStart, b.tabWidth)
	if len(all) > 0 && all[0].Kind == segment.KindLineStart {
		all = all[1:]
	}
	return all, lineCount - 1, charCount
}

// InsertTextAt inserts text at (row, col), returning the cursor
// position immediately after the inserted text. text may contain
// newlines, splitting row into multiple lines.
func (b *Buffer) InsertTextAt(row, col int, text []byte) (newRow, newCol int, err error) {
	if row < 0 || row >= len(b.lines) {
		return 0, 0, textropeerr.New(textropeerr.InvalidIndex, "buffer: InsertTextAt row out of range")
	}
	if len(text) == 0 {
		return row, col, nil
	}
	lw, err := b.lineWidth(row)
	if err != nil {
		return 0, 0, err
	}
	colClamped := col
	if colClamped < 0 {
		colClamped = 0
	}
	if colClamped > lw {
		colClamped = lw
	}

	w, err := b.weightAt(row, colClamped)
	if err != nil {
		return 0, 0, err
	}
	memID, start, _, err := b.appendEdit(text)
	if err != nil {
		return 0, 0, err
	}
	items, extraLines, chars := b.buildInsertLeaves(text, memID, start)

	b.rope.InsertSliceByWeight(w, items, b.makeSplitLeaf())

	if extraLines > 0 {
		tail := append([]lineState(nil), b.lines[row+1:]...)
		newEntries := make([]lineState, extraLines)
		b.lines = append(b.lines[:row+1], append(newEntries, tail...)...)
	}
	b.charCount += chars
	b.markLineDirty(row)
	b.bumpVersion()

	lastNL := bytes.LastIndexByte(text, '\n')
	var lastSeg []byte
	if lastNL < 0 {
		lastSeg = text
	} else {
		lastSeg = text[lastNL+1:]
	}
	lastCols, _ := chunkMeasure(lastSeg, b.tabWidth)

	if extraLines == 0 {
		return row, colClamped + lastCols, nil
	}
	return row + extraLines, lastCols, nil
}

// DeleteRangeCoords deletes the text in [(startRow,startCol), (endRow,endCol)),
// merging any fully-enclosed lines into startRow.
func (b *Buffer) DeleteRangeCoords(startRow, startCol, endRow, endCol int) error {
	if startRow < 0 || endRow >= len(b.lines) {
		return textropeerr.New(textropeerr.InvalidIndex, "buffer: DeleteRangeCoords row out of range")
	}
	if startRow > endRow || (startRow == endRow && startCol > endCol) {
		startRow, startCol, endRow, endCol = endRow, endCol, startRow, startCol
	}
	if startRow == endRow && startCol == endCol {
		return nil
	}

	wStart, err := b.weightAt(startRow, startCol)
	if err != nil {
		return err
	}
	wEnd, err := b.weightAt(endRow, endCol)
	if err != nil {
		return err
	}
	if wEnd <= wStart {
		return nil
	}
	chars, err := b.charsInCoordRange(startRow, startCol, endRow, endCol)
	if err != nil {
		return err
	}

	b.rope.DeleteRangeByWeight(wStart, wEnd, b.makeSplitLeaf())

	removeCount := endRow - startRow
	if removeCount > 0 {
		b.lines = append(b.lines[:startRow+1], b.lines[startRow+1+removeCount:]...)
	}
	b.charCount -= chars
	b.markLineDirty(startRow)
	b.bumpVersion()
	return nil
}

// resync recomputes line count and total character count from the
// rope's current content. Called after Undo/Redo, which restore a past
// rope root directly rather than replaying edits the buffer's line and
// highlight bookkeeping could incrementally track; per-line highlights
// are not restored by undo (a host re-applies its own highlighter after
// undoing, same as most editors).
func (b *Buffer) resync() {
	n := b.rope.Len()
	lineCount, chars := 0, 0
	for idx := 0; idx < n; idx++ {
		leaf, _ := b.rope.Get(idx)
		switch leaf.Kind {
		case segment.KindLineStart:
			lineCount++
		case segment.KindTextChunk:
			data, err := b.registry.Bytes(leaf.MemID, leaf.ByteStart, leaf.ByteEnd)
			if err == nil {
				_, c := chunkMeasure(data, b.tabWidth)
				chars += c
			}
		}
	}
	b.lines = make([]lineState, lineCount)
	b.charCount = chars
}

// StoreUndo records the current rope state under meta, to be restored
// by a later Undo.
func (b *Buffer) StoreUndo(meta any) {
	b.rope.StoreUndo(meta)
}

// Undo restores the rope to its state before the most recent StoreUndo
// and recomputes line/char bookkeeping from it.
func (b *Buffer) Undo() (meta any, ok bool) {
	meta, ok = b.rope.Undo()
	if ok {
		b.resync()
		b.bumpVersion()
	}
	return meta, ok
}

// Redo re-applies the most recently undone edit.
func (b *Buffer) Redo() (meta any, ok bool) {
	meta, ok = b.rope.Redo()
	if ok {
		b.resync()
		b.bumpVersion()
	}
	return meta, ok
}

// CanUndo reports whether Undo would succeed.
func (b *Buffer) CanUndo() bool { return b.rope.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (b *Buffer) CanRedo() bool { return b.rope.CanRedo() }
