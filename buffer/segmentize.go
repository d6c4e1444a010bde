package buffer

import (
	"github.com/clipperhouse/textrope/graphemes"
	"github.com/clipperhouse/textrope/segment"
	"github.com/clipperhouse/textrope/simdscan"
	"github.com/clipperhouse/textrope/width"
)

// chunkMeasure sums the display width and grapheme count of data,
// expanding tabs against a column counter that starts at 0 for each
// call — correct here because segmentize only ever calls this per
// logical line, and a line's own content always starts at column 0.
func chunkMeasure(data []byte, tabWidth int) (cols, chars int) {
	col := 0
	g := graphemes.FromBytes(data)
	for g.Next() {
		col += width.Of(g.Value(), tabWidth, col)
		chars++
	}
	return col, chars
}

// segmentize turns the byte range [byteStart, byteEnd) of region memID
// into a canonical leaf sequence: a LineStart, an optional TextChunk, and
// a Break between consecutive lines, mirroring set_text's algorithm of
// interleaving those three leaf kinds around the line breaks the scanner
// finds.
func segmentize(data []byte, memID uint8, byteStart int, tabWidth int) (leaves []segment.Leaf, lineCount, charCount int) {
	var breaks []simdscan.LineBreak
	breaks = simdscan.FindLineBreaks(data, breaks)

	leaves = make([]segment.Leaf, 0, 2*(len(breaks)+1))
	lineStart := 0
	emitLine := func(lineEnd int) {
		leaves = append(leaves, segment.NewLineStart())
		lineCount++
		if lineEnd > lineStart {
			line := data[lineStart:lineEnd]
			w, n := chunkMeasure(line, tabWidth)
			leaves = append(leaves, segment.TextChunk(memID, byteStart+lineStart, byteStart+lineEnd, w, 0))
			charCount += n
		}
	}

	for _, b := range breaks {
		lineEnd := b.Pos
		if b.Kind == simdscan.CRLF {
			lineEnd-- // the CR belongs to the terminator, not the line
		}
		emitLine(lineEnd)
		leaves = append(leaves, segment.NewBreak())
		lineStart = b.Pos + 1
	}
	emitLine(len(data))

	return leaves, lineCount, charCount
}
