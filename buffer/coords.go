package buffer

import "github.com/clipperhouse/textrope/graphemes"

// clampByteCol returns the byte offset into line corresponding to the
// charCol-th grapheme boundary, clamped to len(line) if charCol runs
// past the line's grapheme count.
func clampByteCol(line []byte, charCol int, tabWidth int) int {
	if charCol <= 0 {
		return 0
	}
	n, byteOff := 0, 0
	g := graphemes.FromBytes(line)
	for g.Next() {
		if n == charCol {
			return byteOff
		}
		byteOff += len(g.Value())
		n++
	}
	return len(line)
}
