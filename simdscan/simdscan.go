// Package simdscan implements the byte-scanning operations that feed the
// rope and view layers: line-break detection, wrap-point detection, tab
// stops, and width-bounded position lookup.
//
// None of this is actual SIMD (no assembly, no unsafe): the scanners are
// plain byte loops with switch-based classifiers, walking cluster by
// cluster (via the graphemes package) wherever Unicode semantics are
// required. All functions are pure: they append to a caller-owned slice
// and never mutate the input.
package simdscan

import (
	"unicode/utf8"

	"github.com/clipperhouse/textrope/graphemes"
	"github.com/clipperhouse/textrope/width"
)

// LineBreakKind identifies the flavor of a detected line break.
type LineBreakKind uint8

const (
	LF LineBreakKind = iota
	CR
	CRLF
)

// LineBreak is one line-terminator occurrence.
type LineBreak struct {
	Pos  int
	Kind LineBreakKind
}

// FindLineBreaks appends every line break found in data to dst and returns
// the extended slice. CRLF is reported once, at the position of the LF
// byte.
func FindLineBreaks(data []byte, dst []LineBreak) []LineBreak {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			if i > 0 && data[i-1] == '\r' {
				dst[len(dst)-1] = LineBreak{Pos: i, Kind: CRLF}
				continue
			}
			dst = append(dst, LineBreak{Pos: i, Kind: LF})
		case '\r':
			dst = append(dst, LineBreak{Pos: i, Kind: CR})
		}
	}
	return dst
}

// WrapBreak is a candidate wrap point: the byte offset into the scanned
// slice, and the grapheme-cluster ("char") offset from the start of the
// scan.
type WrapBreak struct {
	ByteOffset int
	CharOffset int
}

// asciiWrapPoint is a branchless classifier for the ASCII wrap-point set:
// space, tab, '-', '/', '\', '.', ',', ';', ':', '!', '?', and brackets.
func asciiWrapPoint(b byte) bool {
	switch b {
	case ' ', '\t', '-', '/', '\\', '.', ',', ';', ':', '!', '?',
		'(', ')', '[', ']', '{', '}', '<', '>':
		return true
	}
	return false
}

// unicodeWrapPoint reports whether r is a non-ASCII wrap point: NBSP and
// the other Unicode space separators (U+2000-U+200A, U+202F, U+205F,
// U+3000), ZWSP (U+200B), and soft/hard hyphen.
func unicodeWrapPoint(r rune) bool {
	switch {
	case r == 0x00A0, // NBSP
		r >= 0x2000 && r <= 0x200A, // en quad .. hair space
		r == 0x202F, // narrow NBSP
		r == 0x205F, // medium mathematical space
		r == 0x3000, // ideographic space
		r == 0x200B, // ZWSP
		r == 0x00AD, // soft hyphen
		r == 0x2010, // hyphen
		r == 0x2011: // non-breaking hyphen
		return true
	}
	return false
}

// FindWrapBreaks appends every wrap point in data to dst. It always walks
// grapheme clusters, so CharOffset stays accurate for multi-byte
// sequences; a single-byte ASCII cluster is tested with the ASCII
// classifier, any other cluster by its first rune.
func FindWrapBreaks(data []byte, dst []WrapBreak) []WrapBreak {
	charOffset := 0
	g := graphemes.FromBytes(data)
	for g.Next() {
		cluster := g.Value()
		if len(cluster) == 1 && cluster[0] < 0x80 {
			if asciiWrapPoint(cluster[0]) {
				dst = append(dst, WrapBreak{ByteOffset: g.Start(), CharOffset: charOffset})
			}
		} else if r, _ := utf8.DecodeRune(cluster); unicodeWrapPoint(r) {
			dst = append(dst, WrapBreak{ByteOffset: g.Start(), CharOffset: charOffset})
		}
		charOffset++
	}
	return dst
}

// FindTabStops appends the byte position of every tab character in data.
func FindTabStops(data []byte, dst []int) []int {
	for i := 0; i < len(data); i++ {
		if data[i] == '\t' {
			dst = append(dst, i)
		}
	}
	return dst
}

// IsASCIIOnly reports whether every byte in data is a printable ASCII
// codepoint in [0x20, 0x7E]. It's vectorized in spirit only: a tight
// range-test loop that the compiler can unroll, with no early branch
// misprediction penalty on typical (mostly-ASCII) input.
func IsASCIIOnly(data []byte) bool {
	for _, b := range data {
		if b < 0x20 || b > 0x7E {
			return false
		}
	}
	return true
}

// BoundaryMode selects how FindPosByWidth treats the column at which the
// requested width is reached.
type BoundaryMode int

const (
	// ModeWrap stops before exceeding the limit: never emit a cluster
	// that would overflow max_columns.
	ModeWrap BoundaryMode = iota
	// ModePos stops at or after the limit: used to map a visual column
	// to a character offset for selection.
	ModePos
)

// PositionResult is the outcome of a width-bounded scan.
type PositionResult struct {
	ByteOffset   int
	GraphemeCount int
	ColumnsUsed  int
}

// FindPosByWidth scans data byte-by-byte when all of it is printable
// ASCII, cluster-by-cluster otherwise, accumulating display width until maxColumns is
// reached, per mode. tabWidth governs tab expansion.
func FindPosByWidth(data []byte, maxColumns, tabWidth int, mode BoundaryMode) PositionResult {
	if IsASCIIOnly(data) {
		return findPosByWidthASCII(data, maxColumns, tabWidth, mode)
	}
	return findPosByWidthGeneral(data, maxColumns, tabWidth, mode)
}

// FindWrapPosByWidth is FindPosByWidth fixed to ModeWrap, the shape the
// view layer uses when laying out a virtual line.
func FindWrapPosByWidth(data []byte, maxColumns, tabWidth int) PositionResult {
	return FindPosByWidth(data, maxColumns, tabWidth, ModeWrap)
}

func findPosByWidthASCII(data []byte, maxColumns, tabWidth int, mode BoundaryMode) PositionResult {
	col := 0
	count := 0
	for i := 0; i < len(data); i++ {
		w := 1
		if data[i] == '\t' {
			w = width.Of(data[i:i+1], tabWidth, col)
		}
		if col+w > maxColumns {
			switch mode {
			case ModeWrap:
				return PositionResult{ByteOffset: i, GraphemeCount: count, ColumnsUsed: col}
			case ModePos:
				return PositionResult{ByteOffset: i + 1, GraphemeCount: count + 1, ColumnsUsed: col + w}
			}
		}
		col += w
		count++
	}
	return PositionResult{ByteOffset: len(data), GraphemeCount: count, ColumnsUsed: col}
}

func findPosByWidthGeneral(data []byte, maxColumns, tabWidth int, mode BoundaryMode) PositionResult {
	col := 0
	count := 0
	g := graphemes.FromBytes(data)
	for g.Next() {
		cluster := g.Value()
		w := width.Of(cluster, tabWidth, col)
		if col+w > maxColumns {
			switch mode {
			case ModeWrap:
				return PositionResult{ByteOffset: g.Start(), GraphemeCount: count, ColumnsUsed: col}
			case ModePos:
				return PositionResult{ByteOffset: g.End(), GraphemeCount: count + 1, ColumnsUsed: col + w}
			}
		}
		col += w
		count++
	}
	return PositionResult{ByteOffset: len(data), GraphemeCount: count, ColumnsUsed: col}
}
