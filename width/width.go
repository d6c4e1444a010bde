// Package width computes the display width, in terminal columns, of a
// single grapheme cluster. It is the companion oracle to graphemes: callers
// segment text into clusters with graphemes, then ask width for columns.
package width

import (
	"unicode/utf8"

	"github.com/clipperhouse/displaywidth"
	"golang.org/x/text/width"
)

// ReplacementChar is the width assigned to a decode failure, per the
// grapheme oracle's malformed-UTF-8 handling.
const ReplacementChar = 1

// Of returns the display width in columns of a single grapheme cluster.
// tabWidth is the configured tab stop size; colOffset is the current
// column position on the line, used to compute how far a tab expands.
//
// Regional Indicator pairs (flag emoji) are special-cased to width 2: the
// grapheme segmenter already merges a valid RI pair into one cluster per
// GB12/13, but the individual codepoints are narrow, so displaywidth would
// otherwise undercount them.
func Of(cluster []byte, tabWidth, colOffset int) int {
	if len(cluster) == 0 {
		return 0
	}

	if cluster[0] == '\t' {
		if tabWidth <= 0 {
			return 0
		}
		used := colOffset % tabWidth
		return tabWidth - used
	}

	if n, ok := regionalIndicatorPairWidth(cluster); ok {
		return n
	}

	r, size := utf8.DecodeRune(cluster)
	if r == utf8.RuneError && size <= 1 {
		return ReplacementChar
	}

	return clusterWidth(cluster)
}

// OfString is the string-keyed equivalent of Of.
func OfString(cluster string, tabWidth, colOffset int) int {
	return Of([]byte(cluster), tabWidth, colOffset)
}

func clusterWidth(cluster []byte) int {
	w := displaywidth.Bytes(cluster)
	if w >= 0 {
		return w
	}
	// displaywidth reports a negative width for control characters; the
	// oracle has no notion of control-only clusters reaching here since
	// the grapheme segmenter breaks around them, but guard regardless.
	return 0
}

// regionalIndicatorPairWidth reports whether cluster decodes to exactly
// two Regional Indicator runes, and if so its forced width.
func regionalIndicatorPairWidth(cluster []byte) (int, bool) {
	r1, n1 := utf8.DecodeRune(cluster)
	if !isRegionalIndicator(r1) {
		return 0, false
	}
	rest := cluster[n1:]
	if len(rest) == 0 {
		return 0, false
	}
	r2, n2 := utf8.DecodeRune(rest)
	if !isRegionalIndicator(r2) || n1+n2 != len(cluster) {
		return 0, false
	}
	return 2, true
}

func isRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// AmbiguousAsNarrow reports whether r is treated as narrow (width 1): true
// for the East Asian Ambiguous, Neutral, Narrow and Halfwidth categories,
// false for Wide and Fullwidth.
func AmbiguousAsNarrow(r rune) bool {
	p := width.LookupRune(r)
	switch p.Kind() {
	case width.EastAsianAmbiguous, width.Neutral, width.EastAsianNarrow, width.EastAsianHalfwidth:
		return true
	default:
		return false
	}
}
