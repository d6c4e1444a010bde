// Package graphemes segments text into Unicode grapheme clusters
// (https://unicode.org/reports/tr29/#Grapheme_Cluster_Boundaries), delegating
// the segmentation algorithm to the upstream uax29/v2 module rather than
// reimplementing it locally.
package graphemes

import uax29graphemes "github.com/clipperhouse/uax29/v2/graphemes"

// BytesIterator is an iterator over the grapheme clusters of a []byte.
type BytesIterator = uax29graphemes.Iterator[[]byte]

// StringIterator is an iterator over the grapheme clusters of a string.
type StringIterator = uax29graphemes.Iterator[string]

// FromString returns an iterator for the grapheme clusters in the input string.
// Iterate while Next() is true, and access the grapheme via Value().
func FromString(s string) *StringIterator {
	return uax29graphemes.FromString(s)
}

// FromBytes returns an iterator for the grapheme clusters in the input bytes.
// Iterate while Next() is true, and access the grapheme via Value().
func FromBytes(b []byte) *BytesIterator {
	return uax29graphemes.FromBytes(b)
}
