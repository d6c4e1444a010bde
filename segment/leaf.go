// Package segment defines the concrete rope leaf used by the text buffer:
// a tagged union of TextChunk, LineStart, Break and Marker variants, plus
// a small append-only memory-region Registry that TextChunks reference by
// mem_id instead of carrying their own bytes.
package segment

import "github.com/clipperhouse/textrope/rope"

// Kind identifies which variant of the tagged union a Leaf holds.
type Kind uint8

const (
	// KindTextChunk is a run of text referencing a byte range of a
	// registered memory region.
	KindTextChunk Kind = iota
	// KindLineStart marks the beginning of a logical line. It carries
	// zero bytes and weight 1, so line count falls out of the rope's
	// own Count/Weight metrics.
	KindLineStart
	// KindBreak is a hard break, redundant with LineStart in meaning
	// but kept distinct for view pagination.
	KindBreak
	// KindMarker is an extensibility hook: a zero-weight, zero-byte
	// leaf tracked by tag in the rope's marker cache.
	KindMarker
)

// Leaf is the textrope buffer's rope element. Only the fields relevant
// to Kind are meaningful; this mirrors a tagged union without needing an
// interface, keeping leaves cheap to copy and store by value in rope
// nodes.
type Leaf struct {
	Kind Kind

	// TextChunk fields.
	MemID     uint8
	ByteStart int
	ByteEnd   int
	Width     int
	Flags     uint8

	// Marker fields.
	MarkerTagName string
	MarkerRef     int64
}

// TextChunk constructs a KindTextChunk leaf.
func TextChunk(memID uint8, byteStart, byteEnd, width int, flags uint8) Leaf {
	return Leaf{Kind: KindTextChunk, MemID: memID, ByteStart: byteStart, ByteEnd: byteEnd, Width: width, Flags: flags}
}

// NewLineStart constructs a KindLineStart leaf.
func NewLineStart() Leaf { return Leaf{Kind: KindLineStart} }

// NewBreak constructs a KindBreak leaf.
func NewBreak() Leaf { return Leaf{Kind: KindBreak} }

// NewMarker constructs a KindMarker leaf carrying tag and an opaque ref,
// used by callers to correlate the marker back to their own bookkeeping
// (e.g. a highlight ID).
func NewMarker(tag string, ref int64) Leaf {
	return Leaf{Kind: KindMarker, MarkerTagName: tag, MarkerRef: ref}
}

// ByteLen returns the number of source bytes this leaf spans.
func (l Leaf) ByteLen() int {
	if l.Kind != KindTextChunk {
		return 0
	}
	return l.ByteEnd - l.ByteStart
}

// Measure implements rope.Leaf.
func (l Leaf) Measure() rope.Metrics {
	m := rope.Metrics{Count: 1, Weight: l.Weight(), Bytes: l.ByteLen()}
	if l.Kind == KindMarker {
		m.Markers = map[string]int{l.MarkerTagName: 1}
	}
	return m
}

// Weight implements rope.Leaf. For a TextChunk this is display width in
// columns; LineStart carries weight 1 so line-count indexing falls out
// of Metrics.Weight when the rope holds only LineStarts and TextChunks
// in column-weighted contexts, and 0 for Break/Marker.
func (l Leaf) Weight() int {
	switch l.Kind {
	case KindTextChunk:
		return l.Width
	case KindLineStart:
		return 1
	default:
		return 0
	}
}

// CanMerge implements rope.Mergeable: two TextChunks referencing the same
// region with adjacent byte ranges may be coalesced.
func (l Leaf) CanMerge(other Leaf) bool {
	return l.Kind == KindTextChunk && other.Kind == KindTextChunk &&
		l.MemID == other.MemID && l.ByteEnd == other.ByteStart && l.Flags == other.Flags
}

// Merge implements rope.Mergeable.
func (l Leaf) Merge(other Leaf) Leaf {
	return Leaf{
		Kind:      KindTextChunk,
		MemID:     l.MemID,
		ByteStart: l.ByteStart,
		ByteEnd:   other.ByteEnd,
		Width:     l.Width + other.Width,
		Flags:     l.Flags,
	}
}

// RewriteEnds implements rope.EndsRewriter: the tree must begin with a
// LineStart. If it doesn't, one is synthesized ahead of the existing
// first leaf.
func (l Leaf) RewriteEnds(first, last Leaf) rope.EndsEdit[Leaf] {
	var edit rope.EndsEdit[Leaf]
	if first.Kind != KindLineStart {
		edit.ReplaceFirst = []Leaf{NewLineStart(), first}
	}
	return edit
}

// MarkerTag implements rope.MarkerTagged.
func (l Leaf) MarkerTag() (string, bool) {
	if l.Kind != KindMarker {
		return "", false
	}
	return l.MarkerTagName, true
}
