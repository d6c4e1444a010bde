// Package buffer implements the text buffer that sits on top of the
// segment rope: it ingests raw UTF-8 into segments, tracks per-line
// highlight lists, and materializes those highlights into style spans
// on demand.
package buffer

import (
	"bytes"

	"github.com/clipperhouse/textrope/rope"
	"github.com/clipperhouse/textrope/segment"
	"github.com/clipperhouse/textrope/textropeerr"
	"github.com/clipperhouse/textrope/textropelog"
)

// lineState holds one logical line's highlight list and its lazily
// materialized style spans.
type lineState struct {
	highlights []Highlight
	spans      []StyleSpan
	dirty      bool
}

// Buffer is the text-buffer engine: a segment rope plus the memory
// region registry it references, per-line highlight storage, and a
// version counter views key their rebuild decisions on.
type Buffer struct {
	registry *segment.Registry
	rope     *rope.Rope[segment.Leaf]

	lines []lineState

	version  int
	tabWidth int
	sink     textropelog.Sink

	inTxn      bool
	txnDirty   map[int]bool

	charCount int

	scratch         []byte
	scratchMemID    uint8
	hasScratchMemID bool
	styles          *StyleRegistry

	editArena    []byte
	editMemID    uint8
	hasEditMemID bool
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithTabWidth sets the column width a tab expands to. Default is 4.
func WithTabWidth(n int) Option {
	return func(b *Buffer) { b.tabWidth = n }
}

// WithSink installs a diagnostic log sink. Default is textropelog.NoSink.
func WithSink(s textropelog.Sink) Option {
	return func(b *Buffer) { b.sink = s }
}

// New creates an empty Buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		registry: segment.NewRegistry(),
		rope:     rope.New[segment.Leaf](),
		tabWidth: 4,
		sink:     textropelog.NoSink,
		styles:   NewStyleRegistry(),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// LineCount returns the number of logical lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Length returns the total grapheme ("character") count of the buffer's
// text content, excluding synthetic line breaks.
func (b *Buffer) Length() int {
	return b.charCount
}

// ByteSize returns the total bytes of text content referenced by the
// rope, excluding synthetic line breaks.
func (b *Buffer) ByteSize() int {
	return b.rope.Measure().Bytes
}

// TabWidth returns the column width a tab expands to.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// Version returns the buffer's edit version, bumped on every content
// mutation; views use it to decide whether to rebuild.
func (b *Buffer) Version() int {
	return b.version
}

func (b *Buffer) bumpVersion() {
	b.version++
}

// SetText replaces the buffer's content wholesale: it registers data as
// a new memory region, segments it into LineStart/TextChunk/Break
// leaves, and rebuilds the rope from that leaf slice in one shot.
func (b *Buffer) SetText(data []byte) error {
	memID, err := b.registry.Register(data)
	if err != nil {
		b.sink.Errorf("buffer: SetText register failed: %v", err)
		return err
	}
	return b.setTextFromRegion(memID, 0, len(data), data)
}

// SetTextFromMemID replaces the buffer's content from an already
// registered memory region, without copying or re-registering bytes.
func (b *Buffer) SetTextFromMemID(memID uint8, byteStart, byteEnd int) error {
	data, err := b.registry.Bytes(memID, byteStart, byteEnd)
	if err != nil {
		b.sink.Errorf("buffer: SetTextFromMemID failed: %v", err)
		return err
	}
	return b.setTextFromRegion(memID, byteStart, byteEnd, data)
}

func (b *Buffer) setTextFromRegion(memID uint8, byteStart, byteEnd int, data []byte) error {
	leaves, lineCount, charCount := segmentize(data, memID, byteStart, b.tabWidth)

	b.rope = rope.New[segment.Leaf]()
	b.rope.InsertSlice(0, leaves)

	b.lines = make([]lineState, lineCount)
	b.charCount = charCount
	b.bumpVersion()
	return nil
}

// AddLine appends a single line of text (no embedded line breaks
// expected, though any found are honored) to the end of the buffer,
// registering data as its own memory region. This is the streaming
// ingestion path; callers that add many lines should call Rebalance
// once at the end.
func (b *Buffer) AddLine(data []byte) error {
	memID, err := b.registry.Register(data)
	if err != nil {
		b.sink.Errorf("buffer: AddLine register failed: %v", err)
		return err
	}
	leaves, lineCount, charCount := segmentize(data, memID, 0, b.tabWidth)
	if b.rope.Len() > 0 {
		leaves = append([]segment.Leaf{segment.NewBreak()}, leaves...)
	}
	b.rope.InsertSlice(b.rope.Len(), leaves)
	for i := 0; i < lineCount; i++ {
		b.lines = append(b.lines, lineState{})
	}
	b.charCount += charCount
	b.bumpVersion()
	return nil
}

// Rebalance rebuilds the rope into a balanced tree, useful after many
// AddLine calls have left it skewed.
func (b *Buffer) Rebalance() {
	b.rope.Rebalance()
}

// Clear replaces the buffer's content with nothing. The memory registry
// is not reclaimed; use Reset for that. Per-line highlight lists live
// with the lines and are dropped along with them.
func (b *Buffer) Clear() {
	b.rope = rope.New[segment.Leaf]()
	b.lines = nil
	b.charCount = 0
	b.bumpVersion()
}

// Reset clears content, drops every registered memory region (recycling
// their ids), and discards all highlight storage and the styled-text
// scratch region.
func (b *Buffer) Reset() {
	b.Clear()
	b.registry.Reset()
	b.scratch = nil
	b.hasScratchMemID = false
	b.editArena = nil
	b.hasEditMemID = false
	b.styles = NewStyleRegistry()
}

// lineBounds returns the leaf-index range [start, end) of logical line i
// within the rope, and ok=false if i is out of range.
func (b *Buffer) lineBounds(i int) (start, end int, ok bool) {
	if i < 0 || i >= len(b.lines) {
		return 0, 0, false
	}
	// The marker cache indexes KindMarker leaves, not LineStart, so line
	// bounds are found by a direct walk instead.
	count := -1
	n := b.rope.Len()
	lineStartIdx := -1
	for idx := 0; idx < n; idx++ {
		leaf, _ := b.rope.Get(idx)
		if leaf.Kind == segment.KindLineStart {
			count++
			if count == i {
				lineStartIdx = idx
			} else if count == i+1 {
				return lineStartIdx, idx, true
			}
		}
	}
	if lineStartIdx == -1 {
		return 0, 0, false
	}
	return lineStartIdx, n, true
}

// lineBytes returns the concatenated source bytes of logical line i (no
// trailing newline).
func (b *Buffer) lineBytes(i int) ([]byte, error) {
	start, end, ok := b.lineBounds(i)
	if !ok {
		return nil, textropeerr.New(textropeerr.InvalidIndex, "buffer: line index out of range")
	}
	var out []byte
	for idx := start; idx < end; idx++ {
		leaf, _ := b.rope.Get(idx)
		if leaf.Kind != segment.KindTextChunk {
			continue
		}
		chunk, err := b.registry.Bytes(leaf.MemID, leaf.ByteStart, leaf.ByteEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
	return out, nil
}

// lineWidth returns the display width of logical line i.
func (b *Buffer) lineWidth(i int) (int, error) {
	start, end, ok := b.lineBounds(i)
	if !ok {
		return 0, textropeerr.New(textropeerr.InvalidIndex, "buffer: line index out of range")
	}
	w := 0
	for idx := start; idx < end; idx++ {
		leaf, _ := b.rope.Get(idx)
		if leaf.Kind == segment.KindTextChunk {
			w += leaf.Width
		}
	}
	return w, nil
}

// LineBytes returns the concatenated source bytes of logical line i (no
// trailing newline). Exported for the view package, which needs raw
// line content to lay out virtual lines.
func (b *Buffer) LineBytes(i int) ([]byte, error) {
	return b.lineBytes(i)
}

// LineWidth returns the display width of logical line i.
func (b *Buffer) LineWidth(i int) (int, error) {
	return b.lineWidth(i)
}

// GetPlainTextInto walks every line, copying each line's bytes into buf
// and inserting '\n' between lines (never after the last), truncating
// to len(buf). It returns the number of bytes written.
func (b *Buffer) GetPlainTextInto(buf []byte) int {
	var w bytes.Buffer
	for i := 0; i < len(b.lines); i++ {
		if i > 0 {
			w.WriteByte('\n')
		}
		line, err := b.lineBytes(i)
		if err != nil {
			b.sink.Warnf("buffer: GetPlainTextInto line %d: %v", i, err)
			continue
		}
		w.Write(line)
	}
	return copy(buf, w.Bytes())
}

// GetSelectedTextInto copies the text in [(startLine,startCol), (endLine,endCol))
// into buf, inserting '\n' between selected lines, truncating to len(buf).
func (b *Buffer) GetSelectedTextInto(buf []byte, startLine, startCol, endLine, endCol int) (int, error) {
	if startLine < 0 || endLine >= len(b.lines) || startLine > endLine {
		return 0, textropeerr.New(textropeerr.InvalidIndex, "buffer: selection range out of bounds")
	}
	var w bytes.Buffer
	for i := startLine; i <= endLine; i++ {
		line, err := b.lineBytes(i)
		if err != nil {
			return 0, err
		}
		lo, hi := 0, len(line)
		if i == startLine {
			lo = clampByteCol(line, startCol, b.tabWidth)
		}
		if i == endLine {
			hi = clampByteCol(line, endCol, b.tabWidth)
		}
		if lo > hi {
			lo = hi
		}
		if i > startLine {
			w.WriteByte('\n')
		}
		w.Write(line[lo:hi])
	}
	return copy(buf, w.Bytes()), nil
}
