// Package view implements line-wrapping virtualization over a text
// buffer: given a wrap width and mode, it produces a sequence of
// VirtualLines and the cache arrays a renderer needs to map between
// logical and visual coordinates.
package view

import (
	"github.com/clipperhouse/textrope/buffer"
	"github.com/clipperhouse/textrope/graphemes"
	"github.com/clipperhouse/textrope/simdscan"
	"github.com/clipperhouse/textrope/textropeerr"
	"github.com/clipperhouse/textrope/width"
)

// WrapMode selects how a logical line is broken into virtual lines.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapChar
	WrapWord
)

// VirtualLine is one rendered line: a slice of a logical line's columns.
type VirtualLine struct {
	SourceLine      int
	SourceColOffset int
	CharOffset      int // grapheme offset from the start of SourceLine
	Width           int
	CharCount       int
}

// Viewport is the renderer's visible window; View only consults W. X, Y
// and H are the renderer's; range queries take their own y and height.
type Viewport struct {
	X, Y, W, H int
}

// View virtualizes one Buffer's content into wrapped VirtualLines. It
// holds no bytes of its own: every rebuild re-reads the buffer.
type View struct {
	buf *buffer.Buffer

	wrapMode  WrapMode
	wrapWidth int // 0 means unset; falls back to viewport width
	viewport  Viewport
	tabWidth  int

	builtVersion int
	builtWidth   int
	builtMode    WrapMode
	dirty        bool

	lines      []VirtualLine
	lineStarts []int // cumulative char offset of each virtual line, buffer-wide
	lineWidths []int
	maxWidth   int
}

// New creates a View over buf with the default wrap mode (none) and tab
// width 4.
func New(buf *buffer.Buffer) *View {
	return &View{buf: buf, tabWidth: 4, dirty: true}
}

// SetWrapMode sets char/word/none wrapping and marks the view dirty.
func (v *View) SetWrapMode(m WrapMode) {
	if v.wrapMode != m {
		v.wrapMode = m
		v.dirty = true
	}
}

// SetWrapWidth sets the wrap width in columns; 0 or negative falls back
// to the viewport width when one has been set.
func (v *View) SetWrapWidth(w int) {
	if v.wrapWidth != w {
		v.wrapWidth = w
		v.dirty = true
	}
}

// SetTabWidth sets the column width a tab expands to for this view.
func (v *View) SetTabWidth(n int) {
	if v.tabWidth != n {
		v.tabWidth = n
		v.dirty = true
	}
}

// SetViewport sets the visible window. A width change re-triggers a
// rebuild when wrapping is slaved to the viewport (wrap width unset).
func (v *View) SetViewport(p Viewport) {
	widthChanged := v.viewport.W != p.W
	v.viewport = p
	if widthChanged && v.wrapWidth <= 0 {
		v.dirty = true
	}
}

func (v *View) effectiveWrapWidth() int {
	if v.wrapWidth > 0 {
		return v.wrapWidth
	}
	return v.viewport.W
}

// needsRebuild reports whether the cached virtual lines are stale: the
// buffer's version advanced, or the wrap mode/width changed since the
// last build.
func (v *View) needsRebuild() bool {
	return v.dirty || v.builtVersion != v.buf.Version() || v.builtWidth != v.effectiveWrapWidth() || v.builtMode != v.wrapMode
}

// rebuild walks every logical line and lays it out into virtual lines,
// per the char/word wrap algorithm.
func (v *View) rebuild() error {
	v.lines = v.lines[:0]
	v.lineStarts = v.lineStarts[:0]
	v.lineWidths = v.lineWidths[:0]
	v.maxWidth = 0

	effWidth := v.effectiveWrapWidth()
	noWrap := v.wrapMode == WrapNone || effWidth <= 0

	globalCharOffset := 0
	for src := 0; src < v.buf.LineCount(); src++ {
		data, err := v.buf.LineBytes(src)
		if err != nil {
			return err
		}
		if noWrap {
			w, err := v.buf.LineWidth(src)
			if err != nil {
				return err
			}
			_, chars := measureLine(data, v.tabWidth)
			v.pushLine(VirtualLine{SourceLine: src, Width: w, CharCount: chars}, globalCharOffset)
			globalCharOffset += chars
			continue
		}
		globalCharOffset = v.wrapLine(data, src, effWidth, globalCharOffset)
	}

	v.builtVersion = v.buf.Version()
	v.builtWidth = effWidth
	v.builtMode = v.wrapMode
	v.dirty = false
	return nil
}

func (v *View) pushLine(vl VirtualLine, globalCharOffset int) {
	v.lines = append(v.lines, vl)
	v.lineStarts = append(v.lineStarts, globalCharOffset)
	v.lineWidths = append(v.lineWidths, vl.Width)
	if vl.Width > v.maxWidth {
		v.maxWidth = vl.Width
	}
}

// measureLine returns (columns, graphemeCount) for data, tabs expanded
// from column 0.
func measureLine(data []byte, tabWidth int) (cols, chars int) {
	col := 0
	g := graphemes.FromBytes(data)
	for g.Next() {
		col += width.Of(g.Value(), tabWidth, col)
		chars++
	}
	return col, chars
}

// firstClusterWidth returns the byte length and display width of the
// first grapheme cluster in data, or (0, 0) if data is empty. Used to
// force progress when a single cluster is wider than the wrap width.
func firstClusterWidth(data []byte, tabWidth int) (byteLen, w int) {
	g := graphemes.FromBytes(data)
	if !g.Next() {
		return 0, 0
	}
	c := g.Value()
	return len(c), width.Of(c, tabWidth, 0)
}

// wrapLine lays a single logical line's bytes into one or more virtual
// lines and returns the global char offset after the last one emitted.
func (v *View) wrapLine(data []byte, src, wrapWidth, globalCharOffset int) int {
	if len(data) == 0 {
		v.pushLine(VirtualLine{SourceLine: src}, globalCharOffset)
		return globalCharOffset
	}

	var breaks []simdscan.WrapBreak
	breaks = simdscan.FindWrapBreaks(data, breaks)
	breakIdx := 0

	pos := 0
	colOffset := 0
	charOffset := 0
	for pos < len(data) {
		res := simdscan.FindWrapPosByWidth(data[pos:], wrapWidth, v.tabWidth)
		cutByte := pos + res.ByteOffset
		cutCols := res.ColumnsUsed
		cutChars := res.GraphemeCount

		if cutByte == pos {
			// The very first cluster of this virtual line already
			// overflows wrapWidth: include it anyway (a single
			// over-wide cluster can't be split).
			bl, w := firstClusterWidth(data[pos:], v.tabWidth)
			cutByte = pos + bl
			cutCols = w
			cutChars = 1
		} else if v.wrapMode == WrapWord && cutByte < len(data) {
			// Walk breakIdx forward to the last candidate boundary
			// strictly inside (pos, cutByte]; if one exists, wrap
			// before it instead of mid-word.
			best := -1
			for breakIdx < len(breaks) && breaks[breakIdx].ByteOffset <= cutByte {
				if breaks[breakIdx].ByteOffset > pos {
					best = breakIdx
				}
				breakIdx++
			}
			if best >= 0 && breaks[best].ByteOffset > pos {
				wb := breaks[best]
				cutByte = wb.ByteOffset
				cutCols, cutChars = measureLine(data[pos:cutByte], v.tabWidth)
				// breakIdx must not skip past a boundary we chose not
				// to consume yet, if any followed it within range.
				breakIdx = best
			}
		}

		v.pushLine(VirtualLine{
			SourceLine:      src,
			SourceColOffset: colOffset,
			CharOffset:      charOffset,
			Width:           cutCols,
			CharCount:       cutChars,
		}, globalCharOffset)

		colOffset += cutCols
		charOffset += cutChars
		globalCharOffset += cutChars
		pos = cutByte
	}
	return globalCharOffset
}

// GetVirtualLines returns every virtual line, rebuilding first if the
// buffer or wrap settings have changed.
func (v *View) GetVirtualLines() ([]VirtualLine, error) {
	if v.needsRebuild() {
		if err := v.rebuild(); err != nil {
			return nil, err
		}
	}
	return v.lines, nil
}

// GetVirtualLinesInRange returns the virtual lines [y, y+height), a
// viewport-sliced subset of GetVirtualLines.
func (v *View) GetVirtualLinesInRange(y, height int) ([]VirtualLine, error) {
	lines, err := v.GetVirtualLines()
	if err != nil {
		return nil, err
	}
	if y < 0 || y > len(lines) {
		return nil, textropeerr.New(textropeerr.InvalidIndex, "view: range start out of bounds")
	}
	end := y + height
	if end > len(lines) {
		end = len(lines)
	}
	if end < y {
		end = y
	}
	return lines[y:end], nil
}

// LineInfo is the view's cache arrays, exposed read-only.
type LineInfo struct {
	Starts   []int
	Widths   []int
	MaxWidth int
}

// GetCachedLineInfo returns the view's cached per-virtual-line char
// offsets and widths, rebuilding first if stale.
func (v *View) GetCachedLineInfo() (LineInfo, error) {
	if v.needsRebuild() {
		if err := v.rebuild(); err != nil {
			return LineInfo{}, err
		}
	}
	return LineInfo{Starts: v.lineStarts, Widths: v.lineWidths, MaxWidth: v.maxWidth}, nil
}

// LogicalToVisual finds the virtual line whose SourceLine == row and
// whose column range contains col, returning (visualRow, visualCol).
func (v *View) LogicalToVisual(row, col int) (visualRow, visualCol int, err error) {
	lines, err := v.GetVirtualLines()
	if err != nil {
		return 0, 0, err
	}
	for i, vl := range lines {
		if vl.SourceLine != row {
			continue
		}
		if col >= vl.SourceColOffset && col <= vl.SourceColOffset+vl.Width {
			return i, col - vl.SourceColOffset, nil
		}
	}
	return 0, 0, textropeerr.New(textropeerr.InvalidIndex, "view: logical position not found")
}

// VisualToLogical is the inverse of LogicalToVisual; an out-of-bounds
// visualCol is clamped to the virtual line's width.
func (v *View) VisualToLogical(visualRow, visualCol int) (row, col int, err error) {
	lines, err := v.GetVirtualLines()
	if err != nil {
		return 0, 0, err
	}
	if visualRow < 0 || visualRow >= len(lines) {
		return 0, 0, textropeerr.New(textropeerr.InvalidIndex, "view: visual row out of bounds")
	}
	vl := lines[visualRow]
	if visualCol > vl.Width {
		visualCol = vl.Width
	}
	if visualCol < 0 {
		visualCol = 0
	}
	return vl.SourceLine, vl.SourceColOffset + visualCol, nil
}
