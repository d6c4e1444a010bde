// Package edit implements the cursor-based editing façade over a text
// buffer: insert, delete, and directional/word movement, each
// translating logical (row, col) cursor positions to the rope's weight
// space and back, with undo recorded before every mutation.
package edit

import (
	"github.com/clipperhouse/textrope/buffer"
	"github.com/clipperhouse/textrope/graphemes"
	"github.com/clipperhouse/textrope/simdscan"
	"github.com/clipperhouse/textrope/textropeerr"
	"github.com/clipperhouse/textrope/width"
)

// Cursor is one edit position: a logical row plus a display column (the
// same units Buffer.InsertTextAt/DeleteRangeCoords use), plus the
// desired column vertical moves try to preserve across short lines.
type Cursor struct {
	Row, Col, DesiredCol int
}

// Editor owns an ordered list of cursors over one Buffer.
type Editor struct {
	buf     *buffer.Buffer
	cursors []Cursor
}

// New creates an Editor with a single cursor at (0, 0).
func New(buf *buffer.Buffer) *Editor {
	return &Editor{buf: buf, cursors: []Cursor{{}}}
}

// Cursors returns the current cursor list.
func (e *Editor) Cursors() []Cursor {
	return e.cursors
}

// AddCursor appends a new cursor at (row, col).
func (e *Editor) AddCursor(row, col int) {
	e.cursors = append(e.cursors, Cursor{Row: row, Col: col, DesiredCol: col})
}

// SetCursors replaces the cursor list wholesale.
func (e *Editor) SetCursors(cursors []Cursor) {
	e.cursors = append([]Cursor(nil), cursors...)
}

func clampRow(buf *buffer.Buffer, row int) int {
	if n := buf.LineCount(); n > 0 {
		if row < 0 {
			return 0
		}
		if row >= n {
			return n - 1
		}
	}
	return row
}

// InsertText inserts text at cursor 0 (the primary cursor), storing
// undo first. Multi-cursor insertion is InsertTextMulti.
func (e *Editor) InsertText(text []byte) error {
	return e.InsertTextMulti(0, text)
}

// InsertTextMulti inserts text at the cursor indexed by which, updating
// that cursor to sit right after the inserted text and shifting every
// other cursor on the same or a later line.
func (e *Editor) InsertTextMulti(which int, text []byte) error {
	if which < 0 || which >= len(e.cursors) {
		return textropeerr.New(textropeerr.InvalidIndex, "edit: cursor index out of range")
	}
	c := e.cursors[which]
	e.buf.StoreUndo("insert")
	newRow, newCol, err := e.buf.InsertTextAt(c.Row, c.Col, text)
	if err != nil {
		return err
	}
	for i := range e.cursors {
		o := e.cursors[i]
		if i == which || o.Row < c.Row || (o.Row == c.Row && o.Col < c.Col) {
			continue
		}
		if o.Row == c.Row {
			o.Col = newCol + (o.Col - c.Col)
			o.DesiredCol = o.Col
		}
		o.Row += newRow - c.Row
		e.cursors[i] = o
	}
	e.cursors[which] = Cursor{Row: newRow, Col: newCol, DesiredCol: newCol}
	return nil
}

// Backspace deletes the grapheme cluster before the primary cursor,
// merging into the previous line at column 0.
func (e *Editor) Backspace() error {
	return e.BackspaceMulti(0)
}

// BackspaceMulti deletes the grapheme cluster before cursor which.
func (e *Editor) BackspaceMulti(which int) error {
	if which < 0 || which >= len(e.cursors) {
		return textropeerr.New(textropeerr.InvalidIndex, "edit: cursor index out of range")
	}
	c := e.cursors[which]
	if c.Row == 0 && c.Col == 0 {
		return nil
	}
	prevRow, prevCol := c.Row, c.Col-1
	if prevCol < 0 {
		prevRow = c.Row - 1
		w, err := e.buf.LineWidth(prevRow)
		if err != nil {
			return err
		}
		prevCol = w
	} else if data, err := e.buf.LineBytes(c.Row); err == nil {
		prevCol = prevGraphemeCol(data, c.Col, e.buf.TabWidth())
	}
	e.buf.StoreUndo("backspace")
	if err := e.buf.DeleteRangeCoords(prevRow, prevCol, c.Row, c.Col); err != nil {
		return err
	}
	e.cursors[which] = Cursor{Row: prevRow, Col: prevCol, DesiredCol: prevCol}
	return nil
}

// DeleteForward deletes the grapheme cluster at/after the primary
// cursor, merging the next line up when at end-of-line.
func (e *Editor) DeleteForward() error {
	return e.DeleteForwardMulti(0)
}

// DeleteForwardMulti deletes the grapheme cluster at/after cursor which.
func (e *Editor) DeleteForwardMulti(which int) error {
	if which < 0 || which >= len(e.cursors) {
		return textropeerr.New(textropeerr.InvalidIndex, "edit: cursor index out of range")
	}
	c := e.cursors[which]
	w, err := e.buf.LineWidth(c.Row)
	if err != nil {
		return err
	}
	nextRow, nextCol := c.Row, c.Col+1
	if c.Col >= w {
		if c.Row+1 >= e.buf.LineCount() {
			return nil
		}
		nextRow, nextCol = c.Row+1, 0
	} else if data, err := e.buf.LineBytes(c.Row); err == nil {
		nextCol = nextGraphemeCol(data, c.Col, e.buf.TabWidth())
	}
	e.buf.StoreUndo("delete_forward")
	if err := e.buf.DeleteRangeCoords(c.Row, c.Col, nextRow, nextCol); err != nil {
		return err
	}
	e.cursors[which] = Cursor{Row: c.Row, Col: c.Col, DesiredCol: c.Col}
	return nil
}

// Undo restores the buffer to its state before the most recent
// mutation, if any.
func (e *Editor) Undo() bool {
	_, ok := e.buf.Undo()
	return ok
}

// Redo re-applies the most recently undone mutation, if any.
func (e *Editor) Redo() bool {
	_, ok := e.buf.Redo()
	return ok
}

// MoveLeft moves the primary cursor one grapheme cluster left, wrapping
// to the end of the previous line at column 0.
func (e *Editor) MoveLeft()  { e.moveLeftMulti(0) }
func (e *Editor) MoveRight() { e.moveRightMulti(0) }
func (e *Editor) MoveUp()    { e.moveVerticalMulti(0, -1) }
func (e *Editor) MoveDown()  { e.moveVerticalMulti(0, 1) }

func (e *Editor) moveLeftMulti(which int) {
	c := e.cursors[which]
	if c.Col > 0 {
		data, err := e.buf.LineBytes(c.Row)
		if err == nil {
			c.Col = prevGraphemeCol(data, c.Col, e.buf.TabWidth())
		} else {
			c.Col--
		}
	} else if c.Row > 0 {
		c.Row--
		w, _ := e.buf.LineWidth(c.Row)
		c.Col = w
	}
	c.DesiredCol = c.Col
	e.cursors[which] = c
}

func (e *Editor) moveRightMulti(which int) {
	c := e.cursors[which]
	w, err := e.buf.LineWidth(c.Row)
	if err != nil {
		return
	}
	if c.Col < w {
		data, derr := e.buf.LineBytes(c.Row)
		if derr == nil {
			c.Col = nextGraphemeCol(data, c.Col, e.buf.TabWidth())
		} else {
			c.Col++
		}
	} else if c.Row+1 < e.buf.LineCount() {
		c.Row++
		c.Col = 0
	}
	c.DesiredCol = c.Col
	e.cursors[which] = c
}

func (e *Editor) moveVerticalMulti(which, delta int) {
	c := e.cursors[which]
	target := clampRow(e.buf, c.Row+delta)
	if target == c.Row {
		return
	}
	w, err := e.buf.LineWidth(target)
	if err != nil {
		return
	}
	col := c.DesiredCol
	if col > w {
		col = w
	}
	e.cursors[which] = Cursor{Row: target, Col: col, DesiredCol: c.DesiredCol}
}

// MoveWordLeft moves the primary cursor to the start of the previous
// word, using the same wrap-point boundary set as word-wrap.
func (e *Editor) MoveWordLeft() error {
	c := e.cursors[0]
	data, err := e.buf.LineBytes(c.Row)
	if err != nil {
		return err
	}
	col := prevWordBoundary(data, c.Col, e.buf.TabWidth())
	e.cursors[0] = Cursor{Row: c.Row, Col: col, DesiredCol: col}
	return nil
}

// MoveWordRight moves the primary cursor to the start of the next word.
func (e *Editor) MoveWordRight() error {
	c := e.cursors[0]
	data, err := e.buf.LineBytes(c.Row)
	if err != nil {
		return err
	}
	col := nextWordBoundary(data, c.Col, e.buf.TabWidth())
	e.cursors[0] = Cursor{Row: c.Row, Col: col, DesiredCol: col}
	return nil
}

// MoveLineStart moves the primary cursor to column 0 of its line.
func (e *Editor) MoveLineStart() {
	c := e.cursors[0]
	e.cursors[0] = Cursor{Row: c.Row, Col: 0, DesiredCol: 0}
}

// MoveLineEnd moves the primary cursor to the end of its line.
func (e *Editor) MoveLineEnd() error {
	c := e.cursors[0]
	w, err := e.buf.LineWidth(c.Row)
	if err != nil {
		return err
	}
	e.cursors[0] = Cursor{Row: c.Row, Col: w, DesiredCol: w}
	return nil
}

// graphemeCols returns the display column each grapheme cluster in data
// starts at, plus a trailing entry for the line's total width.
func graphemeCols(data []byte, tabWidth int) []int {
	cols := make([]int, 0, 8)
	col := 0
	g := graphemes.FromBytes(data)
	for g.Next() {
		cols = append(cols, col)
		col += width.Of(g.Value(), tabWidth, col)
	}
	cols = append(cols, col)
	return cols
}

func prevGraphemeCol(data []byte, col, tabWidth int) int {
	cols := graphemeCols(data, tabWidth)
	for i := len(cols) - 1; i >= 0; i-- {
		if cols[i] < col {
			return cols[i]
		}
	}
	return 0
}

func nextGraphemeCol(data []byte, col, tabWidth int) int {
	cols := graphemeCols(data, tabWidth)
	for _, c := range cols {
		if c > col {
			return c
		}
	}
	if len(cols) > 0 {
		return cols[len(cols)-1]
	}
	return col
}

// wordLandingCols returns, for every wrap-point (separator) in data, the
// display column of the grapheme right after it — the start of the word
// that follows that separator.
func wordLandingCols(data []byte, tabWidth int) []int {
	cols := graphemeCols(data, tabWidth)
	var breaks []simdscan.WrapBreak
	breaks = simdscan.FindWrapBreaks(data, breaks)
	landings := make([]int, 0, len(breaks))
	for _, b := range breaks {
		if b.CharOffset+1 < len(cols) {
			landings = append(landings, cols[b.CharOffset+1])
		}
	}
	return landings
}

// prevWordBoundary returns the display column to land on when moving one
// word left from col: the start of the nearest preceding word, skipping
// past any separator immediately before col.
func prevWordBoundary(data []byte, col, tabWidth int) int {
	best := 0
	for _, c := range wordLandingCols(data, tabWidth) {
		if c < col && c > best {
			best = c
		}
	}
	return best
}

// nextWordBoundary returns the display column to land on when moving one
// word right from col: the start of the next word after the nearest
// following separator.
func nextWordBoundary(data []byte, col, tabWidth int) int {
	cols := graphemeCols(data, tabWidth)
	total := cols[len(cols)-1]
	best := total
	for _, c := range wordLandingCols(data, tabWidth) {
		if c > col && c < best {
			best = c
		}
	}
	return best
}
