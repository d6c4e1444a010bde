package buffer

import (
	"sort"

	"github.com/clipperhouse/textrope/textropeerr"
)

// StyleSpan is a materialized, disjoint run of a line's display
// columns carrying one style id. Spans are strictly increasing in Col
// and, when the line has at least one highlight, cover [0, lineWidth).
// StyleID 0 denotes "no style / default".
type StyleSpan struct {
	Col     int
	StyleID int
	NextCol int
}

// GetLineSpans returns the materialized style spans for line,
// recomputing them from its highlight list if the line is dirty.
func (b *Buffer) GetLineSpans(line int) ([]StyleSpan, error) {
	if line < 0 || line >= len(b.lines) {
		return nil, textropeerr.New(textropeerr.InvalidIndex, "buffer: GetLineSpans line out of range")
	}
	ls := &b.lines[line]
	if !ls.dirty && ls.spans != nil {
		return ls.spans, nil
	}
	if len(ls.highlights) == 0 {
		ls.spans = nil
		ls.dirty = false
		return nil, nil
	}
	lineWidth, err := b.lineWidth(line)
	if err != nil {
		return nil, err
	}
	ls.spans = sweepLine(ls.highlights, lineWidth)
	ls.dirty = false
	return ls.spans, nil
}

type spanEvent struct {
	col   int
	isEnd bool
	idx   int
}

// sweepLine implements the highlights-to-spans sweep: build a 2|hs|
// event list (a start at col_start, an end at col_end, per highlight),
// sort it, and sweep left to right, emitting a span for the gap before
// each event carrying the highest-priority active highlight's style
// (0 if none), with ties broken by earliest-inserted. A trailing
// default-style span is always emitted if the covered range falls
// short of lineWidth.
func sweepLine(hs []Highlight, lineWidth int) []StyleSpan {
	events := make([]spanEvent, 0, 2*len(hs))
	for i, h := range hs {
		events = append(events, spanEvent{col: h.ColStart, isEnd: false, idx: i})
		events = append(events, spanEvent{col: h.ColEnd, isEnd: true, idx: i})
	}
	sort.Slice(events, func(a, b int) bool {
		ea, eb := events[a], events[b]
		if ea.col != eb.col {
			return ea.col < eb.col
		}
		if ea.isEnd != eb.isEnd {
			return ea.isEnd // ends before starts at the same column
		}
		return ea.idx < eb.idx
	})

	active := make([]bool, len(hs))
	activeStyle := func() int {
		bestPriority := -1
		bestStyle := 0
		bestIdx := -1
		for idx, on := range active {
			if !on {
				continue
			}
			h := hs[idx]
			if h.Priority > bestPriority || (h.Priority == bestPriority && (bestIdx == -1 || idx < bestIdx)) {
				bestPriority = h.Priority
				bestStyle = h.StyleID
				bestIdx = idx
			}
		}
		return bestStyle
	}

	var spans []StyleSpan
	appendSpan := func(col, nextCol, styleID int) {
		if n := len(spans); n > 0 && spans[n-1].StyleID == styleID && spans[n-1].NextCol == col {
			spans[n-1].NextCol = nextCol
			return
		}
		spans = append(spans, StyleSpan{Col: col, StyleID: styleID, NextCol: nextCol})
	}

	prevCol := 0
	for _, e := range events {
		if e.col > prevCol {
			appendSpan(prevCol, e.col, activeStyle())
			prevCol = e.col
		}
		active[e.idx] = !e.isEnd
	}
	if prevCol < lineWidth {
		appendSpan(prevCol, lineWidth, 0)
	}
	return spans
}
