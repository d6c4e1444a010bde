// Package textrope provides a persistent, undo-aware text rope and the
// layered text-buffer engine built on top of it: grapheme and display-width
// oracles, branchless byte scanners for line and wrap boundaries, a tagged
// segment model, a styled text buffer, a line-wrapping view, and a cursor
// editing facade.
//
// See the graphemes, width, simdscan, rope, segment, buffer, view and edit
// packages for details and usage.
package textrope
