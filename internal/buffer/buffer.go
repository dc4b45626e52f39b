// Package buffer holds immutable snapshots of text buffers and resolves
// row/column positions to character offsets.
package buffer

import "strings"

// Region is a half-open span [A, B) over buffer character offsets.
type Region struct {
	A int
	B int
}

// Size returns the number of characters the region covers.
func (r Region) Size() int {
	if r.B < r.A {
		return r.A - r.B
	}
	return r.B - r.A
}

// Contains reports whether offset p falls inside the region.
func (r Region) Contains(p int) bool {
	return p >= r.A && p < r.B
}

// Buffer is a snapshot of a text buffer. Offsets count runes, not bytes.
type Buffer struct {
	text       []rune
	lineStarts []int // rune offset of the first character of each row
}

// New creates a buffer snapshot from text.
func New(text string) *Buffer {
	runes := []rune(text)
	starts := []int{0}
	for i, r := range runes {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Buffer{text: runes, lineStarts: starts}
}

// Size returns the buffer length in characters.
func (b *Buffer) Size() int {
	return len(b.text)
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.text)
}

// LineCount returns the number of rows. An empty buffer has one row and a
// trailing newline opens a final empty row.
func (b *Buffer) LineCount() int {
	return len(b.lineStarts)
}

// TextPoint returns the offset of column col on row row, both 0-based.
// Rows and columns past the end are clamped the way editors do, so the
// result always lies within [0, Size()].
func (b *Buffer) TextPoint(row, col int) int {
	if row < 0 {
		row = 0
	}
	if row >= len(b.lineStarts) {
		row = len(b.lineStarts) - 1
	}
	start := b.lineStarts[row]
	end := b.lineEnd(row)
	if col < 0 {
		col = 0
	}
	if start+col > end {
		return end
	}
	return start + col
}

// RowCol converts an offset back to a 0-based row and column.
func (b *Buffer) RowCol(p int) (row, col int) {
	if p < 0 {
		p = 0
	}
	if p > len(b.text) {
		p = len(b.text)
	}
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo, p - b.lineStarts[lo]
}

// Line returns the text of row row without its newline.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lineStarts) {
		return ""
	}
	return string(b.text[b.lineStarts[row]:b.lineEnd(row)])
}

// Lines returns every row without newlines.
func (b *Buffer) Lines() []string {
	return strings.Split(string(b.text), "\n")
}

func (b *Buffer) lineEnd(row int) int {
	if row+1 < len(b.lineStarts) {
		return b.lineStarts[row+1] - 1
	}
	return len(b.text)
}
