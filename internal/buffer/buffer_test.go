package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextPoint(t *testing.T) {
	b := New("one\ntwo\n\nfour")

	assert.Equal(t, 4, b.LineCount())
	assert.Equal(t, 0, b.TextPoint(0, 0))
	assert.Equal(t, 4, b.TextPoint(1, 0))
	assert.Equal(t, 8, b.TextPoint(2, 0))
	assert.Equal(t, 9, b.TextPoint(3, 0))
	assert.Equal(t, 11, b.TextPoint(3, 2))
}

func TestTextPointClamps(t *testing.T) {
	b := New("ab\ncd")

	assert.Equal(t, 3, b.TextPoint(99, 0), "row past the end clamps to last row")
	assert.Equal(t, 2, b.TextPoint(0, 10), "column past the end clamps to line end")
	assert.Equal(t, 0, b.TextPoint(-1, -1))
}

func TestTextPointCountsRunes(t *testing.T) {
	b := New("héllo\nwörld")
	assert.Equal(t, 6, b.TextPoint(1, 0))
	assert.Equal(t, "wörld", b.Line(1))
}

func TestRowCol(t *testing.T) {
	b := New("one\ntwo\nthree")

	row, col := b.RowCol(5)
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	row, col = b.RowCol(100)
	assert.Equal(t, 2, row)
	assert.Equal(t, 5, col)
}

func TestEmptyBuffer(t *testing.T) {
	b := New("")
	assert.Equal(t, 1, b.LineCount())
	assert.Equal(t, 0, b.TextPoint(0, 0))
	assert.Equal(t, []string{""}, b.Lines())
}

func TestRegion(t *testing.T) {
	r := Region{A: 3, B: 4}
	assert.Equal(t, 1, r.Size())
	assert.True(t, r.Contains(3))
	assert.False(t, r.Contains(4))
}
