package gutter

import "github.com/kateleext/vcsgutter/internal/buffer"

// TextPointer resolves a 0-based row and column to a buffer offset.
type TextPointer interface {
	TextPoint(row, col int) int
}

// LinesToRegions anchors a one-character region at the start of each
// 1-based line. Output has the same length and order as lines; nothing is
// validated or deduplicated.
func LinesToRegions(buf TextPointer, lines []int) []buffer.Region {
	regions := make([]buffer.Region, 0, len(lines))
	for _, line := range lines {
		p := buf.TextPoint(line-1, 0)
		regions = append(regions, buffer.Region{A: p, B: p + 1})
	}
	return regions
}
