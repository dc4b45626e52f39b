package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/kateleext/vcsgutter/internal/gutter"
)

const ansiReset = "\033[0m"

// VisualLine represents one physical line in the viewport
type VisualLine struct {
	Line         int             // 1-based buffer line
	SegmentIndex int             // 0 = first segment, 1+ = continuations
	Marker       gutter.Category // empty when the line has no marker
	Text         string          // ANSI-highlighted content slice
}

// countLeadingSpaces returns the number of leading space characters (not tabs)
func countLeadingSpaces(s string) int {
	count := 0
	for _, r := range s {
		if r == ' ' {
			count++
		} else if r == '\t' {
			count += 4 // treat tab as 4 spaces
		} else {
			break
		}
	}
	return count
}

// runeVisualWidth returns the visual width of a rune, handling tabs specially
func runeVisualWidth(r rune) int {
	if r == '\t' {
		return 4
	}
	return runewidth.RuneWidth(r)
}

// VisibleWidth returns visual column width, ignoring ANSI sequences
func VisibleWidth(s string) int {
	width := 0
	i := 0
	for i < len(s) {
		if isANSIStart(s, i) {
			i = skipANSI(s, i)
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		width += runeVisualWidth(r)
		i += size
	}
	return width
}

func isANSIStart(s string, i int) bool {
	if i+1 >= len(s) {
		return false
	}
	return s[i] == 0x1b && s[i+1] == '['
}

func skipANSI(s string, i int) int {
	if !isANSIStart(s, i) {
		return i + 1
	}
	j := i + 2
	for j < len(s) {
		b := s[j]
		if b >= 0x40 && b <= 0x7E {
			return j + 1
		}
		j++
	}
	return j
}

// sliceANSIAware slices a string to fit within maxWidth visible columns
// Returns the sliced content and any active ANSI codes that need to be preserved
func sliceANSIAware(s string, maxWidth int) (content string, remainder string, activeANSI string) {
	if maxWidth <= 0 {
		return "", s, ""
	}

	var result strings.Builder
	var currentANSI strings.Builder
	width := 0
	i := 0
	cutPoint := -1

	for i < len(s) && width < maxWidth {
		if isANSIStart(s, i) {
			start := i
			i = skipANSI(s, i)
			ansi := s[start:i]
			result.WriteString(ansi)
			if ansi == ansiReset {
				currentANSI.Reset()
			} else {
				currentANSI.WriteString(ansi)
			}
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		rw := runeVisualWidth(r)
		if width+rw > maxWidth {
			cutPoint = i
			break
		}

		result.WriteString(s[i : i+size])
		width += rw
		i += size
	}

	if cutPoint == -1 {
		cutPoint = i
	}

	// Ensure we close any open ANSI sequences
	content = result.String()
	if currentANSI.Len() > 0 {
		content += ansiReset
		activeANSI = currentANSI.String()
	}

	if cutPoint < len(s) {
		remainder = s[cutPoint:]
	}

	return content, remainder, activeANSI
}

// wrapHighlightedLine splits one highlighted line into VisualLine segments
// with hanging indent support - continuation lines preserve leading whitespace
func wrapHighlightedLine(line string, lineNum int, contentWidth int, marker gutter.Category, rawLine string) []VisualLine {
	if contentWidth < 10 {
		contentWidth = 10
	}

	hangingIndent := countLeadingSpaces(rawLine)
	if maxIndent := contentWidth / 2; hangingIndent > maxIndent {
		hangingIndent = maxIndent
	}
	hangingIndentStr := strings.Repeat(" ", hangingIndent)

	var result []VisualLine
	remaining := line
	segmentIndex := 0
	activeANSI := ""

	for {
		if activeANSI != "" && segmentIndex > 0 {
			remaining = activeANSI + remaining
		}

		availWidth := contentWidth
		if segmentIndex > 0 && hangingIndent > 0 {
			availWidth = contentWidth - hangingIndent
			if availWidth < 10 {
				availWidth = 10
			}
		}

		content, rest, newActiveANSI := sliceANSIAware(remaining, availWidth)

		text := content
		if segmentIndex > 0 && hangingIndent > 0 {
			text = hangingIndentStr + content
		}

		vl := VisualLine{Line: lineNum, SegmentIndex: segmentIndex, Text: text}
		if segmentIndex == 0 {
			vl.Marker = marker
		}
		result = append(result, vl)

		if rest == "" {
			break
		}
		remaining = rest
		activeANSI = newActiveANSI
		segmentIndex++
	}

	return result
}

// wrapAllLines wraps all highlighted lines for a given content width
func wrapAllLines(highlighted []string, rawLines []string, markers map[int]gutter.Category, contentWidth int) []VisualLine {
	var result []VisualLine
	for i, line := range highlighted {
		lineNum := i + 1
		rawLine := ""
		if i < len(rawLines) {
			rawLine = rawLines[i]
		}
		result = append(result, wrapHighlightedLine(line, lineNum, contentWidth, markers[lineNum], rawLine)...)
	}
	return result
}
