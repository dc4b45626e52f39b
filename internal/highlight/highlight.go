// Package highlight colours source text line by line for the terminal.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Theme is a muted, zen color palette
var Theme = styles.Get("dracula")

// Lines highlights source and returns one rendered string per source line.
// Styling never crosses a line boundary, so each line can be clipped or
// prefixed on its own. Unknown languages come back unstyled.
func Lines(filename, source string) []string {
	want := strings.Count(source, "\n") + 1

	lexer := lexers.Match(filename)
	if lexer == nil {
		lexer = lexers.Analyse(source)
	}
	if lexer == nil {
		return strings.Split(source, "\n")
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, source)
	if err != nil {
		return strings.Split(source, "\n")
	}

	lines := make([]string, 0, want)
	var cur strings.Builder
	for _, tok := range it.Tokens() {
		style := styleFor(tok.Type)
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				lines = append(lines, cur.String())
				cur.Reset()
			}
			if part != "" {
				cur.WriteString(style.Render(part))
			}
		}
	}
	lines = append(lines, cur.String())

	// Some lexers append a final newline.
	for len(lines) < want {
		lines = append(lines, "")
	}
	return lines[:want]
}

func styleFor(t chroma.TokenType) lipgloss.Style {
	s := lipgloss.NewStyle()
	entry := Theme.Get(t)
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	return s
}
