package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kateleext/vcsgutter/internal/gutter"
)

var (
	// Palette shared with the header: 109=cyan, 241=dim, 252=bright
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("109"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))

	// Keyed by scope, so the three deletion glyphs share one colour.
	scopeStyles = map[string]lipgloss.Style{
		gutter.Inserted.Scope():   lipgloss.NewStyle().Foreground(lipgloss.Color("108")),
		gutter.Changed.Scope():    lipgloss.NewStyle().Foreground(lipgloss.Color("179")),
		gutter.DeletedTop.Scope(): lipgloss.NewStyle().Foreground(lipgloss.Color("167")),
	}

	glyphs = map[gutter.Category]string{
		gutter.Inserted:      "+",
		gutter.Changed:       "~",
		gutter.DeletedTop:    "▔",
		gutter.DeletedBottom: "▁",
		gutter.DeletedDual:   "=",
	}
)

// markerCell renders the one-column gutter cell for c.
func markerCell(c gutter.Category) string {
	glyph, ok := glyphs[c]
	if !ok {
		return " "
	}
	return scopeStyles[c.Scope()].Render(glyph)
}

// minimapCell renders one row of the minimap column.
func minimapCell(c gutter.Category, ok bool) string {
	if !ok {
		return dimStyle.Render("│")
	}
	return scopeStyles[c.Scope()].Render("▐")
}
