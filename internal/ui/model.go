package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kateleext/vcsgutter/internal/command"
	"github.com/kateleext/vcsgutter/internal/git"
	"github.com/kateleext/vcsgutter/internal/gutter"
	"github.com/kateleext/vcsgutter/internal/highlight"
	"github.com/kateleext/vcsgutter/internal/view"
)

const runTimeout = 10 * time.Second

// Options wires the viewer to the rest of the program.
type Options struct {
	// Registry must contain command.Name.
	Registry *command.Registry

	// Repo, when set, is used to show the file's status in the header.
	Repo *git.Repository

	// Changes, when set, triggers a reload and a new gutter run.
	Changes <-chan string
}

type keyMap struct {
	Quit    key.Binding
	Refresh key.Binding
	Up      key.Binding
	Down    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j", "down")),
	}
}

// gutterDoneMsg carries the outcome of one vcs_gutter run.
type gutterDoneMsg struct {
	result    command.Result
	err       error
	status    git.FileStatus
	statusErr error
}

// fileChangedMsg reports that the watched file changed on disk.
type fileChangedMsg struct {
	name string
}

// Model is the bubbletea model
type Model struct {
	doc      *view.Document
	registry *command.Registry
	repo     *git.Repository
	changes  <-chan string
	keys     keyMap

	viewport viewport.Model
	ready    bool
	width    int
	height   int

	highlighted []string
	rawLines    []string
	markers     map[int]gutter.Category
	showMinimap bool

	result    command.Result
	status    git.FileStatus
	statusErr error
	err       error
	// running is set while a gutter run is in flight.
	running bool
}

// New creates a new UI model
func New(doc *view.Document, opts Options) Model {
	m := Model{
		doc:      doc,
		registry: opts.Registry,
		repo:     opts.Repo,
		changes:  opts.Changes,
		keys:     defaultKeys(),
		// Init starts the first run.
		running: true,
	}
	m.loadText()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	if m.changes == nil {
		return m.runGutter()
	}
	return tea.Batch(m.runGutter(), m.waitForChange())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if err := m.doc.Reload(); err != nil {
				m.err = err
				return m, nil
			}
			m.loadText()
			m.running = true
			return m, m.runGutter()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - 2 // header + footer
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.bodyWidth(), h)
			m.ready = true
		} else {
			m.viewport.Width = m.bodyWidth()
			m.viewport.Height = h
		}
		m.refreshContent()
		return m, nil

	case gutterDoneMsg:
		m.running = false
		m.result = msg.result
		m.err = msg.err
		m.status = msg.status
		m.statusErr = msg.statusErr
		m.markers = m.doc.LineMarkers()
		m.showMinimap = m.minimapEnabled()
		if m.ready {
			m.viewport.Width = m.bodyWidth()
		}
		m.refreshContent()
		return m, nil

	case fileChangedMsg:
		if err := m.doc.Reload(); err != nil {
			m.err = err
			return m, m.waitForChange()
		}
		m.loadText()
		m.running = true
		return m, tea.Batch(m.runGutter(), m.waitForChange())
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	body := m.viewport.View()
	if m.showMinimap {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderMinimap())
	}
	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

func (m *Model) loadText() {
	src := strings.ReplaceAll(m.doc.Buffer().String(), "\t", "    ")
	m.rawLines = strings.Split(src, "\n")
	m.highlighted = highlight.Lines(m.doc.FileName(), src)
}

func (m Model) runGutter() tea.Cmd {
	reg, repo, file := m.registry, m.repo, m.doc.FileName()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()

		msg := gutterDoneMsg{}
		msg.result, msg.err = reg.Execute(ctx, command.Name)
		if repo != nil {
			msg.status, msg.statusErr = repo.StatusOf(ctx, file)
		}
		return msg
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		name, ok := <-ch
		if !ok {
			return nil
		}
		return fileChangedMsg{name: name}
	}
}

// minimapEnabled reports whether the bound markers ask to be drawn in the
// minimap. Every category is bound with the same flags.
func (m Model) minimapEnabled() bool {
	for _, mk := range m.doc.Markers().Snapshot() {
		if mk.Flags.ShowsInMinimap() {
			return true
		}
	}
	return false
}

func (m Model) bodyWidth() int {
	w := m.width
	if m.showMinimap {
		w--
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (m Model) numberWidth() int {
	return len(fmt.Sprint(len(m.rawLines)))
}

func (m *Model) refreshContent() {
	if !m.ready {
		return
	}
	// marker + space + number + space
	gutterWidth := 2 + m.numberWidth() + 1
	lines := wrapAllLines(m.highlighted, m.rawLines, m.markers, m.bodyWidth()-gutterWidth)

	var sb strings.Builder
	for i, vl := range lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(m.renderGutter(vl))
		sb.WriteString(vl.Text)
	}
	m.viewport.SetContent(sb.String())
}

func (m Model) renderGutter(vl VisualLine) string {
	num := strings.Repeat(" ", m.numberWidth())
	if vl.SegmentIndex == 0 {
		num = fmt.Sprintf("%*d", m.numberWidth(), vl.Line)
	}
	return markerCell(vl.Marker) + " " + dimStyle.Render(num) + " "
}

func (m Model) renderMinimap() string {
	rows := m.viewport.Height
	total := len(m.rawLines)
	cells := make([]string, rows)
	for i := 0; i < rows; i++ {
		from := i*total/rows + 1
		to := (i+1)*total/rows + 1
		if to <= from {
			to = from + 1
		}
		var found gutter.Category
		ok := false
		for line := from; line < to && !ok; line++ {
			found, ok = m.markers[line]
		}
		cells[i] = minimapCell(found, ok)
	}
	return strings.Join(cells, "\n")
}

func (m Model) renderHeader() string {
	name := filepath.Base(m.doc.FileName())
	if m.status.Path != "" {
		name = m.status.Path
	}
	header := titleStyle.Render(name)
	if m.status.Status != "" {
		header += " " + accentStyle.Render(m.status.Status)
	}
	if m.statusErr != nil {
		header += " " + errorStyle.Render("status: "+m.statusErr.Error())
	}
	if m.running {
		return header + "  " + dimStyle.Render("running")
	}
	if m.err != nil {
		return header + "  " + errorStyle.Render(m.err.Error())
	}
	ch := m.result.Changes
	return header + "  " + dimStyle.Render(fmt.Sprintf("+%d ~%d -%d", len(ch.Inserted), len(ch.Changed), len(ch.Deleted)))
}

func (m Model) renderFooter() string {
	help := []key.Binding{m.keys.Down, m.keys.Up, m.keys.Refresh, m.keys.Quit}
	parts := make([]string, len(help))
	for i, b := range help {
		parts[i] = b.Help().Key + " " + b.Help().Desc
	}
	return dimStyle.Render(strings.Join(parts, " • "))
}
