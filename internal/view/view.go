// Package view models the host side of the gutter: documents shown in a
// window and the marker set attached to each of them.
package view

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/kateleext/vcsgutter/internal/buffer"
	"github.com/kateleext/vcsgutter/internal/gutter"
)

// View is an open document the gutter command can annotate.
type View interface {
	gutter.Surface

	// FileName is the absolute path of the file backing the view.
	FileName() string

	// Buffer returns the current contents.
	Buffer() *buffer.Buffer
}

// Window hands out the view that currently has focus.
type Window interface {
	// ActiveView returns false while no view is ready.
	ActiveView() (View, bool)
}

// Document is a View over a file on disk.
type Document struct {
	fileName string

	mu      sync.RWMutex
	buf     *buffer.Buffer
	markers *gutter.MarkerSet
}

// NewDocument creates a document with the given contents.
func NewDocument(fileName, text string) *Document {
	if abs, err := filepath.Abs(fileName); err == nil {
		fileName = abs
	}
	return &Document{
		fileName: fileName,
		buf:      buffer.New(text),
		markers:  gutter.NewMarkerSet(),
	}
}

// Open reads fileName from disk into a new document.
func Open(fileName string) (*Document, error) {
	data, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", fileName, err)
	}
	return NewDocument(fileName, string(data)), nil
}

// FileName implements View.
func (d *Document) FileName() string {
	return d.fileName
}

// Buffer implements View.
func (d *Document) Buffer() *buffer.Buffer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.buf
}

// SetText replaces the contents. Markers are left alone until the gutter
// command runs again.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.buf = buffer.New(text)
}

// Reload re-reads the file from disk.
func (d *Document) Reload() error {
	data, err := os.ReadFile(d.fileName)
	if err != nil {
		return fmt.Errorf("reloading %s: %w", d.fileName, err)
	}
	d.SetText(string(data))
	return nil
}

// Markers returns the marker set attached to the document.
func (d *Document) Markers() *gutter.MarkerSet {
	return d.markers
}

// EraseRegions implements gutter.Surface.
func (d *Document) EraseRegions(key string) {
	d.markers.EraseRegions(key)
}

// AddRegions implements gutter.Surface.
func (d *Document) AddRegions(key string, regions []buffer.Region, scope, icon string, flags gutter.Flags) {
	d.markers.AddRegions(key, regions, scope, icon, flags)
}

// LineMarkers maps 1-based lines to the category drawn on them. When two
// categories land on the same line the later one in gutter.Categories wins.
func (d *Document) LineMarkers() map[int]gutter.Category {
	buf := d.Buffer()
	snap := d.markers.Snapshot()

	out := make(map[int]gutter.Category)
	for _, c := range gutter.Categories {
		m, ok := snap[c.RegionKey()]
		if !ok {
			continue
		}
		for _, r := range m.Regions {
			row, _ := buf.RowCol(r.A)
			out[row+1] = c
		}
	}
	return out
}

// Host is a Window holding at most one active document.
type Host struct {
	mu     sync.RWMutex
	active *Document
}

// NewHost creates a window with no active view.
func NewHost() *Host {
	return &Host{}
}

// SetActive focuses doc. Passing nil leaves the window without a view.
func (h *Host) SetActive(doc *Document) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.active = doc
}

// Active returns the focused document, or nil.
func (h *Host) Active() *Document {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.active
}

// ActiveView implements Window.
func (h *Host) ActiveView() (View, bool) {
	doc := h.Active()
	if doc == nil {
		return nil, false
	}
	return doc, true
}
