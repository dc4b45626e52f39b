package gutter

import (
	"sort"
	"sync"

	"github.com/kateleext/vcsgutter/internal/buffer"
)

// Flags control how markers are drawn.
type Flags uint8

const (
	// DrawNoFill draws the region without a background fill.
	DrawNoFill Flags = 1 << iota
	// DrawNoOutline draws the region without an outline.
	DrawNoOutline
	// Hidden keeps the region out of the text and minimap; only its gutter
	// icon is shown.
	Hidden
)

// Has reports whether all bits of f2 are set.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// ShowsInMinimap reports whether markers with these flags appear in the
// minimap overview.
func (f Flags) ShowsInMinimap() bool {
	return !f.Has(Hidden)
}

// Surface is the display surface markers are registered with.
type Surface interface {
	// EraseRegions removes every marker registered under key.
	EraseRegions(key string)

	// AddRegions registers regions under key, replacing whatever was there.
	AddRegions(key string, regions []buffer.Region, scope, icon string, flags Flags)
}

// Markers is one registered entry of a MarkerSet.
type Markers struct {
	Regions []buffer.Region
	Scope   string
	Icon    string
	Flags   Flags
}

// MarkerSet is an in-memory Surface. It is safe for concurrent use.
type MarkerSet struct {
	mu      sync.RWMutex
	entries map[string]Markers
}

// NewMarkerSet creates an empty marker set.
func NewMarkerSet() *MarkerSet {
	return &MarkerSet{entries: make(map[string]Markers)}
}

// EraseRegions implements Surface.
func (s *MarkerSet) EraseRegions(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// AddRegions implements Surface.
func (s *MarkerSet) AddRegions(key string, regions []buffer.Region, scope, icon string, flags Flags) {
	cp := make([]buffer.Region, len(regions))
	copy(cp, regions)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Markers{Regions: cp, Scope: scope, Icon: icon, Flags: flags}
}

// Get returns the entry registered under key.
func (s *MarkerSet) Get(key string) (Markers, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.entries[key]
	return m, ok
}

// Keys returns the registered keys in sorted order.
func (s *MarkerSet) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns a copy of every entry.
func (s *MarkerSet) Snapshot() map[string]Markers {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Markers, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out
}
