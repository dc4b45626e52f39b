package gutter

import (
	"github.com/kateleext/vcsgutter/internal/config"
	"github.com/kateleext/vcsgutter/internal/icons"
)

// Binder registers categories of line markers with a display surface.
type Binder struct {
	settings config.Settings
	caps     config.Capabilities
}

// NewBinder creates a binder for the given settings and host capabilities.
func NewBinder(settings config.Settings, caps config.Capabilities) *Binder {
	return &Binder{settings: settings, caps: caps}
}

// Flags returns the drawing flags every category is bound with.
func (b *Binder) Flags() Flags {
	if b.caps.SupportsMinimapMarkers && b.settings.ShowInMinimap {
		return DrawNoFill | DrawNoOutline
	}
	return Hidden
}

// Icon returns the icon reference for c.
func (b *Binder) Icon(c Category) string {
	return icons.Path(b.caps, string(c))
}

// Bind replaces the markers of category c on surface with one marker per
// line. An empty lines slice leaves the category empty.
func (b *Binder) Bind(surface Surface, buf TextPointer, c Category, lines []int) {
	regions := LinesToRegions(buf, lines)
	surface.AddRegions(c.RegionKey(), regions, c.Scope(), b.Icon(c), b.Flags())
}

// BindDeleted binds the three deletion sub-categories.
func (b *Binder) BindDeleted(surface Surface, buf TextPointer, d Deleted) {
	b.Bind(surface, buf, DeletedTop, d.Top)
	b.Bind(surface, buf, DeletedBottom, d.Bottom)
	b.Bind(surface, buf, DeletedDual, d.Dual)
}

// Clear erases every category from surface.
func Clear(surface Surface) {
	for _, c := range Categories {
		surface.EraseRegions(c.RegionKey())
	}
}
