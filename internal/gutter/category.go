// Package gutter maps line-level diff results to gutter markers.
//
// A diff yields three lists of line numbers: inserted, changed and deleted.
// Deleted positions are split further so that a deletion touching only the
// line above, only the line below, or both can be drawn with distinct
// glyphs. Each resulting category is bound to the display surface as a set
// of one-character regions with its own scope, icon and flags.
package gutter

import "strings"

// Category names a kind of gutter marker.
type Category string

const (
	Inserted      Category = "inserted"
	Changed       Category = "changed"
	DeletedTop    Category = "deleted_top"
	DeletedBottom Category = "deleted_bottom"
	DeletedDual   Category = "deleted_dual"
)

// Categories lists every category in the order markers are cleared.
var Categories = []Category{DeletedTop, DeletedBottom, DeletedDual, Inserted, Changed}

// RegionKeyPrefix namespaces region keys on the display surface.
const RegionKeyPrefix = "vcs_gutter_"

// RegionKey returns the display surface key for c.
func (c Category) RegionKey() string {
	return RegionKeyPrefix + string(c)
}

// IsDeleted reports whether c is one of the deletion variants.
func (c Category) IsDeleted() bool {
	return strings.HasPrefix(string(c), "deleted")
}

// Scope returns the theme lookup key for c. All deletion variants share
// the "deleted" scope and differ only by icon.
func (c Category) Scope() string {
	name := string(c)
	if c.IsDeleted() {
		name = "deleted"
	}
	return "markup." + name + ".vcs_gutter"
}

// CategoryForKey returns the category a region key belongs to.
func CategoryForKey(key string) (Category, bool) {
	if !strings.HasPrefix(key, RegionKeyPrefix) {
		return "", false
	}
	c := Category(strings.TrimPrefix(key, RegionKeyPrefix))
	for _, known := range Categories {
		if c == known {
			return c, true
		}
	}
	return "", false
}
