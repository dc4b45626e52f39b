package gutter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kateleext/vcsgutter/internal/buffer"
	"github.com/kateleext/vcsgutter/internal/config"
)

func newBinder(showInMinimap bool, hostVersion int) *Binder {
	s := config.Default()
	s.ShowInMinimap = showInMinimap
	return NewBinder(s, config.ResolveCapabilities(hostVersion))
}

func TestCategoryScope(t *testing.T) {
	assert.Equal(t, "markup.inserted.vcs_gutter", Inserted.Scope())
	assert.Equal(t, "markup.changed.vcs_gutter", Changed.Scope())
	for _, c := range []Category{DeletedTop, DeletedBottom, DeletedDual} {
		assert.Equal(t, "markup.deleted.vcs_gutter", c.Scope(), string(c))
	}
}

func TestCategoryForKey(t *testing.T) {
	c, ok := CategoryForKey("vcs_gutter_deleted_dual")
	assert.True(t, ok)
	assert.Equal(t, DeletedDual, c)

	_, ok = CategoryForKey("vcs_gutter_bogus")
	assert.False(t, ok)
	_, ok = CategoryForKey("other")
	assert.False(t, ok)
}

func TestBinderIcons(t *testing.T) {
	b := newBinder(false, 3211)
	seen := map[string]bool{}
	for _, c := range Categories {
		icon := b.Icon(c)
		assert.False(t, seen[icon], "icon %s reused", icon)
		seen[icon] = true
	}
	assert.Equal(t, "Packages/VCS Gutter/icons/deleted_bottom.png", b.Icon(DeletedBottom))
}

func TestBinderFlags(t *testing.T) {
	assert.Equal(t, DrawNoFill|DrawNoOutline, newBinder(true, 3211).Flags())
	assert.Equal(t, Hidden, newBinder(false, 3211).Flags())
	assert.Equal(t, Hidden, newBinder(true, 2221).Flags(), "legacy hosts cannot draw minimap markers")

	assert.True(t, newBinder(true, 3211).Flags().ShowsInMinimap())
	assert.False(t, newBinder(false, 3211).Flags().ShowsInMinimap())
}

func TestBindReplaces(t *testing.T) {
	b := newBinder(false, 3211)
	buf := buffer.New("a\nb\nc\n")
	set := NewMarkerSet()

	b.Bind(set, buf, Inserted, []int{1, 2})
	b.Bind(set, buf, Inserted, []int{3})

	m, ok := set.Get("vcs_gutter_inserted")
	require.True(t, ok)
	assert.Equal(t, []buffer.Region{{A: 4, B: 5}}, m.Regions)
	assert.Equal(t, "markup.inserted.vcs_gutter", m.Scope)
	assert.Equal(t, "Packages/VCS Gutter/icons/inserted.png", m.Icon)
	assert.Equal(t, Hidden, m.Flags)
}

func TestBindEmptyClearsCategory(t *testing.T) {
	b := newBinder(false, 3211)
	buf := buffer.New("a\nb\n")
	set := NewMarkerSet()

	b.Bind(set, buf, Changed, []int{2})
	b.Bind(set, buf, Changed, nil)

	m, ok := set.Get(Changed.RegionKey())
	require.True(t, ok)
	assert.Empty(t, m.Regions)
}

func TestBindDeletedAndClear(t *testing.T) {
	b := newBinder(false, 3211)
	buf := buffer.New("1\n2\n3\n4\n5\n")
	set := NewMarkerSet()

	b.BindDeleted(set, buf, ClassifyDeleted([]int{3, 4}))
	assert.Equal(t, []string{
		"vcs_gutter_deleted_bottom",
		"vcs_gutter_deleted_dual",
		"vcs_gutter_deleted_top",
	}, set.Keys())

	dual, _ := set.Get(DeletedDual.RegionKey())
	assert.Equal(t, []buffer.Region{{A: 4, B: 5}}, dual.Regions)
	assert.Equal(t, "Packages/VCS Gutter/icons/deleted_dual.png", dual.Icon)

	Clear(set)
	assert.Empty(t, set.Keys())
}
