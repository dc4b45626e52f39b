package view

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kateleext/vcsgutter/internal/buffer"
	"github.com/kateleext/vcsgutter/internal/gutter"
)

var _ View = (*Document)(nil)
var _ Window = (*Host)(nil)

func TestOpenAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o644))

	doc, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.FileName())
	assert.Equal(t, "a\nb\n", doc.Buffer().String())

	require.NoError(t, os.WriteFile(path, []byte("c\n"), 0o644))
	require.NoError(t, doc.Reload())
	assert.Equal(t, "c\n", doc.Buffer().String())
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestHostActiveView(t *testing.T) {
	h := NewHost()
	_, ok := h.ActiveView()
	assert.False(t, ok)

	doc := NewDocument("x.txt", "")
	h.SetActive(doc)
	v, ok := h.ActiveView()
	require.True(t, ok)
	assert.Same(t, doc, v)
}

func TestLineMarkers(t *testing.T) {
	doc := NewDocument("x.txt", "1\n2\n3\n4\n")
	doc.AddRegions(gutter.Inserted.RegionKey(), []buffer.Region{{A: 2, B: 3}}, "", "", 0)
	doc.AddRegions(gutter.DeletedTop.RegionKey(), []buffer.Region{{A: 6, B: 7}}, "", "", 0)
	doc.AddRegions("unrelated", []buffer.Region{{A: 0, B: 1}}, "", "", 0)

	assert.Equal(t, map[int]gutter.Category{
		2: gutter.Inserted,
		4: gutter.DeletedTop,
	}, doc.LineMarkers())
}
