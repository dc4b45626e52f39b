package gutter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kateleext/vcsgutter/internal/buffer"
)

func TestMarkerSetCopiesRegions(t *testing.T) {
	set := NewMarkerSet()
	regions := []buffer.Region{{A: 0, B: 1}}
	set.AddRegions("k", regions, "scope", "icon", Hidden)

	regions[0].A = 99
	m, _ := set.Get("k")
	assert.Equal(t, 0, m.Regions[0].A)
}

func TestMarkerSetErase(t *testing.T) {
	set := NewMarkerSet()
	set.AddRegions("a", nil, "", "", 0)
	set.AddRegions("b", nil, "", "", 0)
	set.EraseRegions("a")
	set.EraseRegions("missing")

	assert.Equal(t, []string{"b"}, set.Keys())
	assert.Len(t, set.Snapshot(), 1)
}

func TestMarkerSetConcurrent(t *testing.T) {
	set := NewMarkerSet()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			set.AddRegions("k", []buffer.Region{{A: i, B: i + 1}}, "", "", 0)
			set.Snapshot()
		}(i)
	}
	wg.Wait()

	m, ok := set.Get("k")
	assert.True(t, ok)
	assert.Len(t, m.Regions, 1)
}
