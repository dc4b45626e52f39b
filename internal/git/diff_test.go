package git

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kateleext/vcsgutter/internal/buffer"
	"github.com/kateleext/vcsgutter/internal/gutter"
)

func TestComputeChanges(t *testing.T) {
	base := "a\nb\nc\nd\n"
	tests := []struct {
		name    string
		current string
		want    gutter.Changes
	}{
		{"unchanged", base, gutter.Changes{}},
		{"insert", "a\nb\nX\nY\nc\nd\n", gutter.Changes{Inserted: []int{3, 4}}},
		{"change", "a\nB\nc\nd\n", gutter.Changes{Changed: []int{2}}},
		{"delete middle", "a\nd\n", gutter.Changes{Deleted: []int{2}}},
		{"delete first", "b\nc\nd\n", gutter.Changes{Deleted: []int{1}}},
		{"delete last", "a\nb\nc\n", gutter.Changes{Deleted: []int{4}}},
		{"mixed", "a\nB\nc\nd\nE\n", gutter.Changes{Inserted: []int{5}, Changed: []int{2}}},
		{"last line loses newline", "a\nb\nc\nd", gutter.Changes{Changed: []int{4}}},
		{"append after last line", "a\nb\nc\nd\ne\n", gutter.Changes{Inserted: []int{5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeChanges(base, tt.current))
		})
	}
}

func TestComputeChangesTrailingNewline(t *testing.T) {
	assert.Equal(t, gutter.Changes{Changed: []int{2}}, ComputeChanges("a\nb", "a\nb\n"))
	assert.Equal(t, gutter.Changes{Inserted: []int{1, 2}}, ComputeChanges("", "a\nb\n"))
	assert.Equal(t, gutter.Changes{Deleted: []int{1}}, ComputeChanges("a\n", ""))
}

func TestDifferDiff(t *testing.T) {
	dir := testRepo(t)
	path := commitFile(t, dir, "main.txt", "one\ntwo\nthree\nfour\n")
	require.NoError(t, os.WriteFile(path, []byte("one\nTWO\nfour\nfive\n"), 0o644))

	d := NewDiffer()
	ch, err := d.Diff(ctx(), path, buffer.New("one\nTWO\nfour\nfive\n"))
	require.NoError(t, err)
	assert.True(t, !ch.Empty())
	assert.Contains(t, ch.Changed, 2)
	assert.Contains(t, ch.Inserted, 4)
}

func TestDifferDiffUsesBufferNotDisk(t *testing.T) {
	dir := testRepo(t)
	path := commitFile(t, dir, "main.txt", "one\ntwo\n")

	ch, err := NewDiffer().Diff(ctx(), path, buffer.New("zero\none\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, gutter.Changes{Inserted: []int{1}}, ch)
}

func TestDifferDiffUntracked(t *testing.T) {
	dir := testRepo(t)
	commitFile(t, dir, "a.txt", "x\n")
	path := createFile(t, dir, "b.txt", "y\n")

	_, err := NewDiffer().Diff(ctx(), path, buffer.New("y\n"))
	assert.ErrorIs(t, err, ErrNotTracked)
}
