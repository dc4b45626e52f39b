package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/kateleext/vcsgutter/internal/buffer"
	"github.com/kateleext/vcsgutter/internal/gutter"
)

// DefaultRevision is the revision buffers are compared against.
const DefaultRevision = "HEAD"

// ComputeChanges diffs current against committed line by line. Lines keep
// their terminator, so a last line that gains or loses its newline is
// reported as changed, the way git marks it.
func ComputeChanges(committed, current string) gutter.Changes {
	a := splitLines(committed)
	b := splitLines(current)
	m := difflib.NewMatcherWithJunk(a, b, false, nil)

	var ch gutter.Changes
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				ch.Inserted = append(ch.Inserted, j+1)
			}
		case 'r':
			for j := op.J1; j < op.J2; j++ {
				ch.Changed = append(ch.Changed, j+1)
			}
		case 'd':
			ch.Deleted = append(ch.Deleted, op.J1+1)
		}
	}
	return ch
}

// splitLines splits after each newline. A trailing newline ends the last
// line rather than opening an empty one.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Differ diffs buffers against the committed revision of their file.
type Differ struct {
	Revision string

	mu    sync.Mutex
	repos map[string]*Repository // by directory
}

// NewDiffer creates a differ comparing against HEAD.
func NewDiffer() *Differ {
	return &Differ{
		Revision: DefaultRevision,
		repos:    make(map[string]*Repository),
	}
}

// Diff returns the changes between buf and the committed revision of
// fileName.
func (d *Differ) Diff(ctx context.Context, fileName string, buf *buffer.Buffer) (gutter.Changes, error) {
	repo, err := d.Repository(ctx, fileName)
	if err != nil {
		return gutter.Changes{}, err
	}
	rev := d.Revision
	if rev == "" {
		rev = DefaultRevision
	}
	committed, err := repo.Show(ctx, rev, fileName)
	if err != nil {
		return gutter.Changes{}, fmt.Errorf("reading committed %s: %w", fileName, err)
	}
	ch := ComputeChanges(committed, buf.String())
	log.Debugf("%s: %d inserted, %d changed, %d deleted",
		fileName, len(ch.Inserted), len(ch.Changed), len(ch.Deleted))
	return ch, nil
}

// Repository returns the repository containing fileName, discovering it on
// first use.
func (d *Differ) Repository(ctx context.Context, fileName string) (*Repository, error) {
	dir := filepath.Dir(fileName)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	d.mu.Lock()
	repo, ok := d.repos[dir]
	d.mu.Unlock()
	if ok {
		return repo, nil
	}

	repo, err := Discover(ctx, dir)
	if err != nil {
		return nil, err
	}
	d.mu.Lock()
	if d.repos == nil {
		d.repos = make(map[string]*Repository)
	}
	d.repos[dir] = repo
	d.mu.Unlock()
	return repo, nil
}
