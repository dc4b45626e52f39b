package git

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStatus represents a file's git status
type FileStatus struct {
	Status string // M, A, D, ?, etc
	Path   string // relative to the work tree root
	Mtime  int64  // for sorting by most recent
}

// Clean reports whether the file has no pending changes.
func (f FileStatus) Clean() bool {
	return f.Status == ""
}

// Untracked reports whether git does not know the file.
func (f FileStatus) Untracked() bool {
	return f.Status == "?"
}

// Status returns changed files from git status --porcelain, most recently
// modified first.
func (r *Repository) Status(ctx context.Context, paths ...string) ([]FileStatus, error) {
	args := []string{"status", "--porcelain", "-z", "--untracked-files=all"}
	if len(paths) > 0 {
		args = append(args, "--")
		args = append(args, paths...)
	}
	out, err := runGit(ctx, r.Root, args...)
	if err != nil {
		return nil, err
	}

	files := parsePorcelain(string(out))
	for i := range files {
		if info, err := os.Stat(filepath.Join(r.Root, files[i].Path)); err == nil {
			files[i].Mtime = info.ModTime().UnixNano()
		}
	}
	sort.SliceStable(files, func(i, j int) bool {
		return files[i].Mtime > files[j].Mtime
	})
	return files, nil
}

// StatusOf returns the status of a single file. Clean files get an empty
// Status.
func (r *Repository) StatusOf(ctx context.Context, path string) (FileStatus, error) {
	rel, err := r.Rel(path)
	if err != nil {
		return FileStatus{}, err
	}
	files, err := r.Status(ctx, rel)
	if err != nil {
		return FileStatus{}, err
	}
	for _, f := range files {
		if f.Path == rel {
			return f, nil
		}
	}
	return FileStatus{Path: rel}, nil
}

// parsePorcelain parses NUL-separated porcelain v1 output.
func parsePorcelain(out string) []FileStatus {
	var files []FileStatus
	entries := strings.Split(out, "\x00")
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if len(e) < 4 {
			continue
		}
		x, y := e[0], e[1]
		f := FileStatus{Path: e[3:], Status: statusCode(x, y)}
		// Renames and copies are followed by the source path.
		if x == 'R' || x == 'C' {
			i++
		}
		files = append(files, f)
	}
	return files
}

func statusCode(x, y byte) string {
	switch {
	case x == '?' && y == '?':
		return "?"
	case x == 'U' || y == 'U' || (x == 'A' && y == 'A') || (x == 'D' && y == 'D'):
		return "U"
	case y != ' ':
		return string(y)
	default:
		return string(x)
	}
}
