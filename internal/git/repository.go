// Package git reads committed file revisions and work tree status through
// the git executable and diffs buffers against them.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("vcsgutter.git")

// Repository is a git work tree.
type Repository struct {
	// Root is the absolute work tree root.
	Root string
}

// Discover finds the repository containing path, which may be a file or a
// directory.
func Discover(ctx context.Context, path string) (*Repository, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	dir := abs
	if !isDir(abs) {
		dir = filepath.Dir(abs)
	}

	out, err := runGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		if errors.Is(err, ErrGitNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, dir)
	}
	root := strings.TrimSpace(string(out))
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	return &Repository{Root: root}, nil
}

// Rel returns path relative to the work tree root, with forward slashes.
func (r *Repository) Rel(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	} else if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	rel, err := filepath.Rel(r.Root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s is outside %s", ErrNotRepository, path, r.Root)
	}
	return filepath.ToSlash(rel), nil
}

// Show returns the contents of path at revision rev.
func (r *Repository) Show(ctx context.Context, rev, path string) (string, error) {
	rel, err := r.Rel(path)
	if err != nil {
		return "", err
	}
	out, err := runGit(ctx, r.Root, "show", rev+":"+rel)
	if err != nil {
		return "", classifyShowError(err, rel)
	}
	log.Debugf("read %s:%s (%d bytes)", rev, rel, len(out))
	return string(out), nil
}

// BaselinePaths returns the files whose changes move the committed
// baseline: HEAD itself, the branch ref HEAD points at, and packed-refs.
// A branch ref whose directory does not exist yet (no commits) is skipped.
func (r *Repository) BaselinePaths(ctx context.Context) ([]string, error) {
	head, err := r.gitPath(ctx, "HEAD")
	if err != nil {
		return nil, err
	}
	paths := []string{head}

	// Exits non-zero on a detached HEAD, which has no branch ref to follow.
	if out, err := runGit(ctx, r.Root, "symbolic-ref", "-q", "HEAD"); err == nil {
		if ref := strings.TrimSpace(string(out)); ref != "" {
			refPath, err := r.gitPath(ctx, ref)
			if err != nil {
				return nil, err
			}
			if isDir(filepath.Dir(refPath)) {
				paths = append(paths, refPath)
			}
		}
	}

	packed, err := r.gitPath(ctx, "packed-refs")
	if err != nil {
		return nil, err
	}
	return append(paths, packed), nil
}

func (r *Repository) gitPath(ctx context.Context, name string) (string, error) {
	out, err := runGit(ctx, r.Root, "rev-parse", "--git-path", name)
	if err != nil {
		return "", err
	}
	p := strings.TrimSpace(string(out))
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.Root, p)
	}
	return p, nil
}

// commandError carries git's stderr.
type commandError struct {
	args   []string
	stderr string
	err    error
}

func (e *commandError) Error() string {
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.args, " "), e.err, e.stderr)
}

func (e *commandError) Unwrap() error {
	return e.err
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrGitNotFound
		}
		return nil, &commandError{args: args, stderr: strings.TrimSpace(stderr.String()), err: err}
	}
	return stdout.Bytes(), nil
}

func classifyShowError(err error, rel string) error {
	var ce *commandError
	if !errors.As(err, &ce) {
		return err
	}
	switch {
	case strings.Contains(ce.stderr, "invalid object name 'HEAD'"),
		strings.Contains(ce.stderr, "bad revision"),
		strings.Contains(ce.stderr, "unknown revision"):
		return fmt.Errorf("%w: %v", ErrNoHead, err)
	case strings.Contains(ce.stderr, "does not exist in"),
		strings.Contains(ce.stderr, "exists on disk, but not in"):
		return fmt.Errorf("%w: %s", ErrNotTracked, rel)
	}
	return err
}
