package git

import "errors"

// Error types for git operations.
var (
	// ErrNotRepository indicates the path is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")

	// ErrNotTracked indicates the file has no committed revision.
	ErrNotTracked = errors.New("file not tracked")

	// ErrNoHead indicates the repository has no commits yet.
	ErrNoHead = errors.New("repository has no HEAD")

	// ErrGitNotFound indicates the git executable is not on PATH.
	ErrGitNotFound = errors.New("git executable not found")
)
