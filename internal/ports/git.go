package ports

import "context"

// GitInfo carries the repository context attached to a completed work
// session.
type GitInfo struct {
	Branch string
	Commit string
}

// GitDetector detects git context for the working directory.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect scans the working directory for git context.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)

	// IsAvailable reports whether a git repository is reachable from
	// the current directory.
	IsAvailable() bool
}
