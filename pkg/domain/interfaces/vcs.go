package interfaces

import (
	"context"
	"time"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// VersionControlSource defines local repository inspection. No method
// mutates the repository.
type VersionControlSource interface {
	// ListCommits returns the commits in the from..to range, newest first.
	// An empty from walks back to the repository root.
	ListCommits(ctx context.Context, from, to string) ([]model.RawCommit, error)

	// ChangedPaths returns the file paths touched by a commit.
	ChangedPaths(ctx context.Context, sha string) ([]string, error)

	// LastTag returns the most recent tag reachable from HEAD, or an empty
	// string when the repository has no tags.
	LastTag(ctx context.Context) (string, error)

	// TagDate returns the commit date of a tag, or nil when no such tag
	// exists.
	TagDate(ctx context.Context, tag string) (*time.Time, error)
}
