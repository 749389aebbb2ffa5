package interfaces

import (
	"context"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// IssueTracker defines the remote issue/PR retrieval operations the
// changelog pipeline depends on. Any non-success response is fatal to the
// run: implementations return errors carrying the transport status and body.
type IssueTracker interface {
	// PullRequestForCommit returns the pull request associated with a commit.
	// The result's PullRequest is nil when the commit has no associated PR.
	PullRequestForCommit(ctx context.Context, sha string) (*model.CommitPullRequest, error)

	// LinkedIssues returns the issues a pull request is configured to close.
	LinkedIssues(ctx context.Context, prNumber int) ([]model.LinkedIssue, error)

	// Issue fetches a single issue by number.
	Issue(ctx context.Context, number int) (*model.Issue, error)

	// User fetches a user profile by login.
	User(ctx context.Context, login string) (*model.Author, error)
}
