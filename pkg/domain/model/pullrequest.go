package model

// Author is a GitHub user referenced as commit or pull request author.
type Author struct {
	Login     string
	Name      string
	URL       string
	AvatarURL string
}

// PullRequestRecord represents a merged pull request. Identity is Number:
// a pull request may be referenced by many commits but appears exactly once
// in the final output.
type PullRequestRecord struct {
	Number     int
	Title      string
	URL        string
	Author     *Author
	Merged     bool
	BaseBranch string
	Categories *CategorySet
	Packages   []string
}

// CommitPullRequest is the result of a commit-to-PR lookup.
type CommitPullRequest struct {
	IsMergeCommit bool
	PullRequest   *PullRequestRecord
}

// IssueType is the GitHub classification field on an issue, distinct from
// labels. It is the primary category signal.
type IssueType struct {
	Name string
}

// Label is a GitHub issue label.
type Label struct {
	Name string
}

// LinkedIssue is an issue a pull request closes automatically, discovered
// via the closing-references query. Read-only once fetched.
type LinkedIssue struct {
	Number    int
	Title     string
	IssueType *IssueType
	Labels    []Label
}

// Issue is an issue fetched directly by number.
type Issue struct {
	Number    int
	Title     string
	URL       string
	IssueType *IssueType
	Labels    []Label
}
