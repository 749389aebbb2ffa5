package model

import "time"

// RawCommit is one record from the version control log, before parsing.
type RawCommit struct {
	SHA      string
	RefNames string // raw ref decoration, e.g. "tag: v1.2.0, origin/main"
	Message  string
	Date     time.Time
}

// CommitRecord is a parsed commit. The parse fields are set once; the
// enrichment fields are filled in during pull request resolution and
// category assignment, and the whole record is discarded after a run.
type CommitRecord struct {
	SHA         string
	Message     string
	Date        time.Time
	Tags        []string
	IssueNumber string // inline "#123" reference from the message, empty when absent

	// Enrichment fields
	PullRequest  *PullRequestRecord
	Issue        *Issue
	LinkedIssues []LinkedIssue
	Packages     []string
}
