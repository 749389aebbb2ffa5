package model

import "time"

// Release is one changelog section: pull requests grouped under a tag name
// (or the unreleased marker), plus the deduplicated contributor list.
type Release struct {
	Name         string
	Date         *time.Time // nil for the unreleased marker
	PullRequests []*PullRequestRecord
	Contributors []*Author
}
