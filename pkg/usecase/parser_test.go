package usecase_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/usecase"
)

func TestParseCommit(t *testing.T) {
	date := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		raw         model.RawCommit
		wantTags    []string
		wantIssue   string
	}{
		{
			name: "tags and branches in decoration",
			raw: model.RawCommit{
				SHA:      "a1b2c3",
				RefNames: "tag: v1.2.0, tag: latest, origin/main",
				Message:  "release v1.2.0",
				Date:     date,
			},
			wantTags: []string{"v1.2.0", "latest"},
		},
		{
			name: "single tag",
			raw: model.RawCommit{
				SHA:      "d4e5f6",
				RefNames: "tag: v0.9.0",
				Message:  "cut release",
			},
			wantTags: []string{"v0.9.0"},
		},
		{
			name: "no decoration",
			raw: model.RawCommit{
				SHA:     "aaaa",
				Message: "refactor parser",
			},
		},
		{
			name: "branch-only decoration yields no tags",
			raw: model.RawCommit{
				SHA:      "bbbb",
				RefNames: "origin/main, HEAD -> main",
				Message:  "update docs",
			},
		},
		{
			name: "merge commit message carries PR number",
			raw: model.RawCommit{
				SHA:     "cccc",
				Message: "Merge pull request #123 from acme/fix-crash",
			},
			wantIssue: "123",
		},
		{
			name: "squash commit with trailing reference",
			raw: model.RawCommit{
				SHA:     "dddd",
				Message: "fix: handle empty input (#77)",
			},
			wantIssue: "77",
		},
		{
			name: "first reference wins",
			raw: model.RawCommit{
				SHA:     "eeee",
				Message: "revert #12, reopens #34",
			},
			wantIssue: "12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			commit := usecase.ParseCommit(tt.raw)

			gt.Equal(t, commit.SHA, tt.raw.SHA)
			gt.Equal(t, commit.Message, tt.raw.Message)
			gt.Equal(t, commit.Date, tt.raw.Date)
			gt.Equal(t, commit.Tags, tt.wantTags)
			gt.Equal(t, commit.IssueNumber, tt.wantIssue)
		})
	}
}
