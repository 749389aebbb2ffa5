package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// CategoryAssigner maps each pull request's linked issues to configured
// categories via issue type.
type CategoryAssigner struct {
	cfg *model.Config
}

// NewCategoryAssigner creates a CategoryAssigner.
func NewCategoryAssigner(cfg *model.Config) *CategoryAssigner {
	return &CategoryAssigner{cfg: cfg}
}

// Assign deduplicates pull requests from the enriched commit list in
// first-seen order and fills each PR's category set. Category sets are
// rebuilt from scratch, so re-running yields identical results.
func (x *CategoryAssigner) Assign(ctx context.Context, commits []*model.CommitRecord) []*model.PullRequestRecord {
	var ordered []*model.PullRequestRecord
	byNumber := make(map[int]*model.PullRequestRecord)

	for _, commit := range commits {
		pr := commit.PullRequest
		if pr == nil {
			continue
		}
		if _, ok := byNumber[pr.Number]; !ok {
			byNumber[pr.Number] = pr
			ordered = append(ordered, pr)
		}
	}

	for _, pr := range ordered {
		categories := model.NewCategorySet()

		// Union of linked issues across every commit referencing this PR.
		for _, commit := range commits {
			if commit.PullRequest == nil || commit.PullRequest.Number != pr.Number {
				continue
			}
			for _, issue := range commit.LinkedIssues {
				x.assignIssue(ctx, issue, categories)
			}
		}

		if categories.Empty() {
			if fallback, ok := x.cfg.Labels[x.cfg.FallbackKey()]; ok {
				categories.Add(fallback)
			}
		}
		pr.Categories = categories
	}

	return ordered
}

// assignIssue adds the categories an issue contributes. An issue with
// neither labels nor an issue type is a data problem worth surfacing, but
// never fatal.
func (x *CategoryAssigner) assignIssue(ctx context.Context, issue model.LinkedIssue, categories *model.CategorySet) {
	if issue.IssueType == nil && len(issue.Labels) == 0 {
		ctxlog.From(ctx).Warn("issue has neither labels nor an issue type",
			"issue", issue.Number,
			"title", issue.Title,
		)
		return
	}

	if issue.IssueType == nil {
		return
	}
	if display, ok := x.cfg.Labels[strings.ToLower(issue.IssueType.Name)]; ok {
		categories.Add(display)
	}
}
