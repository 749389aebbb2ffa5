package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/interfaces"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

type changelogUseCase struct {
	tracker interfaces.IssueTracker
	vcs     interfaces.VersionControlSource
	cfg     *model.Config
}

// NewChangelog creates the changelog generation pipeline.
func NewChangelog(tracker interfaces.IssueTracker, vcs interfaces.VersionControlSource, cfg *model.Config) interfaces.ChangelogUseCase {
	return &changelogUseCase{
		tracker: tracker,
		vcs:     vcs,
		cfg:     cfg,
	}
}

// Generate runs parse, resolve, categorize, group and collect over the
// from..to range. Remote failures abort the run with no partial output.
func (uc *changelogUseCase) Generate(ctx context.Context, from, to string) ([]*model.Release, error) {
	logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
	ctx = ctxlog.With(ctx, logger)

	raws, err := uc.vcs.ListCommits(ctx, from, to)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits",
			goerr.V("from", from), goerr.V("to", to))
	}
	logger.Info("collected commits", "count", len(raws), "from", from, "to", to)

	commits := make([]*model.CommitRecord, 0, len(raws))
	for _, raw := range raws {
		commits = append(commits, ParseCommit(raw))
	}

	resolver := NewPullRequestResolver(uc.tracker, uc.cfg)
	if err := resolver.Resolve(ctx, commits); err != nil {
		return nil, err
	}

	mapper := NewPackageMapper(uc.vcs, uc.cfg)
	if err := mapper.Map(ctx, commits); err != nil {
		return nil, err
	}

	prs := NewCategoryAssigner(uc.cfg).Assign(ctx, commits)
	logger.Info("resolved pull requests", "commits", len(commits), "pull_requests", len(prs))

	releases, err := NewReleaseGrouper(uc.vcs, uc.cfg).Group(ctx, prs, to)
	if err != nil {
		return nil, err
	}

	NewContributorCollector(uc.cfg).Collect(releases)

	return releases, nil
}
