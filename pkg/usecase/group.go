package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/interfaces"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
)

// ReleaseGrouper buckets categorized pull requests into releases keyed by
// the target ref.
//
// Known limitation: a single from..to range collapses all qualifying PRs
// into one release bucket. The map stays multi-key capable for forward
// compatibility, but current call sites only ever populate one key.
type ReleaseGrouper struct {
	vcs interfaces.VersionControlSource
	cfg *model.Config
}

// NewReleaseGrouper creates a ReleaseGrouper.
func NewReleaseGrouper(vcs interfaces.VersionControlSource, cfg *model.Config) *ReleaseGrouper {
	return &ReleaseGrouper{vcs: vcs, cfg: cfg}
}

// Group places qualifying pull requests into releases. The release key is
// the target ref when it names a tag, otherwise the unreleased marker (or
// the configured next version). PRs with an empty category set are skipped
// entirely.
func (x *ReleaseGrouper) Group(ctx context.Context, prs []*model.PullRequestRecord, to string) ([]*model.Release, error) {
	key, date, err := x.releaseKey(ctx, to)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*model.Release)
	var ordered []*model.Release

	for _, pr := range prs {
		if pr.Categories == nil || pr.Categories.Empty() {
			continue
		}

		release, ok := index[key]
		if !ok {
			release = &model.Release{Name: key, Date: date}
			index[key] = release
			ordered = append(ordered, release)
		}
		release.PullRequests = append(release.PullRequests, pr)
	}

	return ordered, nil
}

func (x *ReleaseGrouper) releaseKey(ctx context.Context, to string) (string, *time.Time, error) {
	if to != "" && to != "HEAD" {
		date, err := x.vcs.TagDate(ctx, to)
		if err != nil {
			return "", nil, goerr.Wrap(err, "failed to resolve tag date", goerr.V("tag", to))
		}
		if date != nil {
			return to, date, nil
		}
	}

	if x.cfg.NextVersion != "" {
		return x.cfg.NextVersion, nil, nil
	}
	return types.UnreleasedName, nil, nil
}
