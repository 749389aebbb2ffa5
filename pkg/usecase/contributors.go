package usecase

import (
	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// ContributorCollector derives the deduplicated, committer-filtered author
// list per release.
type ContributorCollector struct {
	cfg *model.Config
}

// NewContributorCollector creates a ContributorCollector.
func NewContributorCollector(cfg *model.Config) *ContributorCollector {
	return &ContributorCollector{cfg: cfg}
}

// Collect fills each release's contributor list: login-keyed, first-seen
// order, ignore-list entries filtered. A pull request without an author is
// silently skipped.
func (x *ContributorCollector) Collect(releases []*model.Release) {
	for _, release := range releases {
		seen := make(map[string]struct{})
		var contributors []*model.Author

		for _, pr := range release.PullRequests {
			author := pr.Author
			if author == nil {
				continue
			}
			if _, ok := seen[author.Login]; ok {
				continue
			}
			if x.cfg.IsIgnoredCommitter(author.Login) {
				continue
			}
			seen[author.Login] = struct{}{}
			contributors = append(contributors, author)
		}

		release.Contributors = contributors
	}
}
