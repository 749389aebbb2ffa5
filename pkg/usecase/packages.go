package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/interfaces"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/utils/pool"
)

// PackageMapper attributes changed file paths to monorepo package names.
// Disabled unless a packages directory is configured.
type PackageMapper struct {
	vcs interfaces.VersionControlSource
	cfg *model.Config
}

// NewPackageMapper creates a PackageMapper.
func NewPackageMapper(vcs interfaces.VersionControlSource, cfg *model.Config) *PackageMapper {
	return &PackageMapper{vcs: vcs, cfg: cfg}
}

// Map resolves changed paths for each commit that has a pull request and
// records the touched packages on both the commit and the PR. Path lookups
// run under the same concurrency cap as commit enrichment; the merge into
// PR records is a deterministic sequential pass afterwards.
func (x *PackageMapper) Map(ctx context.Context, commits []*model.CommitRecord) error {
	if x.cfg.PackagesDir == "" {
		return nil
	}

	var tasks []func(ctx context.Context) error
	for _, commit := range commits {
		if commit.PullRequest == nil {
			continue
		}
		tasks = append(tasks, func(ctx context.Context) error {
			paths, err := x.vcs.ChangedPaths(ctx, commit.SHA)
			if err != nil {
				return goerr.Wrap(err, "failed to resolve changed paths",
					goerr.V("sha", commit.SHA))
			}
			commit.Packages = packagesFromPaths(x.cfg.PackagesDir, paths)
			return nil
		})
	}

	if err := pool.Run(ctx, enrichConcurrency, tasks); err != nil {
		return err
	}

	for _, commit := range commits {
		if commit.PullRequest == nil {
			continue
		}
		pr := commit.PullRequest
		for _, name := range commit.Packages {
			if !containsString(pr.Packages, name) {
				pr.Packages = append(pr.Packages, name)
			}
		}
	}
	return nil
}

// packagesFromPaths maps paths like "packages/foo/src/a.go" to "foo",
// deduplicated in first-seen order. Paths outside the packages directory
// contribute nothing.
func packagesFromPaths(dir string, paths []string) []string {
	prefix := dir + "/"
	var names []string
	for _, path := range paths {
		rest, ok := strings.CutPrefix(path, prefix)
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(rest, "/")
		if name != "" && !containsString(names, name) {
			names = append(names, name)
		}
	}
	return names
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
