package gitlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/interfaces"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
)

// Repository is a VersionControlSource backed by go-git. It never mutates
// the underlying repository.
type Repository struct {
	repo *git.Repository
	tags map[plumbing.Hash][]string // commit hash -> tag names, built lazily
}

var _ interfaces.VersionControlSource = (*Repository)(nil)

// Open opens the repository containing path, walking up to find .git.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open git repository",
			goerr.V("path", path), goerr.T(types.ErrTagConfig))
	}
	return &Repository{repo: repo}, nil
}

// ListCommits returns the commits in the from..to range, newest first. The
// lower bound itself is excluded. Each record carries a synthesized ref
// decoration string naming the tags pointing at the commit.
func (x *Repository) ListCommits(ctx context.Context, from, to string) ([]model.RawCommit, error) {
	toHash, err := x.resolve(to)
	if err != nil {
		return nil, err
	}

	var stop plumbing.Hash
	if from != "" {
		fromHash, err := x.resolve(from)
		if err != nil {
			return nil, err
		}
		stop = fromHash
	}

	tags, err := x.tagIndex()
	if err != nil {
		return nil, err
	}

	iter, err := x.repo.Log(&git.LogOptions{From: toHash})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to walk commit log", goerr.V("to", to))
	}
	defer iter.Close()

	var commits []model.RawCommit
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if commit.Hash == stop {
			return storer.ErrStop
		}
		commits = append(commits, model.RawCommit{
			SHA:      commit.Hash.String(),
			RefNames: decorate(tags[commit.Hash]),
			Message:  commit.Message,
			Date:     commit.Committer.When,
		})
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list commits",
			goerr.V("from", from), goerr.V("to", to))
	}
	return commits, nil
}

// ChangedPaths returns the file paths touched by a commit.
func (x *Repository) ChangedPaths(ctx context.Context, sha string) ([]string, error) {
	hash, err := x.resolve(sha)
	if err != nil {
		return nil, err
	}

	commit, err := x.repo.CommitObject(hash)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load commit", goerr.V("sha", sha))
	}

	stats, err := commit.StatsContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compute commit stats", goerr.V("sha", sha))
	}

	paths := make([]string, 0, len(stats))
	for _, stat := range stats {
		paths = append(paths, stat.Name)
	}
	return paths, nil
}

// LastTag walks back from HEAD and returns the first tagged commit's tag,
// or an empty string when no tag is reachable.
func (x *Repository) LastTag(ctx context.Context) (string, error) {
	tags, err := x.tagIndex()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", nil
	}

	head, err := x.repo.Head()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve HEAD")
	}

	iter, err := x.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", goerr.Wrap(err, "failed to walk commit log")
	}
	defer iter.Close()

	var found string
	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if names, ok := tags[commit.Hash]; ok {
			found = names[0]
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to find last tag")
	}
	return found, nil
}

// TagDate returns the commit date of a tag, or nil when no such tag exists.
func (x *Repository) TagDate(ctx context.Context, tag string) (*time.Time, error) {
	ref, err := x.repo.Tag(tag)
	if err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to look up tag", goerr.V("tag", tag))
	}

	hash := ref.Hash()
	// Annotated tags point at a tag object; resolve to the commit.
	if tagObj, err := x.repo.TagObject(hash); err == nil {
		hash = tagObj.Target
	}

	commit, err := x.repo.CommitObject(hash)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load tagged commit", goerr.V("tag", tag))
	}

	when := commit.Committer.When
	return &when, nil
}

// RemoteRepo infers the "owner/name" slug from the origin remote URL.
func (x *Repository) RemoteRepo() (string, error) {
	remote, err := x.repo.Remote(git.DefaultRemoteName)
	if err != nil {
		return "", goerr.Wrap(types.ErrRepoNotInferred, "origin remote is not configured")
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", types.ErrRepoNotInferred
	}

	slug := ParseRemoteURL(urls[0])
	if slug == "" {
		return "", goerr.Wrap(types.ErrRepoNotInferred, "origin remote does not point at GitHub",
			goerr.V("url", urls[0]))
	}
	return slug, nil
}

// ParseRemoteURL extracts an "owner/name" slug from an HTTPS or SSH GitHub
// remote URL. Returns an empty string for anything else.
func ParseRemoteURL(raw string) string {
	raw = strings.TrimSuffix(strings.TrimSpace(raw), ".git")

	idx := strings.Index(raw, "github.com")
	if idx < 0 || len(raw) <= idx+len("github.com")+1 {
		return ""
	}
	rest := raw[idx+len("github.com")+1:] // skip the ":" or "/" separator

	owner, name, ok := strings.Cut(rest, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return ""
	}
	return owner + "/" + name
}

func (x *Repository) resolve(rev string) (plumbing.Hash, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := x.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, goerr.Wrap(err, "failed to resolve revision",
			goerr.V("rev", rev), goerr.T(types.ErrTagConfig))
	}
	return *hash, nil
}

func (x *Repository) tagIndex() (map[plumbing.Hash][]string, error) {
	if x.tags != nil {
		return x.tags, nil
	}

	index := make(map[plumbing.Hash][]string)
	iter, err := x.repo.Tags()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tags")
	}

	err = iter.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		if tagObj, err := x.repo.TagObject(hash); err == nil {
			hash = tagObj.Target
		}
		index[hash] = append(index[hash], ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to index tags")
	}

	x.tags = index
	return index, nil
}

func decorate(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "tag: " + tag
	}
	return strings.Join(parts, ", ")
}
