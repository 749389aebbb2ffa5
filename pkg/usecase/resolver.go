package usecase

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/interfaces"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/utils/pool"
)

// enrichConcurrency caps in-flight commit enrichment to stay inside the
// remote API rate limits.
const enrichConcurrency = 5

// prCacheEntry is the shared computation for one PR number. The first
// commit to reach the number performs the linked-issues lookup exactly once;
// every other commit waits on ready and reads the same result.
type prCacheEntry struct {
	ready chan struct{}

	mu           sync.Mutex
	pr           *model.PullRequestRecord
	linkedIssues []model.LinkedIssue
	failure      error
}

// complete publishes the lookup result and releases all waiters. Called
// exactly once, by the entry's creator.
func (x *prCacheEntry) complete(pr *model.PullRequestRecord, issues []model.LinkedIssue, err error) {
	x.mu.Lock()
	x.pr = pr
	x.linkedIssues = issues
	x.failure = err
	x.mu.Unlock()
	close(x.ready)
}

// wait blocks until the in-flight lookup finishes and returns its error.
func (x *prCacheEntry) wait(ctx context.Context) error {
	select {
	case <-x.ready:
		x.mu.Lock()
		defer x.mu.Unlock()
		return x.failure
	case <-ctx.Done():
		return goerr.Wrap(ctx.Err(), "interrupted while waiting for pull request lookup")
	}
}

// patchPR back-fills a fully populated PR object into an entry that was
// created with only a number. Only the nil-to-populated transition is
// allowed; a populated value is never overwritten.
func (x *prCacheEntry) patchPR(pr *model.PullRequestRecord) {
	if pr == nil {
		return
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.pr == nil {
		x.pr = pr
	}
}

func (x *prCacheEntry) pullRequest() *model.PullRequestRecord {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.pr
}

func (x *prCacheEntry) issues() []model.LinkedIssue {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.linkedIssues
}

// prCache is the one piece of mutable state shared across enrichment
// workers. It lives for a single run and is never a process-wide singleton.
type prCache struct {
	mu      sync.Mutex
	entries map[int]*prCacheEntry
}

func newPRCache() *prCache {
	return &prCache{entries: make(map[int]*prCacheEntry)}
}

// acquire returns the entry for number and whether the caller created it.
// Check-then-create holds the lock, so two commits discovering the same
// number concurrently converge on a single entry and a single lookup.
func (x *prCache) acquire(number int) (*prCacheEntry, bool) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if entry, ok := x.entries[number]; ok {
		return entry, false
	}
	entry := &prCacheEntry{ready: make(chan struct{})}
	x.entries[number] = entry
	return entry, true
}

// PullRequestResolver populates each commit's pull request and linked
// issues, minimizing remote calls via the per-run PR cache.
type PullRequestResolver struct {
	tracker   interfaces.IssueTracker
	cfg       *model.Config
	cache     *prCache
	processed atomic.Int64
}

// NewPullRequestResolver creates a resolver with a fresh per-run cache.
func NewPullRequestResolver(tracker interfaces.IssueTracker, cfg *model.Config) *PullRequestResolver {
	return &PullRequestResolver{
		tracker: tracker,
		cfg:     cfg,
		cache:   newPRCache(),
	}
}

// Resolve enriches every commit with bounded concurrency. Any remote lookup
// failure aborts the whole run; no partial output is produced.
func (x *PullRequestResolver) Resolve(ctx context.Context, commits []*model.CommitRecord) error {
	tasks := make([]func(ctx context.Context) error, 0, len(commits))
	for _, commit := range commits {
		tasks = append(tasks, func(ctx context.Context) error {
			if err := x.enrich(ctx, commit); err != nil {
				return err
			}
			ctxlog.From(ctx).Debug("enriched commit",
				"sha", commit.SHA,
				"processed", x.processed.Add(1),
				"total", len(commits),
			)
			return nil
		})
	}

	return pool.Run(ctx, enrichConcurrency, tasks)
}

func (x *PullRequestResolver) enrich(ctx context.Context, commit *model.CommitRecord) error {
	var prNumber int
	var found *model.PullRequestRecord

	if commit.IssueNumber != "" {
		// Direct linkage: trust the inline reference over auto-discovery.
		if n, err := strconv.Atoi(commit.IssueNumber); err == nil {
			prNumber = n
		}
	} else {
		result, err := x.tracker.PullRequestForCommit(ctx, commit.SHA)
		if err != nil {
			return goerr.Wrap(err, "failed to look up pull request for commit",
				goerr.V("sha", commit.SHA))
		}
		if pr := result.PullRequest; pr != nil && x.accept(pr) {
			prNumber = pr.Number
			found = pr
		}
	}

	if prNumber != 0 {
		entry, created := x.cache.acquire(prNumber)
		if created {
			issues, err := x.tracker.LinkedIssues(ctx, prNumber)
			if err != nil {
				err = goerr.Wrap(err, "failed to fetch linked issues",
					goerr.V("number", prNumber))
			}
			entry.complete(found, issues, err)
			if err != nil {
				return err
			}
		} else {
			if err := entry.wait(ctx); err != nil {
				return err
			}
			entry.patchPR(found)
		}

		commit.PullRequest = entry.pullRequest()
		commit.LinkedIssues = entry.issues()
	}

	if commit.IssueNumber != "" && prNumber != 0 {
		issue, err := x.tracker.Issue(ctx, prNumber)
		if err != nil {
			return goerr.Wrap(err, "failed to fetch issue",
				goerr.V("number", prNumber))
		}
		commit.Issue = issue
	}

	if commit.PullRequest == nil && commit.Issue == nil {
		ctxlog.From(ctx).Debug("commit has no pull request or issue", "sha", commit.SHA)
	}
	return nil
}

// accept applies the discovery rules: the candidate must be merged, carry a
// number and be based on one of the configured main-line branches.
func (x *PullRequestResolver) accept(pr *model.PullRequestRecord) bool {
	return pr.Merged && pr.Number != 0 && x.cfg.IsBaseBranch(pr.BaseBranch)
}
