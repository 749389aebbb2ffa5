package usecase_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m-mizutani/shiplog/pkg/domain/model"
)

// mockTracker is a hand-written IssueTracker test double with call recording.
type mockTracker struct {
	mu sync.Mutex

	prForCommitFunc  func(sha string) (*model.CommitPullRequest, error)
	linkedIssuesFunc func(number int) ([]model.LinkedIssue, error)
	issueFunc        func(number int) (*model.Issue, error)
	userFunc         func(login string) (*model.Author, error)

	prForCommitCalls  []string
	linkedIssuesCalls map[int]int
}

func (m *mockTracker) PullRequestForCommit(ctx context.Context, sha string) (*model.CommitPullRequest, error) {
	m.mu.Lock()
	m.prForCommitCalls = append(m.prForCommitCalls, sha)
	m.mu.Unlock()

	if m.prForCommitFunc != nil {
		return m.prForCommitFunc(sha)
	}
	return &model.CommitPullRequest{}, nil
}

func (m *mockTracker) LinkedIssues(ctx context.Context, number int) ([]model.LinkedIssue, error) {
	m.mu.Lock()
	if m.linkedIssuesCalls == nil {
		m.linkedIssuesCalls = make(map[int]int)
	}
	m.linkedIssuesCalls[number]++
	m.mu.Unlock()

	if m.linkedIssuesFunc != nil {
		return m.linkedIssuesFunc(number)
	}
	return nil, nil
}

func (m *mockTracker) Issue(ctx context.Context, number int) (*model.Issue, error) {
	if m.issueFunc != nil {
		return m.issueFunc(number)
	}
	return &model.Issue{Number: number}, nil
}

func (m *mockTracker) User(ctx context.Context, login string) (*model.Author, error) {
	if m.userFunc != nil {
		return m.userFunc(login)
	}
	return &model.Author{Login: login}, nil
}

func (m *mockTracker) linkedIssuesCallCount(number int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.linkedIssuesCalls[number]
}

func (m *mockTracker) prLookupCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prForCommitCalls)
}

// mockVCS is a hand-written VersionControlSource test double.
type mockVCS struct {
	commits      []model.RawCommit
	changedPaths map[string][]string
	lastTag      string
	tagDates     map[string]time.Time
}

func (m *mockVCS) ListCommits(ctx context.Context, from, to string) ([]model.RawCommit, error) {
	return m.commits, nil
}

func (m *mockVCS) ChangedPaths(ctx context.Context, sha string) ([]string, error) {
	return m.changedPaths[sha], nil
}

func (m *mockVCS) LastTag(ctx context.Context) (string, error) {
	return m.lastTag, nil
}

func (m *mockVCS) TagDate(ctx context.Context, tag string) (*time.Time, error) {
	if date, ok := m.tagDates[tag]; ok {
		return &date, nil
	}
	return nil, nil
}

func mergedPR(number int, login string) *model.PullRequestRecord {
	return &model.PullRequestRecord{
		Number:     number,
		Title:      fmt.Sprintf("pull request %d", number),
		URL:        fmt.Sprintf("https://github.com/acme/demo/pull/%d", number),
		Author:     &model.Author{Login: login, URL: "https://github.com/" + login},
		Merged:     true,
		BaseBranch: "main",
	}
}

func typedIssue(number int, typeName string) model.LinkedIssue {
	return model.LinkedIssue{
		Number:    number,
		Title:     fmt.Sprintf("issue %d", number),
		IssueType: &model.IssueType{Name: typeName},
		Labels:    []model.Label{{Name: "triaged"}},
	}
}
