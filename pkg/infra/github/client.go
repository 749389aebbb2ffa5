package github

import (
	"context"
	"errors"

	graphql "github.com/cli/shurcooL-graphql"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/interfaces"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
	"golang.org/x/oauth2"
)

const graphqlEndpoint = "https://api.github.com/graphql"

type client struct {
	owner string
	repo  string
	rest  *github.Client
	gql   *graphql.Client
}

// NewClient creates an IssueTracker backed by the GitHub REST and GraphQL
// APIs, sharing a single bearer-token transport. Linked issues need GraphQL:
// the REST API does not expose issue types on closing references.
func NewClient(repo, token string) (interfaces.IssueTracker, error) {
	if token == "" {
		return nil, types.ErrNoGitHubToken
	}
	owner, name, err := model.SplitRepo(repo)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	return &client{
		owner: owner,
		repo:  name,
		rest:  github.NewClient(httpClient),
		gql:   graphql.NewClient(graphqlEndpoint, httpClient),
	}, nil
}

// PullRequestForCommit finds the pull request a commit belongs to via the
// commit-to-PR association endpoint.
func (c *client) PullRequestForCommit(ctx context.Context, sha string) (*model.CommitPullRequest, error) {
	prs, resp, err := c.rest.PullRequests.ListPullRequestsWithCommit(ctx, c.owner, c.repo, sha,
		&github.ListOptions{PerPage: 10})
	if err != nil {
		return nil, wrapAPIError(err, resp, "failed to list pull requests for commit",
			goerr.V("sha", sha))
	}

	result := &model.CommitPullRequest{}
	if len(prs) == 0 {
		return result, nil
	}

	pr := prs[0]
	result.IsMergeCommit = pr.GetMergeCommitSHA() == sha
	result.PullRequest = convertPullRequest(pr)
	return result, nil
}

// LinkedIssues fetches the issues a pull request closes, including the
// issue type classification.
func (c *client) LinkedIssues(ctx context.Context, prNumber int) ([]model.LinkedIssue, error) {
	var q struct {
		Repository struct {
			PullRequest struct {
				ClosingIssuesReferences struct {
					Nodes []struct {
						Number    int
						Title     string
						IssueType *struct {
							Name string
						}
						Labels struct {
							Nodes []struct {
								Name string
							}
						} `graphql:"labels(first: 20)"`
					}
				} `graphql:"closingIssuesReferences(first: 20)"`
			} `graphql:"pullRequest(number: $number)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}

	variables := map[string]interface{}{
		"owner":  graphql.String(c.owner),
		"name":   graphql.String(c.repo),
		"number": graphql.Int(prNumber),
	}

	if err := c.gql.Query(ctx, &q, variables); err != nil {
		return nil, goerr.Wrap(err, "failed to fetch linked issues",
			goerr.V("number", prNumber), goerr.T(types.ErrTagRemote))
	}

	nodes := q.Repository.PullRequest.ClosingIssuesReferences.Nodes
	issues := make([]model.LinkedIssue, 0, len(nodes))
	for _, node := range nodes {
		issue := model.LinkedIssue{
			Number: node.Number,
			Title:  node.Title,
		}
		if node.IssueType != nil {
			issue.IssueType = &model.IssueType{Name: node.IssueType.Name}
		}
		for _, label := range node.Labels.Nodes {
			issue.Labels = append(issue.Labels, model.Label{Name: label.Name})
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// Issue fetches a single issue by number.
func (c *client) Issue(ctx context.Context, number int) (*model.Issue, error) {
	issue, resp, err := c.rest.Issues.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return nil, wrapAPIError(err, resp, "failed to fetch issue",
			goerr.V("number", number))
	}

	rec := &model.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		URL:    issue.GetHTMLURL(),
	}
	if t := issue.GetType(); t != nil {
		rec.IssueType = &model.IssueType{Name: t.GetName()}
	}
	for _, label := range issue.Labels {
		rec.Labels = append(rec.Labels, model.Label{Name: label.GetName()})
	}
	return rec, nil
}

// User fetches a user profile by login.
func (c *client) User(ctx context.Context, login string) (*model.Author, error) {
	user, resp, err := c.rest.Users.Get(ctx, login)
	if err != nil {
		return nil, wrapAPIError(err, resp, "failed to fetch user",
			goerr.V("login", login))
	}

	return &model.Author{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		URL:       user.GetHTMLURL(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

func convertPullRequest(pr *github.PullRequest) *model.PullRequestRecord {
	rec := &model.PullRequestRecord{
		Number:     pr.GetNumber(),
		Title:      pr.GetTitle(),
		URL:        pr.GetHTMLURL(),
		Merged:     pr.GetMerged() || !pr.GetMergedAt().IsZero(),
		BaseBranch: pr.GetBase().GetRef(),
	}
	if user := pr.GetUser(); user != nil {
		rec.Author = &model.Author{
			Login:     user.GetLogin(),
			URL:       user.GetHTMLURL(),
			AvatarURL: user.GetAvatarURL(),
		}
	}
	return rec
}

// wrapAPIError attaches the transport status and response body so a failed
// run is diagnosable from the error alone.
func wrapAPIError(err error, resp *github.Response, msg string, options ...goerr.Option) error {
	options = append(options, goerr.T(types.ErrTagRemote))
	if resp != nil {
		options = append(options, goerr.V("status", resp.StatusCode))
	}
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		options = append(options, goerr.V("body", ghErr.Message))
	}
	return goerr.Wrap(err, msg, options...)
}
