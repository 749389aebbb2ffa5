package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
)

// fallbackLabelKey is consulted when a pull request matched no issue type
// and no wildcard label is configured.
const fallbackLabelKey = "uncategorized"

// Config is the per-run configuration. Loaded once, read-only afterwards.
type Config struct {
	Repo             string            // "owner/name"
	Labels           map[string]string // lowercase issue-type key -> display category
	IgnoreCommitters []string
	BaseBranches     []string
	NextVersion      string
	WildcardLabel    string
	PackagesDir      string // monorepo packages directory, empty disables package mapping
}

// DefaultConfig returns the built-in configuration. File and flag values are
// layered on top of it.
func DefaultConfig() *Config {
	return &Config{
		Labels: map[string]string{
			"breaking":      "💥 Breaking Changes",
			"feature":       "🚀 Features",
			"enhancement":   "🚀 Features",
			"bug":           "🐛 Bug Fixes",
			"documentation": "📝 Documentation",
			"internal":      "🏠 Internal",
		},
		IgnoreCommitters: []string{
			"dependabot-bot",
			"dependabot[bot]",
			"dependabot-preview[bot]",
			"greenkeeperio-bot",
			"greenkeeper[bot]",
			"renovate-bot",
			"renovate[bot]",
		},
		BaseBranches: []string{"main", "master"},
	}
}

// FallbackKey returns the label-map key used for pull requests that matched
// no issue type.
func (x *Config) FallbackKey() string {
	if x.WildcardLabel != "" {
		return strings.ToLower(x.WildcardLabel)
	}
	return fallbackLabelKey
}

// IsBaseBranch reports whether name is one of the configured main-line
// branches.
func (x *Config) IsBaseBranch(name string) bool {
	for _, branch := range x.BaseBranches {
		if branch == name {
			return true
		}
	}
	return false
}

// IsIgnoredCommitter reports whether login exactly equals or contains any
// ignore-list entry.
func (x *Config) IsIgnoredCommitter(login string) bool {
	for _, entry := range x.IgnoreCommitters {
		if login == entry || strings.Contains(login, entry) {
			return true
		}
	}
	return false
}

// SplitRepo splits an "owner/name" repository slug.
func SplitRepo(repo string) (string, string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", goerr.New("repository must be in owner/name form",
			goerr.V("repo", repo), goerr.T(types.ErrTagConfig))
	}
	return owner, name, nil
}
