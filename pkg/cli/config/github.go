package config

import (
	"github.com/m-mizutani/shiplog/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SHIPLOG_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
	}
}

// Validate checks the token is present. Runs before any core logic so a
// missing token never reaches the remote client.
func (c *GitHub) Validate() error {
	if c.Token == "" {
		return types.ErrNoGitHubToken
	}
	return nil
}
