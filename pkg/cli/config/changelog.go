package config

import (
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/domain/model"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// Changelog holds changelog generation configuration
type Changelog struct {
	Repo        string
	From        string
	To          string
	NextVersion string
	ConfigPath  string
	Output      string
}

// Flags returns CLI flags for changelog configuration
func (c *Changelog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repo",
			Usage:       "Target repository as owner/name (default: inferred from the origin remote)",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("SHIPLOG_REPO"),
		},
		&cli.StringFlag{
			Name:        "from",
			Usage:       "Lower bound of the commit range, exclusive (default: most recent tag)",
			Destination: &c.From,
			Sources:     cli.EnvVars("SHIPLOG_FROM"),
		},
		&cli.StringFlag{
			Name:        "to",
			Usage:       "Upper bound of the commit range",
			Value:       "HEAD",
			Destination: &c.To,
			Sources:     cli.EnvVars("SHIPLOG_TO"),
		},
		&cli.StringFlag{
			Name:        "next-version",
			Usage:       "Name for the unreleased section",
			Destination: &c.NextVersion,
			Sources:     cli.EnvVars("SHIPLOG_NEXT_VERSION"),
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the configuration file",
			Value:       ".shiplog.toml",
			Destination: &c.ConfigPath,
			Sources:     cli.EnvVars("SHIPLOG_CONFIG"),
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Write the changelog to a file instead of stdout",
			Destination: &c.Output,
			Sources:     cli.EnvVars("SHIPLOG_OUTPUT"),
		},
	}
}

// fileConfig mirrors the .shiplog.toml layout.
type fileConfig struct {
	Repo             string            `toml:"repo"`
	NextVersion      string            `toml:"next_version"`
	WildcardLabel    string            `toml:"wildcard_label"`
	PackagesDir      string            `toml:"packages_dir"`
	BaseBranches     []string          `toml:"base_branches"`
	IgnoreCommitters []string          `toml:"ignore_committers"`
	Labels           map[string]string `toml:"labels"`
}

// Load merges built-in defaults, the TOML file (when present) and flag
// values into the run configuration. Flags win over file values, file
// values over defaults. The file is optional.
func (c *Changelog) Load() (*model.Config, error) {
	cfg := model.DefaultConfig()

	data, err := os.ReadFile(c.ConfigPath)
	switch {
	case err == nil:
		var file fileConfig
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, goerr.Wrap(err, "failed to parse config file",
				goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagConfig))
		}
		file.applyTo(cfg)
	case os.IsNotExist(err):
		// The config file is optional.
	default:
		return nil, goerr.Wrap(err, "failed to read config file",
			goerr.V("path", c.ConfigPath), goerr.T(types.ErrTagConfig))
	}

	if c.Repo != "" {
		cfg.Repo = c.Repo
	}
	if c.NextVersion != "" {
		cfg.NextVersion = c.NextVersion
	}

	return cfg, nil
}

func (f *fileConfig) applyTo(cfg *model.Config) {
	if f.Repo != "" {
		cfg.Repo = f.Repo
	}
	if f.NextVersion != "" {
		cfg.NextVersion = f.NextVersion
	}
	if f.WildcardLabel != "" {
		cfg.WildcardLabel = f.WildcardLabel
	}
	if f.PackagesDir != "" {
		cfg.PackagesDir = f.PackagesDir
	}
	if len(f.BaseBranches) > 0 {
		cfg.BaseBranches = f.BaseBranches
	}
	if len(f.IgnoreCommitters) > 0 {
		cfg.IgnoreCommitters = f.IgnoreCommitters
	}
	// User labels merge over the defaults; keys are matched lower-cased.
	for key, display := range f.Labels {
		cfg.Labels[strings.ToLower(key)] = display
	}
}
