package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/cli/config"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
	githubinfra "github.com/m-mizutani/shiplog/pkg/infra/github"
	"github.com/m-mizutani/shiplog/pkg/infra/gitlog"
	"github.com/m-mizutani/shiplog/pkg/renderer"
	"github.com/m-mizutani/shiplog/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdGenerate() *cli.Command {
	var (
		githubCfg    config.GitHub
		changelogCfg config.Changelog
	)

	flags := append(changelogCfg.Flags(), githubCfg.Flags()...)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a categorized changelog in Markdown",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := githubCfg.Validate(); err != nil {
				return err
			}

			cfg, err := changelogCfg.Load()
			if err != nil {
				return err
			}

			repo, err := gitlog.Open(".")
			if err != nil {
				return err
			}

			if cfg.Repo == "" {
				slug, err := repo.RemoteRepo()
				if err != nil {
					return err
				}
				cfg.Repo = slug
			}

			from := changelogCfg.From
			if from == "" {
				tag, err := repo.LastTag(ctx)
				if err != nil {
					return err
				}
				if tag == "" {
					return types.ErrNoStartingPoint
				}
				from = tag
			}
			to := changelogCfg.To

			logger.Info("Generating changelog",
				"repo", cfg.Repo,
				"from", from,
				"to", to,
			)

			tracker, err := githubinfra.NewClient(cfg.Repo, githubCfg.Token)
			if err != nil {
				return err
			}

			uc := usecase.NewChangelog(tracker, repo, cfg)
			releases, err := uc.Generate(ctx, from, to)
			if err != nil {
				return err
			}

			markdown := renderer.NewMarkdown().Render(releases)

			if changelogCfg.Output == "" {
				fmt.Print(markdown)
				return nil
			}

			if err := os.WriteFile(changelogCfg.Output, []byte(markdown), 0644); err != nil {
				return goerr.Wrap(err, "failed to write changelog",
					goerr.V("path", changelogCfg.Output))
			}
			color.New(color.FgGreen).Fprintf(os.Stderr, "✔ changelog written to %s\n", changelogCfg.Output)
			return nil
		},
	}
}
