package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/shiplog/pkg/cli/config"
	"github.com/m-mizutani/shiplog/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	app := &cli.Command{
		Name:    "shiplog",
		Usage:   "Categorized changelog generator for GitHub repositories",
		Version: types.Version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdGenerate(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		// Configuration problems are user errors: plain message, no stack.
		if goerr.HasTag(err, types.ErrTagConfig) {
			color.New(color.FgRed).Fprintf(os.Stderr, "error: %s\n", err.Error())
			return err
		}

		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("changelog generation failed", slog.Any("error", err))
		return err
	}

	return nil
}
