package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var (
		loggerCfg config.Logger
		appCfg    config.App
		logger    *slog.Logger
	)

	app := &cli.Command{
		Name:    "relflow",
		Usage:   "Gitflow release management with GitHub and Jira",
		Version: types.Version,
		Flags:   append(loggerCfg.Flags(), appCfg.Flags()...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = ctxlog.With(ctx, logger)

			if err := appCfg.Load(); err != nil {
				return nil, err
			}
			logger.Debug("Configuration loaded",
				slog.Any("github", appCfg.GitHub),
				slog.Any("jira", appCfg.Jira),
			)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdStart(&appCfg),
			cmdChangelog(&appCfg),
			cmdAudit(&appCfg),
			cmdReview(&appCfg),
			cmdQA(&appCfg),
			cmdRelease(&appCfg),
			cmdVersions(&appCfg),
			cmdSync(&appCfg),
			cmdUpdate(&appCfg),
			cmdTickets(&appCfg),
			cmdMethod(&appCfg),
			cmdJira(&appCfg),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}
