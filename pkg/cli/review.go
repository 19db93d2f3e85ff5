package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/toqueteos/webbrowser"
	"github.com/urfave/cli/v3"
)

func cmdReview(cfg *config.App) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "Open a pull request or lint your changes",
		Commands: []*cli.Command{
			cmdReviewBranch(cfg, model.BranchTypeFeature, "Open a pull request of a feature into develop"),
			cmdReviewBranch(cfg, model.BranchTypeHotfix, "Open a pull request of a hotfix into trunk"),
			cmdReviewBranch(cfg, model.BranchTypeReleasefix, "Open a pull request of a release fix into its release branch"),
			cmdReviewLint(cfg),
		},
	}
}

func cmdReviewBranch(cfg *config.App, t model.BranchType, usage string) *cli.Command {
	var (
		ticket, version string
		noBrowser       bool
	)

	flags := []cli.Flag{
		ticketFlag(&ticket, false),
		&cli.BoolFlag{
			Name:        "no-browser",
			Usage:       "Do not open the pull request in a browser",
			Destination: &noBrowser,
		},
	}
	if t == model.BranchTypeReleasefix {
		flags = append(flags, versionFlag(&version, false))
	}

	return &cli.Command{
		Name:  string(t),
		Usage: usage,
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := parseOptionalTicket(ticket)
			if err != nil {
				return err
			}
			v, err := parseOptionalVersion(version)
			if err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			pr, err := d.uc.Review(ctx, t, id, v)
			if err != nil {
				return err
			}

			printf(c, "Opened pull request #%d %s\n%s\n", pr.Number, pr.Title, pr.URL)
			if !noBrowser {
				if err := webbrowser.Open(pr.URL); err != nil {
					ctxlog.From(ctx).Warn("Failed to open browser", "url", pr.URL, "error", err)
				}
			}
			return nil
		},
	}
}

func cmdReviewLint(cfg *config.App) *cli.Command {
	var base string

	return &cli.Command{
		Name:  "lint",
		Usage: "Lint the diff of your branch with the configured lint command",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "base",
				Usage:       "Base ref (default: <mainline remote>/<develop>)",
				Destination: &base,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}
			if base == "" {
				base = d.flow.MainlineRemote + "/" + d.flow.Develop
			}

			report, err := d.uc.Lint(ctx, base)
			printf(c, "%s", report)
			return err
		},
	}
}
