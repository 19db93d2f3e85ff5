package cli

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdStart(cfg *config.App) *cli.Command {
	return &cli.Command{
		Name:  "start",
		Usage: "Start a release or a working branch",
		Commands: []*cli.Command{
			cmdStartRelease(cfg),
			cmdStartBranch(cfg, model.BranchTypeHotfix, "Start a hotfix branch from trunk on your fork"),
			cmdStartBranch(cfg, model.BranchTypeFeature, "Start a feature branch from develop on your fork"),
			cmdStartReleasefix(cfg),
		},
	}
}

func cmdStartRelease(cfg *config.App) *cli.Command {
	var version string

	return &cli.Command{
		Name:  "release",
		Usage: "Cut a release branch, file the release ticket and publish a pre-release",
		Flags: []cli.Flag{versionFlag(&version, true)},
		Action: func(ctx context.Context, c *cli.Command) error {
			v, err := model.ParseVersion(version)
			if err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			result, err := d.uc.StartRelease(ctx, v)
			if err != nil {
				return err
			}

			printBranch(c, &result.StartResult)
			printf(c, "Release ticket: %s\n", result.Ticket.Key)
			printRelease(c, "pre-release", result.PreRelease)
			printf(c, "\nChanges:\n")
			printChangelog(c, result.Changelog)
			printf(c, "\nAudit:\n%s\n", result.Audit.Render(highlight))
			return nil
		},
	}
}

func cmdStartBranch(cfg *config.App, t model.BranchType, usage string) *cli.Command {
	var ticket string

	return &cli.Command{
		Name:  string(t),
		Usage: usage,
		Flags: []cli.Flag{ticketFlag(&ticket, true)},
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := model.ParseTicketID(ticket)
			if err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			start := d.uc.StartFeature
			if t == model.BranchTypeHotfix {
				start = d.uc.StartHotfix
			}
			result, err := start(ctx, id)
			if err != nil {
				return err
			}

			printBranch(c, result)
			return nil
		},
	}
}

func cmdStartReleasefix(cfg *config.App) *cli.Command {
	var version, ticket string

	return &cli.Command{
		Name:  string(model.BranchTypeReleasefix),
		Usage: "Start a fix of a release branch on your fork",
		Flags: []cli.Flag{
			versionFlag(&version, false),
			ticketFlag(&ticket, true),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			v, err := parseOptionalVersion(version)
			if err != nil {
				return err
			}
			id, err := model.ParseTicketID(ticket)
			if err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			result, err := d.uc.StartReleasefix(ctx, v, id)
			if err != nil {
				return err
			}

			printBranch(c, result)
			return nil
		},
	}
}
