package cli

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdSync(cfg *config.App) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Update trunk and develop of your fork from mainline",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := noArgs(c); err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			if err := d.uc.Sync(ctx); err != nil {
				return err
			}
			printf(c, "Synced %s and %s\n", d.flow.Trunk, d.flow.Develop)
			return nil
		},
	}
}

func cmdUpdate(cfg *config.App) *cli.Command {
	var base string

	return &cli.Command{
		Name:  "update",
		Usage: "Rebase the current branch onto its base and force push it to your fork",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "base",
				Usage:       "Branch to rebase onto (default: derived from the branch type)",
				Destination: &base,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			used, err := d.uc.Update(ctx, base)
			if err != nil {
				return err
			}
			printf(c, "Rebased onto %s/%s\n", d.flow.MainlineRemote, used)
			return nil
		},
	}
}
