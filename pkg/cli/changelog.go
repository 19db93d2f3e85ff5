package cli

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// rangeFlags binds --base and --head. An empty base means the trunk of the
// mainline remote.
func rangeFlags(base, head *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "base",
			Usage:       "Base ref (default: <mainline remote>/<trunk>)",
			Destination: base,
		},
		&cli.StringFlag{
			Name:        "head",
			Usage:       "Head ref",
			Value:       "HEAD",
			Destination: head,
		},
	}
}

func (d *deps) baseOrTrunk(base string) string {
	if base != "" {
		return base
	}
	return d.flow.MainlineRemote + "/" + d.flow.Trunk
}

func cmdChangelog(cfg *config.App) *cli.Command {
	var (
		base, head string
		details    bool
	)

	return &cli.Command{
		Name:  "changelog",
		Usage: "Print the tickets merged between two refs",
		Flags: append(rangeFlags(&base, &head), &cli.BoolFlag{
			Name:        "details",
			Usage:       "Also print the Jira details of every ticket",
			Destination: &details,
		}),
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}
			changelog, err := d.uc.Changelog(ctx, d.baseOrTrunk(base), head)
			if err != nil {
				return err
			}
			printChangelog(c, changelog)

			if details && len(changelog.Issues) > 0 {
				printf(c, "\nDetails:\n")
				if list := model.DetailsList(d.uc.IssueDetails(ctx, changelog.Issues)); list != "" {
					printf(c, "%s\n", list)
				}
			}
			return nil
		},
	}
}

func cmdAudit(cfg *config.App) *cli.Command {
	var base, head string

	return &cli.Command{
		Name:  "audit",
		Usage: "Print deploy relevant changes and check added migrations",
		Flags: rangeFlags(&base, &head),
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}
			audit, err := d.uc.Audit(ctx, d.baseOrTrunk(base), head)
			if err != nil {
				return err
			}
			printf(c, "%s\n", audit.Render(highlight))
			return nil
		},
	}
}

func cmdTickets(cfg *config.App) *cli.Command {
	return &cli.Command{
		Name:  "tickets",
		Usage: "List the tickets of your saved Jira filter",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := noArgs(c); err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			issues, err := d.uc.MyTickets(ctx)
			if err != nil {
				return err
			}
			if len(issues) == 0 {
				printf(c, "No tickets\n")
				return nil
			}
			printf(c, "%s\n", model.DetailsList(issues))
			return nil
		},
	}
}
