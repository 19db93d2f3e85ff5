package cli

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	"github.com/m-mizutani/relflow/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func callRegistry(ctx context.Context, c *cli.Command, registry *usecase.Registry, name string) error {
	if name == "" {
		return goerr.New("method name is required",
			goerr.V("available", strings.Join(registry.Names(), ", ")),
			goerr.T(types.ErrTagValidation))
	}

	result, err := registry.Call(ctx, name, c.Args().Slice())
	if err != nil {
		return err
	}
	if result == nil {
		printf(c, "ok\n")
		return nil
	}
	return printJSON(c, result)
}

func cmdMethod(cfg *config.App) *cli.Command {
	var target, name string

	return &cli.Command{
		Name:      "method",
		Usage:     "Call a GitHub client operation directly",
		ArgsUsage: "[args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "target",
				Usage:       "Repository to operate on (mainline, fork)",
				Value:       "mainline",
				Destination: &target,
			},
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Operation name, e.g. get_branch",
				Destination: &name,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if target != "mainline" && target != "fork" {
				return goerr.New("target must be mainline or fork",
					goerr.V("target", target),
					goerr.T(types.ErrTagValidation))
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			client := d.mainline
			if target == "fork" {
				client = d.fork
			}
			return callRegistry(ctx, c, usecase.NewGitHubRegistry(client), name)
		},
	}
}

func cmdJira(cfg *config.App) *cli.Command {
	var name string

	return &cli.Command{
		Name:      "jira",
		Usage:     "Call a Jira client operation directly",
		ArgsUsage: "[args...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "name",
				Aliases:     []string{"n"},
				Usage:       "Operation name, e.g. get_issue",
				Destination: &name,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}
			return callRegistry(ctx, c, usecase.NewJiraRegistry(d.jira), name)
		},
	}
}
