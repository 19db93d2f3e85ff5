package cli

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

func cmdQA(cfg *config.App) *cli.Command {
	var version, ticket string

	return &cli.Command{
		Name:  "qa",
		Usage: "Publish a pre-release of a release branch for QA",
		Flags: []cli.Flag{
			versionFlag(&version, true),
			&cli.StringFlag{
				Name:        "ticket",
				Usage:       "Release ticket (default: ticket recorded in an earlier pre-release)",
				Destination: &ticket,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			v, err := model.ParseVersion(version)
			if err != nil {
				return err
			}
			key, err := parseOptionalTicket(ticket)
			if err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			result, err := d.uc.QA(ctx, v, key)
			if err != nil {
				return err
			}
			printRelease(c, "pre-release", result.Release)
			printChangelog(c, result.Changelog)
			return nil
		},
	}
}

func cmdRelease(cfg *config.App) *cli.Command {
	var version string

	return &cli.Command{
		Name:  "release",
		Usage: "Publish a release from trunk once the release branch is merged",
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

			result, err := d.uc.Release(ctx, v)
			if err != nil {
				return err
			}
			printRelease(c, "release", result)
			return nil
		},
	}
}

func cmdVersions(cfg *config.App) *cli.Command {
	return &cli.Command{
		Name:  "versions",
		Usage: "Print the latest release and pre-release",
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := noArgs(c); err != nil {
				return err
			}
			d, err := newDeps(ctx, cfg)
			if err != nil {
				return err
			}

			versions, err := d.uc.Versions(ctx)
			if err != nil {
				return err
			}
			printf(c, "Release: %s\nPre-Release: %s\n", orNone(versions.Release), orNone(versions.PreRelease))
			return nil
		},
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
