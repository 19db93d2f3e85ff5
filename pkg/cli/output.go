package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func stdout(c *cli.Command) io.Writer {
	return c.Root().Writer
}

func printf(c *cli.Command, format string, args ...any) {
	_, _ = fmt.Fprintf(stdout(c), format, args...)
}

// highlight marks audit findings that need a human look
var highlight model.Highlighter = color.RedString

func printJSON(c *cli.Command, v any) error {
	enc := json.NewEncoder(stdout(c))
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return goerr.Wrap(err, "failed to encode result")
	}
	return nil
}

func printBranch(c *cli.Command, result *model.StartResult) {
	switch result.Outcome {
	case model.OutcomeCreated:
		printf(c, "Created branch %s\n", result.Branch.Name)
	default:
		printf(c, "Branch %s already exists, resuming\n", result.Branch.Name)
	}
	if result.Branch.URL != "" {
		printf(c, "%s\n", result.Branch.URL)
	}
	printf(c, "Checked out %s from %s\n", result.Branch.Name, result.Remote)
}

func printRelease(c *cli.Command, kind string, result *model.ReleaseResult) {
	r := result.Release
	if result.Outcome == model.OutcomeAlreadyExists {
		printf(c, "%s %s already exists\n", kind, r.TagName)
	} else {
		printf(c, "Created %s %s\n", kind, r.TagName)
	}
	if r.URL != "" {
		printf(c, "%s\n", r.URL)
	}
}

func printChangelog(c *cli.Command, changelog *model.Changelog) {
	if changelog.Empty() {
		printf(c, "No changes\n")
		return
	}
	printf(c, "%s\n", changelog.String())
}

func versionFlag(dst *string, required bool) *cli.StringFlag {
	usage := "Release version, e.g. 2024.12.0.1"
	if !required {
		usage += " (default: latest pre-release)"
	}
	return &cli.StringFlag{
		Name:        "version",
		Usage:       usage,
		Required:    required,
		Destination: dst,
	}
}

// parseOptionalVersion parses s, leaving an empty version unset
func parseOptionalVersion(s string) (model.Version, error) {
	if s == "" {
		return "", nil
	}
	return model.ParseVersion(s)
}

func ticketFlag(dst *string, required bool) *cli.StringFlag {
	usage := "Jira ticket, e.g. EB-123"
	if !required {
		usage += " (default: ticket of the current branch)"
	}
	return &cli.StringFlag{
		Name:        "ticket",
		Aliases:     []string{"t"},
		Usage:       usage,
		Required:    required,
		Destination: dst,
	}
}

func parseOptionalTicket(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return model.ParseTicketID(s)
}

func noArgs(c *cli.Command) error {
	if c.NArg() > 0 {
		return goerr.New("unexpected arguments",
			goerr.V("args", c.Args().Slice()),
			goerr.T(types.ErrTagValidation))
	}
	return nil
}
