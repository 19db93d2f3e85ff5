package config

import (
	"strings"

	"github.com/urfave/cli/v3"
)

// Workflow holds the branching conventions and project commands. Empty
// values fall back to model.DefaultWorkflow.
type Workflow struct {
	Trunk          string `toml:"trunk"`
	Develop        string `toml:"develop"`
	ReleasePrefix  string `toml:"release_prefix"`
	MainlineRemote string `toml:"mainline_remote"`
	ForkRemote     string `toml:"fork_remote"`

	ChangelogRE string `toml:"changelog_re"`
	IssueRE     string `toml:"issue_re"`
	MigrationRE string `toml:"migration_re"`

	MigrationCommand string `toml:"migration_command"`
	CronCommand      string `toml:"cron_command"`
	LintCommand      string `toml:"lint_command"`
	RequirementsFile string `toml:"requirements_file"`
}

func stringFlag(name, usage string, dst *string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:        name,
		Usage:       usage,
		Destination: dst,
		Sources:     cli.EnvVars("RELFLOW_" + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))),
	}
}

// Flags returns CLI flags for workflow configuration
func (c *Workflow) Flags() []cli.Flag {
	return []cli.Flag{
		stringFlag("trunk", "Production branch (default: master)", &c.Trunk),
		stringFlag("develop", "Integration branch (default: develop)", &c.Develop),
		stringFlag("release-prefix", "Release branch prefix (default: release-)", &c.ReleasePrefix),
		stringFlag("mainline-remote", "Git remote of the mainline repository (default: mainline)", &c.MainlineRemote),
		stringFlag("fork-remote", "Git remote of your fork (default: origin)", &c.ForkRemote),
		stringFlag("changelog-re", "Merge log pattern capturing ticket and title", &c.ChangelogRE),
		stringFlag("issue-re", "Merge log pattern capturing the ticket", &c.IssueRE),
		stringFlag("migration-re", "Pattern capturing migration path, app and name", &c.MigrationRE),
		stringFlag("migration-command", "Command printing the SQL of a migration", &c.MigrationCommand),
		stringFlag("cron-command", "Command listing cron definition files", &c.CronCommand),
		stringFlag("lint-command", "Command linting a diff read from stdin", &c.LintCommand),
		stringFlag("requirements-file", "Python requirements file (default: requirements.txt)", &c.RequirementsFile),
	}
}

func (c *Workflow) merge(file Workflow) {
	mergeString(&c.Trunk, file.Trunk)
	mergeString(&c.Develop, file.Develop)
	mergeString(&c.ReleasePrefix, file.ReleasePrefix)
	mergeString(&c.MainlineRemote, file.MainlineRemote)
	mergeString(&c.ForkRemote, file.ForkRemote)
	mergeString(&c.ChangelogRE, file.ChangelogRE)
	mergeString(&c.IssueRE, file.IssueRE)
	mergeString(&c.MigrationRE, file.MigrationRE)
	mergeString(&c.MigrationCommand, file.MigrationCommand)
	mergeString(&c.CronCommand, file.CronCommand)
	mergeString(&c.LintCommand, file.LintCommand)
	mergeString(&c.RequirementsFile, file.RequirementsFile)
}

func mergeString(dst *string, file string) {
	if *dst == "" {
		*dst = file
	}
}
