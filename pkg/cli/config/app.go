package config

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// App is the whole application configuration. Values from flags and
// environment variables take precedence over the configuration files.
type App struct {
	File     File
	GitHub   GitHub
	Jira     Jira
	Slack    Slack
	Workflow Workflow
}

// Flags returns CLI flags of every configuration section
func (c *App) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, c.File.Flags()...)
	flags = append(flags, c.GitHub.Flags()...)
	flags = append(flags, c.Jira.Flags()...)
	flags = append(flags, c.Slack.Flags()...)
	flags = append(flags, c.Workflow.Flags()...)
	return flags
}

// Load fills the values not given by flags from the configuration files
func (c *App) Load() error {
	content, err := c.File.Load()
	if err != nil {
		return err
	}
	c.Merge(content)
	return nil
}

// Merge fills empty values from a configuration file content
func (c *App) Merge(content *FileContent) {
	c.GitHub.merge(content.GitHub)
	c.Jira.merge(content.Jira)
	c.Slack.merge(content.Slack)
	c.Workflow.merge(content.Workflow)
}

// Validate reports the first missing required key
func (c *App) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"github.user", c.GitHub.User},
		{"github.token", c.GitHub.Token},
		{"github.owner", c.GitHub.Owner},
		{"github.fork", c.GitHub.Fork},
		{"github.repo", c.GitHub.Repo},
		{"jira.base_url", c.Jira.BaseURL},
		{"jira.user", c.Jira.User},
		{"jira.token", c.Jira.Token},
	}

	for _, r := range required {
		if r.value == "" {
			return goerr.New("missing required config: "+r.key,
				goerr.V("key", r.key),
				goerr.T(types.ErrTagConfig))
		}
	}
	return nil
}

// BuildWorkflow resolves the workflow from the configuration and the
// defaults
func (c *App) BuildWorkflow() (model.Workflow, error) {
	flow := model.DefaultWorkflow()
	w := c.Workflow

	override(&flow.Trunk, w.Trunk)
	override(&flow.Develop, w.Develop)
	override(&flow.ReleasePrefix, w.ReleasePrefix)
	override(&flow.MainlineRemote, w.MainlineRemote)
	override(&flow.ForkRemote, w.ForkRemote)
	override(&flow.RequirementsFile, w.RequirementsFile)
	override(&flow.ReleaseTicketProject, c.Jira.ReleaseTicketProject)
	override(&flow.ReleaseTicketType, c.Jira.ReleaseTicketType)
	override(&flow.SlackTopicFormat, c.Slack.TopicFormat)
	flow.SlackGroupID = c.Slack.GroupID
	flow.StartTransition = c.Jira.StartTransition

	patterns := []struct {
		name string
		expr string
		dst  **regexp.Regexp
	}{
		{"changelog_re", w.ChangelogRE, &flow.ChangelogPattern},
		{"issue_re", w.IssueRE, &flow.IssuePattern},
		{"migration_re", w.MigrationRE, &flow.MigrationPattern},
	}
	for _, p := range patterns {
		if p.expr == "" {
			continue
		}
		re, err := model.CompilePattern(p.name, p.expr)
		if err != nil {
			return model.Workflow{}, err
		}
		*p.dst = re
	}

	if w.MigrationCommand != "" {
		flow.MigrationCommand = strings.Fields(w.MigrationCommand)
	}
	if w.CronCommand != "" {
		flow.CronCommand = strings.Fields(w.CronCommand)
	}
	if w.LintCommand != "" {
		flow.LintCommand = strings.Fields(w.LintCommand)
	}

	return flow, nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
