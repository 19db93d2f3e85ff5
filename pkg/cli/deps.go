package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/relflow/pkg/cli/config"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/infra/git"
	"github.com/m-mizutani/relflow/pkg/infra/github"
	"github.com/m-mizutani/relflow/pkg/infra/jira"
	"github.com/m-mizutani/relflow/pkg/infra/shell"
	"github.com/m-mizutani/relflow/pkg/infra/slack"
	"github.com/m-mizutani/relflow/pkg/usecase"
)

// deps holds the clients built from the configuration of one invocation
type deps struct {
	mainline interfaces.GitHubClient
	fork     interfaces.GitHubClient
	jira     interfaces.JiraClient
	flow     model.Workflow
	uc       interfaces.ReleaseUseCase
}

func newDeps(ctx context.Context, cfg *config.App) (*deps, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	flow, err := cfg.BuildWorkflow()
	if err != nil {
		return nil, err
	}

	var ghOpts []github.Option
	if cfg.GitHub.BaseURL != "" {
		ghOpts = append(ghOpts, github.WithBaseURL(cfg.GitHub.BaseURL))
	}
	mainline, err := github.NewClient(cfg.GitHub.User, cfg.GitHub.Token, cfg.GitHub.Owner, cfg.GitHub.Repo, ghOpts...)
	if err != nil {
		return nil, err
	}
	fork, err := github.NewClient(cfg.GitHub.User, cfg.GitHub.Token, cfg.GitHub.Fork, cfg.GitHub.Repo, ghOpts...)
	if err != nil {
		return nil, err
	}

	jiraClient, err := jira.NewClient(cfg.Jira.BaseURL, cfg.Jira.User, cfg.Jira.Token,
		jira.WithTicketFilter(cfg.Jira.TicketFilterID))
	if err != nil {
		return nil, err
	}

	runner := shell.NewRunner()
	opts := []usecase.Option{usecase.WithWorkflow(flow)}
	if cfg.Slack.Enabled() {
		var slackOpts []slack.Option
		if cfg.Slack.APIURL != "" {
			slackOpts = append(slackOpts, slack.WithAPIURL(cfg.Slack.APIURL))
		}
		opts = append(opts, usecase.WithChat(slack.NewClient(cfg.Slack.Token, slackOpts...)))
	} else {
		ctxlog.From(ctx).Debug("Slack token not configured, release announcements disabled")
	}

	return &deps{
		mainline: mainline,
		fork:     fork,
		jira:     jiraClient,
		flow:     flow,
		uc:       usecase.New(mainline, fork, jiraClient, git.NewClient(runner), runner, opts...),
	}, nil
}
