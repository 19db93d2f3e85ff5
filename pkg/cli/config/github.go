package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub configuration. The same credentials are used for the
// mainline repository and the operator's fork.
type GitHub struct {
	User    string `toml:"user"`
	Token   string `toml:"token" masq:"secret"`
	Owner   string `toml:"owner"`
	Fork    string `toml:"fork"`
	Repo    string `toml:"repo"`
	BaseURL string `toml:"base_url"`
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-user",
			Usage:       "GitHub user name",
			Destination: &c.User,
			Sources:     cli.EnvVars("RELFLOW_GITHUB_USER"),
		},
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELFLOW_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Owner of the mainline repository",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("RELFLOW_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-fork",
			Usage:       "Owner of the fork repository",
			Destination: &c.Fork,
			Sources:     cli.EnvVars("RELFLOW_GITHUB_FORK"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Repository name",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("RELFLOW_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (GitHub Enterprise)",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELFLOW_GITHUB_BASE_URL"),
		},
	}
}

func (c *GitHub) merge(file GitHub) {
	mergeString(&c.User, file.User)
	mergeString(&c.Token, file.Token)
	mergeString(&c.Owner, file.Owner)
	mergeString(&c.Fork, file.Fork)
	mergeString(&c.Repo, file.Repo)
	mergeString(&c.BaseURL, file.BaseURL)
}
