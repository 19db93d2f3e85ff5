package config

import "github.com/urfave/cli/v3"

// Slack holds Slack configuration. Announcements are disabled without a
// token.
type Slack struct {
	Token       string `toml:"token" masq:"secret"`
	TopicFormat string `toml:"topic_format"`
	GroupID     string `toml:"group_id"`
	APIURL      string `toml:"api_url"`
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token, enables release announcements",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELFLOW_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-topic-format",
			Usage:       "Release channel topic, %s is replaced by the release ticket",
			Destination: &c.TopicFormat,
			Sources:     cli.EnvVars("RELFLOW_SLACK_TOPIC_FORMAT"),
		},
		&cli.StringFlag{
			Name:        "slack-group-id",
			Usage:       "User group invited to release channels",
			Destination: &c.GroupID,
			Sources:     cli.EnvVars("RELFLOW_SLACK_GROUP_ID"),
		},
		&cli.StringFlag{
			Name:        "slack-api-url",
			Usage:       "Slack Web API endpoint",
			Destination: &c.APIURL,
			Sources:     cli.EnvVars("RELFLOW_SLACK_API_URL"),
		},
	}
}

// Enabled reports whether a release should be announced
func (c *Slack) Enabled() bool {
	return c.Token != ""
}

func (c *Slack) merge(file Slack) {
	mergeString(&c.Token, file.Token)
	mergeString(&c.TopicFormat, file.TopicFormat)
	mergeString(&c.GroupID, file.GroupID)
	mergeString(&c.APIURL, file.APIURL)
}
