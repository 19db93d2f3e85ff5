package config

import "github.com/urfave/cli/v3"

// Jira holds Jira configuration
type Jira struct {
	BaseURL        string `toml:"base_url"`
	User           string `toml:"user"`
	Token          string `toml:"token" masq:"secret"`
	TicketFilterID int    `toml:"ticket_filter_id"`

	ReleaseTicketProject string `toml:"release_ticket_project"`
	ReleaseTicketType    string `toml:"release_ticket_type"`
	StartTransition      bool   `toml:"start_transition"`
}

// Flags returns CLI flags for Jira configuration
func (c *Jira) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "jira-base-url",
			Usage:       "Jira server URL",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("RELFLOW_JIRA_BASE_URL"),
		},
		&cli.StringFlag{
			Name:        "jira-user",
			Usage:       "Jira user name",
			Destination: &c.User,
			Sources:     cli.EnvVars("RELFLOW_JIRA_USER"),
		},
		&cli.StringFlag{
			Name:        "jira-token",
			Usage:       "Jira API token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("RELFLOW_JIRA_TOKEN"),
		},
		&cli.IntFlag{
			Name:        "jira-ticket-filter-id",
			Usage:       "Saved filter listing your tickets",
			Destination: &c.TicketFilterID,
			Sources:     cli.EnvVars("RELFLOW_JIRA_TICKET_FILTER_ID"),
		},
		&cli.StringFlag{
			Name:        "jira-release-ticket-project",
			Usage:       "Project of release tickets (default: TEEM)",
			Destination: &c.ReleaseTicketProject,
			Sources:     cli.EnvVars("RELFLOW_JIRA_RELEASE_TICKET_PROJECT"),
		},
		&cli.StringFlag{
			Name:        "jira-release-ticket-type",
			Usage:       "Issue type of release tickets (default: RELEASE)",
			Destination: &c.ReleaseTicketType,
			Sources:     cli.EnvVars("RELFLOW_JIRA_RELEASE_TICKET_TYPE"),
		},
		&cli.BoolFlag{
			Name:        "jira-start-transition",
			Usage:       "Move tickets to In Progress when their branch starts",
			Destination: &c.StartTransition,
			Sources:     cli.EnvVars("RELFLOW_JIRA_START_TRANSITION"),
		},
	}
}

func (c *Jira) merge(file Jira) {
	mergeString(&c.BaseURL, file.BaseURL)
	mergeString(&c.User, file.User)
	mergeString(&c.Token, file.Token)
	if c.TicketFilterID == 0 {
		c.TicketFilterID = file.TicketFilterID
	}
	mergeString(&c.ReleaseTicketProject, file.ReleaseTicketProject)
	mergeString(&c.ReleaseTicketType, file.ReleaseTicketType)
	c.StartTransition = c.StartTransition || file.StartTransition
}
