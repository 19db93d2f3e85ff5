package jira

import (
	"context"
	"net/http"
	"sort"

	"github.com/andygrunwald/go-jira"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

// LinkTypeBlocks is the link type recorded between a release ticket and
// the tickets it ships.
const LinkTypeBlocks = "Blocks"

type client struct {
	jiraClient     *jira.Client
	ticketFilterID int
}

// Option configures the Jira client
type Option func(*client)

// WithTicketFilter sets the saved filter listing the tickets of the
// current user
func WithTicketFilter(filterID int) Option {
	return func(c *client) {
		c.ticketFilterID = filterID
	}
}

// NewClient creates a Jira client authenticated with a user and API token
func NewClient(baseURL, user, token string, opts ...Option) (interfaces.JiraClient, error) {
	transport := &jira.BasicAuthTransport{
		Username: user,
		Password: token,
	}

	jiraClient, err := jira.NewClient(transport.Client(), baseURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Jira client",
			goerr.V("base_url", baseURL),
			goerr.T(types.ErrTagConfig))
	}

	c := &client{jiraClient: jiraClient}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func wrapError(err error, resp *jira.Response, msg string, values ...goerr.Option) error {
	opts := values
	if resp != nil && resp.Response != nil {
		opts = append(opts, goerr.V("status", resp.StatusCode))
		if resp.StatusCode == http.StatusNotFound {
			opts = append(opts, goerr.T(types.ErrTagNotFound))
		}
	}
	return goerr.Wrap(err, msg, opts...)
}

func toIssue(issue *jira.Issue) *model.Issue {
	result := &model.Issue{
		ID:  issue.ID,
		Key: issue.Key,
	}
	if f := issue.Fields; f != nil {
		result.Summary = f.Summary
		result.Type = f.Type.Name
		result.Subtask = f.Type.Subtask
		if f.Assignee != nil {
			result.Assignee = f.Assignee.DisplayName
		}
		if f.Parent != nil {
			result.Parent = f.Parent.Key
		}
	}
	return result
}

func (c *client) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	issue, resp, err := c.jiraClient.Issue.GetWithContext(ctx, id, &jira.GetQueryOptions{
		Fields: "summary,issuetype,assignee,parent",
	})
	if err != nil {
		return nil, wrapError(err, resp, "failed to get issue", goerr.V("issue", id))
	}
	return toIssue(issue), nil
}

func (c *client) CreateIssue(ctx context.Context, req *model.NewIssue) (*model.IssueRef, error) {
	issue, resp, err := c.jiraClient.Issue.CreateWithContext(ctx, &jira.Issue{
		Fields: &jira.IssueFields{
			Summary:     req.Summary,
			Description: req.Description,
			Type:        jira.IssueType{Name: req.Type},
			Project:     jira.Project{Key: req.Project},
		},
	})
	if err != nil {
		return nil, wrapError(err, resp, "failed to create issue",
			goerr.V("project", req.Project),
			goerr.V("type", req.Type))
	}

	ctxlog.From(ctx).Info("Created issue", "key", issue.Key)
	return &model.IssueRef{ID: issue.ID, Key: issue.Key}, nil
}

func (c *client) LinkIssues(ctx context.Context, from, to string) error {
	resp, err := c.jiraClient.Issue.AddLinkWithContext(ctx, &jira.IssueLink{
		Type:         jira.IssueLinkType{Name: LinkTypeBlocks},
		InwardIssue:  &jira.Issue{Key: from},
		OutwardIssue: &jira.Issue{Key: to},
	})
	if err != nil {
		return wrapError(err, resp, "failed to link issues",
			goerr.V("from", from),
			goerr.V("to", to))
	}
	return nil
}

func (c *client) IssueSlug(ctx context.Context, id, summary string) (string, error) {
	if summary == "" {
		issue, err := c.GetIssue(ctx, id)
		if err != nil {
			return "", err
		}
		summary = issue.Summary
	}
	return model.IssueSlug(id, summary), nil
}

func (c *client) OpenTransitions(ctx context.Context, id string, category int) ([]string, error) {
	transitions, resp, err := c.jiraClient.Issue.GetTransitionsWithContext(ctx, id)
	if err != nil {
		return nil, wrapError(err, resp, "failed to get transitions", goerr.V("issue", id))
	}

	var ids []string
	for _, t := range transitions {
		if t.To.StatusCategory.ID == category {
			ids = append(ids, t.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (c *client) TransitionIssue(ctx context.Context, id, transitionID string) error {
	resp, err := c.jiraClient.Issue.DoTransitionWithContext(ctx, id, transitionID)
	if err != nil {
		return wrapError(err, resp, "failed to transition issue",
			goerr.V("issue", id),
			goerr.V("transition", transitionID))
	}
	return nil
}

func (c *client) MyTickets(ctx context.Context) ([]*model.Issue, error) {
	if c.ticketFilterID == 0 {
		return nil, goerr.New("ticket filter is not configured", goerr.T(types.ErrTagConfig))
	}

	filter, resp, err := c.jiraClient.Filter.GetWithContext(ctx, c.ticketFilterID)
	if err != nil {
		return nil, wrapError(err, resp, "failed to get filter", goerr.V("filter_id", c.ticketFilterID))
	}

	issues, resp, err := c.jiraClient.Issue.SearchWithContext(ctx, filter.Jql, &jira.SearchOptions{
		MaxResults: 100,
		Fields:     []string{"summary", "issuetype", "assignee", "parent"},
	})
	if err != nil {
		return nil, wrapError(err, resp, "failed to search issues", goerr.V("jql", filter.Jql))
	}

	result := make([]*model.Issue, 0, len(issues))
	for i := range issues {
		result = append(result, toIssue(&issues[i]))
	}
	return result, nil
}

func (c *client) StatusCategories(ctx context.Context) ([]*model.StatusCategory, error) {
	categories, resp, err := c.jiraClient.StatusCategory.GetListWithContext(ctx)
	if err != nil {
		return nil, wrapError(err, resp, "failed to list status categories")
	}

	result := make([]*model.StatusCategory, 0, len(categories))
	for _, sc := range categories {
		result = append(result, &model.StatusCategory{ID: sc.ID, Key: sc.Key, Name: sc.Name})
	}
	return result, nil
}
