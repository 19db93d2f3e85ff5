package usecase

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

// Method is a client operation that can be invoked by name with string
// arguments
type Method struct {
	Name  string
	Usage string
	// Args is the number of positional arguments, or -1 for any
	Args int
	Call func(ctx context.Context, args []string) (any, error)
}

// Registry maps operation names to methods. Unknown names are rejected.
type Registry struct {
	methods map[string]*Method
}

func newRegistry(methods ...*Method) *Registry {
	r := &Registry{methods: make(map[string]*Method, len(methods))}
	for _, m := range methods {
		r.methods[m.Name] = m
	}
	return r
}

// Names returns the registered method names in order
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.methods))
}

// Lookup returns a method by name
func (r *Registry) Lookup(name string) (*Method, bool) {
	m, ok := r.methods[name]
	return m, ok
}

// Call invokes method name with args
func (r *Registry) Call(ctx context.Context, name string, args []string) (any, error) {
	m, ok := r.methods[name]
	if !ok {
		return nil, goerr.New("unknown method",
			goerr.V("name", name),
			goerr.V("available", strings.Join(r.Names(), ", ")),
			goerr.T(types.ErrTagValidation))
	}
	if m.Args >= 0 && len(args) != m.Args {
		return nil, goerr.New("wrong number of arguments",
			goerr.V("name", name),
			goerr.V("usage", m.Usage),
			goerr.V("expected", m.Args),
			goerr.V("actual", len(args)),
			goerr.T(types.ErrTagValidation))
	}
	return m.Call(ctx, args)
}

func parseBool(name, s string) (bool, error) {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, goerr.Wrap(err, "invalid boolean argument",
			goerr.V("argument", name),
			goerr.V("value", s),
			goerr.T(types.ErrTagValidation))
	}
	return v, nil
}

// NewGitHubRegistry exposes the operations of a GitHub client
func NewGitHubRegistry(client interfaces.GitHubClient) *Registry {
	return newRegistry(
		&Method{
			Name:  "get_branch",
			Usage: "get_branch NAME",
			Args:  1,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.GetBranch(ctx, args[0])
			},
		},
		&Method{
			Name:  "create_branch",
			Usage: "create_branch NAME BASE FROM_SHA",
			Args:  3,
			Call: func(ctx context.Context, args []string) (any, error) {
				fromSHA, err := parseBool("FROM_SHA", args[2])
				if err != nil {
					return nil, err
				}
				return client.CreateBranch(ctx, args[0], args[1], fromSHA)
			},
		},
		&Method{
			Name:  "update_branch",
			Usage: "update_branch NAME SHA",
			Args:  2,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.UpdateBranch(ctx, args[0], args[1])
			},
		},
		&Method{
			Name:  "compare",
			Usage: "compare BASE HEAD",
			Args:  2,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.Compare(ctx, args[0], args[1])
			},
		},
		&Method{
			Name:  "get_release",
			Usage: "get_release TAG",
			Args:  1,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.GetRelease(ctx, args[0])
			},
		},
		&Method{
			Name:  "latest_release",
			Usage: "latest_release",
			Args:  0,
			Call: func(ctx context.Context, _ []string) (any, error) {
				return client.LatestRelease(ctx)
			},
		},
		&Method{
			Name:  "list_releases",
			Usage: "list_releases",
			Args:  0,
			Call: func(ctx context.Context, _ []string) (any, error) {
				return client.ListReleases(ctx)
			},
		},
		&Method{
			Name:  "check_statuses",
			Usage: "check_statuses REF",
			Args:  1,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.CheckStatuses(ctx, args[0])
			},
		},
		&Method{
			Name:  "create_pull_request",
			Usage: "create_pull_request BASE HEAD TITLE [BODY]",
			Args:  -1,
			Call: func(ctx context.Context, args []string) (any, error) {
				if len(args) < 3 || len(args) > 4 {
					return nil, goerr.New("wrong number of arguments",
						goerr.V("usage", "create_pull_request BASE HEAD TITLE [BODY]"),
						goerr.T(types.ErrTagValidation))
				}
				var body string
				if len(args) == 4 {
					body = args[3]
				}
				return client.CreatePullRequest(ctx, args[0], args[1], args[2], body)
			},
		},
	)
}

// NewJiraRegistry exposes the operations of a Jira client
func NewJiraRegistry(client interfaces.JiraClient) *Registry {
	return newRegistry(
		&Method{
			Name:  "get_issue",
			Usage: "get_issue ID",
			Args:  1,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.GetIssue(ctx, args[0])
			},
		},
		&Method{
			Name:  "issue_slug",
			Usage: "issue_slug ID",
			Args:  1,
			Call: func(ctx context.Context, args []string) (any, error) {
				return client.IssueSlug(ctx, args[0], "")
			},
		},
		&Method{
			Name:  "open_transitions",
			Usage: "open_transitions ID [CATEGORY]",
			Args:  -1,
			Call: func(ctx context.Context, args []string) (any, error) {
				category := model.StatusCategoryInProgress
				switch len(args) {
				case 1:
				case 2:
					v, err := strconv.Atoi(args[1])
					if err != nil {
						return nil, goerr.Wrap(err, "invalid status category",
							goerr.V("value", args[1]),
							goerr.T(types.ErrTagValidation))
					}
					category = v
				default:
					return nil, goerr.New("wrong number of arguments",
						goerr.V("usage", "open_transitions ID [CATEGORY]"),
						goerr.T(types.ErrTagValidation))
				}
				return client.OpenTransitions(ctx, args[0], category)
			},
		},
		&Method{
			Name:  "transition_issue",
			Usage: "transition_issue ID TRANSITION_ID",
			Args:  2,
			Call: func(ctx context.Context, args []string) (any, error) {
				return nil, client.TransitionIssue(ctx, args[0], args[1])
			},
		},
		&Method{
			Name:  "link_issues",
			Usage: "link_issues FROM TO",
			Args:  2,
			Call: func(ctx context.Context, args []string) (any, error) {
				return nil, client.LinkIssues(ctx, args[0], args[1])
			},
		},
		&Method{
			Name:  "my_tickets",
			Usage: "my_tickets",
			Args:  0,
			Call: func(ctx context.Context, _ []string) (any, error) {
				return client.MyTickets(ctx)
			},
		},
		&Method{
			Name:  "status_categories",
			Usage: "status_categories",
			Args:  0,
			Call: func(ctx context.Context, _ []string) (any, error) {
				return client.StatusCategories(ctx)
			},
		},
	)
}
