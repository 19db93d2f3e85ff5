package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
	owner        string
	repo         string
	baseURL      string
}

// Option configures the GitHub client
type Option func(*client)

// WithBaseURL points the client at another API endpoint, such as a GitHub
// Enterprise server ("https://ghe.example.com/api/v3/").
func WithBaseURL(baseURL string) Option {
	return func(c *client) {
		c.baseURL = baseURL
	}
}

// NewClient creates a GitHub client for owner/repo authenticated with a user
// and a personal access token
func NewClient(user, token, owner, repo string, opts ...Option) (interfaces.GitHubClient, error) {
	c := &client{
		owner: owner,
		repo:  repo,
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := &github.BasicAuthTransport{
		Username: user,
		Password: token,
	}
	c.githubClient = github.NewClient(transport.Client())

	if c.baseURL != "" {
		if !strings.HasSuffix(c.baseURL, "/") {
			c.baseURL += "/"
		}
		u, err := url.Parse(c.baseURL)
		if err != nil {
			return nil, goerr.Wrap(err, "invalid GitHub base URL",
				goerr.V("base_url", c.baseURL),
				goerr.T(types.ErrTagConfig))
		}
		c.githubClient.BaseURL = u
	}

	return c, nil
}

// wrapError attaches the platform message of an API error and tags 404
// responses as not found
func wrapError(err error, msg string, values ...goerr.Option) error {
	opts := values
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		opts = append(opts,
			goerr.V("status", errResp.Response.StatusCode),
			goerr.V("message", errResp.Message))
		if errResp.Response.StatusCode == http.StatusNotFound {
			opts = append(opts, goerr.T(types.ErrTagNotFound))
		}
	}
	return goerr.Wrap(err, msg, opts...)
}

func (c *client) Owner() string {
	return c.owner
}

func (c *client) GetBranch(ctx context.Context, name string) (*model.Branch, error) {
	ref, _, err := c.githubClient.Git.GetRef(ctx, c.owner, c.repo, "heads/"+name)
	if err != nil {
		return nil, wrapError(err, "failed to get branch",
			goerr.V("owner", c.owner),
			goerr.V("repo", c.repo),
			goerr.V("branch", name))
	}

	return &model.Branch{
		Name: name,
		SHA:  ref.GetObject().GetSHA(),
		URL:  c.branchURL(name),
	}, nil
}

func (c *client) branchURL(name string) string {
	return "https://github.com/" + c.owner + "/" + c.repo + "/tree/" + name
}

func (c *client) CreateBranch(ctx context.Context, name, base string, fromSHA bool) (*model.BranchResult, error) {
	logger := ctxlog.From(ctx)

	existing, err := c.GetBranch(ctx, name)
	if err == nil {
		logger.Info("Branch already exists", "owner", c.owner, "branch", name)
		return &model.BranchResult{Outcome: model.OutcomeAlreadyExists, Branch: existing}, nil
	}
	if !goerr.HasTag(err, types.ErrTagNotFound) {
		return nil, err
	}

	sha := base
	if !fromSHA {
		baseBranch, err := c.GetBranch(ctx, base)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to resolve base branch",
				goerr.V("branch", name),
				goerr.V("base", base))
		}
		sha = baseBranch.SHA
	}

	ref, _, err := c.githubClient.Git.CreateRef(ctx, c.owner, c.repo, github.CreateRef{
		Ref: "refs/heads/" + name,
		SHA: sha,
	})
	if err != nil {
		return nil, wrapError(err, "failed to create branch",
			goerr.V("owner", c.owner),
			goerr.V("branch", name),
			goerr.V("sha", sha))
	}

	logger.Info("Created branch", "owner", c.owner, "branch", name, "sha", sha)
	return &model.BranchResult{
		Outcome: model.OutcomeCreated,
		Branch: &model.Branch{
			Name: name,
			SHA:  ref.GetObject().GetSHA(),
			URL:  c.branchURL(name),
		},
	}, nil
}

func (c *client) UpdateBranch(ctx context.Context, name, sha string) (*model.Branch, error) {
	ref, _, err := c.githubClient.Git.UpdateRef(ctx, c.owner, c.repo, "heads/"+name, github.UpdateRef{
		SHA:   sha,
		Force: github.Ptr(true),
	})
	if err != nil {
		return nil, wrapError(err, "failed to update branch",
			goerr.V("owner", c.owner),
			goerr.V("branch", name),
			goerr.V("sha", sha))
	}

	return &model.Branch{
		Name: name,
		SHA:  ref.GetObject().GetSHA(),
		URL:  c.branchURL(name),
	}, nil
}

func (c *client) Compare(ctx context.Context, base, head string) (model.CompareStatus, error) {
	cmp, _, err := c.githubClient.Repositories.CompareCommits(ctx, c.owner, c.repo, base, head, nil)
	if err != nil {
		return "", wrapError(err, "failed to compare refs",
			goerr.V("base", base),
			goerr.V("head", head))
	}
	return model.CompareStatus(cmp.GetStatus()), nil
}

func toRelease(r *github.RepositoryRelease) *model.Release {
	return &model.Release{
		ID:         r.GetID(),
		TagName:    r.GetTagName(),
		Name:       r.GetName(),
		Target:     r.GetTargetCommitish(),
		Body:       r.GetBody(),
		Prerelease: r.GetPrerelease(),
		URL:        r.GetHTMLURL(),
		CreatedAt:  r.GetCreatedAt().Time,
	}
}

func (c *client) GetRelease(ctx context.Context, tag string) (*model.Release, error) {
	r, _, err := c.githubClient.Repositories.GetReleaseByTag(ctx, c.owner, c.repo, tag)
	if err != nil {
		return nil, wrapError(err, "failed to get release", goerr.V("tag", tag))
	}
	return toRelease(r), nil
}

func (c *client) LatestRelease(ctx context.Context) (*model.Release, error) {
	r, _, err := c.githubClient.Repositories.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, wrapError(err, "failed to get latest release")
	}
	return toRelease(r), nil
}

func (c *client) ListReleases(ctx context.Context) ([]*model.Release, error) {
	releases, _, err := c.githubClient.Repositories.ListReleases(ctx, c.owner, c.repo, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, wrapError(err, "failed to list releases")
	}

	result := make([]*model.Release, 0, len(releases))
	for _, r := range releases {
		result = append(result, toRelease(r))
	}
	return result, nil
}

func (c *client) CreateRelease(ctx context.Context, release *model.NewRelease) (*model.Release, error) {
	r, _, err := c.githubClient.Repositories.CreateRelease(ctx, c.owner, c.repo, &github.RepositoryRelease{
		TagName:         github.Ptr(release.TagName),
		TargetCommitish: github.Ptr(release.Target),
		Name:            github.Ptr(release.Name),
		Body:            github.Ptr(release.Body),
		Draft:           github.Ptr(false),
		Prerelease:      github.Ptr(release.Prerelease),
	})
	if err != nil {
		return nil, wrapError(err, "failed to create release",
			goerr.V("tag", release.TagName),
			goerr.V("target", release.Target))
	}
	return toRelease(r), nil
}

func (c *client) CreatePullRequest(ctx context.Context, base, head, title, body string) (*model.PullRequest, error) {
	pr, _, err := c.githubClient.PullRequests.Create(ctx, c.owner, c.repo, &github.NewPullRequest{
		Title: github.Ptr(title),
		Head:  github.Ptr(head),
		Base:  github.Ptr(base),
		Body:  github.Ptr(body),
	})
	if err != nil {
		return nil, wrapError(err, "failed to create pull request",
			goerr.V("base", base),
			goerr.V("head", head))
	}

	return &model.PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		URL:    pr.GetHTMLURL(),
	}, nil
}

func (c *client) CheckStatuses(ctx context.Context, ref string) ([]*model.CommitStatus, error) {
	statuses, _, err := c.githubClient.Repositories.ListStatuses(ctx, c.owner, c.repo, ref, nil)
	if err != nil {
		return nil, wrapError(err, "failed to list statuses", goerr.V("ref", ref))
	}

	result := make([]*model.CommitStatus, 0, len(statuses))
	for _, s := range statuses {
		result = append(result, &model.CommitStatus{
			Context:     s.GetContext(),
			State:       s.GetState(),
			Description: s.GetDescription(),
			TargetURL:   s.GetTargetURL(),
		})
	}
	return result, nil
}
