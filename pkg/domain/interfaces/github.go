package interfaces

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// GitHubClient operates on branches, releases and pull requests of one
// repository owner (mainline or fork).
type GitHubClient interface {
	// Owner returns the repository owner the client is bound to
	Owner() string

	// GetBranch returns a branch head. A missing branch is an error tagged
	// types.ErrTagNotFound.
	GetBranch(ctx context.Context, name string) (*model.Branch, error)

	// CreateBranch creates name from base, a branch name or, when fromSHA is
	// true, a commit SHA. An existing branch is reported as
	// model.OutcomeAlreadyExists without any mutating call.
	CreateBranch(ctx context.Context, name, base string, fromSHA bool) (*model.BranchResult, error)

	// UpdateBranch force-updates an existing branch to sha
	UpdateBranch(ctx context.Context, name, sha string) (*model.Branch, error)

	// Compare returns the status of head relative to base
	Compare(ctx context.Context, base, head string) (model.CompareStatus, error)

	GetRelease(ctx context.Context, tag string) (*model.Release, error)
	LatestRelease(ctx context.Context) (*model.Release, error)
	ListReleases(ctx context.Context) ([]*model.Release, error)
	CreateRelease(ctx context.Context, release *model.NewRelease) (*model.Release, error)

	CreatePullRequest(ctx context.Context, base, head, title, body string) (*model.PullRequest, error)

	// CheckStatuses returns CI statuses reported for ref
	CheckStatuses(ctx context.Context, ref string) ([]*model.CommitStatus, error)
}
