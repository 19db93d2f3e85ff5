package interfaces

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// ReleaseUseCase defines the release workflow operations exposed by the CLI
type ReleaseUseCase interface {
	// CheckReleaseStatus verifies that a version can be released
	CheckReleaseStatus(ctx context.Context, version model.Version) error
	CreatePreRelease(ctx context.Context, tag, branch, body string) (*model.ReleaseResult, error)
	CreateRelease(ctx context.Context, version model.Version, branch, body string) (*model.ReleaseResult, error)

	StartRelease(ctx context.Context, version model.Version) (*model.StartReleaseResult, error)
	StartHotfix(ctx context.Context, ticket string) (*model.StartResult, error)
	StartFeature(ctx context.Context, ticket string) (*model.StartResult, error)
	// StartReleasefix starts a fix of a release branch. An empty version
	// selects the latest pre-release.
	StartReleasefix(ctx context.Context, version model.Version, ticket string) (*model.StartResult, error)

	QA(ctx context.Context, version model.Version, ticketKey string) (*model.QAResult, error)
	Release(ctx context.Context, version model.Version) (*model.ReleaseResult, error)
	Versions(ctx context.Context) (*model.Versions, error)

	Changelog(ctx context.Context, base, head string) (*model.Changelog, error)
	IssueDetails(ctx context.Context, ids []string) []*model.Issue
	Audit(ctx context.Context, base, head string) (*model.Audit, error)
	MyTickets(ctx context.Context) ([]*model.Issue, error)

	// Review opens a pull request for a working branch
	Review(ctx context.Context, branchType model.BranchType, ticket string, version model.Version) (*model.PullRequest, error)
	Lint(ctx context.Context, base string) (string, error)

	Sync(ctx context.Context) error
	// Update rebases the current branch onto base and returns the base used
	Update(ctx context.Context, base string) (string, error)
}
