package interfaces

import (
	"context"

	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// JiraClient operates on issue tracker tickets
type JiraClient interface {
	GetIssue(ctx context.Context, id string) (*model.Issue, error)
	CreateIssue(ctx context.Context, req *model.NewIssue) (*model.IssueRef, error)

	// LinkIssues records that from blocks to
	LinkIssues(ctx context.Context, from, to string) error

	// IssueSlug returns "<id>-<slug of summary>". The summary is fetched
	// when empty.
	IssueSlug(ctx context.Context, id, summary string) (string, error)

	// OpenTransitions returns the sorted ids of the transitions of an issue
	// that lead into the given status category
	OpenTransitions(ctx context.Context, id string, category int) ([]string, error)
	TransitionIssue(ctx context.Context, id, transitionID string) error

	// MyTickets returns the issues of the configured saved filter
	MyTickets(ctx context.Context) ([]*model.Issue, error)
	StatusCategories(ctx context.Context) ([]*model.StatusCategory, error)
}
