package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// Changelog returns the changes merged between base and head
func (uc *UseCase) Changelog(ctx context.Context, base, head string) (*model.Changelog, error) {
	log, err := uc.git.Log(ctx, base, head, true)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read merge log",
			goerr.V("base", base),
			goerr.V("head", head))
	}
	return model.ParseChangelog(log, uc.flow.ChangelogPattern, uc.flow.IssuePattern), nil
}

// IssueDetails looks up each ticket. Tickets that cannot be fetched are
// logged and left out.
func (uc *UseCase) IssueDetails(ctx context.Context, ids []string) []*model.Issue {
	logger := ctxlog.From(ctx)

	var issues []*model.Issue
	for _, id := range ids {
		issue, err := uc.jira.GetIssue(ctx, id)
		if err != nil {
			logger.Warn("Failed to get issue", "issue", id, "error", err)
			continue
		}
		issues = append(issues, issue)
	}
	return issues
}

// MyTickets returns the tickets of the configured saved filter
func (uc *UseCase) MyTickets(ctx context.Context) ([]*model.Issue, error) {
	return uc.jira.MyTickets(ctx)
}

// linkTickets records that every ticket blocks the release ticket. A failed
// link is logged and does not stop the others.
func (uc *UseCase) linkTickets(ctx context.Context, releaseTicket string, ids []string) {
	logger := ctxlog.From(ctx)

	for _, id := range ids {
		if id == releaseTicket {
			continue
		}
		if err := uc.jira.LinkIssues(ctx, id, releaseTicket); err != nil {
			logger.Warn("Failed to link ticket", "release_ticket", releaseTicket, "issue", id, "error", err)
			continue
		}
		logger.Debug("Linked ticket", "release_ticket", releaseTicket, "issue", id)
	}
}
