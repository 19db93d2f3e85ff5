package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

// StartRelease cuts the release branch of version from develop, files the
// release ticket and publishes the first pre-release, which links the
// changed tickets. A release branch that already exists is resumed.
func (uc *UseCase) StartRelease(ctx context.Context, version model.Version) (*model.StartReleaseResult, error) {
	logger := ctxlog.From(ctx)
	name := uc.flow.ReleaseBranch(version)

	created, err := uc.mainline.CreateBranch(ctx, name, uc.flow.Develop, false)
	if err != nil {
		return nil, err
	}
	if !created.Created() {
		logger.Info("Release branch already started, resuming", "branch", name)
	}

	if err := uc.checkoutRemote(ctx, uc.flow.MainlineRemote, name); err != nil {
		return nil, err
	}

	result := &model.StartReleaseResult{
		StartResult: model.StartResult{
			Branch:  created.Branch,
			Outcome: created.Outcome,
			Remote:  uc.flow.MainlineRemote,
		},
	}

	result.Changelog, err = uc.Changelog(ctx,
		remoteRef(uc.flow.MainlineRemote, uc.flow.Trunk),
		remoteRef(uc.flow.MainlineRemote, name))
	if err != nil {
		return nil, err
	}

	result.Audit, err = uc.Audit(ctx, remoteRef(uc.flow.MainlineRemote, uc.flow.Trunk), name)
	if err != nil {
		return nil, err
	}

	result.Ticket, err = uc.jira.CreateIssue(ctx, &model.NewIssue{
		Summary:     "Release " + version.ReleaseBranchVersion(),
		Description: "Release changes Audit:\n{code}\n" + result.Audit.Render(nil) + "\n{code}",
		Project:     uc.flow.ReleaseTicketProject,
		Type:        uc.flow.ReleaseTicketType,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release ticket")
	}

	if uc.chat != nil {
		announcement := model.NewReleaseAnnouncement(&uc.flow, name, result.Ticket.Key,
			result.Changelog.String(), result.Audit.Render(nil))
		if err := uc.chat.AnnounceRelease(ctx, announcement); err != nil {
			logger.Warn("Failed to announce release", "branch", name, "error", err)
		}
	}

	qa, err := uc.QA(ctx, version, result.Ticket.Key)
	if err != nil {
		return nil, err
	}
	result.PreRelease = qa.Release

	return result, nil
}

// StartHotfix creates a hotfix branch for ticket from trunk on the fork
func (uc *UseCase) StartHotfix(ctx context.Context, ticket string) (*model.StartResult, error) {
	return uc.startWorkingBranch(ctx, model.BranchTypeHotfix, ticket, uc.flow.Trunk)
}

// StartFeature creates a feature branch for ticket from develop on the fork
func (uc *UseCase) StartFeature(ctx context.Context, ticket string) (*model.StartResult, error) {
	return uc.startWorkingBranch(ctx, model.BranchTypeFeature, ticket, uc.flow.Develop)
}

// StartReleasefix mirrors the mainline release branch of version onto the
// fork and creates a release fix branch for ticket from it
func (uc *UseCase) StartReleasefix(ctx context.Context, version model.Version, ticket string) (*model.StartResult, error) {
	logger := ctxlog.From(ctx)

	if version == "" {
		pre, err := uc.latestPrerelease(ctx)
		if err != nil {
			return nil, err
		}
		if pre == nil {
			return nil, goerr.New("no pre-release found, a version is required", goerr.T(types.ErrTagValidation))
		}
		if version, err = model.ParseVersion(pre.TagName); err != nil {
			return nil, err
		}
		logger.Info("Using latest pre-release", "version", version)
	}

	release := uc.flow.ReleaseBranch(version)
	head, err := uc.mainline.GetBranch(ctx, release)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release branch", goerr.V("branch", release))
	}

	mirrored, err := uc.fork.CreateBranch(ctx, release, head.SHA, true)
	if err != nil {
		return nil, err
	}
	if !mirrored.Created() {
		if _, err := uc.fork.UpdateBranch(ctx, release, head.SHA); err != nil {
			return nil, err
		}
	}

	return uc.startWorkingBranch(ctx, model.BranchTypeReleasefix, ticket, release)
}

func (uc *UseCase) startWorkingBranch(ctx context.Context, t model.BranchType, ticket, base string) (*model.StartResult, error) {
	logger := ctxlog.From(ctx)

	slug, err := uc.jira.IssueSlug(ctx, ticket, "")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get ticket", goerr.V("ticket", ticket))
	}
	name := model.BranchName(t, slug)

	created, err := uc.fork.CreateBranch(ctx, name, base, false)
	if err != nil {
		return nil, err
	}
	if !created.Created() {
		logger.Info("Branch already started, resuming", "branch", name)
	}

	if err := uc.checkoutRemote(ctx, uc.flow.ForkRemote, name); err != nil {
		return nil, err
	}

	if created.Created() && uc.flow.StartTransition {
		uc.startTicket(ctx, ticket)
	}

	return &model.StartResult{
		Branch:  created.Branch,
		Outcome: created.Outcome,
		Remote:  uc.flow.ForkRemote,
	}, nil
}

func (uc *UseCase) checkoutRemote(ctx context.Context, remote, branch string) error {
	if err := uc.git.Fetch(ctx, remote); err != nil {
		return err
	}
	return uc.git.Checkout(ctx, branch)
}

// startTicket moves a ticket into the in progress category. Failures are
// logged only.
func (uc *UseCase) startTicket(ctx context.Context, ticket string) {
	logger := ctxlog.From(ctx)

	ids, err := uc.jira.OpenTransitions(ctx, ticket, model.StatusCategoryInProgress)
	if err != nil {
		logger.Warn("Failed to get ticket transitions", "ticket", ticket, "error", err)
		return
	}
	if len(ids) == 0 {
		logger.Debug("No transition into progress", "ticket", ticket)
		return
	}
	if err := uc.jira.TransitionIssue(ctx, ticket, ids[0]); err != nil {
		logger.Warn("Failed to start ticket", "ticket", ticket, "error", err)
	}
}
