package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

var reviewTitles = map[model.BranchType]string{
	model.BranchTypeFeature:    "Feature",
	model.BranchTypeHotfix:     "Hotfix",
	model.BranchTypeReleasefix: "ReleaseFix",
}

// Review opens a pull request from the fork branch of ticket into the base
// of its branch type. An empty ticket is read from the current branch name.
func (uc *UseCase) Review(ctx context.Context, t model.BranchType, ticket string, version model.Version) (*model.PullRequest, error) {
	logger := ctxlog.From(ctx)

	title, ok := reviewTitles[t]
	if !ok {
		return nil, goerr.New("branch type cannot be reviewed",
			goerr.V("type", t),
			goerr.T(types.ErrTagValidation))
	}

	if ticket == "" {
		current, err := uc.git.CurrentBranch(ctx)
		if err != nil {
			return nil, err
		}
		if ticket, err = model.TicketFromBranch(current); err != nil {
			return nil, err
		}
		logger.Debug("Using ticket of current branch", "branch", current, "ticket", ticket)
	}

	base, err := uc.reviewBase(ctx, t, version)
	if err != nil {
		return nil, err
	}

	issue, err := uc.jira.GetIssue(ctx, ticket)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get ticket", goerr.V("ticket", ticket))
	}
	branch := model.BranchName(t, model.IssueSlug(ticket, issue.Summary))

	var body string
	if t != model.BranchTypeFeature {
		messages, err := uc.git.LogMessages(ctx, remoteRef(uc.flow.MainlineRemote, base), "HEAD")
		if err != nil {
			return nil, err
		}
		body = strings.TrimSpace(messages)
	}

	pr, err := uc.mainline.CreatePullRequest(ctx,
		base,
		uc.fork.Owner()+":"+branch,
		title+" "+ticket+": "+issue.Summary,
		body)
	if err != nil {
		return nil, err
	}

	logger.Info("Created pull request", "number", pr.Number, "base", base, "head", branch)
	return pr, nil
}

func (uc *UseCase) reviewBase(ctx context.Context, t model.BranchType, version model.Version) (string, error) {
	if base, ok := uc.flow.BaseBranch(t); ok {
		return base, nil
	}

	if version == "" {
		pre, err := uc.latestPrerelease(ctx)
		if err != nil {
			return "", err
		}
		if pre == nil {
			return "", goerr.New("no pre-release found, a version is required", goerr.T(types.ErrTagValidation))
		}
		if version, err = model.ParseVersion(pre.TagName); err != nil {
			return "", err
		}
	}
	return uc.flow.ReleaseBranch(version), nil
}

// Lint feeds the diff between base and HEAD to the lint command and
// returns its report
func (uc *UseCase) Lint(ctx context.Context, base string) (string, error) {
	if len(uc.flow.LintCommand) == 0 {
		return "", goerr.New("no lint command configured", goerr.T(types.ErrTagConfig))
	}

	diff, err := uc.git.Diff(ctx, base, "HEAD")
	if err != nil {
		return "", err
	}

	out, err := uc.runner.RunWithInput(ctx, diff, uc.flow.LintCommand[0], uc.flow.LintCommand[1:]...)
	if err != nil {
		return out, goerr.Wrap(err, "lint reported problems")
	}
	return out, nil
}
