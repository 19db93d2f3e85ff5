package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

// Sync brings trunk and develop of the fork up to date with mainline
func (uc *UseCase) Sync(ctx context.Context) error {
	logger := ctxlog.From(ctx)

	original, err := uc.git.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	return uc.git.WithStash(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if coErr := uc.git.Checkout(ctx, original); coErr != nil {
				logger.Error("Failed to return to original branch", "branch", original, "error", coErr)
				err = errors.Join(err, coErr)
			}
		}()

		for _, branch := range []string{uc.flow.Trunk, uc.flow.Develop} {
			if err := uc.git.Checkout(ctx, branch); err != nil {
				return err
			}
			if err := uc.git.Pull(ctx, uc.flow.MainlineRemote, branch, false); err != nil {
				return err
			}
			if err := uc.git.Push(ctx, uc.flow.ForkRemote, branch, false); err != nil {
				return err
			}
			logger.Info("Synced branch", "branch", branch)
		}
		return nil
	})
}

// Update rebases the current branch onto base from mainline and force
// pushes it to the fork. An empty base is derived from the branch type.
func (uc *UseCase) Update(ctx context.Context, base string) (string, error) {
	logger := ctxlog.From(ctx)

	current, err := uc.git.CurrentBranch(ctx)
	if err != nil {
		return "", err
	}

	if base == "" {
		t, ok := model.BranchTypeOf(current)
		if ok && t != model.BranchTypeRelease {
			base, ok = uc.flow.BaseBranch(t)
		}
		if !ok || base == "" {
			return "", goerr.New("cannot derive the base of the current branch, a base is required",
				goerr.V("branch", current),
				goerr.T(types.ErrTagValidation))
		}
	}

	err = uc.git.WithStash(ctx, func(ctx context.Context) error {
		if err := uc.git.Pull(ctx, uc.flow.MainlineRemote, base, true); err != nil {
			logger.Warn("Rebase failed, aborting", "branch", current, "base", base)
			if abortErr := uc.git.RebaseAbort(ctx); abortErr != nil {
				logger.Error("Failed to abort rebase", "error", abortErr)
			}
			if coErr := uc.git.Checkout(ctx, current); coErr != nil {
				logger.Error("Failed to return to branch", "branch", current, "error", coErr)
			}
			return goerr.Wrap(err, "failed to rebase branch",
				goerr.V("branch", current),
				goerr.V("base", base))
		}
		return uc.git.Push(ctx, uc.flow.ForkRemote, current, true)
	})
	if err != nil {
		return "", err
	}
	return base, nil
}
