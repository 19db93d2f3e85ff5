package git

import (
	"context"
	"errors"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
)

type client struct {
	runner interfaces.CommandRunner
	bin    string
}

// NewClient creates a GitClient running the git binary through runner
func NewClient(runner interfaces.CommandRunner) interfaces.GitClient {
	return &client{runner: runner, bin: "git"}
}

func (c *client) git(ctx context.Context, args ...string) (string, error) {
	out, err := c.runner.Run(ctx, c.bin, args...)
	if err != nil {
		return out, goerr.Wrap(err, "git "+args[0]+" failed")
	}
	return out, nil
}

func (c *client) Fetch(ctx context.Context, remote string) error {
	_, err := c.git(ctx, "fetch", remote)
	return err
}

func (c *client) Checkout(ctx context.Context, branch string) error {
	_, err := c.git(ctx, "checkout", "-q", branch)
	return err
}

func (c *client) Pull(ctx context.Context, remote, branch string, rebase bool) error {
	args := []string{"pull", "-q"}
	if rebase {
		args = append(args, "-r")
	}
	_, err := c.git(ctx, append(args, remote, branch)...)
	return err
}

func (c *client) Push(ctx context.Context, remote, branch string, force bool) error {
	args := []string{"push"}
	if force {
		args = append(args, "-f")
	}
	_, err := c.git(ctx, append(args, remote, branch)...)
	return err
}

func (c *client) RebaseAbort(ctx context.Context) error {
	_, err := c.git(ctx, "rebase", "--abort")
	return err
}

func (c *client) CurrentBranch(ctx context.Context) (string, error) {
	out, err := c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (c *client) Log(ctx context.Context, base, head string, merges bool) (string, error) {
	args := []string{"log"}
	if merges {
		args = append(args, "--oneline", "--merges")
	} else {
		args = append(args, "--name-status")
	}
	return c.git(ctx, append(args, base+".."+head)...)
}

func (c *client) LogMessages(ctx context.Context, base, head string) (string, error) {
	return c.git(ctx, "log", "--format=%B", base+"..."+head)
}

func (c *client) Diff(ctx context.Context, base, head string, paths ...string) (string, error) {
	args := []string{"diff", base + ".." + head}
	if len(paths) > 0 {
		args = append(append(args, "--"), paths...)
	}
	return c.git(ctx, args...)
}

func (c *client) WithStash(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	logger := ctxlog.From(ctx)

	out, err := c.git(ctx, "stash", "create")
	if err != nil {
		return err
	}

	if ref := strings.TrimSpace(out); ref != "" {
		if _, err := c.git(ctx, "stash", "store", "-q", ref); err != nil {
			return err
		}
		// the work is safe in the stash list from here on
		defer func() {
			if _, popErr := c.git(ctx, "stash", "pop", "-q"); popErr != nil {
				logger.Error("Failed to restore stashed changes, run `git stash pop` manually", "error", popErr)
				err = errors.Join(err, popErr)
			}
		}()

		logger.Debug("Stashed uncommitted changes", "ref", ref)
		if _, err := c.git(ctx, "reset", "--hard"); err != nil {
			return err
		}
	}

	return fn(ctx)
}

func (c *client) OnBranch(ctx context.Context, branch, remote string, fn func(ctx context.Context) error) error {
	logger := ctxlog.From(ctx)

	original, err := c.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	return c.WithStash(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if coErr := c.Checkout(ctx, original); coErr != nil {
				logger.Error("Failed to return to original branch", "branch", original, "error", coErr)
				err = errors.Join(err, coErr)
			}
		}()

		if err := c.Checkout(ctx, branch); err != nil {
			return goerr.Wrap(err, "failed to switch branch", goerr.V("branch", branch))
		}
		if err := c.Pull(ctx, remote, branch, false); err != nil {
			return goerr.Wrap(err, "failed to update branch",
				goerr.V("branch", branch),
				goerr.V("remote", remote))
		}

		return fn(ctx)
	})
}
