package interfaces

import "context"

// CommandRunner runs local processes and returns their standard output
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
	RunWithInput(ctx context.Context, input string, name string, args ...string) (string, error)
}

// GitClient runs git in the working repository
type GitClient interface {
	Fetch(ctx context.Context, remote string) error
	Checkout(ctx context.Context, branch string) error
	Pull(ctx context.Context, remote, branch string, rebase bool) error
	Push(ctx context.Context, remote, branch string, force bool) error
	RebaseAbort(ctx context.Context) error
	CurrentBranch(ctx context.Context) (string, error)

	// Log returns `--oneline --merges` output when merges is true and
	// `--name-status` output otherwise
	Log(ctx context.Context, base, head string, merges bool) (string, error)
	LogMessages(ctx context.Context, base, head string) (string, error)
	Diff(ctx context.Context, base, head string, paths ...string) (string, error)

	// WithStash stashes uncommitted work, runs fn and always restores it
	WithStash(ctx context.Context, fn func(ctx context.Context) error) error

	// OnBranch runs fn on an up to date copy of branch and always returns
	// to the original branch with its uncommitted work restored
	OnBranch(ctx context.Context, branch, remote string, fn func(ctx context.Context) error) error
}
