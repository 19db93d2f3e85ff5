package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

type runner struct {
	dir string
}

// Option configures the runner
type Option func(*runner)

// WithDir runs every command in dir instead of the current directory
func WithDir(dir string) Option {
	return func(r *runner) {
		r.dir = dir
	}
}

// NewRunner creates a CommandRunner backed by os/exec
func NewRunner(opts ...Option) interfaces.CommandRunner {
	r := &runner{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *runner) Run(ctx context.Context, name string, args ...string) (string, error) {
	return r.run(ctx, nil, name, args...)
}

func (r *runner) RunWithInput(ctx context.Context, input string, name string, args ...string) (string, error) {
	return r.run(ctx, strings.NewReader(input), name, args...)
}

func (r *runner) run(ctx context.Context, stdin *strings.Reader, name string, args ...string) (string, error) {
	logger := ctxlog.From(ctx)
	logger.Debug("Running command", "name", name, "args", args, "dir", r.dir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir
	if stdin != nil {
		cmd.Stdin = stdin
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), goerr.Wrap(err, "command failed",
			goerr.V("command", name+" "+strings.Join(args, " ")),
			goerr.V("stderr", strings.TrimSpace(stderr.String())),
			goerr.T(types.ErrTagCommand))
	}

	return stdout.String(), nil
}
