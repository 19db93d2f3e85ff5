package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/usecase"
)

func TestAudit(t *testing.T) {
	ctx := context.Background()

	log := `M	static/js/app.js
A	bower.json
A	apps/users/migrations/0002_add_email.py
A	apps/orders/migrations/0010_noop.py
A	apps/billing/migrations/0003_broken.py
`
	git := &mockGit{
		logFunc: func(base, head string, merges bool) (string, error) {
			gt.Equal(t, merges, false)
			return log, nil
		},
		diffFunc: func(base, head string, paths ...string) (string, error) {
			gt.Equal(t, paths, []string{"requirements.txt"})
			return "--- a/requirements.txt\n+++ b/requirements.txt\n-django==4.1\n+django==4.2\n", nil
		},
	}
	runner := &mockRunner{
		outputs: map[string]string{
			"./do manage sqlmigrate users 0002_add_email": "ALTER TABLE users DROP COLUMN email;",
			"./do manage sqlmigrate orders 0010_noop":     "",
		},
		errs: map[string]error{
			"./do get_cron_files":                        errors.New("no such file"),
			"./do manage sqlmigrate billing 0003_broken": errors.New("exit status 1"),
		},
	}
	uc := newUseCase(nil, nil, nil, git, runner)

	audit, err := uc.Audit(ctx, "mainline/master", "release-2024.12.0.01")
	gt.NoError(t, err)

	gt.Equal(t, audit.Changes.Staticfiles, []string{"M\tstatic/js/app.js"})
	gt.Equal(t, audit.Changes.Bower, []string{"A\tbower.json"})
	gt.Equal(t, audit.Changes.Pip, []string{"-django==4.1", "+django==4.2"})
	gt.Equal(t, len(audit.Changes.Cron), 0)

	gt.Equal(t, len(audit.Migrations), 2)
	gt.True(t, audit.Migrations[0].Flagged())
	gt.Equal(t, audit.Migrations[0].Problems, []string{"- drops columns"})
	gt.Equal(t, audit.Migrations[1].Flagged(), false)

	rendered := audit.Render(nil)
	gt.String(t, rendered).Contains("users/migrations/0002_add_email could break backwards compatibility")
	gt.String(t, rendered).Contains("orders/migrations/0010_noop:\n\tNOOP")
	gt.String(t, rendered).Contains("No cron changes")
}

func TestAudit_WithoutCommands(t *testing.T) {
	git := &mockGit{
		logFunc: func(base, head string, merges bool) (string, error) {
			return "A\tapps/users/migrations/0002_add_email.py\n", nil
		},
	}
	runner := &mockRunner{}
	flow := model.DefaultWorkflow()
	flow.MigrationCommand = nil
	flow.CronCommand = nil
	uc := newUseCase(nil, nil, nil, git, runner, usecase.WithWorkflow(flow))

	audit, err := uc.Audit(context.Background(), "a", "b")
	gt.NoError(t, err)
	gt.Equal(t, len(audit.Migrations), 0)
	gt.Equal(t, len(runner.calls), 0)
}

func TestAudit_LogFailure(t *testing.T) {
	git := &mockGit{
		logFunc: func(base, head string, merges bool) (string, error) {
			return "", errors.New("bad revision")
		},
	}
	uc := newUseCase(nil, nil, nil, git, nil)

	_, err := uc.Audit(context.Background(), "a", "b")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to read change log")
}
