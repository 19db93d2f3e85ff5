package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// Audit lists the deploy relevant changes between base and head and checks
// the SQL of every added migration
func (uc *UseCase) Audit(ctx context.Context, base, head string) (*model.Audit, error) {
	log, err := uc.git.Log(ctx, base, head, false)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read change log",
			goerr.V("base", base),
			goerr.V("head", head))
	}

	requirements, err := uc.git.Diff(ctx, base, head, uc.flow.RequirementsFile)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to diff requirements", goerr.V("file", uc.flow.RequirementsFile))
	}

	return &model.Audit{
		Changes:    model.ClassifyChanges(log, requirements, uc.cronFiles(ctx)),
		Migrations: uc.auditMigrations(ctx, model.FindMigrations(log, uc.flow.MigrationPattern)),
	}, nil
}

// cronFiles runs the cron listing command. Without a command, or when it
// fails, no cron file is checked.
func (uc *UseCase) cronFiles(ctx context.Context) []string {
	if len(uc.flow.CronCommand) == 0 {
		return nil
	}

	out, err := uc.runner.Run(ctx, uc.flow.CronCommand[0], uc.flow.CronCommand[1:]...)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to list cron files", "error", err)
		return nil
	}
	return strings.Split(strings.TrimSpace(out), "\n")
}

func (uc *UseCase) auditMigrations(ctx context.Context, migrations []model.Migration) []*model.MigrationReport {
	logger := ctxlog.From(ctx)
	if len(uc.flow.MigrationCommand) == 0 {
		logger.Warn("No migration command configured, skipping migration checks")
		return nil
	}

	var reports []*model.MigrationReport
	for _, m := range migrations {
		args := append(append([]string{}, uc.flow.MigrationCommand[1:]...), m.App, m.Name)
		sql, err := uc.runner.Run(ctx, uc.flow.MigrationCommand[0], args...)
		if err != nil {
			logger.Debug("Skipping migration, failed to get its SQL", "migration", m.Path, "error", err)
			continue
		}

		sql = strings.TrimSpace(sql)
		reports = append(reports, &model.MigrationReport{
			Migration: m,
			SQL:       sql,
			Problems:  model.CheckMigrationSQL(sql),
		})
	}
	return reports
}
