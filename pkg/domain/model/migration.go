package model

import (
	"regexp"
	"strings"
)

// DefaultMigrationPattern matches migration files and captures the
// migration path, the app and the migration name.
const DefaultMigrationPattern = `apps/((.*)/migrations/(\d+[0-9a-z_-]*))\.py`

var addedFilePattern = regexp.MustCompile(`(?m)^A\s+(\S+)$`)

// Migration is a database migration added by a diff.
type Migration struct {
	Path string
	App  string
	Name string
}

// FindMigrations returns the migrations added in a `git log --name-status`
// output, in order of appearance and without duplicates.
func FindMigrations(nameStatusLog string, pattern *regexp.Regexp) []Migration {
	var migrations []Migration
	seen := map[string]struct{}{}

	for _, added := range addedFilePattern.FindAllStringSubmatch(nameStatusLog, -1) {
		m := pattern.FindStringSubmatch(added[1])
		if len(m) < 4 {
			continue
		}
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		migrations = append(migrations, Migration{Path: m[1], App: m[2], Name: m[3]})
	}
	return migrations
}

type migrationSmell struct {
	pattern *regexp.Regexp
	reason  string
}

var migrationSmells = []migrationSmell{
	{regexp.MustCompile(`NOT NULL`), "- contains NOT NULL columns"},
	{regexp.MustCompile(`DROP COLUMN`), "- drops columns"},
	{regexp.MustCompile(`ADD COLUMN .* DEFAULT`), "- adds a new column with DEFAULT"},
}

// CheckMigrationSQL returns the backwards compatibility problems found in
// the SQL of a migration. No problem yields an empty slice.
func CheckMigrationSQL(sql string) []string {
	var reasons []string
	for _, smell := range migrationSmells {
		if smell.pattern.MatchString(sql) {
			reasons = append(reasons, smell.reason)
		}
	}
	return reasons
}

// MigrationReport is the audit result of one migration.
type MigrationReport struct {
	Migration Migration
	SQL       string
	Problems  []string
}

// Flagged reports whether the migration could break backwards
// compatibility.
func (r *MigrationReport) Flagged() bool {
	return len(r.Problems) > 0
}

// Audit is the deploy audit of a diff.
type Audit struct {
	Changes    *DeployChanges
	Migrations []*MigrationReport
}

// Highlighter decorates flagged migration headers, e.g. with terminal
// colors.
type Highlighter func(format string, args ...any) string

// Render formats the audit. highlight may be nil.
func (a *Audit) Render(highlight Highlighter) string {
	return a.Changes.String() + "\n\nMigrations:\n" + a.RenderMigrations(highlight)
}

// RenderMigrations formats the migration part of the audit.
func (a *Audit) RenderMigrations(highlight Highlighter) string {
	if len(a.Migrations) == 0 {
		return "No migrations found."
	}

	var b strings.Builder
	for i, r := range a.Migrations {
		if i > 0 {
			b.WriteString("\n")
		}
		if r.Flagged() {
			header := r.Migration.Path + " could break backwards compatibility"
			if highlight != nil {
				header = highlight("%s", header)
			}
			b.WriteString(header + "\n")
			b.WriteString(strings.Join(r.Problems, "\n") + "\n")
			b.WriteString(r.SQL + "\n")
			continue
		}

		sql := r.SQL
		if strings.TrimSpace(sql) == "" {
			sql = "\tNOOP"
		}
		b.WriteString(r.Migration.Path + ":\n" + sql + "\n")
	}
	return b.String()
}
