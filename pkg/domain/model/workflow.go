package model

import "regexp"

// Workflow holds the branching conventions and project commands of a
// repository. It is built once from configuration and not modified after.
type Workflow struct {
	Trunk          string
	Develop        string
	ReleasePrefix  string
	MainlineRemote string
	ForkRemote     string

	ChangelogPattern *regexp.Regexp
	IssuePattern     *regexp.Regexp
	MigrationPattern *regexp.Regexp

	// MigrationCommand prints the SQL of a migration when called with the
	// app and migration name appended.
	MigrationCommand []string
	// CronCommand prints the cron definition files, one per line. Empty
	// disables the cron check.
	CronCommand []string
	// LintCommand reads a unified diff on stdin.
	LintCommand []string

	RequirementsFile string

	ReleaseTicketProject string
	ReleaseTicketType    string
	// StartTransition moves a ticket to "In Progress" when its branch starts.
	StartTransition bool

	SlackTopicFormat string
	SlackGroupID     string
}

// DefaultWorkflow returns the conventions used when nothing is configured.
func DefaultWorkflow() Workflow {
	return Workflow{
		Trunk:                "master",
		Develop:              "develop",
		ReleasePrefix:        "release-",
		MainlineRemote:       "mainline",
		ForkRemote:           "origin",
		ChangelogPattern:     regexp.MustCompile("(?i)" + DefaultChangelogPattern),
		IssuePattern:         regexp.MustCompile("(?i)" + DefaultIssuePattern),
		MigrationPattern:     regexp.MustCompile(DefaultMigrationPattern),
		MigrationCommand:     []string{"./do", "manage", "sqlmigrate"},
		CronCommand:          []string{"./do", "get_cron_files"},
		LintCommand:          []string{"flake8", "--diff"},
		RequirementsFile:     "requirements.txt",
		ReleaseTicketProject: "TEEM",
		ReleaseTicketType:    "RELEASE",
		SlackTopicFormat:     "Release Ticket: %s",
	}
}

// ReleaseBranch returns the release branch name of a version.
func (w *Workflow) ReleaseBranch(v Version) string {
	return ReleaseBranchName(w.ReleasePrefix, v)
}

// BaseBranch returns the branch a working branch type is cut from and
// merged back into. Release fixes depend on a version and have no fixed
// base, so false is returned for them.
func (w *Workflow) BaseBranch(t BranchType) (string, bool) {
	switch t {
	case BranchTypeHotfix:
		return w.Trunk, true
	case BranchTypeFeature, BranchTypeRelease:
		return w.Develop, true
	default:
		return "", false
	}
}
