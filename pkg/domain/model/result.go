package model

// StartResult is the result of starting a working branch.
type StartResult struct {
	Branch  *Branch
	Outcome CreateOutcome
	// Remote is the git remote the branch lives on
	Remote string
}

// StartReleaseResult is the result of starting a release.
type StartReleaseResult struct {
	StartResult
	Changelog  *Changelog
	Audit      *Audit
	Ticket     *IssueRef
	PreRelease *ReleaseResult
}

// QAResult is the result of publishing a pre-release for QA.
type QAResult struct {
	Changelog *Changelog
	Release   *ReleaseResult
}

// Versions is the latest release and pre-release tags. Empty means none.
type Versions struct {
	Release    string
	PreRelease string
}
