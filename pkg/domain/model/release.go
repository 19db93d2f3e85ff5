package model

import "time"

// Release is a published or pre-published release record.
type Release struct {
	ID         int64
	TagName    string
	Name       string
	Target     string
	Body       string
	Prerelease bool
	URL        string
	CreatedAt  time.Time
}

// NewRelease is a release creation request.
type NewRelease struct {
	TagName    string
	Target     string
	Name       string
	Body       string
	Prerelease bool
}

// ReleaseResult is the result of a release creation. When Outcome is
// OutcomeAlreadyExists, Release holds the existing record.
type ReleaseResult struct {
	Outcome CreateOutcome
	Release *Release
}

// CompareStatus is the relation of a head ref to a base ref.
type CompareStatus string

const (
	CompareDiverged  CompareStatus = "diverged"
	CompareAhead     CompareStatus = "ahead"
	CompareBehind    CompareStatus = "behind"
	CompareIdentical CompareStatus = "identical"
)

// Merged reports whether every commit of head is already in base.
func (s CompareStatus) Merged() bool {
	return s != CompareDiverged && s != CompareAhead
}

// PullRequest is a created pull request.
type PullRequest struct {
	Number int
	Title  string
	URL    string
}

// CommitStatus is a CI status reported for a ref.
type CommitStatus struct {
	Context     string `json:"context"`
	State       string `json:"state"`
	Description string `json:"description,omitempty"`
	TargetURL   string `json:"target_url,omitempty"`
}
