package model

import "strings"

// BranchType is the prefix family of a working branch.
type BranchType string

const (
	BranchTypeRelease    BranchType = "release"
	BranchTypeHotfix     BranchType = "hotfix"
	BranchTypeReleasefix BranchType = "releasefix"
	BranchTypeFeature    BranchType = "feature"
)

// Prefix returns the branch name prefix, e.g. "hotfix-".
func (t BranchType) Prefix() string {
	return string(t) + "-"
}

// BranchName builds a working branch name from a type and an issue slug.
func BranchName(t BranchType, slug string) string {
	return t.Prefix() + slug
}

// ReleaseBranchName returns the release branch name of a version.
func ReleaseBranchName(prefix string, v Version) string {
	return prefix + v.ReleaseBranchVersion()
}

// BranchTypeOf returns the type of a working branch and false if the name
// carries no known prefix.
func BranchTypeOf(name string) (BranchType, bool) {
	// releasefix- must be checked before release-
	for _, t := range []BranchType{BranchTypeReleasefix, BranchTypeRelease, BranchTypeHotfix, BranchTypeFeature} {
		if strings.HasPrefix(name, t.Prefix()) {
			return t, true
		}
	}
	return "", false
}

// Branch is a remote branch head.
type Branch struct {
	Name string
	SHA  string
	URL  string
}

// CreateOutcome tells how a create request was resolved. Failures are
// reported as errors, not as an outcome.
type CreateOutcome int

const (
	OutcomeCreated CreateOutcome = iota + 1
	OutcomeAlreadyExists
)

func (o CreateOutcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyExists:
		return "already_exists"
	default:
		return "unknown"
	}
}

// BranchResult is the result of a branch creation.
type BranchResult struct {
	Outcome CreateOutcome
	Branch  *Branch
}

// Created reports whether a new branch was made.
func (r *BranchResult) Created() bool {
	return r.Outcome == OutcomeCreated
}
