package model

import (
	"regexp"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

// ReleaseBranchPlaceholder replaces the 4th component of a version when
// naming a release branch, so all patches of a cycle share one branch.
const ReleaseBranchPlaceholder = "01"

var versionPattern = regexp.MustCompile(`^\d+(?:\.\d+){3,4}$`)

// Version is a dotted numeric release identifier with 4 or 5 components.
type Version string

// ParseVersion validates s and returns it as a Version.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if !versionPattern.MatchString(s) {
		return "", goerr.New("invalid version, expected 4 or 5 dot separated numbers",
			goerr.V("version", s),
			goerr.T(types.ErrTagValidation))
	}
	return Version(s), nil
}

func (v Version) String() string { return string(v) }

func (v Version) components() []string {
	return strings.Split(string(v), ".")
}

// Major returns the first 4 components.
func (v Version) Major() string {
	parts := v.components()
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Join(parts, ".")
}

// ReleaseBranchVersion returns the major version with its last component
// replaced by ReleaseBranchPlaceholder.
func (v Version) ReleaseBranchVersion() string {
	parts := strings.Split(v.Major(), ".")
	parts[len(parts)-1] = ReleaseBranchPlaceholder
	return strings.Join(parts, ".")
}

// YearWeek returns YearWeekVersion of the version.
func (v Version) YearWeek() string {
	return YearWeekVersion(string(v))
}

// YearWeekVersion returns the 2 components identifying a release cycle.
// Versions with a leading "0" component carry the cycle in components 3-4,
// all others in components 1-2.
//
// TODO: confirm with release owners whether the leading "0" scheme is still
// in use before dropping this branch.
func YearWeekVersion(s string) string {
	parts := strings.Split(s, ".")
	if parts[0] == "0" {
		return joinRange(parts, 2, 4)
	}
	return joinRange(parts, 0, 2)
}

func joinRange(parts []string, from, to int) string {
	if from > len(parts) {
		return ""
	}
	if to > len(parts) {
		to = len(parts)
	}
	return strings.Join(parts[from:to], ".")
}
