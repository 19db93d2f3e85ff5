package model

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gosimple/slug"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

var (
	ticketPattern       = regexp.MustCompile(`^([a-zA-Z]+-\d+)(?:-.*)?$`)
	branchTicketPattern = regexp.MustCompile(`^[a-zA-Z]+-?/?([a-zA-Z]+-\d+)`)
)

// ParseTicketID validates a ticket argument such as "EB-12" or
// "eb-12-fix-login" and returns the upper-cased ticket id.
func ParseTicketID(s string) (string, error) {
	m := ticketPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", goerr.New("invalid ticket, expected letters-digits such as EB-123",
			goerr.V("ticket", s),
			goerr.T(types.ErrTagValidation))
	}
	return strings.ToUpper(m[1]), nil
}

// TicketFromBranch extracts the ticket id from a working branch name such
// as "feature-EB-12-fix-login".
func TicketFromBranch(branch string) (string, error) {
	m := branchTicketPattern.FindStringSubmatch(branch)
	if m == nil {
		return "", goerr.New("no ticket found in branch name",
			goerr.V("branch", branch),
			goerr.T(types.ErrTagValidation))
	}
	return strings.ToUpper(m[1]), nil
}

// IssueSlug joins a ticket id with the slug of its summary.
func IssueSlug(id, summary string) string {
	s := slug.Make(summary)
	if s == "" {
		return id
	}
	return id + "-" + s
}

// Issue is an issue tracker ticket.
type Issue struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Summary  string `json:"summary"`
	Type     string `json:"type"`
	Subtask  bool   `json:"subtask"`
	Assignee string `json:"assignee,omitempty"`
	Parent   string `json:"parent,omitempty"`
}

// Details formats the issue as a one line description.
func (i *Issue) Details() string {
	ref := i.Key
	if i.Parent != "" {
		ref = i.Parent + " > " + i.Key
	}
	assignee := i.Assignee
	if assignee == "" {
		assignee = "Unassigned"
	}
	return fmt.Sprintf("%s : %s - %s (%s)", ref, i.Type, i.Summary, assignee)
}

// DetailsList renders the details of issues as a sorted bullet list without
// duplicates.
func DetailsList(issues []*Issue) string {
	var lines []string
	for _, issue := range issues {
		lines = append(lines, issue.Details())
	}
	slices.Sort(lines)
	lines = slices.Compact(lines)
	if len(lines) == 0 {
		return ""
	}
	return "* " + strings.Join(lines, "\n* ")
}

// NewIssue is an issue creation request.
type NewIssue struct {
	Summary     string
	Description string
	Project     string
	Type        string
}

// IssueRef identifies a created issue.
type IssueRef struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// StatusCategory is a tracker status category, e.g. 4 for "In Progress".
type StatusCategory struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// StatusCategoryInProgress is the id of the "In Progress" category.
const StatusCategoryInProgress = 4
