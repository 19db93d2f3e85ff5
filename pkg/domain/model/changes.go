package model

import (
	"regexp"
	"strings"
)

var (
	staticfilePattern   = regexp.MustCompile(`(?im)^[AMD].*static.*$`)
	bowerPattern        = regexp.MustCompile(`(?im)^[AMD].*bower.*$`)
	requirementsPattern = regexp.MustCompile(`(?m)^[+-].*$`)
)

// DeployChanges groups the file changes of a diff that need attention at
// deploy time.
type DeployChanges struct {
	Staticfiles []string
	Bower       []string
	Pip         []string
	Cron        []string
}

// ClassifyChanges scans a `git log --name-status` output, the diff of the
// requirements file and the list of cron definition files.
func ClassifyChanges(nameStatusLog, requirementsDiff string, cronFiles []string) *DeployChanges {
	changes := &DeployChanges{
		Staticfiles: staticfilePattern.FindAllString(nameStatusLog, -1),
		Bower:       bowerPattern.FindAllString(nameStatusLog, -1),
	}

	for _, line := range requirementsPattern.FindAllString(requirementsDiff, -1) {
		// skip the ---/+++ file headers
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}
		changes.Pip = append(changes.Pip, line)
	}

	for _, file := range cronFiles {
		file = strings.TrimSpace(file)
		// the listing command mixes its debug output into stdout
		if file == "" || strings.HasPrefix(file, "DEBUG") {
			continue
		}
		re := regexp.MustCompile(`(?m)^[AMD].*` + regexp.QuoteMeta(file))
		if re.MatchString(nameStatusLog) {
			changes.Cron = append(changes.Cron, file)
		}
	}

	return changes
}

// String renders every category, using a sentinel line for empty ones.
func (c *DeployChanges) String() string {
	sections := []string{
		renderSection("Staticfile changes:", "No staticfile changes", c.Staticfiles),
		renderSection("Bower changes:", "No bower changes", c.Bower),
		renderSection("Pip changes:", "No pip changes", c.Pip),
		renderSection("Cron changes:", "No cron changes", c.Cron),
	}
	return strings.Join(sections, "\n")
}

func renderSection(title, empty string, lines []string) string {
	if len(lines) == 0 {
		return empty
	}
	return title + "\n" + strings.Join(lines, "\n")
}
