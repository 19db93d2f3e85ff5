package model

import (
	"regexp"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultChangelogPattern = `merge pull request #\d+ from [\w/]*(?:[/-]([a-z]{2,4}-\d+)-(.*))`
	DefaultIssuePattern     = `merge pull request #\d+ from [\w/]*(?:[/-]([a-z]+-\d+))`
)

// CompilePattern compiles a changelog or issue pattern case-insensitively.
func CompilePattern(name, expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid regular expression",
			goerr.V("name", name),
			goerr.V("expr", expr),
			goerr.T(types.ErrTagConfig))
	}
	return re, nil
}

// Changelog is the set of changes merged between two refs.
type Changelog struct {
	Lines  []string
	Issues []string
}

// String renders one bullet per line.
func (c *Changelog) String() string {
	return strings.Join(c.Lines, "\n")
}

// Empty reports whether no change was found.
func (c *Changelog) Empty() bool {
	return len(c.Lines) == 0
}

// ParseChangelog extracts changelog lines and ticket ids from merge commit
// subjects. changelogRE must capture the ticket id and the title, issueRE
// must capture the ticket id.
func ParseChangelog(log string, changelogRE, issueRE *regexp.Regexp) *Changelog {
	title := cases.Title(language.Und)

	lines := map[string]struct{}{}
	for _, m := range changelogRE.FindAllStringSubmatch(log, -1) {
		if len(m) < 3 {
			continue
		}
		name := strings.NewReplacer("-", " ", "_", " ").Replace(m[2])
		lines["* "+strings.ToUpper(m[1])+" : "+title.String(strings.TrimSpace(name))] = struct{}{}
	}

	issues := map[string]struct{}{}
	for _, m := range issueRE.FindAllStringSubmatch(log, -1) {
		if len(m) < 2 {
			continue
		}
		issues[strings.ToUpper(m[1])] = struct{}{}
	}

	return &Changelog{
		Lines:  sortedKeys(lines),
		Issues: sortedKeys(issues),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
