package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relflow/pkg/domain/model"
)

func TestChangelog(t *testing.T) {
	git := &mockGit{
		logFunc: func(base, head string, merges bool) (string, error) {
			gt.True(t, merges)
			return mergeLog, nil
		},
	}
	uc := newUseCase(nil, nil, nil, git, nil)

	changelog, err := uc.Changelog(context.Background(), "master", "release-2024.12.0.01")
	gt.NoError(t, err)
	gt.Equal(t, changelog.Lines, []string{
		"* EB-1 : Fix Login",
		"* EB-2 : Crash On Start",
	})
	gt.Equal(t, changelog.Issues, []string{"EB-1", "EB-2"})
	gt.Equal(t, git.calls, []string{"log master..release-2024.12.0.01 merges=true"})
}

func TestIssueDetails(t *testing.T) {
	jira := &mockJira{
		getIssueFunc: func(ctx context.Context, id string) (*model.Issue, error) {
			if id == "EB-2" {
				return nil, errors.New("issue does not exist")
			}
			return &model.Issue{Key: id, Summary: "summary of " + id, Type: "Story"}, nil
		},
	}
	uc := newUseCase(nil, nil, jira, nil, nil)

	issues := uc.IssueDetails(context.Background(), []string{"EB-1", "EB-2", "EB-3"})
	gt.Equal(t, len(issues), 2)
	gt.Equal(t, issues[0].Key, "EB-1")
	gt.Equal(t, issues[1].Key, "EB-3")
	gt.Equal(t, issues[1].Details(), "EB-3 : Story - summary of EB-3 (Unassigned)")
}
