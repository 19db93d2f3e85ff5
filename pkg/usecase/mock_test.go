package usecase_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

var errNotFound = goerr.New("not found", goerr.T(types.ErrTagNotFound))

// mockGitHub is a GitHubClient with overridable methods. Unset methods
// fail so that unexpected calls surface in tests.
type mockGitHub struct {
	owner string

	getBranchFunc     func(ctx context.Context, name string) (*model.Branch, error)
	createBranchFunc  func(ctx context.Context, name, base string, fromSHA bool) (*model.BranchResult, error)
	updateBranchFunc  func(ctx context.Context, name, sha string) (*model.Branch, error)
	compareFunc       func(ctx context.Context, base, head string) (model.CompareStatus, error)
	getReleaseFunc    func(ctx context.Context, tag string) (*model.Release, error)
	latestReleaseFunc func(ctx context.Context) (*model.Release, error)
	listReleasesFunc  func(ctx context.Context) ([]*model.Release, error)
	createReleaseFunc func(ctx context.Context, release *model.NewRelease) (*model.Release, error)
	createPRFunc      func(ctx context.Context, base, head, title, body string) (*model.PullRequest, error)
	checkStatusesFunc func(ctx context.Context, ref string) ([]*model.CommitStatus, error)

	createdReleases []*model.NewRelease
}

var _ interfaces.GitHubClient = (*mockGitHub)(nil)

func notConfigured(name string) error {
	return fmt.Errorf("mock %s not configured", name)
}

func (m *mockGitHub) Owner() string { return m.owner }

func (m *mockGitHub) GetBranch(ctx context.Context, name string) (*model.Branch, error) {
	if m.getBranchFunc != nil {
		return m.getBranchFunc(ctx, name)
	}
	return nil, notConfigured("GetBranch")
}

func (m *mockGitHub) CreateBranch(ctx context.Context, name, base string, fromSHA bool) (*model.BranchResult, error) {
	if m.createBranchFunc != nil {
		return m.createBranchFunc(ctx, name, base, fromSHA)
	}
	return nil, notConfigured("CreateBranch")
}

func (m *mockGitHub) UpdateBranch(ctx context.Context, name, sha string) (*model.Branch, error) {
	if m.updateBranchFunc != nil {
		return m.updateBranchFunc(ctx, name, sha)
	}
	return nil, notConfigured("UpdateBranch")
}

func (m *mockGitHub) Compare(ctx context.Context, base, head string) (model.CompareStatus, error) {
	if m.compareFunc != nil {
		return m.compareFunc(ctx, base, head)
	}
	return "", notConfigured("Compare")
}

func (m *mockGitHub) GetRelease(ctx context.Context, tag string) (*model.Release, error) {
	if m.getReleaseFunc != nil {
		return m.getReleaseFunc(ctx, tag)
	}
	return nil, errNotFound
}

func (m *mockGitHub) LatestRelease(ctx context.Context) (*model.Release, error) {
	if m.latestReleaseFunc != nil {
		return m.latestReleaseFunc(ctx)
	}
	return nil, notConfigured("LatestRelease")
}

func (m *mockGitHub) ListReleases(ctx context.Context) ([]*model.Release, error) {
	if m.listReleasesFunc != nil {
		return m.listReleasesFunc(ctx)
	}
	return nil, nil
}

func (m *mockGitHub) CreateRelease(ctx context.Context, release *model.NewRelease) (*model.Release, error) {
	m.createdReleases = append(m.createdReleases, release)
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, release)
	}
	return &model.Release{
		TagName:    release.TagName,
		Name:       release.Name,
		Target:     release.Target,
		Body:       release.Body,
		Prerelease: release.Prerelease,
	}, nil
}

func (m *mockGitHub) CreatePullRequest(ctx context.Context, base, head, title, body string) (*model.PullRequest, error) {
	if m.createPRFunc != nil {
		return m.createPRFunc(ctx, base, head, title, body)
	}
	return nil, notConfigured("CreatePullRequest")
}

func (m *mockGitHub) CheckStatuses(ctx context.Context, ref string) ([]*model.CommitStatus, error) {
	if m.checkStatusesFunc != nil {
		return m.checkStatusesFunc(ctx, ref)
	}
	return nil, notConfigured("CheckStatuses")
}

// mockJira is a JiraClient with overridable methods
type mockJira struct {
	getIssueFunc        func(ctx context.Context, id string) (*model.Issue, error)
	createIssueFunc     func(ctx context.Context, req *model.NewIssue) (*model.IssueRef, error)
	linkIssuesFunc      func(ctx context.Context, from, to string) error
	openTransitionsFunc func(ctx context.Context, id string, category int) ([]string, error)
	transitionFunc      func(ctx context.Context, id, transitionID string) error
	myTicketsFunc       func(ctx context.Context) ([]*model.Issue, error)

	createdIssues []*model.NewIssue
	links         []string
	transitions   []string
}

var _ interfaces.JiraClient = (*mockJira)(nil)

func (m *mockJira) GetIssue(ctx context.Context, id string) (*model.Issue, error) {
	if m.getIssueFunc != nil {
		return m.getIssueFunc(ctx, id)
	}
	return nil, notConfigured("GetIssue")
}

func (m *mockJira) CreateIssue(ctx context.Context, req *model.NewIssue) (*model.IssueRef, error) {
	m.createdIssues = append(m.createdIssues, req)
	if m.createIssueFunc != nil {
		return m.createIssueFunc(ctx, req)
	}
	return &model.IssueRef{ID: "10001", Key: "TEEM-1"}, nil
}

func (m *mockJira) LinkIssues(ctx context.Context, from, to string) error {
	m.links = append(m.links, from+"->"+to)
	if m.linkIssuesFunc != nil {
		return m.linkIssuesFunc(ctx, from, to)
	}
	return nil
}

func (m *mockJira) IssueSlug(ctx context.Context, id, summary string) (string, error) {
	if summary == "" {
		issue, err := m.GetIssue(ctx, id)
		if err != nil {
			return "", err
		}
		summary = issue.Summary
	}
	return model.IssueSlug(id, summary), nil
}

func (m *mockJira) OpenTransitions(ctx context.Context, id string, category int) ([]string, error) {
	if m.openTransitionsFunc != nil {
		return m.openTransitionsFunc(ctx, id, category)
	}
	return nil, nil
}

func (m *mockJira) TransitionIssue(ctx context.Context, id, transitionID string) error {
	m.transitions = append(m.transitions, id+":"+transitionID)
	if m.transitionFunc != nil {
		return m.transitionFunc(ctx, id, transitionID)
	}
	return nil
}

func (m *mockJira) MyTickets(ctx context.Context) ([]*model.Issue, error) {
	if m.myTicketsFunc != nil {
		return m.myTicketsFunc(ctx)
	}
	return nil, notConfigured("MyTickets")
}

func (m *mockJira) StatusCategories(ctx context.Context) ([]*model.StatusCategory, error) {
	return []*model.StatusCategory{{ID: model.StatusCategoryInProgress, Key: "indeterminate", Name: "In Progress"}}, nil
}

// mockGit records git operations as strings such as "checkout develop"
type mockGit struct {
	current string
	calls   []string

	logFunc   func(base, head string, merges bool) (string, error)
	diffFunc  func(base, head string, paths ...string) (string, error)
	pullFunc  func(remote, branch string, rebase bool) error
	fetchFunc func(remote string) error
	// checkoutFunc fails a checkout when it returns an error
	checkoutFunc func(branch string) error
	messages     string
	stashCount   int
}

var _ interfaces.GitClient = (*mockGit)(nil)

func (m *mockGit) record(format string, args ...any) {
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

func (m *mockGit) Fetch(ctx context.Context, remote string) error {
	m.record("fetch %s", remote)
	if m.fetchFunc != nil {
		return m.fetchFunc(remote)
	}
	return nil
}

func (m *mockGit) Checkout(ctx context.Context, branch string) error {
	m.record("checkout %s", branch)
	if m.checkoutFunc != nil {
		if err := m.checkoutFunc(branch); err != nil {
			return err
		}
	}
	m.current = branch
	return nil
}

func (m *mockGit) Pull(ctx context.Context, remote, branch string, rebase bool) error {
	m.record("pull %s %s rebase=%t", remote, branch, rebase)
	if m.pullFunc != nil {
		return m.pullFunc(remote, branch, rebase)
	}
	return nil
}

func (m *mockGit) Push(ctx context.Context, remote, branch string, force bool) error {
	m.record("push %s %s force=%t", remote, branch, force)
	return nil
}

func (m *mockGit) RebaseAbort(ctx context.Context) error {
	m.record("rebase --abort")
	return nil
}

func (m *mockGit) CurrentBranch(ctx context.Context) (string, error) {
	return m.current, nil
}

func (m *mockGit) Log(ctx context.Context, base, head string, merges bool) (string, error) {
	m.record("log %s..%s merges=%t", base, head, merges)
	if m.logFunc != nil {
		return m.logFunc(base, head, merges)
	}
	return "", nil
}

func (m *mockGit) LogMessages(ctx context.Context, base, head string) (string, error) {
	m.record("log-messages %s...%s", base, head)
	return m.messages, nil
}

func (m *mockGit) Diff(ctx context.Context, base, head string, paths ...string) (string, error) {
	m.record("diff %s..%s %s", base, head, strings.Join(paths, " "))
	if m.diffFunc != nil {
		return m.diffFunc(base, head, paths...)
	}
	return "", nil
}

func (m *mockGit) WithStash(ctx context.Context, fn func(ctx context.Context) error) error {
	m.stashCount++
	m.record("stash")
	defer m.record("stash pop")
	return fn(ctx)
}

func (m *mockGit) OnBranch(ctx context.Context, branch, remote string, fn func(ctx context.Context) error) error {
	original := m.current
	return m.WithStash(ctx, func(ctx context.Context) error {
		defer func() { _ = m.Checkout(ctx, original) }()
		if err := m.Checkout(ctx, branch); err != nil {
			return err
		}
		if err := m.Pull(ctx, remote, branch, false); err != nil {
			return err
		}
		return fn(ctx)
	})
}

// mockRunner answers commands by their joined command line
type mockRunner struct {
	outputs map[string]string
	errs    map[string]error
	inputs  []string
	calls   []string
}

var _ interfaces.CommandRunner = (*mockRunner)(nil)

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	m.calls = append(m.calls, line)
	if err, ok := m.errs[line]; ok {
		return "", err
	}
	return m.outputs[line], nil
}

func (m *mockRunner) RunWithInput(ctx context.Context, input string, name string, args ...string) (string, error) {
	m.inputs = append(m.inputs, input)
	return m.Run(ctx, name, args...)
}

// mockChat records announcements
type mockChat struct {
	err           error
	announcements []*model.ReleaseAnnouncement
}

func (m *mockChat) AnnounceRelease(ctx context.Context, a *model.ReleaseAnnouncement) error {
	m.announcements = append(m.announcements, a)
	return m.err
}

func branchOf(name, sha string) *model.Branch {
	return &model.Branch{Name: name, SHA: sha}
}
