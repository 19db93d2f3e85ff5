package usecase

import (
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
)

// UseCase sequences the GitHub, Jira, git and chat calls of each release
// workflow command
type UseCase struct {
	mainline interfaces.GitHubClient
	fork     interfaces.GitHubClient
	jira     interfaces.JiraClient
	git      interfaces.GitClient
	runner   interfaces.CommandRunner
	chat     interfaces.ChatClient
	flow     model.Workflow
}

var _ interfaces.ReleaseUseCase = (*UseCase)(nil)

// Option configures optional collaborators
type Option func(*UseCase)

// WithChat enables release announcements
func WithChat(chat interfaces.ChatClient) Option {
	return func(uc *UseCase) {
		uc.chat = chat
	}
}

// WithWorkflow replaces the default branching conventions
func WithWorkflow(flow model.Workflow) Option {
	return func(uc *UseCase) {
		uc.flow = flow
	}
}

// New creates a UseCase. mainline is the canonical repository, fork the
// operator's copy used for working branches and pull requests.
func New(mainline, fork interfaces.GitHubClient, jira interfaces.JiraClient, git interfaces.GitClient, runner interfaces.CommandRunner, opts ...Option) *UseCase {
	uc := &UseCase{
		mainline: mainline,
		fork:     fork,
		jira:     jira,
		git:      git,
		runner:   runner,
		flow:     model.DefaultWorkflow(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// remoteRef returns the remote tracking name of a branch
func remoteRef(remote, branch string) string {
	return remote + "/" + branch
}
