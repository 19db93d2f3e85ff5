package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
)

var releaseTicketPattern = regexp.MustCompile(`Release ticket id: (\S+)`)

// CheckReleaseStatus rejects a release whose branch is not merged into
// trunk. Without a release branch the version is treated as a hotfix and
// must belong to the cycle of the latest release.
func (uc *UseCase) CheckReleaseStatus(ctx context.Context, version model.Version) error {
	logger := ctxlog.From(ctx)
	branch := uc.flow.ReleaseBranch(version)

	status, err := uc.mainline.Compare(ctx, uc.flow.Trunk, branch)
	if err == nil {
		logger.Debug("Compared release branch", "branch", branch, "status", status)
		if !status.Merged() {
			return goerr.New("release must be merged into "+uc.flow.Trunk+" before release",
				goerr.V("branch", branch),
				goerr.V("status", status),
				goerr.T(types.ErrTagNotReady))
		}
		return nil
	}
	if !goerr.HasTag(err, types.ErrTagNotFound) {
		return err
	}

	logger.Info("Release branch not found, checking version as a hotfix", "branch", branch)
	latest, err := uc.mainline.LatestRelease(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to get latest release")
	}

	current := model.YearWeekVersion(strings.TrimPrefix(latest.Name, uc.flow.ReleasePrefix))
	requested := model.YearWeekVersion(version.ReleaseBranchVersion())
	if current != requested {
		return goerr.New("new release version does not match the current release, expected a hotfix",
			goerr.V("version", version),
			goerr.V("latest_release", latest.Name),
			goerr.T(types.ErrTagNotReady))
	}
	return nil
}

// findRelease returns the release of tag, or nil when there is none
func (uc *UseCase) findRelease(ctx context.Context, tag string) (*model.Release, error) {
	release, err := uc.mainline.GetRelease(ctx, tag)
	if err == nil {
		return release, nil
	}
	if goerr.HasTag(err, types.ErrTagNotFound) {
		return nil, nil
	}
	return nil, err
}

// CreatePreRelease tags the head of branch as a pre-release
func (uc *UseCase) CreatePreRelease(ctx context.Context, tag, branch, body string) (*model.ReleaseResult, error) {
	head, err := uc.mainline.GetBranch(ctx, branch)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get release branch", goerr.V("branch", branch))
	}

	return uc.createRelease(ctx, &model.NewRelease{
		TagName:    tag,
		Target:     head.SHA,
		Name:       branch,
		Body:       body,
		Prerelease: true,
	})
}

// CreateRelease publishes version from the head of trunk once the release
// branch is merged
func (uc *UseCase) CreateRelease(ctx context.Context, version model.Version, branch, body string) (*model.ReleaseResult, error) {
	if err := uc.CheckReleaseStatus(ctx, version); err != nil {
		return nil, err
	}

	trunk, err := uc.mainline.GetBranch(ctx, uc.flow.Trunk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get trunk branch", goerr.V("branch", uc.flow.Trunk))
	}

	return uc.createRelease(ctx, &model.NewRelease{
		TagName: version.String(),
		Target:  trunk.SHA,
		Name:    branch,
		Body:    body,
	})
}

func (uc *UseCase) createRelease(ctx context.Context, req *model.NewRelease) (*model.ReleaseResult, error) {
	existing, err := uc.findRelease(ctx, req.TagName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		ctxlog.From(ctx).Info("Release already created", "tag", req.TagName)
		return &model.ReleaseResult{Outcome: model.OutcomeAlreadyExists, Release: existing}, nil
	}

	created, err := uc.mainline.CreateRelease(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.ReleaseResult{Outcome: model.OutcomeCreated, Release: created}, nil
}

// QA publishes a pre-release of version carrying the changelog of its
// release branch
func (uc *UseCase) QA(ctx context.Context, version model.Version, ticketKey string) (*model.QAResult, error) {
	branch := uc.flow.ReleaseBranch(version)

	if ticketKey == "" {
		ticketKey = uc.releaseTicketKey(ctx, version)
	}

	var changelog *model.Changelog
	err := uc.git.OnBranch(ctx, branch, uc.flow.MainlineRemote, func(ctx context.Context) error {
		var err error
		changelog, err = uc.Changelog(ctx, uc.flow.Trunk, branch)
		return err
	})
	if err != nil {
		return nil, err
	}

	body := "**Changes:**\n" + changelog.String()
	if ticketKey != "" {
		body += "\n\nRelease ticket id: " + ticketKey
		uc.linkTickets(ctx, ticketKey, changelog.Issues)
	}

	result, err := uc.CreatePreRelease(ctx, version.String(), branch, body)
	if err != nil {
		return nil, err
	}
	return &model.QAResult{Changelog: changelog, Release: result}, nil
}

// releaseTicketKey reads the release ticket recorded in an earlier
// pre-release of the same release branch. Lookup failures yield an empty
// key.
func (uc *UseCase) releaseTicketKey(ctx context.Context, version model.Version) string {
	branch := uc.flow.ReleaseBranch(version)

	releases, err := uc.mainline.ListReleases(ctx)
	if err != nil {
		ctxlog.From(ctx).Warn("Failed to look up release ticket", "branch", branch, "error", err)
		return ""
	}
	for _, r := range releases {
		if r.Name != branch {
			continue
		}
		if m := releaseTicketPattern.FindStringSubmatch(r.Body); m != nil {
			return m[1]
		}
	}
	return ""
}

// Release publishes version with the changes merged since the latest
// release
func (uc *UseCase) Release(ctx context.Context, version model.Version) (*model.ReleaseResult, error) {
	if err := uc.git.Fetch(ctx, uc.flow.MainlineRemote); err != nil {
		return nil, err
	}

	latest, err := uc.mainline.LatestRelease(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get latest release")
	}

	var changelog *model.Changelog
	err = uc.git.OnBranch(ctx, uc.flow.Trunk, uc.flow.MainlineRemote, func(ctx context.Context) error {
		var err error
		changelog, err = uc.Changelog(ctx, latest.TagName, uc.flow.Trunk)
		return err
	})
	if err != nil {
		return nil, err
	}

	return uc.CreateRelease(ctx, version, uc.flow.ReleaseBranch(version), "**Changes:**\n"+changelog.String())
}

// Versions returns the latest release and pre-release tags
func (uc *UseCase) Versions(ctx context.Context) (*model.Versions, error) {
	result := &model.Versions{}

	latest, err := uc.mainline.LatestRelease(ctx)
	switch {
	case err == nil:
		result.Release = latest.TagName
	case !goerr.HasTag(err, types.ErrTagNotFound):
		return nil, err
	}

	pre, err := uc.latestPrerelease(ctx)
	if err != nil {
		return nil, err
	}
	if pre != nil {
		result.PreRelease = pre.TagName
	}
	return result, nil
}

// latestPrerelease returns the first pre-release in the platform listing
// order, newest first, or nil when there is none
func (uc *UseCase) latestPrerelease(ctx context.Context) (*model.Release, error) {
	releases, err := uc.mainline.ListReleases(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range releases {
		if r.Prerelease {
			return r, nil
		}
	}
	return nil, nil
}
