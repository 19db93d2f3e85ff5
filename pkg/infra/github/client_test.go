package github_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/m-mizutani/relflow/pkg/domain/types"
	githubinfra "github.com/m-mizutani/relflow/pkg/infra/github"
)

// fakeGitHub serves the subset of the GitHub REST API used by the client
type fakeGitHub struct {
	mu       sync.Mutex
	branches map[string]string
	releases map[string]map[string]any
	compare  map[string]string
	mutating []string
}

func newFakeGitHub() *fakeGitHub {
	return &fakeGitHub{
		branches: map[string]string{},
		releases: map[string]map[string]any{},
		compare:  map[string]string{},
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
}

func refBody(name, sha string) map[string]any {
	return map[string]any{
		"ref":    "refs/heads/" + name,
		"object": map[string]string{"sha": sha, "type": "commit"},
	}
}

func (f *fakeGitHub) start(t *testing.T) interfaces.GitHubClient {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /repos/owner/repo/git/ref/heads/{name...}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		sha, ok := f.branches[r.PathValue("name")]
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, refBody(r.PathValue("name"), sha))
	})

	mux.HandleFunc("POST /repos/owner/repo/git/refs", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Ref string `json:"ref"`
			SHA string `json:"sha"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.mutating = append(f.mutating, "create "+req.Ref+" "+req.SHA)
		name := req.Ref[len("refs/heads/"):]
		f.branches[name] = req.SHA
		writeJSON(w, http.StatusCreated, refBody(name, req.SHA))
	})

	mux.HandleFunc("PATCH /repos/owner/repo/git/refs/heads/{name...}", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SHA   string `json:"sha"`
			Force bool   `json:"force"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		name := r.PathValue("name")
		f.mutating = append(f.mutating, "update "+name+" "+req.SHA)
		f.branches[name] = req.SHA
		writeJSON(w, http.StatusOK, refBody(name, req.SHA))
	})

	mux.HandleFunc("GET /repos/owner/repo/compare/{refs...}", func(w http.ResponseWriter, r *http.Request) {
		status, ok := f.compare[r.PathValue("refs")]
		if !ok {
			notFound(w)
			return
		}
		if status == "error" {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status})
	})

	mux.HandleFunc("GET /repos/owner/repo/releases/tags/{tag}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		rel, ok := f.releases[r.PathValue("tag")]
		if !ok {
			notFound(w)
			return
		}
		writeJSON(w, http.StatusOK, rel)
	})

	mux.HandleFunc("POST /repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		_ = json.NewDecoder(r.Body).Decode(&req)
		req["html_url"] = "https://github.com/owner/repo/releases/tag/" + req["tag_name"].(string)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.mutating = append(f.mutating, "release "+req["tag_name"].(string))
		f.releases[req["tag_name"].(string)] = req
		writeJSON(w, http.StatusCreated, req)
	})

	mux.HandleFunc("POST /repos/owner/repo/pulls", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "Validation Failed",
			"errors":  []map[string]string{{"message": "A pull request already exists"}},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := githubinfra.NewClient("user", "token", "owner", "repo", githubinfra.WithBaseURL(srv.URL))
	gt.NoError(t, err)
	return client
}

func TestClient_CreateBranch_AlreadyExists(t *testing.T) {
	fake := newFakeGitHub()
	fake.branches["develop"] = "aaa"
	fake.branches["release-1.2.3.01"] = "bbb"
	client := fake.start(t)

	result, err := client.CreateBranch(context.Background(), "release-1.2.3.01", "develop", false)
	gt.NoError(t, err)
	gt.Equal(t, result.Outcome, model.OutcomeAlreadyExists)
	gt.Equal(t, result.Branch.SHA, "bbb")
	gt.Equal(t, len(fake.mutating), 0)
}

func TestClient_CreateBranch_FromBase(t *testing.T) {
	fake := newFakeGitHub()
	fake.branches["develop"] = "aaa"
	client := fake.start(t)

	result, err := client.CreateBranch(context.Background(), "release-1.2.3.01", "develop", false)
	gt.NoError(t, err)
	gt.True(t, result.Created())
	gt.Equal(t, result.Branch.SHA, "aaa")
	gt.Equal(t, fake.mutating, []string{"create refs/heads/release-1.2.3.01 aaa"})
}

func TestClient_CreateBranch_FromSHA(t *testing.T) {
	fake := newFakeGitHub()
	client := fake.start(t)

	result, err := client.CreateBranch(context.Background(), "release-1.2.3.01", "ccc", true)
	gt.NoError(t, err)
	gt.True(t, result.Created())
	gt.Equal(t, fake.mutating, []string{"create refs/heads/release-1.2.3.01 ccc"})
}

func TestClient_CreateBranch_MissingBase(t *testing.T) {
	fake := newFakeGitHub()
	client := fake.start(t)

	_, err := client.CreateBranch(context.Background(), "feature-EB-1", "develop", false)
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("failed to resolve base branch")
	gt.Equal(t, len(fake.mutating), 0)
}

func TestClient_UpdateBranch(t *testing.T) {
	fake := newFakeGitHub()
	fake.branches["release-1.2.3.01"] = "old"
	client := fake.start(t)

	branch, err := client.UpdateBranch(context.Background(), "release-1.2.3.01", "new")
	gt.NoError(t, err)
	gt.Equal(t, branch.SHA, "new")
	gt.Equal(t, fake.mutating, []string{"update release-1.2.3.01 new"})
}

func TestClient_GetBranch_NotFound(t *testing.T) {
	client := newFakeGitHub().start(t)

	_, err := client.GetBranch(context.Background(), "nope")
	gt.Error(t, err)
	gt.True(t, goerr.HasTag(err, types.ErrTagNotFound))
}

func TestClient_Compare(t *testing.T) {
	fake := newFakeGitHub()
	fake.compare["master...release-1.2.3.01"] = "behind"
	fake.compare["master...broken"] = "error"
	client := fake.start(t)
	ctx := context.Background()

	status, err := client.Compare(ctx, "master", "release-1.2.3.01")
	gt.NoError(t, err)
	gt.Equal(t, status, model.CompareBehind)

	_, err = client.Compare(ctx, "master", "missing")
	gt.True(t, goerr.HasTag(err, types.ErrTagNotFound))

	_, err = client.Compare(ctx, "master", "broken")
	gt.Error(t, err)
	gt.Equal(t, goerr.HasTag(err, types.ErrTagNotFound), false)
}

func TestClient_Releases(t *testing.T) {
	fake := newFakeGitHub()
	client := fake.start(t)
	ctx := context.Background()

	_, err := client.GetRelease(ctx, "1.2.3.01")
	gt.True(t, goerr.HasTag(err, types.ErrTagNotFound))

	created, err := client.CreateRelease(ctx, &model.NewRelease{
		TagName:    "1.2.3.01",
		Target:     "aaa",
		Name:       "release-1.2.3.01",
		Body:       "**Changes:**",
		Prerelease: true,
	})
	gt.NoError(t, err)
	gt.Equal(t, created.TagName, "1.2.3.01")
	gt.True(t, created.Prerelease)
	gt.String(t, created.URL).Contains("/releases/tag/1.2.3.01")

	got, err := client.GetRelease(ctx, "1.2.3.01")
	gt.NoError(t, err)
	gt.Equal(t, got.Name, "release-1.2.3.01")
	gt.Equal(t, got.Target, "aaa")
}

func TestClient_CreatePullRequest_Error(t *testing.T) {
	client := newFakeGitHub().start(t)

	_, err := client.CreatePullRequest(context.Background(), "develop", "me:feature-EB-1", "Feature EB-1: x", "")
	gt.Error(t, err)
	gt.String(t, err.Error()).Contains("Validation Failed")
}
