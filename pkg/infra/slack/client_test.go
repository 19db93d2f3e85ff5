package slack_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/relflow/pkg/domain/model"
	slackinfra "github.com/m-mizutani/relflow/pkg/infra/slack"
)

type fakeSlack struct {
	mu        sync.Mutex
	nameTaken bool
	calls     []string
	invited   []string
	topic     string
	message   string
}

func (f *fakeSlack) handler(t *testing.T) http.Handler {
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
	channel := map[string]any{"id": "C100", "name": "release-1-2-3-01"}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.mu.Lock()
		defer f.mu.Unlock()
		f.calls = append(f.calls, r.URL.Path)

		switch r.URL.Path {
		case "/conversations.create":
			if f.nameTaken {
				reply(w, map[string]any{"ok": false, "error": "name_taken"})
				return
			}
			reply(w, map[string]any{"ok": true, "channel": channel})
		case "/conversations.list":
			reply(w, map[string]any{
				"ok":       true,
				"channels": []any{map[string]any{"id": "C001", "name": "general"}, channel},
			})
		case "/conversations.join":
			reply(w, map[string]any{"ok": true, "channel": channel})
		case "/conversations.setTopic":
			f.topic = r.Form.Get("topic")
			reply(w, map[string]any{"ok": true, "channel": channel})
		case "/usergroups.users.list":
			reply(w, map[string]any{"ok": true, "users": []string{"U1", "U2"}})
		case "/conversations.invite":
			user := r.Form.Get("users")
			if user == "U2" {
				reply(w, map[string]any{"ok": false, "error": "user_not_found"})
				return
			}
			f.invited = append(f.invited, user)
			reply(w, map[string]any{"ok": true, "channel": channel})
		case "/chat.postMessage":
			f.message = r.Form.Get("text")
			reply(w, map[string]any{"ok": true, "channel": "C100", "ts": "1.0"})
		default:
			t.Errorf("unexpected Slack API call: %s", r.URL.Path)
			reply(w, map[string]any{"ok": false, "error": "unknown_method"})
		}
	})
}

func announcement() *model.ReleaseAnnouncement {
	w := model.DefaultWorkflow()
	w.SlackGroupID = "S1"
	return model.NewReleaseAnnouncement(&w, "release-1.2.3.01", "TEEM-9", "* EB-1 : Fix", "No staticfile changes")
}

func TestClient_AnnounceRelease(t *testing.T) {
	fake := &fakeSlack{}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := slackinfra.NewClient("xoxb-test", slackinfra.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, client.AnnounceRelease(context.Background(), announcement()))

	gt.Equal(t, fake.topic, "Release Ticket: TEEM-9")
	gt.Equal(t, fake.invited, []string{"U1"})
	gt.String(t, fake.message).Contains("* EB-1 : Fix")
	gt.Equal(t, fake.calls[0], "/conversations.create")
}

func TestClient_AnnounceRelease_ExistingChannel(t *testing.T) {
	fake := &fakeSlack{nameTaken: true}
	srv := httptest.NewServer(fake.handler(t))
	defer srv.Close()

	client := slackinfra.NewClient("xoxb-test", slackinfra.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, client.AnnounceRelease(context.Background(), announcement()))

	gt.Equal(t, fake.calls[:3], []string{
		"/conversations.create",
		"/conversations.list",
		"/conversations.join",
	})
	gt.String(t, fake.message).Contains("release-1.2.3.01")
}
