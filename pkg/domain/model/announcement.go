package model

import (
	"fmt"
	"strings"
)

// ReleaseAnnouncement is the chat side effect of starting a release.
type ReleaseAnnouncement struct {
	ReleaseName string
	Topic       string
	Message     string
	// GroupID is the user group invited to the channel. Empty invites no one.
	GroupID string
}

// ChannelName derives a chat channel name from the release name, e.g.
// "release-1.2.3.01" becomes "release-1-2-3-01".
func (a *ReleaseAnnouncement) ChannelName() string {
	name := strings.ToLower(a.ReleaseName)
	name = strings.NewReplacer(".", "-", " ", "-", "/", "-").Replace(name)
	if len(name) > 80 {
		name = name[:80]
	}
	return name
}

// NewReleaseAnnouncement builds the announcement of a started release. The
// message is the topic followed by the changelog and the audit in a code
// block.
func NewReleaseAnnouncement(w *Workflow, releaseName, ticketKey, changelog, audit string) *ReleaseAnnouncement {
	topic := ""
	switch {
	case ticketKey == "":
	case strings.Contains(w.SlackTopicFormat, "%s"):
		topic = fmt.Sprintf(w.SlackTopicFormat, ticketKey)
	default:
		topic = strings.TrimSpace(w.SlackTopicFormat + " " + ticketKey)
	}
	header := topic
	if header == "" {
		header = fmt.Sprintf("Release %s started", releaseName)
	}
	msg := header + "\n```\n" + changelog + "\n\n" + audit + "\n```"
	return &ReleaseAnnouncement{
		ReleaseName: releaseName,
		Topic:       topic,
		Message:     msg,
		GroupID:     w.SlackGroupID,
	}
}
