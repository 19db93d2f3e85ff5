package slack

import (
	"context"
	"errors"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/relflow/pkg/domain/interfaces"
	"github.com/m-mizutani/relflow/pkg/domain/model"
	"github.com/slack-go/slack"
)

type client struct {
	slackClient *slack.Client
}

// Option configures the Slack client
type Option func(*options)

type options struct {
	apiURL string
}

// WithAPIURL overrides the Slack Web API endpoint. It must end with "/".
func WithAPIURL(u string) Option {
	return func(o *options) {
		o.apiURL = u
	}
}

// NewClient creates a ChatClient with a bot or user token
func NewClient(token string, opts ...Option) interfaces.ChatClient {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var slackOpts []slack.Option
	if o.apiURL != "" {
		slackOpts = append(slackOpts, slack.OptionAPIURL(o.apiURL))
	}

	return &client{
		slackClient: slack.New(token, slackOpts...),
	}
}

func isSlackError(err error, code string) bool {
	var resp slack.SlackErrorResponse
	return errors.As(err, &resp) && resp.Err == code
}

// AnnounceRelease opens the release channel and posts the announcement.
// Failed invitations are logged and skipped.
func (c *client) AnnounceRelease(ctx context.Context, a *model.ReleaseAnnouncement) error {
	logger := ctxlog.From(ctx)
	name := a.ChannelName()

	channelID, err := c.openChannel(ctx, name)
	if err != nil {
		return err
	}

	if a.Topic != "" {
		if _, err := c.slackClient.SetTopicOfConversationContext(ctx, channelID, a.Topic); err != nil {
			return goerr.Wrap(err, "failed to set channel topic", goerr.V("channel", name))
		}
	}

	if a.GroupID != "" {
		members, err := c.slackClient.GetUserGroupMembersContext(ctx, a.GroupID)
		if err != nil {
			return goerr.Wrap(err, "failed to get user group members", goerr.V("group", a.GroupID))
		}
		for _, user := range members {
			if _, err := c.slackClient.InviteUsersToConversationContext(ctx, channelID, user); err != nil {
				if isSlackError(err, "already_in_channel") || isSlackError(err, "cant_invite_self") {
					continue
				}
				logger.Warn("Failed to invite user", "channel", name, "user", user, "error", err)
			}
		}
	}

	if _, _, err := c.slackClient.PostMessageContext(ctx, channelID, slack.MsgOptionText(a.Message, false)); err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("channel", name))
	}

	logger.Info("Announced release", "channel", name)
	return nil
}

func (c *client) openChannel(ctx context.Context, name string) (string, error) {
	ch, err := c.slackClient.CreateConversationContext(ctx, slack.CreateConversationParams{ChannelName: name})
	if err == nil {
		return ch.ID, nil
	}
	if !isSlackError(err, "name_taken") {
		return "", goerr.Wrap(err, "failed to create channel", goerr.V("channel", name))
	}

	id, err := c.findChannel(ctx, name)
	if err != nil {
		return "", err
	}
	if _, _, _, err := c.slackClient.JoinConversationContext(ctx, id); err != nil {
		return "", goerr.Wrap(err, "failed to join channel", goerr.V("channel", name))
	}
	return id, nil
}

func (c *client) findChannel(ctx context.Context, name string) (string, error) {
	params := &slack.GetConversationsParameters{
		ExcludeArchived: true,
		Limit:           200,
		Types:           []string{"public_channel"},
	}
	for {
		channels, cursor, err := c.slackClient.GetConversationsContext(ctx, params)
		if err != nil {
			return "", goerr.Wrap(err, "failed to list channels")
		}
		for _, ch := range channels {
			if ch.Name == name {
				return ch.ID, nil
			}
		}
		if cursor == "" {
			return "", goerr.New("channel not found", goerr.V("channel", name))
		}
		params.Cursor = cursor
	}
}
