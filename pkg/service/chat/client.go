package chat

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	modelchat "github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

const (
	// DefaultUserCacheTTL is the default TTL for the user display name cache
	DefaultUserCacheTTL = 15 * time.Minute
	// historyPageLimit is the page size for conversations.history calls
	historyPageLimit = 200
)

// slackAPI is the subset of the slack-go client the service depends on
type slackAPI interface {
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	GetFileContext(ctx context.Context, downloadURL string, writer io.Writer) error
}

// cacheEntry holds a cached user display name with expiration
type cacheEntry struct {
	name      string
	expiresAt time.Time
}

// Client fetches channel history from Slack and resolves author
// display names.
type Client struct {
	api      slackAPI
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[types.UserID]cacheEntry
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithCacheTTL sets the TTL for the user display name cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		c.cacheTTL = ttl
	}
}

// withAPI replaces the underlying Slack API client, for tests
func withAPI(api slackAPI) Option {
	return func(c *Client) {
		c.api = api
	}
}

// New creates a new chat service with the provided bot token
func New(token string, opts ...Option) (*Client, error) {
	c := &Client{
		cacheTTL: DefaultUserCacheTTL,
		cache:    make(map[types.UserID]cacheEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.api == nil {
		if token == "" {
			return nil, goerr.New("Slack bot token is required")
		}
		c.api = slack.New(token)
	}

	return c, nil
}

// FetchMessages returns all messages posted in the channel within
// [from, to], oldest first, with author display names resolved.
func (c *Client) FetchMessages(ctx context.Context, channelID types.ChannelID, from, to time.Time) ([]*modelchat.Message, error) {
	if err := channelID.Validate(); err != nil {
		return nil, err
	}

	var msgs []*modelchat.Message
	cursor := ""

	for {
		params := &slack.GetConversationHistoryParameters{
			ChannelID: channelID.String(),
			Oldest:    slackTimestamp(from),
			Latest:    slackTimestamp(to),
			Inclusive: true,
			Limit:     historyPageLimit,
			Cursor:    cursor,
		}

		resp, err := c.api.GetConversationHistoryContext(ctx, params)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to get conversation history",
				goerr.V("channel_id", channelID))
		}

		for _, raw := range resp.Messages {
			if skipMessage(raw.Msg) {
				continue
			}
			msgs = append(msgs, modelchat.NewMessageFromSlack(channelID, raw))
		}

		if !resp.HasMore || resp.ResponseMetaData.NextCursor == "" {
			break
		}
		cursor = resp.ResponseMetaData.NextCursor
	}

	for i, msg := range msgs {
		name, err := c.userName(ctx, msg.UserID())
		if err != nil {
			// Keep the raw user ID as the display name; the report
			// still renders without the users:read scope
			logging.From(ctx).Warn("failed to resolve user name",
				"user_id", msg.UserID(), "error", err)
			continue
		}
		msgs[i] = msg.WithUserName(name)
	}

	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt().Before(msgs[j].CreatedAt())
	})

	return msgs, nil
}

// Download streams the attachment bytes from Slack into w. The file
// endpoint requires the bot token, so this lives on the chat client
// rather than the image store.
func (c *Client) Download(ctx context.Context, att modelchat.Attachment, w io.Writer) error {
	url := att.DownloadURL()
	if url == "" {
		return goerr.New("attachment has no download URL", goerr.V("attachment_id", att.ID()))
	}
	if err := c.api.GetFileContext(ctx, url, w); err != nil {
		return goerr.Wrap(err, "failed to download attachment",
			goerr.V("attachment_id", att.ID()), goerr.V("name", att.Name()))
	}
	return nil
}

// userName resolves a user ID to a display name with caching. Prefers
// the profile real name over the handle.
func (c *Client) userName(ctx context.Context, id types.UserID) (string, error) {
	now := time.Now()

	c.mu.RLock()
	entry, ok := c.cache[id]
	c.mu.RUnlock()
	if ok && entry.expiresAt.After(now) {
		return entry.name, nil
	}

	user, err := c.api.GetUserInfoContext(ctx, id.String())
	if err != nil {
		return "", goerr.Wrap(err, "failed to get user info", goerr.V("user_id", id))
	}

	name := user.RealName
	if name == "" {
		name = user.Name
	}

	c.mu.Lock()
	c.cache[id] = cacheEntry{name: name, expiresAt: now.Add(c.cacheTTL)}
	c.mu.Unlock()

	return name, nil
}

// skipMessage reports whether the history item is a system event
// rather than a user message. File shares keep the regular subtype.
func skipMessage(msg slack.Msg) bool {
	if msg.User == "" {
		return true
	}
	switch msg.SubType {
	case "", "file_share", "thread_broadcast":
		return false
	default:
		return true
	}
}

// slackTimestamp renders a time as the "seconds.micros" form the Slack
// history API expects
func slackTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}
