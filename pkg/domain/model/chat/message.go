package chat

import (
	"strconv"
	"strings"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/types"
	libslack "github.com/slack-go/slack"
)

// Message represents one chat message as received from the chat
// backend. Immutable once constructed; the pipeline derives new values
// instead of mutating messages.
type Message struct {
	id          string
	channelID   types.ChannelID
	userID      types.UserID
	userName    string
	text        string
	createdAt   time.Time
	attachments []Attachment
}

// NewMessageFromSlack creates a Message from a slack-go conversation
// history item. userName defaults to the user ID when the display name
// has not been resolved yet.
func NewMessageFromSlack(channelID types.ChannelID, msg libslack.Message) *Message {
	attachments := make([]Attachment, 0, len(msg.Files))
	for _, f := range msg.Files {
		attachments = append(attachments, NewAttachmentFromSlack(f))
	}

	userName := msg.Username
	if userName == "" {
		userName = msg.User
	}

	return &Message{
		id:          msg.Timestamp,
		channelID:   channelID,
		userID:      types.UserID(msg.User),
		userName:    userName,
		text:        msg.Text,
		createdAt:   parseSlackTimestamp(msg.Timestamp),
		attachments: attachments,
	}
}

// NewMessageFromData creates a Message from raw data (for repository
// reconstruction and tests)
func NewMessageFromData(id string, channelID types.ChannelID, userID types.UserID, userName, text string, createdAt time.Time, attachments []Attachment) *Message {
	return &Message{
		id:          id,
		channelID:   channelID,
		userID:      userID,
		userName:    userName,
		text:        text,
		createdAt:   createdAt,
		attachments: attachments,
	}
}

// Getters to maintain immutability
func (m *Message) ID() string                { return m.id }
func (m *Message) ChannelID() types.ChannelID { return m.channelID }
func (m *Message) UserID() types.UserID      { return m.userID }
func (m *Message) UserName() string          { return m.userName }
func (m *Message) Text() string              { return m.text }
func (m *Message) CreatedAt() time.Time      { return m.createdAt }

// Attachments returns a copy of the attachment references
func (m *Message) Attachments() []Attachment {
	out := make([]Attachment, len(m.attachments))
	copy(out, m.attachments)
	return out
}

// WithText returns a copy of the message with replaced text. Used by
// the privacy filter to truncate redacted text while keeping the
// attachments of the original message.
func (m *Message) WithText(text string) *Message {
	clone := *m
	clone.text = text
	return &clone
}

// WithUserName returns a copy of the message with a resolved display name
func (m *Message) WithUserName(name string) *Message {
	clone := *m
	clone.userName = name
	return &clone
}

// Day returns the calendar day of the message in the given reference
// timezone, truncated to midnight in that timezone.
func (m *Message) Day(loc *time.Location) time.Time {
	local := m.createdAt.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// parseSlackTimestamp converts a Slack "seconds.micros" timestamp
// string into a time.Time. Returns the zero time for malformed input.
func parseSlackTimestamp(ts string) time.Time {
	parts := strings.SplitN(ts, ".", 2)
	sec, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return time.Time{}
	}
	var nsec int64
	if len(parts) == 2 {
		frac := parts[1]
		if len(frac) > 9 {
			frac = frac[:9]
		}
		for len(frac) < 9 {
			frac += "0"
		}
		nsec, _ = strconv.ParseInt(frac, 10, 64)
	}
	return time.Unix(sec, nsec).UTC()
}
