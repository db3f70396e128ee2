package pipeline

import (
	"strings"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// Group is a contiguous run of messages sharing one author and one
// calendar day in the reference timezone.
type Group struct {
	AuthorID   types.UserID
	AuthorName string
	Day        time.Time
	Messages   []*chat.Message
}

// Text returns the concatenated text of all messages in the group,
// newline-joined, empty texts skipped. Marker messages are included
// here; the classifier produces the cleaned regular text.
func (g *Group) Text() string {
	parts := make([]string, 0, len(g.Messages))
	for _, m := range g.Messages {
		if t := strings.TrimSpace(m.Text()); t != "" {
			parts = append(parts, m.Text())
		}
	}
	return strings.Join(parts, "\n")
}

// StartedAt returns the timestamp of the earliest message
func (g *Group) StartedAt() time.Time {
	return g.Messages[0].CreatedAt()
}

// EndedAt returns the timestamp of the latest message
func (g *Group) EndedAt() time.Time {
	return g.Messages[len(g.Messages)-1].CreatedAt()
}

// groupMessages partitions time-ordered messages into contiguous runs.
// A new group starts whenever the author or the calendar day changes
// relative to the previous message. Same author reappearing later the
// same day after someone else starts a fresh group.
func groupMessages(msgs []*chat.Message, loc *time.Location) []*Group {
	var groups []*Group
	var cur *Group

	for _, msg := range msgs {
		day := msg.Day(loc)
		if cur == nil || msg.UserID() != cur.AuthorID || !day.Equal(cur.Day) {
			cur = &Group{
				AuthorID:   msg.UserID(),
				AuthorName: msg.UserName(),
				Day:        day,
			}
			groups = append(groups, cur)
		}
		cur.Messages = append(cur.Messages, msg)
	}

	return groups
}
