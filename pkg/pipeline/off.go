package pipeline

import (
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// closureKey identifies one author on one calendar day in the
// reference timezone
type closureKey struct {
	user types.UserID
	day  string
}

// filterOff enforces the per-day, per-author privacy directive in a
// single left-to-right pass over time-ordered messages. The closed-key
// accumulator is local to the call; the filter holds no state across
// invocations.
//
// Three cases per message:
//   - the marker is the entire text (decoration aside): the message
//     and all later same-author same-day messages are dropped
//   - the marker occurs mid-text: the text before the marker is kept,
//     the attachments stay, later same-author same-day messages are
//     dropped
//   - no marker: the message passes through unchanged
func filterOff(msgs []*chat.Message, mk *Markers, loc *time.Location) []*chat.Message {
	closed := make(map[closureKey]bool)
	out := make([]*chat.Message, 0, len(msgs))

	for _, msg := range msgs {
		key := closureKey{
			user: msg.UserID(),
			day:  msg.Day(loc).Format(time.DateOnly),
		}
		if closed[key] {
			continue
		}

		prefix, found := mk.SplitOff(msg.Text())
		if !found {
			out = append(out, msg)
			continue
		}

		closed[key] = true
		if decorationOnly(prefix) {
			continue
		}
		out = append(out, msg.WithText(prefix))
	}

	return out
}
