package pipeline

import (
	"strings"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// Classification is the result of before/after bucketing for one group
type Classification struct {
	// Buckets partition all attachments of the group's messages into
	// the three disjoint sections
	Buckets map[types.Section][]chat.Attachment

	// Text is the newline-joined text of all non-marker messages
	Text string

	// HasBeforeAfter is true iff at least one section marker was recognized
	HasBeforeAfter bool
}

// classify walks the group's messages with a small state machine:
// everything is regular until a "before" marker opens the before
// section, and an "after" marker (from regular or before) opens the
// after section. Every attachment of a message lands in the section
// active after that message's marker, if any, has been applied.
// Attachments with unrecognized media types are bucketed like any
// other, never dropped.
func classify(g *Group, mk *Markers) *Classification {
	result := &Classification{
		Buckets: map[types.Section][]chat.Attachment{
			types.SectionRegular: {},
			types.SectionBefore:  {},
			types.SectionAfter:   {},
		},
	}

	state := types.SectionRegular
	var parts []string

	for _, msg := range g.Messages {
		kind := mk.Section(msg.Text())

		switch {
		case kind == types.MarkerBefore && state == types.SectionRegular:
			state = types.SectionBefore
			result.HasBeforeAfter = true
		case kind == types.MarkerAfter && state != types.SectionAfter:
			state = types.SectionAfter
			result.HasBeforeAfter = true
		}

		result.Buckets[state] = append(result.Buckets[state], msg.Attachments()...)

		if kind == types.MarkerNone {
			if t := msg.Text(); strings.TrimSpace(t) != "" {
				parts = append(parts, t)
			}
		}
	}

	result.Text = strings.Join(parts, "\n")
	return result
}
