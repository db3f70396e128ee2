package model

import (
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// Intervention is the grouped, classified record of one author's
// activity on one calendar day. It is constructed once by the pipeline
// and handed read-only to the report collaborators.
type Intervention struct {
	ID         types.InterventionID
	Client     types.ClientName
	AuthorID   types.UserID
	AuthorName string

	// Day is the calendar day in the reference timezone (midnight)
	Day time.Time

	// Date is the resolved intervention date and Provenance records
	// whether it came from a DD/MM token or the message timestamps
	Date       time.Time
	Provenance types.DateProvenance

	// Messages are the constituent messages in chronological order
	Messages []*chat.Message

	// Text is the concatenated, OFF-redacted text of all non-marker messages
	Text string

	// EnhancedText is the LLM-rewritten description, empty until enhancement
	EnhancedText string
	Title        string

	// Buckets partition all attachments of the constituent messages
	// into regular/before/after sections
	Buckets map[types.Section][]chat.Attachment

	// Participants are the field-staff names involved (author +
	// mentions, office roster excluded)
	Participants []TeamMember

	HasBeforeAfter bool

	StartedAt time.Time
	EndedAt   time.Time

	CreatedAt time.Time
}

// Attachments returns all attachments across the three buckets, in
// section order (regular, before, after).
func (iv *Intervention) Attachments() []chat.Attachment {
	var out []chat.Attachment
	for _, sec := range types.AllSections() {
		out = append(out, iv.Buckets[sec]...)
	}
	return out
}

// DateLabel returns the resolved date formatted as DD/MM, the form
// embedded verbatim into generated narrative openings.
func (iv *Intervention) DateLabel() string {
	return iv.Date.Format("02/01")
}
