package pipeline

import (
	"sort"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/model/chat"
)

// Config makes the pipeline a pure function of (messages,
// configuration): the reference timezone for calendar-day computation,
// the office roster, and the marker set. Nothing here is read from
// ambient state.
type Config struct {
	// Location is the fixed reference timezone. Required; grouping and
	// date fallback must never use the system zone.
	Location *time.Location

	// OfficeRoster lists non-field staff excluded from interventions
	// and participant lists (case-insensitive exact name match)
	OfficeRoster []string

	// Markers overrides the default marker set, mostly for tests
	Markers *Markers
}

func (c *Config) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

func (c *Config) markers() *Markers {
	if c.Markers != nil {
		return c.Markers
	}
	return DefaultMarkers()
}

// Run executes the full classification pipeline on a bounded batch of
// messages: privacy filtering, office exclusion, temporal grouping,
// then per-group date resolution, before/after classification and
// participant resolution. An empty batch yields an empty result, not
// an error; no stage fails on malformed input.
func Run(msgs []*chat.Message, cfg *Config) []*model.Intervention {
	if len(msgs) == 0 {
		return nil
	}

	loc := cfg.location()
	mk := cfg.markers()

	ordered := make([]*chat.Message, len(msgs))
	copy(ordered, msgs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt().Before(ordered[j].CreatedAt())
	})

	filtered := filterOff(ordered, mk, loc)
	filtered = excludeOffice(filtered, cfg.OfficeRoster)

	groups := groupMessages(filtered, loc)

	interventions := make([]*model.Intervention, 0, len(groups))
	for _, g := range groups {
		interventions = append(interventions, buildIntervention(g, mk, loc, cfg.OfficeRoster))
	}

	return interventions
}

// Groups runs the filtering and grouping stages only, for callers that
// need the raw groups (e.g. report-level team resolution).
func Groups(msgs []*chat.Message, cfg *Config) []*Group {
	if len(msgs) == 0 {
		return nil
	}

	loc := cfg.location()
	ordered := make([]*chat.Message, len(msgs))
	copy(ordered, msgs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt().Before(ordered[j].CreatedAt())
	})

	filtered := filterOff(ordered, cfg.markers(), loc)
	filtered = excludeOffice(filtered, cfg.OfficeRoster)
	return groupMessages(filtered, loc)
}

// excludeOffice drops messages authored by office staff before
// grouping, so their text and attachments never enter an intervention.
// This is the one place the office/content policy is applied; the team
// resolver separately excludes roster names from participant lists.
func excludeOffice(msgs []*chat.Message, roster []string) []*chat.Message {
	if len(roster) == 0 {
		return msgs
	}
	out := make([]*chat.Message, 0, len(msgs))
	for _, msg := range msgs {
		if onRoster(FormatName(msg.UserName()), roster) {
			continue
		}
		out = append(out, msg)
	}
	return out
}

func buildIntervention(g *Group, mk *Markers, loc *time.Location, roster []string) *model.Intervention {
	cls := classify(g, mk)
	date, provenance := resolveDate(g, loc)

	return &model.Intervention{
		AuthorID:       g.AuthorID,
		AuthorName:     FormatName(g.AuthorName),
		Day:            g.Day,
		Date:           date,
		Provenance:     provenance,
		Messages:       g.Messages,
		Text:           cls.Text,
		Buckets:        cls.Buckets,
		Participants:   groupParticipants(g, roster),
		HasBeforeAfter: cls.HasBeforeAfter,
		StartedAt:      g.StartedAt(),
		EndedAt:        g.EndedAt(),
	}
}
