package pipeline

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atelier-vert/rapport/pkg/domain/model"
)

// FormatName normalizes a personal name to consistent capitalization:
// each space-separated token starts uppercase with the rest lowercase,
// and hyphenated segments are each capitalized independently
// ("jean-marc MARTIN" becomes "Jean-Marc Martin").
func FormatName(name string) string {
	words := strings.Fields(name)
	for i, w := range words {
		segs := strings.Split(w, "-")
		for j, s := range segs {
			segs[j] = capitalize(s)
		}
		words[i] = strings.Join(segs, "-")
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// ResolveTeam builds the deduplicated field-staff roster across the
// given groups: every distinct message author plus every distinct
// mentioned name, in first-seen order. Names matching the office
// roster are excluded; their messages are not touched here, that
// exclusion happens before grouping.
func ResolveTeam(groups []*Group, officeRoster []string) []model.TeamMember {
	seen := make(map[string]bool)
	var team []model.TeamMember

	for _, g := range groups {
		for _, m := range groupParticipants(g, officeRoster) {
			if seen[m.Key] {
				continue
			}
			seen[m.Key] = true
			team = append(team, m)
		}
	}

	return team
}

// groupParticipants returns the participants of a single group: its
// author followed by the people mentioned in its messages, office
// roster excluded, deduplicated within the group.
func groupParticipants(g *Group, officeRoster []string) []model.TeamMember {
	seen := make(map[string]bool)
	var members []model.TeamMember

	authorName := FormatName(g.AuthorName)
	if !onRoster(authorName, officeRoster) {
		key := g.AuthorID.String()
		seen[key] = true
		members = append(members, model.TeamMember{
			Key:    key,
			Name:   authorName,
			UserID: g.AuthorID,
		})
	}

	for _, msg := range g.Messages {
		for _, raw := range ExtractMentions(msg.Text()) {
			name := FormatName(raw)
			if onRoster(name, officeRoster) {
				continue
			}
			key := mentionKey(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			members = append(members, model.TeamMember{
				Key:       key,
				Name:      name,
				Mentioned: true,
			})
		}
	}

	return members
}

// mentionKey builds a synthetic dedup key for a mentioned person,
// since mentions carry no stable identity
func mentionKey(name string) string {
	return "mention_" + strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// onRoster reports whether the name matches a configured office entry,
// case-insensitively
func onRoster(name string, roster []string) bool {
	for _, entry := range roster {
		if strings.EqualFold(name, entry) {
			return true
		}
	}
	return false
}
