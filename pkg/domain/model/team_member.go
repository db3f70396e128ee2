package model

import "github.com/atelier-vert/rapport/pkg/domain/types"

// TeamMember is one field-staff participant: either a message author
// (with a stable user ID) or a person referenced by @mention (no
// stable identity, keyed by normalized name).
type TeamMember struct {
	// Key is the deduplication key: the user ID for authors, or a
	// synthetic "mention_<name>" key for mentioned people
	Key string

	Name   string
	UserID types.UserID

	// Mentioned is true when the member was discovered via @mention
	// rather than as a message author
	Mentioned bool
}
