package pipeline

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/atelier-vert/rapport/pkg/domain/types"
)

const (
	// shortMarkerLen is the maximum rune length under which a message
	// containing a bounded marker word still counts as a marker (e.g.
	// "Avant photo"). Longer texts are regular prose even when they
	// contain the word.
	shortMarkerLen = 15
)

// Markers holds the compiled marker patterns. The zero value is not
// usable; construct with DefaultMarkers or NewMarkers.
type Markers struct {
	off        *regexp.Regexp
	before     *regexp.Regexp
	after      *regexp.Regexp
	pureanchor *regexp.Regexp
}

// DefaultMarkers returns the marker set for the French field jargon:
// "(OFF)" for privacy, "avant"/"après" for photo sections.
func DefaultMarkers() *Markers {
	return &Markers{
		off:        regexp.MustCompile(`(?i)\(?\s*\boff\b\s*\)?`),
		before:     regexp.MustCompile(`(?i)\bavant\b`),
		after:      regexp.MustCompile(`(?i)\b(après|apres)\b`),
		pureanchor: regexp.MustCompile(`^(avant|après|apres)\s*[:\-!.]*$`),
	}
}

// SplitOff searches the text for the privacy marker. When found it
// returns the text preceding the marker, untrimmed, and true.
func (mk *Markers) SplitOff(text string) (string, bool) {
	loc := mk.off.FindStringIndex(text)
	if loc == nil {
		return text, false
	}
	return text[:loc[0]], true
}

// Section classifies the text as a before/after section marker. A
// message is a marker only if its entire text is the marker word plus
// optional trailing punctuation, or it is very short and contains the
// bounded word. A marker word inside a longer sentence ("attendre 1/2
// semaines avant de les arroser") is never a marker.
func (mk *Markers) Section(text string) types.MarkerKind {
	clean := strings.ToLower(strings.TrimSpace(text))
	if clean == "" {
		return types.MarkerNone
	}

	if m := mk.pureanchor.FindStringSubmatch(clean); m != nil {
		if m[1] == "avant" {
			return types.MarkerBefore
		}
		return types.MarkerAfter
	}

	if utf8.RuneCountInString(clean) < shortMarkerLen {
		if mk.before.MatchString(text) {
			return types.MarkerBefore
		}
		if mk.after.MatchString(text) {
			return types.MarkerAfter
		}
	}

	return types.MarkerNone
}

// decorationOnly reports whether the text consists solely of
// whitespace and punctuation, i.e. nothing worth keeping once a
// privacy marker has been cut out.
func decorationOnly(text string) bool {
	for _, r := range text {
		if !unicode.IsSpace(r) && !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
