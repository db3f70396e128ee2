package types

// MarkerKind is the tagged result of marker detection on a message
// text. Centralizing the detection result as a type keeps the
// false-positive rules in one testable place instead of scattering
// string containment checks through the grouping logic.
type MarkerKind string

const (
	MarkerNone   MarkerKind = "none"
	MarkerOff    MarkerKind = "off"
	MarkerBefore MarkerKind = "before"
	MarkerAfter  MarkerKind = "after"
)

// IsValid checks if the marker kind is valid
func (m MarkerKind) IsValid() bool {
	switch m {
	case MarkerNone, MarkerOff, MarkerBefore, MarkerAfter:
		return true
	default:
		return false
	}
}

// String returns the string representation of the marker kind
func (m MarkerKind) String() string {
	return string(m)
}
