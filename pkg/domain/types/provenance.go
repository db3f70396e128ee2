package types

import "fmt"

// DateProvenance indicates how an intervention's date was resolved
type DateProvenance string

const (
	// DateExtracted means the date was parsed from a DD/MM token in the text
	DateExtracted DateProvenance = "extracted"
	// DateTimestamp means the date fell back to the earliest message timestamp
	DateTimestamp DateProvenance = "timestamp"
)

// IsValid checks if the provenance value is valid
func (p DateProvenance) IsValid() bool {
	switch p {
	case DateExtracted, DateTimestamp:
		return true
	default:
		return false
	}
}

// String returns the string representation of the provenance
func (p DateProvenance) String() string {
	return string(p)
}

// Validate returns an error if the provenance value is not valid
func (p DateProvenance) Validate() error {
	if !p.IsValid() {
		return fmt.Errorf("invalid date provenance: %s", string(p))
	}
	return nil
}
