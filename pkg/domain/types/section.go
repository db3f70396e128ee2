package types

import "fmt"

// Section identifies which attachment bucket a message belongs to
// within an intervention: the regular flow, or an explicit
// before/after photo sub-section.
type Section string

const (
	SectionRegular Section = "regular"
	SectionBefore  Section = "before"
	SectionAfter   Section = "after"
)

// AllSections returns all valid sections in bucket order
func AllSections() []Section {
	return []Section{
		SectionRegular,
		SectionBefore,
		SectionAfter,
	}
}

// IsValid checks if the section is valid
func (s Section) IsValid() bool {
	switch s {
	case SectionRegular, SectionBefore, SectionAfter:
		return true
	default:
		return false
	}
}

// String returns the string representation of the section
func (s Section) String() string {
	return string(s)
}

// Validate returns an error if the section is not valid
func (s Section) Validate() error {
	if !s.IsValid() {
		return fmt.Errorf("invalid section: %s", string(s))
	}
	return nil
}
