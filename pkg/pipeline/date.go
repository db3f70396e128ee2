package pipeline

import (
	"regexp"
	"strconv"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// datePattern matches a DD/MM token; no year is assumed
var datePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})\b`)

// resolveDate extracts an explicit DD/MM date token from the group's
// concatenated text, combining it with the calendar year of the
// group's earliest timestamp. The first token wins; when it is missing,
// out of range, or not a real calendar date, the group's day is used
// with timestamp provenance.
func resolveDate(g *Group, loc *time.Location) (time.Time, types.DateProvenance) {
	fallback := g.Day

	m := datePattern.FindStringSubmatch(g.Text())
	if m == nil {
		return fallback, types.DateTimestamp
	}

	day, err := strconv.Atoi(m[1])
	if err != nil {
		return fallback, types.DateTimestamp
	}
	month, err := strconv.Atoi(m[2])
	if err != nil {
		return fallback, types.DateTimestamp
	}
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return fallback, types.DateTimestamp
	}

	year := g.StartedAt().In(loc).Year()
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes overflow (31/02 becomes early March), so
	// reject tokens that do not survive the round trip
	if date.Day() != day || date.Month() != time.Month(month) {
		return fallback, types.DateTimestamp
	}

	return date, types.DateExtracted
}
