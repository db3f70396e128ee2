package model

import (
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// Report represents one generated client report covering a date range
type Report struct {
	ID     types.ReportID
	Client types.ClientName

	PeriodStart time.Time
	PeriodEnd   time.Time

	InterventionIDs []types.InterventionID

	// Team is the deduplicated field-staff roster across all
	// interventions in the report
	Team []TeamMember

	// PageURL is the published document page, empty when the report
	// was generated in dry-run mode
	PageURL string

	CreatedAt time.Time
}
