package interfaces

import (
	"context"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// Repository provides access to all persistence operations
type Repository interface {
	Intervention() InterventionRepository
	Report() ReportRepository

	// Close releases underlying resources
	Close() error
}

// InterventionRepository persists generated interventions
type InterventionRepository interface {
	// Put saves an intervention (upsert by ID)
	Put(ctx context.Context, iv *model.Intervention) error

	// Get retrieves an intervention by ID
	Get(ctx context.Context, id types.InterventionID) (*model.Intervention, error)

	// List retrieves interventions for a client whose resolved date
	// falls within [start, end), ordered by date ascending
	List(ctx context.Context, client types.ClientName, start, end time.Time) ([]*model.Intervention, error)
}

// ReportRepository persists generated reports
type ReportRepository interface {
	// Put saves a report (upsert by ID)
	Put(ctx context.Context, report *model.Report) error

	// Get retrieves a report by ID
	Get(ctx context.Context, id types.ReportID) (*model.Report, error)

	// List retrieves all reports for a client, newest first
	List(ctx context.Context, client types.ClientName) ([]*model.Report, error)
}
