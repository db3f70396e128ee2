package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type reportRepository struct {
	mu      sync.RWMutex
	reports map[types.ReportID]*model.Report
}

func newReportRepository() *reportRepository {
	return &reportRepository{
		reports: make(map[types.ReportID]*model.Report),
	}
}

func (r *reportRepository) Put(ctx context.Context, report *model.Report) error {
	if err := report.ID.Validate(); err != nil {
		return goerr.Wrap(err, "report ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyReport(report)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.reports[report.ID] = stored
	return nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	report, exists := r.reports[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
	}

	return copyReport(report), nil
}

func (r *reportRepository) List(ctx context.Context, client types.ClientName) ([]*model.Report, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Report, 0)
	for _, report := range r.reports {
		if report.Client != client {
			continue
		}
		result = append(result, copyReport(report))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

// copyReport returns a copy with its own slices to prevent external
// modification
func copyReport(report *model.Report) *model.Report {
	clone := *report

	clone.InterventionIDs = make([]types.InterventionID, len(report.InterventionIDs))
	copy(clone.InterventionIDs, report.InterventionIDs)

	clone.Team = make([]model.TeamMember, len(report.Team))
	copy(clone.Team, report.Team)

	return &clone
}
