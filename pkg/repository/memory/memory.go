package memory

import (
	"github.com/atelier-vert/rapport/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

// Memory is the in-memory repository used for development and tests
type Memory struct {
	intervention *interventionRepository
	report       *reportRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		intervention: newInterventionRepository(),
		report:       newReportRepository(),
	}
}

func (m *Memory) Intervention() interfaces.InterventionRepository {
	return m.intervention
}

func (m *Memory) Report() interfaces.ReportRepository {
	return m.report
}

func (m *Memory) Close() error {
	return nil
}
