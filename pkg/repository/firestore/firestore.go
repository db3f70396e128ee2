package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/atelier-vert/rapport/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = goerr.New("record not found")

type Firestore struct {
	client       *firestore.Client
	intervention *interventionRepository
	report       *reportRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes all collection names, isolating
// parallel deployments in one database
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.intervention.collectionPrefix = prefix
		f.report.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:       client,
		intervention: newInterventionRepository(client),
		report:       newReportRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Intervention() interfaces.InterventionRepository {
	return f.intervention
}

func (f *Firestore) Report() interfaces.ReportRepository {
	return f.report
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
