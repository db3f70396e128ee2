package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// reportDoc is the Firestore document representation of model.Report
type reportDoc struct {
	ID              string          `firestore:"ID"`
	Client          string          `firestore:"Client"`
	PeriodStart     time.Time       `firestore:"PeriodStart"`
	PeriodEnd       time.Time       `firestore:"PeriodEnd"`
	InterventionIDs []string        `firestore:"InterventionIDs"`
	Team            []teamMemberDoc `firestore:"Team"`
	PageURL         string          `firestore:"PageURL"`
	CreatedAt       time.Time       `firestore:"CreatedAt"`
}

func toReportDoc(report *model.Report) *reportDoc {
	doc := &reportDoc{
		ID:          string(report.ID),
		Client:      string(report.Client),
		PeriodStart: report.PeriodStart,
		PeriodEnd:   report.PeriodEnd,
		PageURL:     report.PageURL,
		CreatedAt:   report.CreatedAt,
	}

	for _, id := range report.InterventionIDs {
		doc.InterventionIDs = append(doc.InterventionIDs, string(id))
	}

	for _, m := range report.Team {
		doc.Team = append(doc.Team, teamMemberDoc{
			Key:       m.Key,
			Name:      m.Name,
			UserID:    m.UserID.String(),
			Mentioned: m.Mentioned,
		})
	}

	return doc
}

func fromReportDoc(d *reportDoc) *model.Report {
	report := &model.Report{
		ID:          types.ReportID(d.ID),
		Client:      types.ClientName(d.Client),
		PeriodStart: d.PeriodStart,
		PeriodEnd:   d.PeriodEnd,
		PageURL:     d.PageURL,
		CreatedAt:   d.CreatedAt,
	}

	for _, id := range d.InterventionIDs {
		report.InterventionIDs = append(report.InterventionIDs, types.InterventionID(id))
	}

	for _, m := range d.Team {
		report.Team = append(report.Team, model.TeamMember{
			Key:       m.Key,
			Name:      m.Name,
			UserID:    types.UserID(m.UserID),
			Mentioned: m.Mentioned,
		})
	}

	return report
}

func docToReport(doc *firestore.DocumentSnapshot) (*model.Report, error) {
	var d reportDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, err
	}
	return fromReportDoc(&d), nil
}

type reportRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newReportRepository(client *firestore.Client) *reportRepository {
	return &reportRepository{client: client}
}

func (r *reportRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix + "reports")
}

func (r *reportRepository) Put(ctx context.Context, report *model.Report) error {
	if err := report.ID.Validate(); err != nil {
		return goerr.Wrap(err, "report ID is required")
	}

	doc := toReportDoc(report)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	if _, err := r.collection().Doc(string(report.ID)).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to put report", goerr.V("id", report.ID))
	}

	return nil
}

func (r *reportRepository) Get(ctx context.Context, id types.ReportID) (*model.Report, error) {
	doc, err := r.collection().Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "report not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get report", goerr.V("id", id))
	}

	report, err := docToReport(doc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal report", goerr.V("id", id))
	}

	return report, nil
}

func (r *reportRepository) List(ctx context.Context, client types.ClientName) ([]*model.Report, error) {
	iter := r.collection().
		Where("Client", "==", string(client)).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	reports := make([]*model.Report, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate reports", goerr.V("client", client))
		}

		report, err := docToReport(doc)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal report")
		}

		reports = append(reports, report)
	}

	return reports, nil
}
