package notion

import (
	"context"
	"fmt"

	"github.com/atelier-vert/rapport/pkg/domain/interfaces"
	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/jomei/notionapi"
	"github.com/m-mizutani/goerr/v2"
)

// appendBatchSize is the Notion API limit on children per append call
const appendBatchSize = 100

// Service publishes reports to Notion: one page per report in the
// reports database, one row per intervention in the interventions
// database, rows related back to the report page.
type Service struct {
	pages           notionapi.PageService
	blocks          notionapi.BlockService
	reportsDB       notionapi.DatabaseID
	interventionsDB notionapi.DatabaseID
}

// Option is a functional option for Service configuration
type Option func(*Service)

// withServices replaces the Notion API services, for tests
func withServices(pages notionapi.PageService, blocks notionapi.BlockService) Option {
	return func(s *Service) {
		s.pages = pages
		s.blocks = blocks
	}
}

// New creates a new Notion publisher with the provided API token
func New(token, reportsDB, interventionsDB string, opts ...Option) (*Service, error) {
	s := &Service{
		reportsDB:       notionapi.DatabaseID(reportsDB),
		interventionsDB: notionapi.DatabaseID(interventionsDB),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.pages == nil {
		if token == "" {
			return nil, goerr.New("Notion API token is required")
		}
		api := notionapi.NewClient(
			notionapi.Token(token),
			notionapi.WithRetry(3), // Retry up to 3 times on rate limit (HTTP 429)
		)
		s.pages = api.Page
		s.blocks = api.Block
	}

	if s.reportsDB == "" {
		return nil, goerr.New("Notion reports database ID is required")
	}
	if s.interventionsDB == "" {
		return nil, goerr.New("Notion interventions database ID is required")
	}

	return s, nil
}

// PublishReport creates the report page, appends the intervention
// sections as page content, creates one interventions database row per
// intervention related to the page, and returns the page URL.
func (s *Service) PublishReport(ctx context.Context, report *model.Report, interventions []*model.Intervention, images interfaces.PublishedImages) (string, error) {
	page, err := s.createReportPage(ctx, report)
	if err != nil {
		return "", err
	}

	blocks := reportBlocks(report, interventions, images)
	if err := s.appendBlocks(ctx, notionapi.BlockID(page.ID), blocks); err != nil {
		return "", err
	}

	for _, iv := range interventions {
		if err := s.createInterventionRow(ctx, page.ID, iv); err != nil {
			// The page is already useful without the row; keep going
			logging.From(ctx).Warn("failed to create intervention row",
				"client", iv.Client,
				"date", iv.DateLabel(),
				"error", err.Error(),
			)
		}
	}

	return page.URL, nil
}

func (s *Service) createReportPage(ctx context.Context, report *model.Report) (*notionapi.Page, error) {
	title := fmt.Sprintf("Rapport %s — %s au %s",
		report.Client,
		report.PeriodStart.Format("02/01/2006"),
		report.PeriodEnd.Format("02/01/2006"),
	)

	team := make([]string, 0, len(report.Team))
	for _, m := range report.Team {
		team = append(team, m.Name)
	}

	page, err := s.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.reportsDB,
		},
		Properties: notionapi.Properties{
			"Nom":    titleProperty(title),
			"Client": richTextProperty(string(report.Client)),
			"Période": dateRangeProperty(report.PeriodStart, report.PeriodEnd),
			"Équipe": richTextProperty(joinNames(team)),
		},
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create report page",
			goerr.V("client", report.Client), goerr.V("database", s.reportsDB))
	}

	return page, nil
}

func (s *Service) createInterventionRow(ctx context.Context, reportPageID notionapi.ObjectID, iv *model.Intervention) error {
	title := iv.Title
	if title == "" {
		title = "Intervention du " + iv.DateLabel()
	}

	description := iv.EnhancedText
	if description == "" {
		description = iv.Text
	}

	_, err := s.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: s.interventionsDB,
		},
		Properties: notionapi.Properties{
			"Nom":         titleProperty(title),
			"Client":      richTextProperty(string(iv.Client)),
			"Date":        dateProperty(iv.Date),
			"Description": richTextProperty(description),
			"Équipe":      richTextProperty(joinNames(participantNames(iv))),
			"Rapport": &notionapi.RelationProperty{
				Relation: []notionapi.Relation{
					{ID: notionapi.PageID(reportPageID)},
				},
			},
		},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to create intervention row",
			goerr.V("client", iv.Client), goerr.V("date", iv.DateLabel()))
	}

	return nil
}

// appendBlocks appends children in API-sized batches
func (s *Service) appendBlocks(ctx context.Context, pageID notionapi.BlockID, blocks []notionapi.Block) error {
	for start := 0; start < len(blocks); start += appendBatchSize {
		end := start + appendBatchSize
		if end > len(blocks) {
			end = len(blocks)
		}

		_, err := s.blocks.AppendChildren(ctx, pageID, &notionapi.AppendBlockChildrenRequest{
			Children: blocks[start:end],
		})
		if err != nil {
			return goerr.Wrap(err, "failed to append report blocks",
				goerr.V("page_id", pageID), goerr.V("offset", start))
		}
	}

	return nil
}

func participantNames(iv *model.Intervention) []string {
	names := make([]string, 0, len(iv.Participants))
	for _, m := range iv.Participants {
		names = append(names, m.Name)
	}
	return names
}
