package usecase

import (
	"context"
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/interfaces"
	"github.com/atelier-vert/rapport/pkg/domain/model"
	"github.com/atelier-vert/rapport/pkg/domain/model/config"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/atelier-vert/rapport/pkg/pipeline"
	"github.com/atelier-vert/rapport/pkg/utils/errutil"
	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"
)

// defaultEnhanceConcurrency bounds parallel LLM calls per client
const defaultEnhanceConcurrency = 3

// ReportUseCase orchestrates report generation: fetch, classify,
// enhance, upload, publish, persist.
type ReportUseCase struct {
	repo      interfaces.Repository
	source    interfaces.ChatSource
	cfg       *config.ReportConfig
	enhancer  interfaces.Enhancer
	store     interfaces.ImageStore
	publisher interfaces.Publisher
}

// Option is a functional option for ReportUseCase configuration
type Option func(*ReportUseCase)

// WithEnhancer enables LLM text enhancement
func WithEnhancer(e interfaces.Enhancer) Option {
	return func(uc *ReportUseCase) {
		uc.enhancer = e
	}
}

// WithImageStore enables media upload to public storage
func WithImageStore(s interfaces.ImageStore) Option {
	return func(uc *ReportUseCase) {
		uc.store = s
	}
}

// WithPublisher enables document publishing
func WithPublisher(p interfaces.Publisher) Option {
	return func(uc *ReportUseCase) {
		uc.publisher = p
	}
}

// NewReportUseCase creates a new ReportUseCase. Enhancer, image store
// and publisher are optional; without them the pipeline still runs and
// persists raw interventions.
func NewReportUseCase(repo interfaces.Repository, source interfaces.ChatSource, cfg *config.ReportConfig, opts ...Option) *ReportUseCase {
	uc := &ReportUseCase{
		repo:   repo,
		source: source,
		cfg:    cfg,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// GenerateOption holds options for one generation run
type GenerateOption struct {
	PeriodStart time.Time
	PeriodEnd   time.Time

	// Clients restricts generation to the named clients; empty means
	// all configured clients
	Clients []types.ClientName

	// DryRun skips upload, publishing and persistence
	DryRun bool

	// EnhanceConcurrency bounds parallel LLM calls, 0 means default
	EnhanceConcurrency int
}

// ClientResult is the outcome of one client's report generation
type ClientResult struct {
	Client        types.ClientName
	Report        *model.Report
	Interventions []*model.Intervention
	Err           error
}

// Generate produces a report for each selected client. Per-client
// failures are recorded in the result and do not stop the run; the
// returned error covers configuration problems only.
func (uc *ReportUseCase) Generate(ctx context.Context, opts GenerateOption) ([]*ClientResult, error) {
	clients := opts.Clients
	if len(clients) == 0 {
		clients = uc.cfg.ClientNames()
	}
	if len(clients) == 0 {
		return nil, goerr.New("no clients configured")
	}

	for _, client := range clients {
		if _, ok := uc.cfg.ChannelFor(client); !ok {
			return nil, goerr.New("unknown client", goerr.V("client", client))
		}
	}

	results := make([]*ClientResult, 0, len(clients))
	for _, client := range clients {
		result := uc.generateClient(ctx, client, opts)
		if result.Err != nil {
			_ = errutil.Handle(ctx, result.Err, "report generation failed")
		}
		results = append(results, result)
	}

	return results, nil
}

func (uc *ReportUseCase) generateClient(ctx context.Context, client types.ClientName, opts GenerateOption) *ClientResult {
	logger := logging.From(ctx)
	result := &ClientResult{Client: client}

	channelID, _ := uc.cfg.ChannelFor(client)

	msgs, err := uc.source.FetchMessages(ctx, channelID, opts.PeriodStart, opts.PeriodEnd)
	if err != nil {
		result.Err = goerr.Wrap(err, "failed to fetch messages",
			goerr.V("client", client), goerr.V("channel_id", channelID))
		return result
	}

	if len(msgs) == 0 {
		logger.Info("no messages in period, skipping client",
			"client", client,
			"from", opts.PeriodStart,
			"to", opts.PeriodEnd,
		)
		return result
	}

	interventions := pipeline.Run(msgs, &pipeline.Config{
		Location:     uc.cfg.Location(),
		OfficeRoster: uc.cfg.OfficeRoster,
	})

	now := time.Now().UTC()
	for _, iv := range interventions {
		iv.ID = types.InterventionID(uuid.NewString())
		iv.Client = client
		iv.CreatedAt = now
	}
	result.Interventions = interventions

	logger.Info("pipeline produced interventions",
		"client", client,
		"messages", len(msgs),
		"interventions", len(interventions),
	)

	uc.enhanceAll(ctx, interventions, opts.EnhanceConcurrency)

	report := &model.Report{
		ID:          types.ReportID(uuid.NewString()),
		Client:      client,
		PeriodStart: opts.PeriodStart,
		PeriodEnd:   opts.PeriodEnd,
		Team:        reportTeam(interventions),
		CreatedAt:   now,
	}
	for _, iv := range interventions {
		report.InterventionIDs = append(report.InterventionIDs, iv.ID)
	}
	result.Report = report

	if opts.DryRun {
		logger.Info("dry run, skipping upload, publish and persistence", "client", client)
		return result
	}

	images := uc.uploadImages(ctx, interventions)

	if uc.publisher != nil {
		url, err := uc.publisher.PublishReport(ctx, report, interventions, images)
		if err != nil {
			result.Err = goerr.Wrap(err, "failed to publish report", goerr.V("client", client))
			return result
		}
		report.PageURL = url
	}

	for _, iv := range interventions {
		if err := uc.repo.Intervention().Put(ctx, iv); err != nil {
			result.Err = goerr.Wrap(err, "failed to persist intervention",
				goerr.V("client", client), goerr.V("id", iv.ID))
			return result
		}
	}
	if err := uc.repo.Report().Put(ctx, report); err != nil {
		result.Err = goerr.Wrap(err, "failed to persist report",
			goerr.V("client", client), goerr.V("id", report.ID))
		return result
	}

	return result
}

// enhanceAll rewrites intervention text with bounded concurrency. The
// enhancer degrades gracefully, so this never fails the run.
func (uc *ReportUseCase) enhanceAll(ctx context.Context, interventions []*model.Intervention, concurrency int) {
	if uc.enhancer == nil {
		return
	}
	if concurrency <= 0 {
		concurrency = defaultEnhanceConcurrency
	}

	var eg errgroup.Group
	eg.SetLimit(concurrency)
	for _, iv := range interventions {
		eg.Go(func() error {
			iv.EnhancedText, iv.Title = uc.enhancer.Enhance(ctx, iv)
			return nil
		})
	}
	_ = eg.Wait()
}

// uploadImages uploads every attachment of every intervention. A failed
// upload is logged and skipped so the page degrades to text.
func (uc *ReportUseCase) uploadImages(ctx context.Context, interventions []*model.Intervention) interfaces.PublishedImages {
	images := make(interfaces.PublishedImages)
	if uc.store == nil {
		return images
	}

	for _, iv := range interventions {
		for _, att := range iv.Attachments() {
			url, err := uc.store.Upload(ctx, att)
			if err != nil {
				logging.From(ctx).Warn("failed to upload attachment",
					"attachment_id", att.ID(),
					"name", att.Name(),
					"error", err.Error(),
				)
				continue
			}
			images[att.ID()] = url
		}
	}

	return images
}

// reportTeam deduplicates participants across interventions in
// first-seen order
func reportTeam(interventions []*model.Intervention) []model.TeamMember {
	seen := make(map[string]bool)
	var team []model.TeamMember
	for _, iv := range interventions {
		for _, m := range iv.Participants {
			if seen[m.Key] {
				continue
			}
			seen[m.Key] = true
			team = append(team, m)
		}
	}
	return team
}
