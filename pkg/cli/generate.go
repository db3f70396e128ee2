package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier-vert/rapport/pkg/cli/config"
	"github.com/atelier-vert/rapport/pkg/domain/types"
	"github.com/atelier-vert/rapport/pkg/service/enhance"
	"github.com/atelier-vert/rapport/pkg/usecase"
	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/atelier-vert/rapport/pkg/utils/safe"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdGenerate() *cli.Command {
	var (
		reportCfg  config.Report
		repoCfg    config.Repository
		chatCfg    config.Chat
		geminiCfg  config.Gemini
		notionCfg  config.Notion
		storageCfg config.Storage

		fromDate    string
		toDate      string
		clientNames []string
		dryRun      bool
		concurrency int
	)

	var flags []cli.Flag
	flags = append(flags, reportCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, chatCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, notionCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "from",
			Usage:       "Start of the report period (YYYY-MM-DD, inclusive)",
			Required:    true,
			Destination: &fromDate,
		},
		&cli.StringFlag{
			Name:        "to",
			Usage:       "End of the report period (YYYY-MM-DD, inclusive, defaults to today)",
			Destination: &toDate,
		},
		&cli.StringSliceFlag{
			Name:        "client",
			Usage:       "Restrict generation to the named clients (repeatable, defaults to all)",
			Destination: &clientNames,
		},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Run the pipeline without uploading, publishing or persisting",
			Destination: &dryRun,
		},
		&cli.IntFlag{
			Name:        "enhance-concurrency",
			Usage:       "Number of parallel text enhancement calls",
			Value:       3,
			Destination: &concurrency,
		},
	)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Fetch channel history and publish intervention reports",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			ctx = logging.With(ctx, logger)

			cfg, err := reportCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load report configuration")
			}

			from, to, err := parsePeriod(fromDate, toDate, cfg.Location())
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(ctx, repo)

			source, err := chatCfg.Configure()
			if err != nil {
				return err
			}

			llm, err := geminiCfg.Configure(ctx)
			if err != nil {
				return err
			}

			options := []usecase.Option{
				usecase.WithEnhancer(enhance.New(llm)),
			}

			store, err := storageCfg.Configure(ctx, source)
			if err != nil {
				return err
			}
			if store != nil {
				options = append(options, usecase.WithImageStore(store))
			}

			publisher, err := notionCfg.Configure()
			if err != nil {
				return err
			}
			if publisher != nil {
				options = append(options, usecase.WithPublisher(publisher))
			} else if !dryRun {
				logger.Warn("Notion is not configured, reports will be persisted without publishing")
			}

			logger.Info("Generating reports",
				"from", from,
				"to", to,
				"clients", clientNames,
				"dry_run", dryRun,
				"chat", chatCfg,
				"gemini", geminiCfg,
				"notion", notionCfg,
				"storage", storageCfg,
			)

			uc := usecase.NewReportUseCase(repo, source, cfg, options...)

			clients := make([]types.ClientName, 0, len(clientNames))
			for _, name := range clientNames {
				clients = append(clients, types.ClientName(name))
			}

			results, err := uc.Generate(ctx, usecase.GenerateOption{
				PeriodStart:        from,
				PeriodEnd:          to,
				Clients:            clients,
				DryRun:             dryRun,
				EnhanceConcurrency: concurrency,
			})
			if err != nil {
				return err
			}

			return printResults(results, dryRun)
		},
	}
}

// parsePeriod converts the period flags into [from, to) boundaries in
// the reference timezone. The "to" day itself is included.
func parsePeriod(fromDate, toDate string, loc *time.Location) (time.Time, time.Time, error) {
	const layout = "2006-01-02"

	from, err := time.ParseInLocation(layout, fromDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, goerr.Wrap(err, "invalid --from date", goerr.V("from", fromDate))
	}

	to := time.Now().In(loc)
	if toDate != "" {
		to, err = time.ParseInLocation(layout, toDate, loc)
		if err != nil {
			return time.Time{}, time.Time{}, goerr.Wrap(err, "invalid --to date", goerr.V("to", toDate))
		}
	}
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	if !from.Before(to) {
		return time.Time{}, time.Time{}, goerr.New("--from must not be after --to",
			goerr.V("from", fromDate), goerr.V("to", toDate))
	}

	return from, to, nil
}

func printResults(results []*usecase.ClientResult, dryRun bool) error {
	success := color.New(color.FgGreen, color.Bold)
	failure := color.New(color.FgRed, color.Bold)
	muted := color.New(color.Faint)

	var failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
			failure.Printf("✗ %s: %v\n", r.Client, r.Err)

		case r.Report == nil:
			muted.Printf("- %s: no messages in period\n", r.Client)

		default:
			success.Printf("✓ %s: %d intervention(s)\n", r.Client, len(r.Interventions))
			if dryRun {
				muted.Println("  dry run, nothing published")
			} else if r.Report.PageURL != "" {
				fmt.Printf("  %s\n", r.Report.PageURL)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("report generation failed for %d client(s)", failed)
	}
	return nil
}
