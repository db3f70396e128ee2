package config

import (
	"log/slog"

	"github.com/atelier-vert/rapport/pkg/service/notion"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Notion holds CLI flags for the report publishing destination
type Notion struct {
	token           string
	reportsDB       string
	interventionsDB string
}

// Flags returns CLI flags for Notion configuration
func (n *Notion) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notion-token",
			Usage:       "Notion integration token (publishing is disabled when empty)",
			Category:    "Notion",
			Sources:     cli.EnvVars("RAPPORT_NOTION_TOKEN"),
			Destination: &n.token,
		},
		&cli.StringFlag{
			Name:        "notion-reports-db",
			Usage:       "Notion database ID for report pages",
			Category:    "Notion",
			Sources:     cli.EnvVars("RAPPORT_NOTION_REPORTS_DB"),
			Destination: &n.reportsDB,
		},
		&cli.StringFlag{
			Name:        "notion-interventions-db",
			Usage:       "Notion database ID for intervention rows",
			Category:    "Notion",
			Sources:     cli.EnvVars("RAPPORT_NOTION_INTERVENTIONS_DB"),
			Destination: &n.interventionsDB,
		},
	}
}

func (n Notion) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("token.len", len(n.token)),
		slog.String("reports_db", n.reportsDB),
		slog.String("interventions_db", n.interventionsDB),
	)
}

// IsConfigured reports whether publishing is enabled
func (n *Notion) IsConfigured() bool {
	return n.token != ""
}

// Configure creates a Notion publisher. Returns nil if no token is set.
func (n *Notion) Configure() (*notion.Service, error) {
	if n.token == "" {
		return nil, nil
	}

	svc, err := notion.New(n.token, n.reportsDB, n.interventionsDB)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Notion publisher")
	}

	return svc, nil
}
