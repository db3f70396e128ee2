package cli

import (
	"context"

	"github.com/atelier-vert/rapport/pkg/cli/config"
	"github.com/atelier-vert/rapport/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var reportCfg config.Report

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the report configuration file",
		Flags:   reportCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			appCfg, err := config.LoadAppConfiguration(reportCfg.Path())
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			cfg, err := appCfg.ToDomainReportConfig()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logger.Info("Configuration validation passed",
				"path", reportCfg.Path(),
				"timezone", cfg.Location().String(),
				"office_count", len(cfg.OfficeRoster),
				"client_count", len(cfg.Clients),
			)
			for _, cl := range cfg.Clients {
				logger.Info("Client validated",
					"name", cl.Name,
					"channel", cl.ChannelID,
				)
			}

			return nil
		},
	}
}
