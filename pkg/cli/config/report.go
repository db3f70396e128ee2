package config

import (
	"os"
	"time"

	domainConfig "github.com/atelier-vert/rapport/pkg/domain/model/config"
	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the report generation configuration file
type AppConfig struct {
	Timezone string   `toml:"timezone"`
	Office   []string `toml:"office"`
	Clients  []Client `toml:"client"`
}

// Client represents a client and its chat channel
type Client struct {
	Name    string `toml:"name"`
	Channel string `toml:"channel"`
}

// Validate checks if the Client is valid
func (c *Client) Validate() error {
	if c.Name == "" {
		return goerr.Wrap(ErrMissingClientName, "client entry")
	}
	if c.Channel == "" {
		return goerr.Wrap(ErrMissingChannel, "client entry", goerr.V(ClientNameKey, c.Name))
	}
	return nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	if a.Timezone != "" {
		if _, err := time.LoadLocation(a.Timezone); err != nil {
			return goerr.Wrap(ErrInvalidTimezone, err.Error(), goerr.V(TimezoneKey, a.Timezone))
		}
	}

	names := make(map[string]bool)
	channels := make(map[string]bool)
	for i, cl := range a.Clients {
		if err := cl.Validate(); err != nil {
			return goerr.Wrap(err, "invalid client", goerr.V(ClientIndexKey, i))
		}
		if names[cl.Name] {
			return goerr.Wrap(ErrDuplicateClient, "client list", goerr.V(ClientNameKey, cl.Name))
		}
		names[cl.Name] = true

		if channels[cl.Channel] {
			return goerr.Wrap(ErrDuplicateChannel, "client list", goerr.V(ChannelKey, cl.Channel))
		}
		channels[cl.Channel] = true
	}

	return nil
}

// ToDomainReportConfig converts AppConfig to the domain ReportConfig
func (a *AppConfig) ToDomainReportConfig() (*domainConfig.ReportConfig, error) {
	clients := make([]domainConfig.Client, len(a.Clients))
	for i, cl := range a.Clients {
		clients[i] = domainConfig.Client{
			Name:      cl.Name,
			ChannelID: cl.Channel,
		}
	}

	return domainConfig.NewReportConfig(a.Timezone, a.Office, clients)
}

// LoadAppConfiguration loads the report configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, err.Error(), goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V(ConfigPathKey, path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// Report holds the CLI flag pointing at the configuration file
type Report struct {
	path string
}

// Flags returns CLI flags for the report configuration file
func (r *Report) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the report configuration file (TOML)",
			Required:    true,
			Sources:     cli.EnvVars("RAPPORT_CONFIG"),
			Destination: &r.path,
		},
	}
}

// Path returns the configured file path
func (r *Report) Path() string {
	return r.path
}

// Configure loads, validates and converts the configuration file
func (r *Report) Configure() (*domainConfig.ReportConfig, error) {
	appCfg, err := LoadAppConfiguration(r.path)
	if err != nil {
		return nil, err
	}
	return appCfg.ToDomainReportConfig()
}
