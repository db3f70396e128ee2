package config

import (
	"time"

	"github.com/atelier-vert/rapport/pkg/domain/types"
)

// Client maps a configured client to its chat channel
type Client struct {
	Name      string
	ChannelID string
}

// ReportConfig holds the report generation configuration: the
// reference timezone for calendar-day computation, the office roster
// excluded from field-staff lists, and the client/channel mapping.
type ReportConfig struct {
	Timezone     string
	OfficeRoster []string
	Clients      []Client

	location *time.Location
}

// NewReportConfig creates a validated ReportConfig with the timezone resolved
func NewReportConfig(timezone string, roster []string, clients []Client) (*ReportConfig, error) {
	cfg := &ReportConfig{
		Timezone:     timezone,
		OfficeRoster: roster,
		Clients:      clients,
	}
	if err := cfg.Resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the configured timezone. Calendar-day comparison must
// use this fixed reference location, never the ambient system zone.
func (c *ReportConfig) Resolve() error {
	if c.Timezone == "" {
		c.Timezone = "Europe/Paris"
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return err
	}
	c.location = loc
	return nil
}

// Location returns the resolved reference timezone
func (c *ReportConfig) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

// ChannelFor returns the chat channel for a client name
func (c *ReportConfig) ChannelFor(name types.ClientName) (types.ChannelID, bool) {
	for _, cl := range c.Clients {
		if cl.Name == name.String() {
			return types.ChannelID(cl.ChannelID), true
		}
	}
	return "", false
}

// ClientNames returns all configured client names in order
func (c *ReportConfig) ClientNames() []types.ClientName {
	names := make([]types.ClientName, 0, len(c.Clients))
	for _, cl := range c.Clients {
		names = append(names, types.ClientName(cl.Name))
	}
	return names
}
