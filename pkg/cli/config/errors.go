package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrMissingClientName = goerr.New("client name is required")
	ErrMissingChannel    = goerr.New("client channel is required")
	ErrDuplicateClient   = goerr.New("duplicate client name")
	ErrDuplicateChannel  = goerr.New("duplicate client channel")
	ErrInvalidTimezone   = goerr.New("invalid timezone")
)

// Context keys for error values
const (
	ConfigPathKey  = "config_path"
	ClientNameKey  = "client_name"
	ClientIndexKey = "client_index"
	ChannelKey     = "channel"
	TimezoneKey    = "timezone"
)
