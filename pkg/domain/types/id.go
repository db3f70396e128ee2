package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// UserID represents a stable chat-backend user identifier
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// ChannelID represents a chat channel identifier
type ChannelID string

// Validate checks if the ChannelID is valid
func (c ChannelID) Validate() error {
	if c == "" {
		return goerr.New("channel ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ChannelID
func (c ChannelID) String() string {
	return string(c)
}

// ClientName represents a configured client (customer) name
type ClientName string

// Validate checks if the ClientName is valid
func (c ClientName) Validate() error {
	if c == "" {
		return goerr.New("client name cannot be empty")
	}
	return nil
}

// String returns the string representation of ClientName
func (c ClientName) String() string {
	return string(c)
}

// InterventionID represents a unique identifier for a generated intervention
type InterventionID string

// Validate checks if the InterventionID is valid
func (i InterventionID) Validate() error {
	if i == "" {
		return goerr.New("intervention ID cannot be empty")
	}
	return nil
}

// String returns the string representation of InterventionID
func (i InterventionID) String() string {
	return string(i)
}

// ReportID represents a unique identifier for a generated report
type ReportID string

// Validate checks if the ReportID is valid
func (r ReportID) Validate() error {
	if r == "" {
		return goerr.New("report ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ReportID
func (r ReportID) String() string {
	return string(r)
}
