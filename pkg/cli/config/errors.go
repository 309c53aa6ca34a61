package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound  = goerr.New("configuration file not found")
	ErrInvalidConfig   = goerr.New("invalid configuration")
	ErrDuplicateTeamID = goerr.New("duplicate team ID")
	ErrMissingName     = goerr.New("name is required")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	TeamIDKey     = "team_id"
	TeamIndexKey  = "team_index"
	PriorityIDKey = "priority_id"
)
