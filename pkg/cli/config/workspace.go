package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"

	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// Workspace represents the declarative workspace configuration loaded from a
// TOML file. It names the teams that actions can be assigned to and may
// relabel the built-in priority levels.
type Workspace struct {
	Name       string          `toml:"name"`
	Teams      []Team          `toml:"team"`
	Priorities []PriorityLabel `toml:"priority"`

	path string
}

// Team represents a team configuration entry
type Team struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the Team is valid
func (t *Team) Validate() error {
	if t.ID == "" {
		return goerr.Wrap(ErrInvalidConfig, "team ID is required")
	}
	if t.Name == "" {
		return goerr.Wrap(ErrMissingName, "team name is required", goerr.V(TeamIDKey, t.ID))
	}
	return nil
}

// PriorityLabel attaches a display label to one of the built-in priority
// levels. The ID must be an existing level; new levels cannot be defined.
type PriorityLabel struct {
	ID    string `toml:"id"`
	Label string `toml:"label"`
}

// Validate checks if the PriorityLabel is valid
func (p *PriorityLabel) Validate() error {
	if _, err := types.ParsePriority(p.ID); err != nil {
		return goerr.Wrap(ErrInvalidConfig, "unknown priority level", goerr.V(PriorityIDKey, p.ID))
	}
	if p.Label == "" {
		return goerr.Wrap(ErrMissingName, "priority label is required", goerr.V(PriorityIDKey, p.ID))
	}
	return nil
}

// Flags returns CLI flags for workspace configuration
func (w *Workspace) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workspace-config",
			Usage:       "Path to workspace configuration TOML file",
			Sources:     cli.EnvVars("TOOLDO_WORKSPACE_CONFIG"),
			Destination: &w.path,
		},
	}
}

// Validate checks the loaded configuration for consistency
func (w *Workspace) Validate() error {
	seen := make(map[string]struct{}, len(w.Teams))
	for i, team := range w.Teams {
		if err := team.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team", goerr.V(TeamIndexKey, i))
		}
		if _, ok := seen[team.ID]; ok {
			return goerr.Wrap(ErrDuplicateTeamID, "team IDs must be unique", goerr.V(TeamIDKey, team.ID))
		}
		seen[team.ID] = struct{}{}
	}

	labeled := make(map[string]struct{}, len(w.Priorities))
	for _, p := range w.Priorities {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := labeled[p.ID]; ok {
			return goerr.Wrap(ErrInvalidConfig, "priority labeled twice", goerr.V(PriorityIDKey, p.ID))
		}
		labeled[p.ID] = struct{}{}
	}
	return nil
}

// TeamIDs returns the IDs of all configured teams
func (w *Workspace) TeamIDs() []types.TeamID {
	ids := make([]types.TeamID, 0, len(w.Teams))
	for _, team := range w.Teams {
		ids = append(ids, types.TeamID(team.ID))
	}
	return ids
}

// Configure loads and validates the workspace configuration. A missing
// --workspace-config flag yields an empty configuration, not an error.
func (w *Workspace) Configure() error {
	if w.path == "" {
		return nil
	}
	loaded, err := LoadWorkspace(w.path)
	if err != nil {
		return err
	}
	w.Name = loaded.Name
	w.Teams = loaded.Teams
	w.Priorities = loaded.Priorities
	return nil
}

// LoadWorkspace reads a workspace configuration from a TOML file
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(ErrConfigNotFound, "workspace configuration not found", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read workspace configuration", goerr.V(ConfigPathKey, path))
	}

	var w Workspace
	if err := toml.Unmarshal(data, &w); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse workspace configuration",
			goerr.V(ConfigPathKey, path), goerr.V("parse_error", err.Error()))
	}
	if err := w.Validate(); err != nil {
		return nil, goerr.Wrap(err, "workspace configuration is invalid", goerr.V(ConfigPathKey, path))
	}
	return &w, nil
}
