package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ActionID represents a unique identifier for an action
type ActionID string

// NewActionID generates a new random ActionID
func NewActionID() ActionID {
	return ActionID(uuid.NewString())
}

// Validate checks if the ActionID is valid
func (x ActionID) Validate() error {
	if x == "" {
		return goerr.New("action ID cannot be empty")
	}
	return nil
}

// String returns the string representation of ActionID
func (x ActionID) String() string {
	return string(x)
}

// MovementID represents a unique identifier for an action movement record
type MovementID string

// NewMovementID generates a new random MovementID
func NewMovementID() MovementID {
	return MovementID(uuid.NewString())
}

// Validate checks if the MovementID is valid
func (x MovementID) Validate() error {
	if x == "" {
		return goerr.New("movement ID cannot be empty")
	}
	return nil
}

// String returns the string representation of MovementID
func (x MovementID) String() string {
	return string(x)
}

// UserID represents a unique identifier for a user
type UserID string

// String returns the string representation of UserID
func (x UserID) String() string {
	return string(x)
}

// CompanyID represents a unique identifier for a company. Each company owns
// its own kanban board, so all repository operations are scoped by CompanyID.
type CompanyID string

// Validate checks if the CompanyID is valid
func (x CompanyID) Validate() error {
	if x == "" {
		return goerr.New("company ID cannot be empty")
	}
	return nil
}

// String returns the string representation of CompanyID
func (x CompanyID) String() string {
	return string(x)
}

// TeamID represents a unique identifier for a team
type TeamID string

// String returns the string representation of TeamID
func (x TeamID) String() string {
	return string(x)
}
