package types

import "fmt"

// ActionStatus represents the status of an action on the kanban board. The
// status doubles as the board column the action is placed in.
type ActionStatus string

const (
	ActionStatusTodo       ActionStatus = "TODO"
	ActionStatusInProgress ActionStatus = "IN_PROGRESS"
	ActionStatusDone       ActionStatus = "DONE"
)

// AllActionStatuses returns all valid action statuses in board order
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusTodo,
		ActionStatusInProgress,
		ActionStatusDone,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusTodo, ActionStatusInProgress, ActionStatusDone:
		return true
	default:
		return false
	}
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
