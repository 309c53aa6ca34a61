package model

import (
	"time"

	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// ActionMovement is the audit record of one explicit board move. It is
// immutable once appended and retained even after the action is soft-deleted.
// Implicit date-driven transitions do not produce movements; only
// user-initiated moves do.
type ActionMovement struct {
	ID         types.MovementID
	ActionID   types.ActionID
	FromStatus types.ActionStatus
	ToStatus   types.ActionStatus
	MovedByID  types.UserID
	MovedAt    time.Time
	Notes      *string
	TimeSpent  *int64 // seconds spent in the previous column, nil if unknown
}
