package model

import (
	"time"

	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// KanbanOrder records where an action sits on the board. For every column the
// set of positions must be exactly {0, 1, ..., n-1}: dense, zero-based and
// unique. The ordering engine and its callers are the only writers of this
// invariant; positions are never assigned directly.
type KanbanOrder struct {
	ActionID    types.ActionID
	Column      types.ActionStatus
	Position    int
	LastMovedAt time.Time
}

// PositionShift describes one range shift within a column: Delta is added to
// the position of every KanbanOrder in Column whose position is >= From.
// A shift with Delta=+1 opens a gap before an insert; Delta=-1 closes the gap
// left by a removal.
type PositionShift struct {
	Column types.ActionStatus
	From   int
	Delta  int
}
