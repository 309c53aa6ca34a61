package interfaces

import (
	"context"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// KanbanRepository defines the persistence boundary for board placement
// records. Positions are only ever mutated through Shift and Put, invoked by
// the ordering engine; callers must run multi-step sequences inside
// Repository.RunTransaction so partial shifts never become visible.
type KanbanRepository interface {
	// GetByAction retrieves the placement of a single action
	GetByAction(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) (*model.KanbanOrder, error)

	// ListByColumn retrieves all placements of a column sorted by position
	ListByColumn(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) ([]*model.KanbanOrder, error)

	// MaxPosition returns the highest position in a column. ok is false when
	// the column is empty.
	MaxPosition(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) (pos int, ok bool, err error)

	// Shift applies the given range shifts in order. Implementations must
	// perform all reads before all writes so the method can run inside a
	// Firestore transaction, and must apply the shifts serially so
	// overlapping ranges in the same column compose like sequential updates.
	Shift(ctx context.Context, companyID types.CompanyID, shifts []model.PositionShift) error

	// Put creates or replaces a placement record
	Put(ctx context.Context, companyID types.CompanyID, order *model.KanbanOrder) error

	// Delete removes the placement of an action. Used only when the action
	// itself is deleted.
	Delete(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) error
}
