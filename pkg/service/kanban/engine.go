package kanban

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// Engine maintains the per-column position invariant: after any correctly
// sequenced series of engine calls, each column's positions are exactly
// {0, 1, ..., n-1}. The engine does not re-derive correctness on its own; it
// trusts callers to open a gap (ShiftRanges with +1) before placing into the
// middle of a column and to close the gap (-1) left behind in the source
// column. Callers run the whole sequence inside one repository transaction.
type Engine struct {
	repo interfaces.KanbanRepository
}

// New creates an ordering engine over the given kanban repository
func New(repo interfaces.KanbanRepository) *Engine {
	return &Engine{repo: repo}
}

// LastPosition returns the highest position in the column. ok is false when
// the column is empty.
func (e *Engine) LastPosition(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) (int, bool, error) {
	pos, ok, err := e.repo.MaxPosition(ctx, companyID, column)
	if err != nil {
		return 0, false, goerr.Wrap(err, "failed to read last position", goerr.V("column", column))
	}
	return pos, ok, nil
}

// AppendToEnd returns the position directly after the last item of the
// column, or 0 for an empty column.
func (e *Engine) AppendToEnd(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) (int, error) {
	last, ok, err := e.LastPosition(ctx, companyID, column)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, nil
	}
	return last + 1, nil
}

// ShiftRange adds delta to the position of every order in the column whose
// position is >= from.
func (e *Engine) ShiftRange(ctx context.Context, companyID types.CompanyID, column types.ActionStatus, from, delta int) error {
	return e.ShiftRanges(ctx, companyID, model.PositionShift{Column: column, From: from, Delta: delta})
}

// ShiftRanges applies several range shifts in one repository call. The moves
// that both close a source gap and open a destination slot pass both ranges
// here: the repository collects all reads before all writes, which a
// Firestore transaction requires.
func (e *Engine) ShiftRanges(ctx context.Context, companyID types.CompanyID, shifts ...model.PositionShift) error {
	if len(shifts) == 0 {
		return nil
	}
	if err := e.repo.Shift(ctx, companyID, shifts); err != nil {
		return goerr.Wrap(err, "failed to shift positions")
	}
	return nil
}

// PlaceAt sets the action's column, position and last-moved timestamp. The
// caller must have shifted siblings beforehand so the slot is free.
func (e *Engine) PlaceAt(ctx context.Context, companyID types.CompanyID, actionID types.ActionID, column types.ActionStatus, position int, now time.Time) (*model.KanbanOrder, error) {
	order := &model.KanbanOrder{
		ActionID:    actionID,
		Column:      column,
		Position:    position,
		LastMovedAt: now,
	}
	if err := e.repo.Put(ctx, companyID, order); err != nil {
		return nil, goerr.Wrap(err, "failed to place action",
			goerr.V("action_id", actionID),
			goerr.V("column", column),
			goerr.V("position", position))
	}
	return order, nil
}
