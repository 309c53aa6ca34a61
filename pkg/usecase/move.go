package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/utils/clock"
	"github.com/luanacfraga/tooldo/pkg/utils/logging"
)

// MoveActionInput describes an explicit board move. Position is optional:
// when nil the action lands at the end of the target column, except when the
// move stays in the same column, where it lands at the last occupied slot.
type MoveActionInput struct {
	ActionID     types.ActionID
	TargetStatus types.ActionStatus
	Position     *int
	MovedByID    types.UserID
	Notes        *string
}

// MoveActionResult bundles everything a move changed.
type MoveActionResult struct {
	Action   *model.Action
	Order    *model.KanbanOrder
	Movement *model.ActionMovement
}

// MoveAction relocates an action on the board. It updates the status, keeps
// both the source and the target column densely numbered, and always appends
// a movement record, even when source and target column are the same.
func (uc *ActionUseCase) MoveAction(ctx context.Context, companyID types.CompanyID, input MoveActionInput) (*MoveActionResult, error) {
	if !input.TargetStatus.IsValid() {
		return nil, goerr.Wrap(model.ErrInvalidStatus, "invalid move target",
			goerr.V(model.StatusKey, input.TargetStatus))
	}

	var result MoveActionResult
	err := uc.repo.RunTransaction(ctx, func(ctx context.Context) error {
		action, err := uc.getAction(ctx, companyID, input.ActionID)
		if err != nil {
			return err
		}

		ord, err := uc.repo.Kanban().GetByAction(ctx, companyID, input.ActionID)
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to get kanban order", goerr.V(ActionIDKey, input.ActionID))
		}

		now := clock.Now(ctx)
		fromStatus := action.Status
		sameColumn := ord != nil && ord.Column == input.TargetStatus

		// Resolve the destination slot before issuing any shift. All
		// repository reads have to happen before the first write.
		var dest int
		switch {
		case input.Position != nil:
			dest = *input.Position
			if dest < 0 {
				dest = 0
			}
		case sameColumn:
			// The action's own slot vacates, so the end of the column
			// after removal is the current last position.
			dest, _, err = uc.engine.LastPosition(ctx, companyID, input.TargetStatus)
			if err != nil {
				return err
			}
		default:
			dest, err = uc.engine.AppendToEnd(ctx, companyID, input.TargetStatus)
			if err != nil {
				return err
			}
		}

		samePos := sameColumn && ord.Position == dest

		if !samePos {
			var shifts []model.PositionShift
			if ord != nil {
				shifts = append(shifts, model.PositionShift{
					Column: ord.Column,
					From:   ord.Position + 1,
					Delta:  -1,
				})
			}
			shifts = append(shifts, model.PositionShift{
				Column: input.TargetStatus,
				From:   dest,
				Delta:  1,
			})
			if err := uc.engine.ShiftRanges(ctx, companyID, shifts...); err != nil {
				return err
			}
		}

		result.Order, err = uc.engine.PlaceAt(ctx, companyID, input.ActionID, input.TargetStatus, dest, now)
		if err != nil {
			return err
		}

		updated := action.UpdateStatus(input.TargetStatus, now)
		if err := uc.repo.Action().Put(ctx, companyID, &updated); err != nil {
			return goerr.Wrap(err, "failed to update action", goerr.V(ActionIDKey, input.ActionID))
		}
		result.Action = &updated

		var timeSpent *int64
		if ord != nil {
			secs := int64(now.Sub(ord.LastMovedAt) / time.Second)
			timeSpent = &secs
		}
		movement := &model.ActionMovement{
			ID:         types.NewMovementID(),
			ActionID:   input.ActionID,
			FromStatus: fromStatus,
			ToStatus:   input.TargetStatus,
			MovedByID:  input.MovedByID,
			MovedAt:    now,
			Notes:      input.Notes,
			TimeSpent:  timeSpent,
		}
		if err := uc.repo.Movement().Append(ctx, companyID, movement); err != nil {
			return goerr.Wrap(err, "failed to append movement", goerr.V(ActionIDKey, input.ActionID))
		}
		result.Movement = movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Debug("action moved",
		"action_id", input.ActionID,
		"from", result.Movement.FromStatus,
		"to", result.Movement.ToStatus,
		"position", result.Order.Position,
	)
	return &result, nil
}
