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

// UpdateActionInput is a sparse edit: nil fields stay untouched.
type UpdateActionInput struct {
	Title              *string
	Description        *string
	Priority           *types.Priority
	EstimatedStartDate *time.Time
	EstimatedEndDate   *time.Time
	ActualStartDate    *time.Time
	ActualEndDate      *time.Time
	ResponsibleID      *types.UserID
	TeamID             *types.TeamID
}

func (input UpdateActionInput) dateEdit() model.DateEdit {
	return model.DateEdit{
		ActualStartDate: input.ActualStartDate,
		ActualEndDate:   input.ActualEndDate,
	}
}

func applyEdits(a model.Action, input UpdateActionInput, now time.Time) model.Action {
	if input.Title != nil {
		a.Title = *input.Title
	}
	if input.Description != nil {
		a.Description = *input.Description
	}
	if input.Priority != nil {
		a.Priority = *input.Priority
	}
	if input.EstimatedStartDate != nil {
		a.EstimatedStartDate = *input.EstimatedStartDate
	}
	if input.EstimatedEndDate != nil {
		a.EstimatedEndDate = *input.EstimatedEndDate
	}
	if input.ActualStartDate != nil {
		t := *input.ActualStartDate
		a.ActualStartDate = &t
	}
	if input.ActualEndDate != nil {
		t := *input.ActualEndDate
		a.ActualEndDate = &t
	}
	if input.ResponsibleID != nil {
		a.ResponsibleID = *input.ResponsibleID
	}
	if input.TeamID != nil {
		a.TeamID = input.TeamID
	}
	a.UpdatedAt = now
	return a
}

// UpdateAction edits the fields of an action. Setting an actual date may
// pull the action forward through the board: a first actual start date moves
// a TODO action to IN_PROGRESS, a first actual end date moves it to DONE.
// Such implicit transitions relocate the card to the end of the new column
// but never produce a movement record.
func (uc *ActionUseCase) UpdateAction(ctx context.Context, companyID types.CompanyID, id types.ActionID, input UpdateActionInput) (*model.Action, error) {
	var result model.Action
	err := uc.repo.RunTransaction(ctx, func(ctx context.Context) error {
		action, err := uc.getAction(ctx, companyID, id)
		if err != nil {
			return err
		}

		now := clock.Now(ctx)

		// The transition is decided against the action as it was before
		// the edit, so a start and end date set together still means DONE.
		next := model.NextStatus(*action, input.dateEdit())

		candidate := applyEdits(*action, input, now)
		if err := candidate.Validate(); err != nil {
			return err
		}

		if next == action.Status {
			result = candidate
			return uc.repo.Action().Put(ctx, companyID, &result)
		}

		ord, err := uc.repo.Kanban().GetByAction(ctx, companyID, id)
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to get kanban order", goerr.V(ActionIDKey, id))
		}

		dest, err := uc.engine.AppendToEnd(ctx, companyID, next)
		if err != nil {
			return err
		}

		var shifts []model.PositionShift
		if ord != nil {
			shifts = append(shifts, model.PositionShift{
				Column: ord.Column,
				From:   ord.Position + 1,
				Delta:  -1,
			})
		}
		shifts = append(shifts, model.PositionShift{
			Column: next,
			From:   dest,
			Delta:  1,
		})
		if err := uc.engine.ShiftRanges(ctx, companyID, shifts...); err != nil {
			return err
		}

		if _, err := uc.engine.PlaceAt(ctx, companyID, id, next, dest, now); err != nil {
			return err
		}

		result = candidate.UpdateStatus(next, now)
		if err := uc.repo.Action().Put(ctx, companyID, &result); err != nil {
			return goerr.Wrap(err, "failed to update action", goerr.V(ActionIDKey, id))
		}

		logging.From(ctx).Debug("implicit status transition",
			"action_id", id,
			"from", action.Status,
			"to", next,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
