package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/service/kanban"
	"github.com/luanacfraga/tooldo/pkg/utils/clock"
)

// ActionUseCase orchestrates the lifecycle of actions on the kanban board.
// Every multi-step flow runs inside one repository transaction so positions
// and audit records can never be observed half-written.
type ActionUseCase struct {
	repo   interfaces.Repository
	engine *kanban.Engine
}

func NewActionUseCase(repo interfaces.Repository, engine *kanban.Engine) *ActionUseCase {
	return &ActionUseCase{
		repo:   repo,
		engine: engine,
	}
}

// CreateActionInput carries the fields of a new action. Status is not part of
// the input: every action starts in TODO at the end of the column.
type CreateActionInput struct {
	Title              string
	Description        string
	Priority           types.Priority
	EstimatedStartDate time.Time
	EstimatedEndDate   time.Time
	TeamID             *types.TeamID
	CreatorID          types.UserID
	ResponsibleID      types.UserID
}

func (uc *ActionUseCase) CreateAction(ctx context.Context, companyID types.CompanyID, input CreateActionInput) (*model.Action, *model.KanbanOrder, error) {
	now := clock.Now(ctx)

	if input.Priority == "" {
		input.Priority = types.PriorityMedium
	}

	action := model.Action{
		ID:                 types.NewActionID(),
		Title:              input.Title,
		Description:        input.Description,
		Status:             types.ActionStatusTodo,
		Priority:           input.Priority,
		EstimatedStartDate: input.EstimatedStartDate,
		EstimatedEndDate:   input.EstimatedEndDate,
		CompanyID:          companyID,
		TeamID:             input.TeamID,
		CreatorID:          input.CreatorID,
		ResponsibleID:      input.ResponsibleID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := action.Validate(); err != nil {
		return nil, nil, err
	}

	var order *model.KanbanOrder
	err := uc.repo.RunTransaction(ctx, func(ctx context.Context) error {
		pos, err := uc.engine.AppendToEnd(ctx, companyID, types.ActionStatusTodo)
		if err != nil {
			return err
		}

		if err := uc.repo.Action().Put(ctx, companyID, &action); err != nil {
			return goerr.Wrap(err, "failed to create action", goerr.V(ActionIDKey, action.ID))
		}

		order, err = uc.engine.PlaceAt(ctx, companyID, action.ID, types.ActionStatusTodo, pos, now)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return &action, order, nil
}

// getAction loads an action and maps both a missing and a soft-deleted record
// to ErrActionNotFound.
func (uc *ActionUseCase) getAction(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrActionNotFound, "action not found", goerr.V(ActionIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V(ActionIDKey, id))
	}
	if action.IsDeleted() {
		return nil, goerr.Wrap(ErrActionNotFound, "action is deleted", goerr.V(ActionIDKey, id))
	}
	return action, nil
}

func (uc *ActionUseCase) GetAction(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, error) {
	return uc.getAction(ctx, companyID, id)
}

// GetActionWithOrder returns an action together with its board placement.
func (uc *ActionUseCase) GetActionWithOrder(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, *model.KanbanOrder, error) {
	action, err := uc.getAction(ctx, companyID, id)
	if err != nil {
		return nil, nil, err
	}
	order, err := uc.repo.Kanban().GetByAction(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return action, nil, nil
		}
		return nil, nil, goerr.Wrap(err, "failed to get kanban order", goerr.V(ActionIDKey, id))
	}
	return action, order, nil
}

func (uc *ActionUseCase) ListActions(ctx context.Context, companyID types.CompanyID) ([]*model.Action, error) {
	actions, err := uc.repo.Action().List(ctx, companyID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list actions", goerr.V(CompanyIDKey, companyID))
	}

	alive := make([]*model.Action, 0, len(actions))
	for _, a := range actions {
		if !a.IsDeleted() {
			alive = append(alive, a)
		}
	}
	return alive, nil
}

// DeleteAction soft-deletes the action, removes its board placement and
// closes the gap it left in its column. Movement history is retained.
func (uc *ActionUseCase) DeleteAction(ctx context.Context, companyID types.CompanyID, id types.ActionID) error {
	return uc.repo.RunTransaction(ctx, func(ctx context.Context) error {
		action, err := uc.getAction(ctx, companyID, id)
		if err != nil {
			return err
		}

		order, err := uc.repo.Kanban().GetByAction(ctx, companyID, id)
		if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(err, "failed to get kanban order", goerr.V(ActionIDKey, id))
		}

		if order != nil {
			if err := uc.engine.ShiftRange(ctx, companyID, order.Column, order.Position+1, -1); err != nil {
				return err
			}
			if err := uc.repo.Kanban().Delete(ctx, companyID, id); err != nil {
				return goerr.Wrap(err, "failed to delete kanban order", goerr.V(ActionIDKey, id))
			}
		}

		deleted := action.Delete(clock.Now(ctx))
		if err := uc.repo.Action().Put(ctx, companyID, &deleted); err != nil {
			return goerr.Wrap(err, "failed to delete action", goerr.V(ActionIDKey, id))
		}
		return nil
	})
}

// BlockAction marks the action blocked with a mandatory reason
func (uc *ActionUseCase) BlockAction(ctx context.Context, companyID types.CompanyID, id types.ActionID, reason string) (*model.Action, error) {
	var blocked model.Action
	err := uc.repo.RunTransaction(ctx, func(ctx context.Context) error {
		action, err := uc.getAction(ctx, companyID, id)
		if err != nil {
			return err
		}

		blocked, err = action.Block(reason, clock.Now(ctx))
		if err != nil {
			return err
		}
		return uc.repo.Action().Put(ctx, companyID, &blocked)
	})
	if err != nil {
		return nil, err
	}
	return &blocked, nil
}

// UnblockAction clears the blocked flag and its reason
func (uc *ActionUseCase) UnblockAction(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, error) {
	var unblocked model.Action
	err := uc.repo.RunTransaction(ctx, func(ctx context.Context) error {
		action, err := uc.getAction(ctx, companyID, id)
		if err != nil {
			return err
		}

		unblocked = action.Unblock(clock.Now(ctx))
		return uc.repo.Action().Put(ctx, companyID, &unblocked)
	})
	if err != nil {
		return nil, err
	}
	return &unblocked, nil
}

// ListMovements returns the audit history of an action, most recent first.
// The history of a soft-deleted action stays readable.
func (uc *ActionUseCase) ListMovements(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) ([]*model.ActionMovement, error) {
	movements, err := uc.repo.Movement().ListByAction(ctx, companyID, actionID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list movements", goerr.V(ActionIDKey, actionID))
	}
	return movements, nil
}
