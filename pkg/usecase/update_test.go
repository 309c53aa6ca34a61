package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/usecase"
)

func TestUpdateFields(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "original title")
	b := env.createAction(t, "neighbor")

	title := "new title"
	desc := "refined description"
	prio := types.PriorityHigh
	updated, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		Title:       &title,
		Description: &desc,
		Priority:    &prio,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Title).Equal(title)
	gt.Value(t, updated.Description).Equal(desc)
	gt.Value(t, updated.Priority).Equal(types.PriorityHigh)
	gt.Value(t, updated.Status).Equal(types.ActionStatusTodo)

	// A plain field edit touches neither ordering nor history.
	ids := env.columnIDs(t, types.ActionStatusTodo)
	gt.Value(t, ids[0]).Equal(a.ID)
	gt.Value(t, ids[1]).Equal(b.ID)
	gt.Array(t, env.movements(t, a.ID)).Length(0)
}

func TestUpdateImplicitStartTransition(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "starting")
	b := env.createAction(t, "staying")

	started := day(11)
	updated, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		ActualStartDate: &started,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.ActionStatusInProgress)
	gt.Value(t, updated.ActualStartDate).NotNil().Required()
	gt.Value(t, *updated.ActualStartDate).Equal(started)

	// The card moved to the end of IN_PROGRESS and its old column closed up.
	todoIDs := env.columnIDs(t, types.ActionStatusTodo)
	gt.Array(t, todoIDs).Length(1)
	gt.Value(t, todoIDs[0]).Equal(b.ID)

	progIDs := env.columnIDs(t, types.ActionStatusInProgress)
	gt.Array(t, progIDs).Length(1)
	gt.Value(t, progIDs[0]).Equal(a.ID)

	// An implicit transition is not a movement.
	gt.Array(t, env.movements(t, a.ID)).Length(0)
}

func TestUpdateImplicitDoneTransition(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "finishing")

	finished := day(12)
	updated, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		ActualEndDate: &finished,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.ActionStatusDone)
	gt.Value(t, updated.ActualEndDate).NotNil().Required()
	gt.Value(t, *updated.ActualEndDate).Equal(finished)

	doneIDs := env.columnIDs(t, types.ActionStatusDone)
	gt.Array(t, doneIDs).Length(1)
	gt.Value(t, doneIDs[0]).Equal(a.ID)
	gt.Array(t, env.movements(t, a.ID)).Length(0)
}

func TestUpdateEndDateWinsOverStartDate(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "both dates at once")

	started := day(11)
	finished := day(12)
	updated, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		ActualStartDate: &started,
		ActualEndDate:   &finished,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.ActionStatusDone)
	gt.Value(t, *updated.ActualStartDate).Equal(started)
	gt.Value(t, *updated.ActualEndDate).Equal(finished)
}

func TestUpdateNoTransitionWhenAlreadyStarted(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "restarted")

	started := day(11)
	_, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		ActualStartDate: &started,
	})
	gt.NoError(t, err).Required()

	// Correcting an already recorded start date changes the value only.
	corrected := day(13)
	updated, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		ActualStartDate: &corrected,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.ActionStatusInProgress)
	gt.Value(t, *updated.ActualStartDate).Equal(corrected)

	progIDs := env.columnIDs(t, types.ActionStatusInProgress)
	gt.Array(t, progIDs).Length(1)
}

func TestUpdateStartDateOnInProgressAction(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "moved by hand")

	// An explicit move to IN_PROGRESS already stamped the start date, so a
	// later start date edit cannot transition again.
	_, err := env.uc.Action.MoveAction(env.ctx, env.companyID, usecase.MoveActionInput{
		ActionID:     a.ID,
		TargetStatus: types.ActionStatusInProgress,
		MovedByID:    types.UserID("user-mover"),
	})
	gt.NoError(t, err).Required()

	started := day(11)
	updated, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		ActualStartDate: &started,
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.Status).Equal(types.ActionStatusInProgress)
	gt.Array(t, env.movements(t, a.ID)).Length(1)
}

func TestUpdateValidationRollsBack(t *testing.T) {
	env := newTestEnv(t)
	a := env.createAction(t, "valid dates")

	badEnd := day(5)
	_, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, a.ID, usecase.UpdateActionInput{
		EstimatedEndDate: &badEnd,
	})
	gt.Error(t, err).Is(model.ErrInvalidDateRange)

	stored, err := env.uc.Action.GetAction(env.ctx, env.companyID, a.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, stored.EstimatedEndDate).Equal(day(20))
}

func TestUpdateActionNotFound(t *testing.T) {
	env := newTestEnv(t)

	title := "whatever"
	_, err := env.uc.Action.UpdateAction(env.ctx, env.companyID, types.NewActionID(), usecase.UpdateActionInput{
		Title: &title,
	})
	gt.Error(t, err).Is(usecase.ErrActionNotFound)
}
