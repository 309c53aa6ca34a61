package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

func TestNextStatus(t *testing.T) {
	d1 := day(2025, 3, 3)
	d2 := day(2025, 3, 7)

	t.Run("setting start date on TODO starts the action", func(t *testing.T) {
		a := newTestAction()
		next := model.NextStatus(a, model.DateEdit{ActualStartDate: &d1})
		gt.Value(t, next).Equal(types.ActionStatusInProgress)
	})

	t.Run("setting end date finishes the action", func(t *testing.T) {
		a := newTestAction()
		next := model.NextStatus(a, model.DateEdit{ActualEndDate: &d2})
		gt.Value(t, next).Equal(types.ActionStatusDone)
	})

	t.Run("end date wins over start date in the same edit", func(t *testing.T) {
		a := newTestAction()
		next := model.NextStatus(a, model.DateEdit{ActualStartDate: &d1, ActualEndDate: &d2})
		gt.Value(t, next).Equal(types.ActionStatusDone)
	})

	t.Run("editing start date while already started is a no-op", func(t *testing.T) {
		a := newTestAction()
		a.Status = types.ActionStatusInProgress
		a.ActualStartDate = &d1

		later := day(2025, 3, 9)
		next := model.NextStatus(a, model.DateEdit{ActualStartDate: &later})
		gt.Value(t, next).Equal(types.ActionStatusInProgress)
	})

	t.Run("editing end date while already done is a no-op", func(t *testing.T) {
		a := newTestAction()
		a.Status = types.ActionStatusDone
		a.ActualEndDate = &d2

		later := day(2025, 3, 9)
		next := model.NextStatus(a, model.DateEdit{ActualEndDate: &later})
		gt.Value(t, next).Equal(types.ActionStatusDone)
	})

	t.Run("setting start date on non-TODO action without one does not start it", func(t *testing.T) {
		a := newTestAction()
		a.Status = types.ActionStatusDone
		end := day(2025, 3, 2)
		a.ActualEndDate = &end

		next := model.NextStatus(a, model.DateEdit{ActualStartDate: &d1})
		gt.Value(t, next).Equal(types.ActionStatusDone)
	})

	t.Run("no date edits leave status unchanged", func(t *testing.T) {
		a := newTestAction()
		gt.Value(t, model.NextStatus(a, model.DateEdit{})).Equal(types.ActionStatusTodo)
	})
}
