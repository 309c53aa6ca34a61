package model

import (
	"time"

	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// DateEdit carries the actual-date fields of a sparse update request. A nil
// field means the caller did not touch it.
type DateEdit struct {
	ActualStartDate *time.Time
	ActualEndDate   *time.Time
}

// NextStatus decides the status an action ends up in when its business date
// fields are edited without an explicit target column. Rules, in precedence
// order:
//
//  1. Setting an actual end date on an action that has none finishes it:
//     the result is DONE. This wins even when an actual start date is set in
//     the same edit.
//  2. Setting an actual start date on a TODO action that has none starts it:
//     the result is IN_PROGRESS.
//  3. Anything else leaves the status unchanged.
//
// Explicit moves do not go through this predicate; any target column a user
// picks directly is accepted as-is.
func NextStatus(a Action, edit DateEdit) types.ActionStatus {
	if edit.ActualEndDate != nil && a.ActualEndDate == nil {
		return types.ActionStatusDone
	}
	if edit.ActualStartDate != nil && a.ActualStartDate == nil && a.Status == types.ActionStatusTodo {
		return types.ActionStatusInProgress
	}
	return a.Status
}
