package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// Action represents a work item moving through the kanban board. It is a
// copy-on-write value type: every transition method returns a new Action and
// never mutates the receiver. Lateness is not a stored field; it is always
// recomputed from the dates and the current time via CalculateIsLate, since a
// persisted flag goes stale relative to wall-clock time.
type Action struct {
	ID                 types.ActionID
	Title              string
	Description        string
	Status             types.ActionStatus
	Priority           types.Priority
	EstimatedStartDate time.Time
	EstimatedEndDate   time.Time
	ActualStartDate    *time.Time
	ActualEndDate      *time.Time
	IsBlocked          bool
	BlockedReason      *string
	CompanyID          types.CompanyID
	TeamID             *types.TeamID
	CreatorID          types.UserID
	ResponsibleID      types.UserID
	DeletedAt          *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// dateOnly truncates a timestamp to whole-day granularity in UTC. Business
// dates carry calendar-date semantics, so lateness comparisons must ignore
// the time of day.
func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// CalculateIsLate reports whether the action is late as of now. A DONE action
// is never late. Equality at the due date is never late.
func (a Action) CalculateIsLate(now time.Time) bool {
	if a.Status == types.ActionStatusDone {
		return false
	}
	due := dateOnly(a.EstimatedEndDate)
	if a.ActualEndDate != nil {
		return dateOnly(*a.ActualEndDate).After(due)
	}
	return dateOnly(now).After(due)
}

// UpdateStatus returns a copy of the action with the given status. The actual
// start date is stamped when entering IN_PROGRESS for the first time and the
// actual end date when entering DONE for the first time; repeated transitions
// to the same status never re-stamp either date.
func (a Action) UpdateStatus(status types.ActionStatus, now time.Time) Action {
	next := a
	if status == types.ActionStatusInProgress && a.ActualStartDate == nil {
		t := now
		next.ActualStartDate = &t
	}
	if status == types.ActionStatusDone && a.ActualEndDate == nil {
		t := now
		next.ActualEndDate = &t
	}
	next.Status = status
	next.UpdatedAt = now
	return next
}

// Block returns a copy of the action marked blocked. The reason is mandatory.
func (a Action) Block(reason string, now time.Time) (Action, error) {
	if strings.TrimSpace(reason) == "" {
		return Action{}, goerr.Wrap(ErrBlockedReasonRequired, "cannot block action without a reason",
			goerr.V(ActionIDKey, a.ID))
	}
	next := a
	next.IsBlocked = true
	next.BlockedReason = &reason
	next.UpdatedAt = now
	return next, nil
}

// Unblock returns a copy of the action with the blocked state cleared.
func (a Action) Unblock(now time.Time) Action {
	next := a
	next.IsBlocked = false
	next.BlockedReason = nil
	next.UpdatedAt = now
	return next
}

// Delete returns a soft-deleted copy of the action. Movement history is kept
// by the repositories even after deletion.
func (a Action) Delete(now time.Time) Action {
	next := a
	t := now
	next.DeletedAt = &t
	next.UpdatedAt = now
	return next
}

// IsDeleted reports whether the action has been soft-deleted
func (a Action) IsDeleted() bool {
	return a.DeletedAt != nil
}

// Validate checks the field invariants of the action
func (a Action) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return goerr.Wrap(ErrTitleRequired, "invalid action", goerr.V(ActionIDKey, a.ID))
	}
	if !a.Status.IsValid() {
		return goerr.Wrap(ErrInvalidStatus, "invalid action", goerr.V(StatusKey, a.Status))
	}
	if err := a.CompanyID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid action", goerr.V(ActionIDKey, a.ID))
	}
	if dateOnly(a.EstimatedEndDate).Before(dateOnly(a.EstimatedStartDate)) {
		return goerr.Wrap(ErrInvalidDateRange, "invalid action",
			goerr.V(ActionIDKey, a.ID),
			goerr.V("estimated_start", a.EstimatedStartDate),
			goerr.V("estimated_end", a.EstimatedEndDate))
	}
	if a.IsBlocked && (a.BlockedReason == nil || strings.TrimSpace(*a.BlockedReason) == "") {
		return goerr.Wrap(ErrBlockedReasonRequired, "invalid action", goerr.V(ActionIDKey, a.ID))
	}
	if !a.IsBlocked && a.BlockedReason != nil {
		return goerr.Wrap(ErrBlockedReasonRequired, "blocked reason set on unblocked action",
			goerr.V(ActionIDKey, a.ID))
	}
	return nil
}
