package memory

import (
	"context"
	"sort"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

type actionRepository struct {
	store *store
}

// copyAction creates a deep copy of an action
func copyAction(a *model.Action) *model.Action {
	cp := *a
	cp.ActualStartDate = copyTime(a.ActualStartDate)
	cp.ActualEndDate = copyTime(a.ActualEndDate)
	cp.DeletedAt = copyTime(a.DeletedAt)
	if a.BlockedReason != nil {
		reason := *a.BlockedReason
		cp.BlockedReason = &reason
	}
	if a.TeamID != nil {
		team := *a.TeamID
		cp.TeamID = &team
	}
	return &cp
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

func (r *actionRepository) Get(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, error) {
	var found *model.Action
	r.store.read(ctx, func() {
		if company, exists := r.store.actions[companyID]; exists {
			if a, exists := company[id]; exists {
				found = copyAction(a)
			}
		}
	})

	if found == nil {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}
	return found, nil
}

func (r *actionRepository) List(ctx context.Context, companyID types.CompanyID) ([]*model.Action, error) {
	actions := make([]*model.Action, 0)
	r.store.read(ctx, func() {
		for _, a := range r.store.actions[companyID] {
			actions = append(actions, copyAction(a))
		}
	})

	sort.Slice(actions, func(i, j int) bool {
		return actions[i].CreatedAt.Before(actions[j].CreatedAt)
	})
	return actions, nil
}

func (r *actionRepository) Put(ctx context.Context, companyID types.CompanyID, action *model.Action) error {
	if err := action.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store action without ID")
	}

	r.store.write(ctx, func() {
		if _, exists := r.store.actions[companyID]; !exists {
			r.store.actions[companyID] = make(map[types.ActionID]*model.Action)
		}
		r.store.actions[companyID][action.ID] = copyAction(action)
	})
	return nil
}
