package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

type movementRepository struct {
	store *store
}

func copyMovement(m *model.ActionMovement) *model.ActionMovement {
	cp := *m
	if m.Notes != nil {
		notes := *m.Notes
		cp.Notes = &notes
	}
	if m.TimeSpent != nil {
		spent := *m.TimeSpent
		cp.TimeSpent = &spent
	}
	return &cp
}

func (r *movementRepository) Append(ctx context.Context, companyID types.CompanyID, movement *model.ActionMovement) error {
	if err := movement.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot append movement without ID")
	}

	r.store.write(ctx, func() {
		r.store.movements[companyID] = append(r.store.movements[companyID], copyMovement(movement))
	})
	return nil
}

func (r *movementRepository) ListByAction(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) ([]*model.ActionMovement, error) {
	movements := make([]*model.ActionMovement, 0)
	r.store.read(ctx, func() {
		for _, m := range r.store.movements[companyID] {
			if m.ActionID == actionID {
				movements = append(movements, copyMovement(m))
			}
		}
	})

	sort.Slice(movements, func(i, j int) bool {
		return movements[i].MovedAt.After(movements[j].MovedAt)
	})
	return movements, nil
}
