package memory

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

type kanbanRepository struct {
	store *store
}

func copyOrder(o *model.KanbanOrder) *model.KanbanOrder {
	cp := *o
	return &cp
}

func (r *kanbanRepository) GetByAction(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) (*model.KanbanOrder, error) {
	var found *model.KanbanOrder
	r.store.read(ctx, func() {
		if company, exists := r.store.orders[companyID]; exists {
			if o, exists := company[actionID]; exists {
				found = copyOrder(o)
			}
		}
	})

	if found == nil {
		return nil, goerr.Wrap(ErrNotFound, "kanban order not found", goerr.V("action_id", actionID))
	}
	return found, nil
}

func (r *kanbanRepository) ListByColumn(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) ([]*model.KanbanOrder, error) {
	orders := make([]*model.KanbanOrder, 0)
	r.store.read(ctx, func() {
		for _, o := range r.store.orders[companyID] {
			if o.Column == column {
				orders = append(orders, copyOrder(o))
			}
		}
	})

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Position < orders[j].Position
	})
	return orders, nil
}

func (r *kanbanRepository) MaxPosition(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) (int, bool, error) {
	maxPos := 0
	found := false
	r.store.read(ctx, func() {
		for _, o := range r.store.orders[companyID] {
			if o.Column != column {
				continue
			}
			if !found || o.Position > maxPos {
				maxPos = o.Position
			}
			found = true
		}
	})
	return maxPos, found, nil
}

// Shift applies each range shift serially, so overlapping ranges in the same
// column compose like sequential updates.
func (r *kanbanRepository) Shift(ctx context.Context, companyID types.CompanyID, shifts []model.PositionShift) error {
	r.store.write(ctx, func() {
		for _, s := range shifts {
			for _, o := range r.store.orders[companyID] {
				if o.Column == s.Column && o.Position >= s.From {
					o.Position += s.Delta
				}
			}
		}
	})
	return nil
}

func (r *kanbanRepository) Put(ctx context.Context, companyID types.CompanyID, order *model.KanbanOrder) error {
	if err := order.ActionID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store kanban order without action ID")
	}

	r.store.write(ctx, func() {
		if _, exists := r.store.orders[companyID]; !exists {
			r.store.orders[companyID] = make(map[types.ActionID]*model.KanbanOrder)
		}
		r.store.orders[companyID][order.ActionID] = copyOrder(order)
	})
	return nil
}

func (r *kanbanRepository) Delete(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) error {
	var deleted bool
	r.store.write(ctx, func() {
		if company, exists := r.store.orders[companyID]; exists {
			if _, exists := company[actionID]; exists {
				delete(company, actionID)
				deleted = true
			}
		}
	})

	if !deleted {
		return goerr.Wrap(ErrNotFound, "kanban order not found", goerr.V("action_id", actionID))
	}
	return nil
}
