package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type kanbanRepository struct {
	fs *Firestore
}

func (r *kanbanRepository) collection(companyID types.CompanyID) *firestore.CollectionRef {
	return r.fs.companies().Doc(companyID.String()).Collection("kanban")
}

func (r *kanbanRepository) GetByAction(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) (*model.KanbanOrder, error) {
	docSnap, err := getDoc(ctx, r.collection(companyID).Doc(actionID.String()))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "kanban order not found", goerr.V("action_id", actionID))
		}
		return nil, goerr.Wrap(err, "failed to get kanban order", goerr.V("action_id", actionID))
	}

	var o model.KanbanOrder
	if err := docSnap.DataTo(&o); err != nil {
		return nil, goerr.Wrap(err, "failed to decode kanban order", goerr.V("action_id", actionID))
	}
	return &o, nil
}

func (r *kanbanRepository) ListByColumn(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) ([]*model.KanbanOrder, error) {
	q := r.collection(companyID).
		Where("Column", "==", column.String()).
		OrderBy("Position", firestore.Asc)
	iter := queryDocs(ctx, q)
	defer iter.Stop()

	orders := make([]*model.KanbanOrder, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate kanban orders", goerr.V("column", column))
		}

		var o model.KanbanOrder
		if err := docSnap.DataTo(&o); err != nil {
			return nil, goerr.Wrap(err, "failed to decode kanban order", goerr.V("doc_id", docSnap.Ref.ID))
		}
		orders = append(orders, &o)
	}
	return orders, nil
}

func (r *kanbanRepository) MaxPosition(ctx context.Context, companyID types.CompanyID, column types.ActionStatus) (int, bool, error) {
	q := r.collection(companyID).
		Where("Column", "==", column.String()).
		OrderBy("Position", firestore.Desc).
		Limit(1)
	iter := queryDocs(ctx, q)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, goerr.Wrap(err, "failed to query max position", goerr.V("column", column))
	}

	var o model.KanbanOrder
	if err := docSnap.DataTo(&o); err != nil {
		return 0, false, goerr.Wrap(err, "failed to decode kanban order", goerr.V("doc_id", docSnap.Ref.ID))
	}
	return o.Position, true, nil
}

// Shift reads every affected order first and only then writes the final
// positions. Firestore transactions reject reads issued after the first
// write, so the read phase covers all ranges before any update. The shifts
// themselves are simulated serially over the read set, which makes
// overlapping ranges in the same column compose like sequential updates.
func (r *kanbanRepository) Shift(ctx context.Context, companyID types.CompanyID, shifts []model.PositionShift) error {
	if len(shifts) == 0 {
		return nil
	}

	// lowest From per column bounds the read range
	minFrom := make(map[types.ActionStatus]int)
	for _, s := range shifts {
		if from, ok := minFrom[s.Column]; !ok || s.From < from {
			minFrom[s.Column] = s.From
		}
	}

	type affected struct {
		ref      *firestore.DocumentRef
		order    model.KanbanOrder
		original int
	}
	var docs []*affected

	for column, from := range minFrom {
		q := r.collection(companyID).
			Where("Column", "==", column.String()).
			Where("Position", ">=", from)
		iter := queryDocs(ctx, q)
		for {
			docSnap, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				return goerr.Wrap(err, "failed to query kanban orders for shift", goerr.V("column", column))
			}

			var o model.KanbanOrder
			if err := docSnap.DataTo(&o); err != nil {
				iter.Stop()
				return goerr.Wrap(err, "failed to decode kanban order", goerr.V("doc_id", docSnap.Ref.ID))
			}
			docs = append(docs, &affected{ref: docSnap.Ref, order: o, original: o.Position})
		}
		iter.Stop()
	}

	for _, s := range shifts {
		for _, d := range docs {
			if d.order.Column == s.Column && d.order.Position >= s.From {
				d.order.Position += s.Delta
			}
		}
	}

	for _, d := range docs {
		if d.order.Position == d.original {
			continue
		}
		if err := updateDoc(ctx, d.ref, []firestore.Update{
			{Path: "Position", Value: d.order.Position},
		}); err != nil {
			return goerr.Wrap(err, "failed to shift kanban order", goerr.V("doc_id", d.ref.ID))
		}
	}
	return nil
}

func (r *kanbanRepository) Put(ctx context.Context, companyID types.CompanyID, order *model.KanbanOrder) error {
	if err := order.ActionID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store kanban order without action ID")
	}

	if err := setDoc(ctx, r.collection(companyID).Doc(order.ActionID.String()), order); err != nil {
		return goerr.Wrap(err, "failed to put kanban order", goerr.V("action_id", order.ActionID))
	}
	return nil
}

func (r *kanbanRepository) Delete(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) error {
	if err := deleteDoc(ctx, r.collection(companyID).Doc(actionID.String())); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "kanban order not found", goerr.V("action_id", actionID))
		}
		return goerr.Wrap(err, "failed to delete kanban order", goerr.V("action_id", actionID))
	}
	return nil
}
