package firestore

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type movementRepository struct {
	fs *Firestore
}

func (r *movementRepository) collection(companyID types.CompanyID) *firestore.CollectionRef {
	return r.fs.companies().Doc(companyID.String()).Collection("movements")
}

func (r *movementRepository) Append(ctx context.Context, companyID types.CompanyID, movement *model.ActionMovement) error {
	if err := movement.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot append movement without ID")
	}

	// Create, not Set: the audit log is append-only and an ID collision is a bug
	if err := createDoc(ctx, r.collection(companyID).Doc(movement.ID.String()), movement); err != nil {
		return goerr.Wrap(err, "failed to append movement", goerr.V("id", movement.ID))
	}
	return nil
}

func (r *movementRepository) ListByAction(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) ([]*model.ActionMovement, error) {
	// sorted in memory to avoid a composite index on (ActionID, MovedAt)
	q := r.collection(companyID).Where("ActionID", "==", actionID.String())
	iter := queryDocs(ctx, q)
	defer iter.Stop()

	movements := make([]*model.ActionMovement, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate movements", goerr.V("action_id", actionID))
		}

		var m model.ActionMovement
		if err := docSnap.DataTo(&m); err != nil {
			return nil, goerr.Wrap(err, "failed to decode movement", goerr.V("doc_id", docSnap.Ref.ID))
		}
		movements = append(movements, &m)
	}

	sort.Slice(movements, func(i, j int) bool {
		return movements[i].MovedAt.After(movements[j].MovedAt)
	})
	return movements, nil
}
