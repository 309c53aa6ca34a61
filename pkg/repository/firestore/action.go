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

type actionRepository struct {
	fs *Firestore
}

func (r *actionRepository) collection(companyID types.CompanyID) *firestore.CollectionRef {
	return r.fs.companies().Doc(companyID.String()).Collection("actions")
}

func (r *actionRepository) Get(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, error) {
	docSnap, err := getDoc(ctx, r.collection(companyID).Doc(id.String()))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "action not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", id))
	}

	var a model.Action
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
	}
	return &a, nil
}

func (r *actionRepository) List(ctx context.Context, companyID types.CompanyID) ([]*model.Action, error) {
	iter := queryDocs(ctx, r.collection(companyID).Query)
	defer iter.Stop()

	actions := make([]*model.Action, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate actions")
		}

		var a model.Action
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode action", goerr.V("doc_id", docSnap.Ref.ID))
		}
		actions = append(actions, &a)
	}
	return actions, nil
}

func (r *actionRepository) Put(ctx context.Context, companyID types.CompanyID, action *model.Action) error {
	if err := action.ID.Validate(); err != nil {
		return goerr.Wrap(err, "cannot store action without ID")
	}

	if err := setDoc(ctx, r.collection(companyID).Doc(action.ID.String()), action); err != nil {
		return goerr.Wrap(err, "failed to put action", goerr.V("id", action.ID))
	}
	return nil
}
