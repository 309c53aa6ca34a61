package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
)

// Firestore is the production implementation of interfaces.Repository.
// RunTransaction maps directly onto a Firestore transaction; the handle is
// carried in the context so repository methods route reads and writes through
// it. Firestore requires every read in a transaction to happen before the
// first write, so callers sequence load/max-position/shift reads ahead of all
// writes.
type Firestore struct {
	client           *firestore.Client
	collectionPrefix string
	action           *actionRepository
	kanban           *kanbanRepository
	movement         *movementRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces all top-level collections, used to isolate
// test runs against a shared project.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("project_id", projectID))
	}

	f := &Firestore{client: client}
	for _, opt := range opts {
		opt(f)
	}

	f.action = &actionRepository{fs: f}
	f.kanban = &kanbanRepository{fs: f}
	f.movement = &movementRepository{fs: f}

	return f, nil
}

func (f *Firestore) Action() interfaces.ActionRepository {
	return f.action
}

func (f *Firestore) Kanban() interfaces.KanbanRepository {
	return f.kanban
}

func (f *Firestore) Movement() interfaces.MovementRepository {
	return f.movement
}

func (f *Firestore) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx) != nil {
		return fn(ctx)
	}
	return f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(withTx(ctx, tx))
	})
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

func (f *Firestore) companies() *firestore.CollectionRef {
	name := "companies"
	if f.collectionPrefix != "" {
		name = f.collectionPrefix + "_companies"
	}
	return f.client.Collection(name)
}

type txKey struct{}

func withTx(ctx context.Context, tx *firestore.Transaction) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func txFrom(ctx context.Context) *firestore.Transaction {
	tx, _ := ctx.Value(txKey{}).(*firestore.Transaction)
	return tx
}

// getDoc reads a document either through the transaction in ctx or directly
func getDoc(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	if tx := txFrom(ctx); tx != nil {
		return tx.Get(ref)
	}
	return ref.Get(ctx)
}

// queryDocs runs a query either through the transaction in ctx or directly
func queryDocs(ctx context.Context, q firestore.Query) *firestore.DocumentIterator {
	if tx := txFrom(ctx); tx != nil {
		return tx.Documents(q)
	}
	return q.Documents(ctx)
}

// setDoc writes a document either through the transaction in ctx or directly
func setDoc(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if tx := txFrom(ctx); tx != nil {
		return tx.Set(ref, data)
	}
	_, err := ref.Set(ctx, data)
	return err
}

// createDoc creates a document, failing if it already exists
func createDoc(ctx context.Context, ref *firestore.DocumentRef, data any) error {
	if tx := txFrom(ctx); tx != nil {
		return tx.Create(ref, data)
	}
	_, err := ref.Create(ctx, data)
	return err
}

// updateDoc applies field updates either through the transaction in ctx or directly
func updateDoc(ctx context.Context, ref *firestore.DocumentRef, updates []firestore.Update) error {
	if tx := txFrom(ctx); tx != nil {
		return tx.Update(ref, updates)
	}
	_, err := ref.Update(ctx, updates)
	return err
}

// deleteDoc removes a document either through the transaction in ctx or directly
func deleteDoc(ctx context.Context, ref *firestore.DocumentRef) error {
	if tx := txFrom(ctx); tx != nil {
		return tx.Delete(ref)
	}
	_, err := ref.Delete(ctx)
	return err
}
