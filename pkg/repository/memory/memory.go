package memory

import (
	"context"
	"sync"

	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is an in-memory implementation of interfaces.Repository, used for
// development and tests. Transactions take the global write lock for their
// whole duration and roll back to a snapshot on error, which gives the same
// all-or-nothing and serialization guarantees the Firestore backend provides.
type Memory struct {
	store    *store
	action   *actionRepository
	kanban   *kanbanRepository
	movement *movementRepository
}

var _ interfaces.Repository = &Memory{}

// New creates an empty in-memory repository
func New() *Memory {
	s := newStore()
	return &Memory{
		store:    s,
		action:   &actionRepository{store: s},
		kanban:   &kanbanRepository{store: s},
		movement: &movementRepository{store: s},
	}
}

func (m *Memory) Action() interfaces.ActionRepository {
	return m.action
}

func (m *Memory) Kanban() interfaces.KanbanRepository {
	return m.kanban
}

func (m *Memory) Movement() interfaces.MovementRepository {
	return m.movement
}

// RunTransaction executes fn under the global write lock. On error the store
// is restored to its pre-transaction snapshot.
func (m *Memory) RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	snap := m.store.snapshot()
	if err := fn(withTx(ctx)); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

func (m *Memory) Close() error {
	return nil
}

type txKey struct{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey{}, true)
}

func inTx(ctx context.Context) bool {
	v, ok := ctx.Value(txKey{}).(bool)
	return ok && v
}

// store holds all records guarded by a single lock. Repository methods go
// through read/write so operations inside a transaction reuse the lock the
// transaction already holds.
type store struct {
	mu        sync.RWMutex
	actions   map[types.CompanyID]map[types.ActionID]*model.Action
	orders    map[types.CompanyID]map[types.ActionID]*model.KanbanOrder
	movements map[types.CompanyID][]*model.ActionMovement
}

func newStore() *store {
	return &store{
		actions:   make(map[types.CompanyID]map[types.ActionID]*model.Action),
		orders:    make(map[types.CompanyID]map[types.ActionID]*model.KanbanOrder),
		movements: make(map[types.CompanyID][]*model.ActionMovement),
	}
}

func (s *store) read(ctx context.Context, fn func()) {
	if inTx(ctx) {
		fn()
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

func (s *store) write(ctx context.Context, fn func()) {
	if inTx(ctx) {
		fn()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

type storeSnapshot struct {
	actions   map[types.CompanyID]map[types.ActionID]*model.Action
	orders    map[types.CompanyID]map[types.ActionID]*model.KanbanOrder
	movements map[types.CompanyID][]*model.ActionMovement
}

// snapshot deep-copies all records. Callers must hold the write lock.
func (s *store) snapshot() *storeSnapshot {
	snap := &storeSnapshot{
		actions:   make(map[types.CompanyID]map[types.ActionID]*model.Action, len(s.actions)),
		orders:    make(map[types.CompanyID]map[types.ActionID]*model.KanbanOrder, len(s.orders)),
		movements: make(map[types.CompanyID][]*model.ActionMovement, len(s.movements)),
	}
	for cid, m := range s.actions {
		cp := make(map[types.ActionID]*model.Action, len(m))
		for id, a := range m {
			cp[id] = copyAction(a)
		}
		snap.actions[cid] = cp
	}
	for cid, m := range s.orders {
		cp := make(map[types.ActionID]*model.KanbanOrder, len(m))
		for id, o := range m {
			cp[id] = copyOrder(o)
		}
		snap.orders[cid] = cp
	}
	for cid, list := range s.movements {
		cp := make([]*model.ActionMovement, len(list))
		copy(cp, list)
		snap.movements[cid] = cp
	}
	return snap
}

// restore puts the store back to a snapshot. Callers must hold the write lock.
func (s *store) restore(snap *storeSnapshot) {
	s.actions = snap.actions
	s.orders = snap.orders
	s.movements = snap.movements
}
