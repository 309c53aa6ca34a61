package interfaces

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is wrapped by every repository backend when a record does not
// exist, so callers can distinguish a missing record from an infrastructure
// failure without knowing the backend.
var ErrNotFound = goerr.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Action() ActionRepository
	Kanban() KanbanRepository
	Movement() MovementRepository

	// RunTransaction executes fn atomically. The transaction handle is
	// carried in the context passed to fn; repository methods called with
	// that context route their reads and writes through it. If fn returns an
	// error, none of its writes are applied. Concurrent transactions
	// touching the same column serialize against each other.
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases backend resources
	Close() error
}
