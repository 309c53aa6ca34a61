package interfaces

import (
	"context"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// MovementRepository defines the persistence boundary for the append-only
// movement audit log. Records are never updated or deleted.
type MovementRepository interface {
	// Append stores a new movement record
	Append(ctx context.Context, companyID types.CompanyID, movement *model.ActionMovement) error

	// ListByAction retrieves the movements of an action, most recent first
	ListByAction(ctx context.Context, companyID types.CompanyID, actionID types.ActionID) ([]*model.ActionMovement, error)
}
