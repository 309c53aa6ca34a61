package interfaces

import (
	"context"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

// ActionRepository defines the persistence boundary for Action records.
// Soft-deleted actions are stored like any other; filtering them out is the
// use case layer's responsibility.
type ActionRepository interface {
	// Get retrieves an action by ID
	Get(ctx context.Context, companyID types.CompanyID, id types.ActionID) (*model.Action, error)

	// List retrieves all actions of a company, including soft-deleted ones
	List(ctx context.Context, companyID types.CompanyID) ([]*model.Action, error)

	// Put creates or replaces an action record
	Put(ctx context.Context, companyID types.CompanyID, action *model.Action) error
}
