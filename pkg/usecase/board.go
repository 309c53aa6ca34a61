package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/utils/clock"
)

// BoardUseCase renders the kanban board read model.
type BoardUseCase struct {
	repo interfaces.Repository
}

func NewBoardUseCase(repo interfaces.Repository) *BoardUseCase {
	return &BoardUseCase{repo: repo}
}

// BoardItem is one card on the board. IsLate is computed at read time.
type BoardItem struct {
	Action   *model.Action
	Position int
	IsLate   bool
}

// Board holds one ordered slice of items per status column.
type Board struct {
	Columns map[types.ActionStatus][]*BoardItem
}

// GetBoard assembles the full board for a company. Each column comes back
// sorted by position. Soft-deleted actions never appear.
func (uc *BoardUseCase) GetBoard(ctx context.Context, companyID types.CompanyID) (*Board, error) {
	statuses := types.AllActionStatuses()

	var actions []*model.Action
	columns := make([][]*model.KanbanOrder, len(statuses))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		actions, err = uc.repo.Action().List(egCtx, companyID)
		if err != nil {
			return goerr.Wrap(err, "failed to list actions", goerr.V(CompanyIDKey, companyID))
		}
		return nil
	})
	for i, status := range statuses {
		eg.Go(func() error {
			var err error
			columns[i], err = uc.repo.Kanban().ListByColumn(egCtx, companyID, status)
			if err != nil {
				return goerr.Wrap(err, "failed to list column", goerr.V(ColumnKey, status))
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	byID := make(map[types.ActionID]*model.Action, len(actions))
	for _, a := range actions {
		if !a.IsDeleted() {
			byID[a.ID] = a
		}
	}

	now := clock.Now(ctx)
	board := &Board{Columns: make(map[types.ActionStatus][]*BoardItem, len(statuses))}
	for i, status := range statuses {
		items := make([]*BoardItem, 0, len(columns[i]))
		for _, ord := range columns[i] {
			action, ok := byID[ord.ActionID]
			if !ok {
				continue
			}
			items = append(items, &BoardItem{
				Action:   action,
				Position: ord.Position,
				IsLate:   action.CalculateIsLate(now),
			})
		}
		board.Columns[status] = items
	}
	return board, nil
}
