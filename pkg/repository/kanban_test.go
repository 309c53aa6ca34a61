package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/luanacfraga/tooldo/pkg/domain/interfaces"
	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
)

func putOrder(t *testing.T, repo interfaces.Repository, companyID types.CompanyID, column types.ActionStatus, position int) *model.KanbanOrder {
	t.Helper()
	order := &model.KanbanOrder{
		ActionID:    types.NewActionID(),
		Column:      column,
		Position:    position,
		LastMovedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	gt.NoError(t, repo.Kanban().Put(context.Background(), companyID, order)).Required()
	return order
}

func runKanbanRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	const companyID = types.CompanyID("test-company")

	t.Run("GetByAction round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		order := putOrder(t, repo, companyID, types.ActionStatusTodo, 3)

		got, err := repo.Kanban().GetByAction(ctx, companyID, order.ActionID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ActionID).Equal(order.ActionID)
		gt.Value(t, got.Column).Equal(types.ActionStatusTodo)
		gt.Value(t, got.Position).Equal(3)
	})

	t.Run("GetByAction missing returns not found", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Kanban().GetByAction(ctx, companyID, types.NewActionID())
		gt.Error(t, err).Required()
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListByColumn sorts by position", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		c := putOrder(t, repo, companyID, types.ActionStatusTodo, 2)
		a := putOrder(t, repo, companyID, types.ActionStatusTodo, 0)
		b := putOrder(t, repo, companyID, types.ActionStatusTodo, 1)
		putOrder(t, repo, companyID, types.ActionStatusDone, 0)

		orders, err := repo.Kanban().ListByColumn(ctx, companyID, types.ActionStatusTodo)
		gt.NoError(t, err).Required()
		gt.Array(t, orders).Length(3)
		gt.Value(t, orders[0].ActionID).Equal(a.ActionID)
		gt.Value(t, orders[1].ActionID).Equal(b.ActionID)
		gt.Value(t, orders[2].ActionID).Equal(c.ActionID)
	})

	t.Run("MaxPosition on empty column", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, ok, err := repo.Kanban().MaxPosition(ctx, companyID, types.ActionStatusDone)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).False()
	})

	t.Run("MaxPosition on populated column", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		putOrder(t, repo, companyID, types.ActionStatusTodo, 0)
		putOrder(t, repo, companyID, types.ActionStatusTodo, 4)

		max, ok, err := repo.Kanban().MaxPosition(ctx, companyID, types.ActionStatusTodo)
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
		gt.Value(t, max).Equal(4)
	})

	t.Run("Shift moves the tail of a column", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := putOrder(t, repo, companyID, types.ActionStatusTodo, 0)
		b := putOrder(t, repo, companyID, types.ActionStatusTodo, 1)
		c := putOrder(t, repo, companyID, types.ActionStatusTodo, 2)

		err := repo.Kanban().Shift(ctx, companyID, []model.PositionShift{
			{Column: types.ActionStatusTodo, From: 1, Delta: 1},
		})
		gt.NoError(t, err).Required()

		for _, tc := range []struct {
			order *model.KanbanOrder
			want  int
		}{
			{a, 0}, {b, 2}, {c, 3},
		} {
			got, err := repo.Kanban().GetByAction(ctx, companyID, tc.order.ActionID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Position).Equal(tc.want)
		}
	})

	t.Run("Shift applies ranges in order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := putOrder(t, repo, companyID, types.ActionStatusTodo, 1)
		b := putOrder(t, repo, companyID, types.ActionStatusDone, 0)

		// Close a gap in one column and open a slot in another, as a
		// single cross-column move does.
		err := repo.Kanban().Shift(ctx, companyID, []model.PositionShift{
			{Column: types.ActionStatusTodo, From: 1, Delta: -1},
			{Column: types.ActionStatusDone, From: 0, Delta: 1},
		})
		gt.NoError(t, err).Required()

		gotA, err := repo.Kanban().GetByAction(ctx, companyID, a.ActionID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotA.Position).Equal(0)

		gotB, err := repo.Kanban().GetByAction(ctx, companyID, b.ActionID)
		gt.NoError(t, err).Required()
		gt.Value(t, gotB.Position).Equal(1)
	})

	t.Run("Overlapping shifts on one column compose serially", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		a := putOrder(t, repo, companyID, types.ActionStatusTodo, 0)
		b := putOrder(t, repo, companyID, types.ActionStatusTodo, 1)
		c := putOrder(t, repo, companyID, types.ActionStatusTodo, 2)

		// Removing position 0 then inserting at position 2 is how an
		// in-column move to the back is expressed.
		err := repo.Kanban().Shift(ctx, companyID, []model.PositionShift{
			{Column: types.ActionStatusTodo, From: 1, Delta: -1},
			{Column: types.ActionStatusTodo, From: 2, Delta: 1},
		})
		gt.NoError(t, err).Required()

		for _, tc := range []struct {
			order *model.KanbanOrder
			want  int
		}{
			{a, 0}, {b, 0}, {c, 1},
		} {
			got, err := repo.Kanban().GetByAction(ctx, companyID, tc.order.ActionID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Position).Equal(tc.want)
		}
	})

	t.Run("Delete removes the placement", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		order := putOrder(t, repo, companyID, types.ActionStatusTodo, 0)
		gt.NoError(t, repo.Kanban().Delete(ctx, companyID, order.ActionID)).Required()

		_, err := repo.Kanban().GetByAction(ctx, companyID, order.ActionID)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("RunTransaction rolls back on error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		order := putOrder(t, repo, companyID, types.ActionStatusTodo, 0)

		wantErr := errors.New("abort")
		err := repo.RunTransaction(ctx, func(ctx context.Context) error {
			if err := repo.Kanban().Shift(ctx, companyID, []model.PositionShift{
				{Column: types.ActionStatusTodo, From: 0, Delta: 5},
			}); err != nil {
				return err
			}
			return wantErr
		})
		gt.Error(t, err).Required()

		got, err := repo.Kanban().GetByAction(ctx, companyID, order.ActionID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Position).Equal(0)
	})
}

func TestKanbanRepository_Memory(t *testing.T) {
	runKanbanRepositoryTest(t, newMemoryRepository)
}

func TestKanbanRepository_Firestore(t *testing.T) {
	runKanbanRepositoryTest(t, newFirestoreRepository)
}
