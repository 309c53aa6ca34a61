package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/luanacfraga/tooldo/pkg/domain/model"
	"github.com/luanacfraga/tooldo/pkg/domain/types"
	"github.com/luanacfraga/tooldo/pkg/repository/memory"
	"github.com/luanacfraga/tooldo/pkg/usecase"
	"github.com/luanacfraga/tooldo/pkg/utils/clock"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

type testEnv struct {
	ctx       context.Context
	uc        *usecase.UseCases
	repo      *memory.Memory
	companyID types.CompanyID
	now       time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		repo:      memory.New(),
		companyID: types.CompanyID("company-test"),
		now:       day(10),
	}
	env.uc = usecase.New(env.repo)
	env.ctx = clock.With(context.Background(), func() time.Time { return env.now })
	return env
}

func (env *testEnv) createAction(t *testing.T, title string) *model.Action {
	t.Helper()
	action, _, err := env.uc.Action.CreateAction(env.ctx, env.companyID, usecase.CreateActionInput{
		Title:              title,
		Priority:           types.PriorityMedium,
		EstimatedStartDate: day(10),
		EstimatedEndDate:   day(20),
		CreatorID:          types.UserID("user-creator"),
		ResponsibleID:      types.UserID("user-responsible"),
	})
	gt.NoError(t, err).Required()
	return action
}

// columnIDs returns the action IDs of a column ordered by position, and also
// checks the column is densely numbered from zero.
func (env *testEnv) columnIDs(t *testing.T, column types.ActionStatus) []types.ActionID {
	t.Helper()
	orders, err := env.repo.Kanban().ListByColumn(env.ctx, env.companyID, column)
	gt.NoError(t, err).Required()

	ids := make([]types.ActionID, 0, len(orders))
	for i, ord := range orders {
		gt.Value(t, ord.Position).Equal(i)
		ids = append(ids, ord.ActionID)
	}
	return ids
}

func (env *testEnv) movements(t *testing.T, actionID types.ActionID) []*model.ActionMovement {
	t.Helper()
	movements, err := env.uc.Action.ListMovements(env.ctx, env.companyID, actionID)
	gt.NoError(t, err).Required()
	return movements
}
