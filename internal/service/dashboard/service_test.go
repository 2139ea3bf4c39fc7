package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/sitehub-api/internal/fixture"
	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

func newTestService() Service {
	ds := fixture.Dataset()
	return NewService(Repositories{
		Projects:  memory.NewProjectRepository(ds),
		Expenses:  memory.NewExpenseRepository(ds),
		Contracts: memory.NewContractRepository(ds),
		Minutes:   memory.NewMeetingMinuteRepository(ds),
	})
}

func TestGetProject(t *testing.T) {
	svc := newTestService()

	p, err := svc.GetProject(context.Background(), "p-2")
	require.NoError(t, err)
	assert.Equal(t, "Harbor View Offices", p.Name)

	_, err = svc.GetProject(context.Background(), "nope")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListProjects(t *testing.T) {
	projects, err := newTestService().ListProjects(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 3)
}

func TestSummary(t *testing.T) {
	s, err := newTestService().Summary(context.Background(), "p-1")
	require.NoError(t, err)

	// paid: e-101, e-102, e-103, e-105
	assert.Equal(t, model.Cents(4820000+7350000+1290000+315000), s.Spent)
	assert.Equal(t, model.Cents(2675000), s.ExpensesByState[model.ExpenseStatusPending])
	assert.Equal(t, model.Cents(1840000), s.ExpensesByState[model.ExpenseStatusOverdue])
	assert.Equal(t, model.Cents(18290000), s.Committed)
	assert.Equal(t, model.Cents(85000000-18290000), s.Remaining)
	assert.InDelta(t, 21.5, s.BudgetUsed, 0.001)
	assert.Equal(t, 2, s.ActiveContracts)
	require.NotNil(t, s.LatestMinute)
	assert.Equal(t, "mm-12", s.LatestMinute.ID)
}

func TestSummaryWithoutMinutes(t *testing.T) {
	s, err := newTestService().Summary(context.Background(), "p-3")
	require.NoError(t, err)
	assert.Nil(t, s.LatestMinute)
	assert.Equal(t, model.Cents(0), s.Spent)
	assert.Equal(t, 1, s.ActiveContracts)
}

func TestSummarizeZeroBudget(t *testing.T) {
	s := Summarize(model.Project{ID: "x"}, []model.Expense{{Amount: 100, Status: model.ExpenseStatusPaid}})
	assert.Equal(t, 0.0, s.BudgetUsed)
	assert.Equal(t, model.Cents(-100), s.Remaining)
}

func TestListExpensesFilter(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	all, err := svc.ListExpenses(ctx, "p-1", model.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 6)

	materials, err := svc.ListExpenses(ctx, "p-1", model.ExpenseFilter{Category: model.ExpenseCategoryMaterials})
	require.NoError(t, err)
	assert.Len(t, materials, 2)

	paidMaterials, err := svc.ListExpenses(ctx, "p-1", model.ExpenseFilter{
		Category: model.ExpenseCategoryMaterials,
		Status:   model.ExpenseStatusPaid,
	})
	require.NoError(t, err)
	require.Len(t, paidMaterials, 1)
	assert.Equal(t, "e-101", paidMaterials[0].ID)

	_, err = svc.ListExpenses(ctx, "p-9", model.ExpenseFilter{})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestListContractsAndMinutes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	drafts, err := svc.ListContracts(ctx, "p-2", model.ContractStatusDraft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "c-22", drafts[0].ID)

	all, err := svc.ListContracts(ctx, "p-2", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	minutes, err := svc.ListMinutes(ctx, "p-1")
	require.NoError(t, err)
	require.Len(t, minutes, 2)
	assert.Equal(t, "mm-12", minutes[0].ID)
}
