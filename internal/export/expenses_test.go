package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/sitehub-api/internal/fixture"
	"github.com/jwalitptl/sitehub-api/internal/model"
)

func TestWriteExpenses(t *testing.T) {
	project := fixture.Projects()[1]
	var expenses []model.Expense
	for _, e := range fixture.Expenses() {
		if e.ProjectID == project.ID {
			expenses = append(expenses, e)
		}
	}
	require.Len(t, expenses, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, project, expenses))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{ExpenseSheet}, f.GetSheetList())

	header, err := f.GetCellValue(ExpenseSheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	id, err := f.GetCellValue(ExpenseSheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "e-201", id)

	date, err := f.GetCellValue(ExpenseSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-04-03", date)

	label, err := f.GetCellValue(ExpenseSheet, "F5")
	require.NoError(t, err)
	assert.Equal(t, "Total", label)

	total, err := f.GetCellValue(ExpenseSheet, "G5")
	require.NoError(t, err)
	assert.Equal(t, "412500", total)

	name, err := f.GetCellValue(ExpenseSheet, "I1")
	require.NoError(t, err)
	assert.Equal(t, project.Name, name)
}

func TestWriteExpensesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, model.Project{ID: "p-x"}, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExpenseSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "expenses-p-x.xlsx", ExpenseFilename(model.Project{ID: "p-x"}))
}
