// Package export renders dashboard data as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/sitehub-api/internal/model"
)

const (
	ExpenseSheet = "Expenses"
	ContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var expenseHeaders = []string{"ID", "Date", "Description", "Category", "Provider", "Status", "Amount"}

// ExpenseFilename is the attachment name used for a project's export.
func ExpenseFilename(project model.Project) string {
	return fmt.Sprintf("expenses-%s.xlsx", project.ID)
}

// WriteExpenses writes the expenses of a project as an XLSX workbook with
// one header row, one row per expense and a closing total row.
func WriteExpenses(w io.Writer, project model.Project, expenses []model.Expense) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(ExpenseSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(ExpenseSheet); err == nil {
		f.SetActiveSheet(index)
	}

	for i, header := range expenseHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ExpenseSheet, cell, header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	var total model.Cents
	row := 2
	for _, e := range expenses {
		values := []interface{}{
			e.ID,
			e.Date.Format("2006-01-02"),
			e.Description,
			string(e.Category),
			e.Provider,
			string(e.Status),
			e.Amount.Float(),
		}
		if err := f.SetSheetRow(ExpenseSheet, fmt.Sprintf("A%d", row), &values); err != nil {
			return fmt.Errorf("writing expense %s: %w", e.ID, err)
		}
		total += e.Amount
		row++
	}

	f.SetCellValue(ExpenseSheet, fmt.Sprintf("F%d", row), "Total")
	f.SetCellValue(ExpenseSheet, fmt.Sprintf("G%d", row), total.Float())
	f.SetCellValue(ExpenseSheet, "I1", project.Name)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
