package model

import (
	"fmt"
	"time"
)

type ExpenseCategory string

const (
	ExpenseCategoryMaterials ExpenseCategory = "materials"
	ExpenseCategoryLabor     ExpenseCategory = "labor"
	ExpenseCategoryEquipment ExpenseCategory = "equipment"
	ExpenseCategoryServices  ExpenseCategory = "services"
	ExpenseCategoryFees      ExpenseCategory = "fees"
	ExpenseCategoryOther     ExpenseCategory = "other"
)

func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	switch c := ExpenseCategory(s); c {
	case ExpenseCategoryMaterials, ExpenseCategoryLabor, ExpenseCategoryEquipment,
		ExpenseCategoryServices, ExpenseCategoryFees, ExpenseCategoryOther:
		return c, nil
	default:
		return "", fmt.Errorf("unknown expense category %q", s)
	}
}

type ExpenseStatus string

const (
	ExpenseStatusPaid    ExpenseStatus = "paid"
	ExpenseStatusPending ExpenseStatus = "pending"
	ExpenseStatusOverdue ExpenseStatus = "overdue"
)

func ParseExpenseStatus(s string) (ExpenseStatus, error) {
	switch st := ExpenseStatus(s); st {
	case ExpenseStatusPaid, ExpenseStatusPending, ExpenseStatusOverdue:
		return st, nil
	default:
		return "", fmt.Errorf("unknown expense status %q", s)
	}
}

type Expense struct {
	ID          string          `json:"id"`
	ProjectID   string          `json:"project_id"`
	Description string          `json:"description"`
	Category    ExpenseCategory `json:"category"`
	Provider    string          `json:"provider"`
	Amount      Cents           `json:"amount"`
	Date        time.Time       `json:"date"`
	Status      ExpenseStatus   `json:"status"`
}

// ExpenseFilter narrows an expense listing. Zero fields match everything.
type ExpenseFilter struct {
	Category ExpenseCategory
	Status   ExpenseStatus
}

func (f ExpenseFilter) Match(e Expense) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	return true
}
