package submission

import (
	"time"

	"github.com/jwalitptl/sitehub-api/internal/model"
)

// Kind names a dashboard form.
type Kind string

const (
	KindExpense  Kind = "expense"
	KindContract Kind = "contract"
	KindMinute   Kind = "minute"
)

// Form is anything Submit accepts.
type Form interface {
	Kind() Kind
	Project() string
}

type ExpenseForm struct {
	ProjectID   string                `json:"project_id" validate:"required"`
	Description string                `json:"description" validate:"required,min=3,max=200"`
	Category    model.ExpenseCategory `json:"category" validate:"required,oneof=materials labor equipment services fees other"`
	Provider    string                `json:"provider" validate:"required,max=120"`
	Amount      model.Cents           `json:"amount" validate:"gt=0"`
	Date        time.Time             `json:"date" validate:"required"`
	Status      model.ExpenseStatus   `json:"status" validate:"omitempty,oneof=paid pending overdue"`
}

func (ExpenseForm) Kind() Kind        { return KindExpense }
func (f ExpenseForm) Project() string { return f.ProjectID }

type ContractForm struct {
	ProjectID string      `json:"project_id" validate:"required"`
	Title     string      `json:"title" validate:"required,min=3,max=200"`
	Provider  string      `json:"provider" validate:"required,max=120"`
	Value     model.Cents `json:"value" validate:"gt=0"`
	SignedAt  time.Time   `json:"signed_at" validate:"required"`
	EndsAt    time.Time   `json:"ends_at" validate:"required,gtfield=SignedAt"`
}

func (ContractForm) Kind() Kind        { return KindContract }
func (f ContractForm) Project() string { return f.ProjectID }

// MinuteForm is the meeting minute / daily work report (RDO) form.
type MinuteForm struct {
	ProjectID    string    `json:"project_id" validate:"required"`
	Title        string    `json:"title" validate:"required,min=3,max=200"`
	Date         time.Time `json:"date" validate:"required"`
	Participants []string  `json:"participants" validate:"min=1,dive,required"`
	Summary      string    `json:"summary" validate:"required,max=4000"`
	Decisions    []string  `json:"decisions" validate:"omitempty,dive,required"`
}

func (MinuteForm) Kind() Kind        { return KindMinute }
func (f MinuteForm) Project() string { return f.ProjectID }
