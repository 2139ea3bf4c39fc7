package repository

import (
	"context"
	"errors"

	"github.com/jwalitptl/sitehub-api/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	ProjectRepository interface {
		List(ctx context.Context) ([]model.Project, error)
		Get(ctx context.Context, id string) (model.Project, error)
	}

	ExpenseRepository interface {
		ListByProject(ctx context.Context, projectID string, filter model.ExpenseFilter) ([]model.Expense, error)
	}

	ContractRepository interface {
		ListByProject(ctx context.Context, projectID string, status model.ContractStatus) ([]model.Contract, error)
	}

	MeetingMinuteRepository interface {
		ListByProject(ctx context.Context, projectID string) ([]model.MeetingMinute, error)
	}
)
