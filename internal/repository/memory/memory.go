// Package memory serves dashboard records from fixture data held in
// memory. Records are read-only; every call returns copies.
package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository"
)

// Dataset is the full set of records a repository serves.
type Dataset struct {
	Projects  []model.Project
	Expenses  []model.Expense
	Contracts []model.Contract
	Minutes   []model.MeetingMinute
}

type projectRepository struct {
	projects []model.Project
}

func NewProjectRepository(ds Dataset) repository.ProjectRepository {
	return &projectRepository{projects: ds.Projects}
}

func (r *projectRepository) List(_ context.Context) ([]model.Project, error) {
	out := make([]model.Project, len(r.projects))
	copy(out, r.projects)
	return out, nil
}

func (r *projectRepository) Get(_ context.Context, id string) (model.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Project{}, fmt.Errorf("project %s: %w", id, repository.ErrNotFound)
}

type expenseRepository struct {
	expenses []model.Expense
}

func NewExpenseRepository(ds Dataset) repository.ExpenseRepository {
	return &expenseRepository{expenses: ds.Expenses}
}

func (r *expenseRepository) ListByProject(_ context.Context, projectID string, filter model.ExpenseFilter) ([]model.Expense, error) {
	out := make([]model.Expense, 0)
	for _, e := range r.expenses {
		if e.ProjectID == projectID && filter.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

type contractRepository struct {
	contracts []model.Contract
}

func NewContractRepository(ds Dataset) repository.ContractRepository {
	return &contractRepository{contracts: ds.Contracts}
}

func (r *contractRepository) ListByProject(_ context.Context, projectID string, status model.ContractStatus) ([]model.Contract, error) {
	out := make([]model.Contract, 0)
	for _, c := range r.contracts {
		if c.ProjectID != projectID {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

type meetingMinuteRepository struct {
	minutes []model.MeetingMinute
}

func NewMeetingMinuteRepository(ds Dataset) repository.MeetingMinuteRepository {
	return &meetingMinuteRepository{minutes: ds.Minutes}
}

// ListByProject returns the project's minutes, newest first.
func (r *meetingMinuteRepository) ListByProject(_ context.Context, projectID string) ([]model.MeetingMinute, error) {
	out := make([]model.MeetingMinute, 0)
	for _, m := range r.minutes {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}
