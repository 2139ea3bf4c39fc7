package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
)

type Service interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id string) (model.Project, error)
	Summary(ctx context.Context, id string) (model.ProjectSummary, error)
	ListExpenses(ctx context.Context, projectID string, filter model.ExpenseFilter) ([]model.Expense, error)
	ListContracts(ctx context.Context, projectID string, status model.ContractStatus) ([]model.Contract, error)
	ListMinutes(ctx context.Context, projectID string) ([]model.MeetingMinute, error)
}

// Repositories groups the read models the dashboard is built from.
type Repositories struct {
	Projects  repository.ProjectRepository
	Expenses  repository.ExpenseRepository
	Contracts repository.ContractRepository
	Minutes   repository.MeetingMinuteRepository
}

type service struct {
	repos Repositories
}

func NewService(repos Repositories) Service {
	return &service{repos: repos}
}

func (s *service) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := s.repos.Projects.List(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list projects", err)
	}
	return projects, nil
}

func (s *service) GetProject(ctx context.Context, id string) (model.Project, error) {
	project, err := s.repos.Projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Project{}, apperrors.NotFound("project", err)
		}
		return model.Project{}, apperrors.Internal("failed to get project", err)
	}
	return project, nil
}

func (s *service) Summary(ctx context.Context, id string) (model.ProjectSummary, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return model.ProjectSummary{}, err
	}

	expenses, err := s.repos.Expenses.ListByProject(ctx, id, model.ExpenseFilter{})
	if err != nil {
		return model.ProjectSummary{}, apperrors.Internal("failed to list expenses", err)
	}
	contracts, err := s.repos.Contracts.ListByProject(ctx, id, model.ContractStatusActive)
	if err != nil {
		return model.ProjectSummary{}, apperrors.Internal("failed to list contracts", err)
	}
	minutes, err := s.repos.Minutes.ListByProject(ctx, id)
	if err != nil {
		return model.ProjectSummary{}, apperrors.Internal("failed to list minutes", err)
	}

	summary := Summarize(project, expenses)
	summary.ActiveContracts = len(contracts)
	if len(minutes) > 0 {
		latest := minutes[0]
		summary.LatestMinute = &latest
	}
	return summary, nil
}

func (s *service) ListExpenses(ctx context.Context, projectID string, filter model.ExpenseFilter) ([]model.Expense, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	expenses, err := s.repos.Expenses.ListByProject(ctx, projectID, filter)
	if err != nil {
		return nil, apperrors.Internal("failed to list expenses", err)
	}
	return expenses, nil
}

func (s *service) ListContracts(ctx context.Context, projectID string, status model.ContractStatus) ([]model.Contract, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	contracts, err := s.repos.Contracts.ListByProject(ctx, projectID, status)
	if err != nil {
		return nil, apperrors.Internal("failed to list contracts", err)
	}
	return contracts, nil
}

func (s *service) ListMinutes(ctx context.Context, projectID string) ([]model.MeetingMinute, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	minutes, err := s.repos.Minutes.ListByProject(ctx, projectID)
	if err != nil {
		return nil, apperrors.Internal(fmt.Sprintf("failed to list minutes for %s", projectID), err)
	}
	return minutes, nil
}

// Summarize computes the budget figures of a project from its expenses.
// Spent counts paid expenses only; committed counts every expense.
func Summarize(project model.Project, expenses []model.Expense) model.ProjectSummary {
	summary := model.ProjectSummary{
		Project: project,
		ExpensesByState: map[model.ExpenseStatus]model.Cents{
			model.ExpenseStatusPaid:    0,
			model.ExpenseStatusPending: 0,
			model.ExpenseStatusOverdue: 0,
		},
	}

	for _, e := range expenses {
		summary.ExpensesByState[e.Status] += e.Amount
		summary.Committed += e.Amount
		if e.Status == model.ExpenseStatusPaid {
			summary.Spent += e.Amount
		}
	}

	summary.Remaining = project.Budget - summary.Committed
	if project.Budget > 0 {
		pct := float64(summary.Committed) * 100 / float64(project.Budget)
		summary.BudgetUsed = float64(int64(pct*10+0.5)) / 10
	}
	return summary
}
