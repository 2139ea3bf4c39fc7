package model

import "time"

type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusPaused     ProjectStatus = "paused"
	ProjectStatusCompleted  ProjectStatus = "completed"
)

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ClientName  string        `json:"client_name"`
	Address     string        `json:"address"`
	Status      ProjectStatus `json:"status"`
	Progress    int           `json:"progress"`
	Budget      Cents         `json:"budget"`
	StartDate   time.Time     `json:"start_date"`
	ExpectedEnd time.Time     `json:"expected_end"`
}

// ProjectSummary is the top of a project dashboard.
type ProjectSummary struct {
	Project         Project                 `json:"project"`
	Spent           Cents                   `json:"spent"`
	Committed       Cents                   `json:"committed"`
	Remaining       Cents                   `json:"remaining"`
	BudgetUsed      float64                 `json:"budget_used_percent"`
	ExpensesByState map[ExpenseStatus]Cents `json:"expenses_by_status"`
	ActiveContracts int                     `json:"active_contracts"`
	LatestMinute    *MeetingMinute          `json:"latest_minute,omitempty"`
}
