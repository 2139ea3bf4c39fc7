// Package fixture holds the seed data the dashboard starts with.
package fixture

import (
	"time"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dataset bundles every read-only dashboard record.
func Dataset() memory.Dataset {
	return memory.Dataset{
		Projects:  Projects(),
		Expenses:  Expenses(),
		Contracts: Contracts(),
		Minutes:   Minutes(),
	}
}

func Projects() []model.Project {
	return []model.Project{
		{
			ID:          "p-1",
			Name:        "Oak Ridge Residence",
			ClientName:  "Maria Souza",
			Address:     "1840 Oak Ridge Rd",
			Status:      model.ProjectStatusInProgress,
			Progress:    62,
			Budget:      85000000,
			StartDate:   date(2024, time.January, 15),
			ExpectedEnd: date(2024, time.October, 30),
		},
		{
			ID:          "p-2",
			Name:        "Harbor View Offices",
			ClientName:  "Harbor Holdings",
			Address:     "22 Pier Ave",
			Status:      model.ProjectStatusInProgress,
			Progress:    35,
			Budget:      240000000,
			StartDate:   date(2024, time.March, 1),
			ExpectedEnd: date(2025, time.June, 15),
		},
		{
			ID:          "p-3",
			Name:        "Pine Street Retail",
			ClientName:  "Pine Street Partners",
			Address:     "410 Pine St",
			Status:      model.ProjectStatusPlanning,
			Progress:    5,
			Budget:      61000000,
			StartDate:   date(2024, time.July, 1),
			ExpectedEnd: date(2025, time.February, 28),
		},
	}
}

func Expenses() []model.Expense {
	return []model.Expense{
		{ID: "e-101", ProjectID: "p-1", Description: "Ready-mix concrete, foundation", Category: model.ExpenseCategoryMaterials, Provider: "Valley Concrete", Amount: 4820000, Date: date(2024, time.February, 2), Status: model.ExpenseStatusPaid},
		{ID: "e-102", ProjectID: "p-1", Description: "Framing crew, weeks 6-9", Category: model.ExpenseCategoryLabor, Provider: "Ridgeline Framing", Amount: 7350000, Date: date(2024, time.March, 8), Status: model.ExpenseStatusPaid},
		{ID: "e-103", ProjectID: "p-1", Description: "Excavator rental", Category: model.ExpenseCategoryEquipment, Provider: "Heavy Rent", Amount: 1290000, Date: date(2024, time.January, 22), Status: model.ExpenseStatusPaid},
		{ID: "e-104", ProjectID: "p-1", Description: "Roof trusses", Category: model.ExpenseCategoryMaterials, Provider: "Truss Works", Amount: 2675000, Date: date(2024, time.April, 12), Status: model.ExpenseStatusPending},
		{ID: "e-105", ProjectID: "p-1", Description: "Building permit fees", Category: model.ExpenseCategoryFees, Provider: "County Office", Amount: 315000, Date: date(2024, time.January, 10), Status: model.ExpenseStatusPaid},
		{ID: "e-106", ProjectID: "p-1", Description: "Electrical rough-in", Category: model.ExpenseCategoryServices, Provider: "Bright Electric", Amount: 1840000, Date: date(2024, time.April, 20), Status: model.ExpenseStatusOverdue},
		{ID: "e-201", ProjectID: "p-2", Description: "Structural steel, phase 1", Category: model.ExpenseCategoryMaterials, Provider: "North Steel", Amount: 31200000, Date: date(2024, time.April, 3), Status: model.ExpenseStatusPaid},
		{ID: "e-202", ProjectID: "p-2", Description: "Tower crane rental", Category: model.ExpenseCategoryEquipment, Provider: "LiftCo", Amount: 8600000, Date: date(2024, time.April, 15), Status: model.ExpenseStatusPending},
		{ID: "e-203", ProjectID: "p-2", Description: "Geotechnical survey", Category: model.ExpenseCategoryServices, Provider: "GeoSoil Labs", Amount: 1450000, Date: date(2024, time.March, 5), Status: model.ExpenseStatusPaid},
		{ID: "e-301", ProjectID: "p-3", Description: "Architectural drawings", Category: model.ExpenseCategoryServices, Provider: "Studio Lima", Amount: 2200000, Date: date(2024, time.June, 10), Status: model.ExpenseStatusPending},
	}
}

func Contracts() []model.Contract {
	return []model.Contract{
		{ID: "c-11", ProjectID: "p-1", Title: "Framing and carpentry", Provider: "Ridgeline Framing", Value: 14800000, Status: model.ContractStatusActive, SignedAt: date(2024, time.February, 1), EndsAt: date(2024, time.June, 30)},
		{ID: "c-12", ProjectID: "p-1", Title: "Electrical installation", Provider: "Bright Electric", Value: 6900000, Status: model.ContractStatusActive, SignedAt: date(2024, time.March, 15), EndsAt: date(2024, time.August, 31)},
		{ID: "c-13", ProjectID: "p-1", Title: "Site excavation", Provider: "Heavy Rent", Value: 2100000, Status: model.ContractStatusCompleted, SignedAt: date(2024, time.January, 12), EndsAt: date(2024, time.February, 10)},
		{ID: "c-21", ProjectID: "p-2", Title: "Steel structure supply", Provider: "North Steel", Value: 72000000, Status: model.ContractStatusActive, SignedAt: date(2024, time.March, 20), EndsAt: date(2024, time.December, 20)},
		{ID: "c-22", ProjectID: "p-2", Title: "Curtain wall facade", Provider: "ClearView Glazing", Value: 38500000, Status: model.ContractStatusDraft, SignedAt: time.Time{}, EndsAt: date(2025, time.April, 30)},
		{ID: "c-31", ProjectID: "p-3", Title: "Design services", Provider: "Studio Lima", Value: 5400000, Status: model.ContractStatusActive, SignedAt: date(2024, time.May, 28), EndsAt: date(2024, time.September, 30)},
	}
}

func Minutes() []model.MeetingMinute {
	return []model.MeetingMinute{
		{
			ID:           "mm-11",
			ProjectID:    "p-1",
			Title:        "Foundation inspection",
			Date:         date(2024, time.February, 6),
			Participants: []string{"Maria Souza", "Site Office", "Valley Concrete"},
			Summary:      "Foundation passed inspection. Curing schedule confirmed.",
			Decisions:    []string{"Start framing on Feb 19", "Keep moisture log for 14 days"},
		},
		{
			ID:           "mm-12",
			ProjectID:    "p-1",
			Title:        "Weekly site meeting",
			Date:         date(2024, time.April, 18),
			Participants: []string{"Site Office", "Ridgeline Framing", "Bright Electric"},
			Summary:      "Framing 90% done. Electrical rough-in behind by one week.",
			Decisions:    []string{"Add second electrical crew", "Roof trusses delivery moved to Apr 25"},
		},
		{
			ID:           "mm-21",
			ProjectID:    "p-2",
			Title:        "Steel erection kickoff",
			Date:         date(2024, time.April, 2),
			Participants: []string{"Harbor Holdings", "Site Office", "North Steel", "LiftCo"},
			Summary:      "Crane position approved. Erection sequence reviewed.",
			Decisions:    []string{"Crane assembly Apr 10-12", "Daily safety briefing at 7:00"},
		},
	}
}

// Notifications is the seed every new viewer session starts with, most
// recent first.
func Notifications() []model.Notification {
	return []model.Notification{
		{ID: "n-1", Category: model.NotificationCategoryMessage, Title: "New message", Description: "Site Office replied in Oak Ridge Residence", DisplayTime: "5 min ago"},
		{ID: "n-2", Category: model.NotificationCategoryRDO, Title: "Daily report published", Description: "RDO for Apr 18 is available for Oak Ridge Residence", DisplayTime: "1 hour ago"},
		{ID: "n-3", Category: model.NotificationCategoryPayment, Title: "Payment due", Description: "Roof trusses invoice is due in 3 days", DisplayTime: "3 hours ago"},
		{ID: "n-4", Category: model.NotificationCategoryFinancial, Title: "Budget update", Description: "Harbor View Offices reached 17% of budget", DisplayTime: "Yesterday", Read: true},
		{ID: "n-5", Category: model.NotificationCategoryWarning, Title: "Overdue payment", Description: "Electrical rough-in invoice is overdue", DisplayTime: "Yesterday"},
		{ID: "n-6", Category: model.NotificationCategorySuccess, Title: "Inspection passed", Description: "Foundation inspection approved", DisplayTime: "2 days ago", Read: true},
		{ID: "n-7", Category: model.NotificationCategoryInfo, Title: "Schedule change", Description: "Crane assembly moved to Apr 10", DisplayTime: "3 days ago", Read: true},
	}
}

// ChatMessages seeds the project chat threads.
func ChatMessages() []model.ChatMessage {
	at := func(d, h, m int) time.Time { return time.Date(2024, time.April, d, h, m, 0, 0, time.UTC) }
	return []model.ChatMessage{
		{ID: "cm-1", ProjectID: "p-1", SenderName: "Site Office", SenderRole: model.RoleAdmin, Content: "Framing is almost finished, roof trusses arrive next week.", Timestamp: at(17, 9, 12), Read: true},
		{ID: "cm-2", ProjectID: "p-1", SenderName: "Maria Souza", SenderRole: model.RoleClient, Content: "Great! Can I visit the site on Saturday?", Timestamp: at(17, 10, 3), Read: true},
		{ID: "cm-3", ProjectID: "p-1", SenderName: "Site Office", SenderRole: model.RoleAdmin, Content: "Yes, Saturday 9:00 works. Bring safety boots.", Timestamp: at(17, 10, 40)},
		{ID: "cm-4", ProjectID: "p-1", SenderName: "Bright Electric", SenderRole: model.RoleProvider, Content: "Rough-in will need two more days.", Timestamp: at(18, 8, 5)},
		{ID: "cm-5", ProjectID: "p-2", SenderName: "Site Office", SenderRole: model.RoleAdmin, Content: "Crane assembly is confirmed for Apr 10.", Timestamp: at(8, 16, 20)},
		{ID: "cm-6", ProjectID: "p-2", SenderName: "Harbor Holdings", SenderRole: model.RoleClient, Content: "Thanks. Please share the lift plan.", Timestamp: at(8, 17, 2), Read: true},
	}
}
