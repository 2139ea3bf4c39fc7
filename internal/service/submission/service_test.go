package submission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/sitehub-api/internal/fixture"
	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository/memory"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

var viewer = model.Viewer{UserID: "u-1", Name: "Site Office", Role: model.RoleAdmin}

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []model.ActivityEvent
}

func (p *fakePublisher) Publish(_ context.Context, e model.ActivityEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func newTestService(delay time.Duration, pub *fakePublisher) (Service, *metrics.Metrics) {
	m := metrics.New("test", prometheus.NewRegistry())
	projects := memory.NewProjectRepository(memory.Dataset{Projects: fixture.Projects()})
	return NewService(Config{Delay: delay}, projects, pub, nil, m), m
}

func validExpense() ExpenseForm {
	return ExpenseForm{
		ProjectID:   "p-1",
		Description: "Drywall sheets",
		Category:    model.ExpenseCategoryMaterials,
		Provider:    "Board Supply",
		Amount:      125000,
		Date:        time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
		Status:      model.ExpenseStatusPending,
	}
}

func TestSubmitAccepted(t *testing.T) {
	pub := &fakePublisher{}
	svc, m := newTestService(time.Millisecond, pub)

	r, err := svc.Submit(context.Background(), viewer, validExpense())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, KindExpense, r.Kind)
	assert.Equal(t, "p-1", r.ProjectID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, model.ActivityFormSubmitted, pub.events[0].Type)
	assert.Equal(t, r.ID, pub.events[0].SubjectID)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FormSubmissions.WithLabelValues("expense", "accepted")))
}

func TestSubmitValidation(t *testing.T) {
	pub := &fakePublisher{}
	svc, m := newTestService(0, pub)

	form := validExpense()
	form.Amount = 0
	form.Category = "marble"
	form.Description = ""

	_, err := svc.Submit(context.Background(), viewer, form)
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Contains(t, appErr.Fields, "amount")
	assert.Contains(t, appErr.Fields, "category")
	assert.Contains(t, appErr.Fields, "description")
	assert.Empty(t, pub.events)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FormSubmissions.WithLabelValues("expense", "invalid")))
}

func TestSubmitUnknownProject(t *testing.T) {
	svc, _ := newTestService(0, &fakePublisher{})

	form := validExpense()
	form.ProjectID = "p-404"
	_, err := svc.Submit(context.Background(), viewer, form)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "unknown project", appErr.Fields["project_id"])
}

func TestSubmitContractDates(t *testing.T) {
	svc, _ := newTestService(0, &fakePublisher{})
	signed := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Submit(context.Background(), viewer, ContractForm{
		ProjectID: "p-2",
		Title:     "Elevators",
		Provider:  "LiftCo",
		Value:     900000,
		SignedAt:  signed,
		EndsAt:    signed.AddDate(0, 0, -1),
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "ends_at")
}

func TestSubmitMinuteParticipants(t *testing.T) {
	svc, _ := newTestService(0, &fakePublisher{})

	_, err := svc.Submit(context.Background(), viewer, MinuteForm{
		ProjectID: "p-1",
		Title:     "Daily report",
		Date:      time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
		Summary:   "Rain, no work on roof",
	})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Fields, "participants")
}

func TestSubmitFailureIsGeneric(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	svc, m := newTestService(0, pub)

	_, err := svc.Submit(context.Background(), viewer, validExpense())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.True(t, apperrors.Is(err, apperrors.ErrInternal))
	assert.NotContains(t, err.Error(), "broker down")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FormSubmissions.WithLabelValues("expense", "failed")))
}

func TestSubmitCancelledDuringDelay(t *testing.T) {
	pub := &fakePublisher{}
	svc, _ := newTestService(time.Hour, pub)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	_, err := svc.Submit(ctx, viewer, validExpense())
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	assert.Empty(t, pub.events)
}
