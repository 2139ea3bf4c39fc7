package submission

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/repository"
	"github.com/jwalitptl/sitehub-api/internal/service/activity"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

// ErrSubmissionFailed is the only failure a caller sees once a form has
// passed validation.
var ErrSubmissionFailed = errors.New("submission failed")

var fieldMessages = map[string]string{
	"required": "field is required",
	"min":      "value is too short",
	"max":      "value is too long",
	"oneof":    "value is not allowed",
	"gt":       "value must be positive",
	"gtfield":  "must be after the start date",
}

type Config struct {
	// Delay is the simulated processing latency.
	Delay time.Duration
}

func DefaultConfig() Config {
	return Config{Delay: 1500 * time.Millisecond}
}

type Receipt struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	ProjectID   string    `json:"project_id"`
	SubmittedAt time.Time `json:"submitted_at"`
}

type Service interface {
	Submit(ctx context.Context, viewer model.Viewer, form Form) (Receipt, error)
}

type service struct {
	cfg       Config
	validate  *validator.Validate
	projects  repository.ProjectRepository
	publisher activity.Publisher
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(cfg Config, projects repository.ProjectRepository, publisher activity.Publisher, log *logger.Logger, m *metrics.Metrics) Service {
	if log == nil {
		log = logger.Nop()
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	return &service{
		cfg:       cfg,
		validate:  v,
		projects:  projects,
		publisher: publisher,
		logger:    log.With("submission"),
		metrics:   m,
	}
}

func (s *service) Submit(ctx context.Context, viewer model.Viewer, form Form) (Receipt, error) {
	start := time.Now()
	kind := form.Kind()

	if err := s.check(ctx, form); err != nil {
		s.record(kind, "invalid", start)
		return Receipt{}, err
	}

	receipt, err := s.process(ctx, viewer, form)
	if err != nil {
		s.record(kind, "failed", start)
		s.logger.Error(err, "form submission failed",
			"form", string(kind),
			"project_id", form.Project(),
			"user_id", viewer.UserID)
		return Receipt{}, apperrors.Internal("form submission failed", ErrSubmissionFailed)
	}

	s.record(kind, "accepted", start)
	s.logger.Info("form submitted",
		"form", string(kind),
		"receipt_id", receipt.ID,
		"project_id", receipt.ProjectID)
	return receipt, nil
}

func (s *service) check(ctx context.Context, form Form) error {
	if err := s.validate.StructCtx(ctx, form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.BadRequest("invalid form", err)
		}
		fields := make(map[string]string, len(verrs))
		for _, e := range verrs {
			msg, ok := fieldMessages[e.Tag()]
			if !ok {
				msg = fmt.Sprintf("failed on %s", e.Tag())
			}
			fields[fieldPath(e.Namespace())] = msg
		}
		return apperrors.Invalid("invalid form", fields)
	}

	if s.projects == nil {
		return nil
	}
	if _, err := s.projects.Get(ctx, form.Project()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.Invalid("invalid form", map[string]string{"project_id": "unknown project"})
		}
		return apperrors.Internal("failed to load project", err)
	}
	return nil
}

func (s *service) process(ctx context.Context, viewer model.Viewer, form Form) (Receipt, error) {
	if s.cfg.Delay > 0 {
		timer := time.NewTimer(s.cfg.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Receipt{}, fmt.Errorf("waiting for submission: %w", ctx.Err())
		case <-timer.C:
		}
	}

	receipt := Receipt{
		ID:          uuid.NewString(),
		Kind:        form.Kind(),
		ProjectID:   form.Project(),
		SubmittedAt: time.Now().UTC(),
	}

	if s.publisher != nil {
		event := activity.For(viewer, model.ActivityFormSubmitted)
		event.ProjectID = receipt.ProjectID
		event.SubjectID = receipt.ID
		event.Payload = map[string]interface{}{"form": string(receipt.Kind)}
		if err := s.publisher.Publish(ctx, event); err != nil {
			return Receipt{}, fmt.Errorf("publishing submission: %w", err)
		}
	}
	return receipt, nil
}

func (s *service) record(kind Kind, status string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.FormSubmissions.WithLabelValues(string(kind), status).Inc()
	s.metrics.FormSubmitTiming.Observe(time.Since(start).Seconds())
}

// fieldPath drops the struct name from a validator namespace,
// "ExpenseForm.amount" becomes "amount".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
