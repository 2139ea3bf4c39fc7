package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/messaging"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

// Topic is the broker channel activity events go to.
const Topic = "activity"

// Publisher reports dashboard actions.
type Publisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

type publisher struct {
	broker  messaging.Broker
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewPublisher(broker messaging.Broker, log *logger.Logger, m *metrics.Metrics) Publisher {
	if log == nil {
		log = logger.Nop()
	}
	return &publisher{
		broker:  broker,
		logger:  log.With("activity"),
		metrics: m,
		now:     time.Now,
	}
}

// Publish fills in the id and timestamp when missing, logs the event and
// hands it to the broker.
func (p *publisher) Publish(ctx context.Context, event model.ActivityEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = p.now()
	}

	p.logger.Info("activity",
		"event_id", event.ID,
		"type", string(event.Type),
		"user_id", event.UserID,
		"role", string(event.Role),
		"project_id", event.ProjectID,
		"subject_id", event.SubjectID,
	)

	if err := p.broker.Publish(ctx, Topic, event); err != nil {
		p.count("error")
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}
	p.count("success")
	return nil
}

func (p *publisher) count(status string) {
	if p.metrics != nil {
		p.metrics.ActivityPublish.WithLabelValues(status).Inc()
	}
}

// For builds an event attributed to viewer.
func For(viewer model.Viewer, typ model.ActivityType) model.ActivityEvent {
	return model.ActivityEvent{
		Type:   typ,
		UserID: viewer.UserID,
		Role:   viewer.Role,
	}
}
