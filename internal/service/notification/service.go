package notification

import (
	"context"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/service/activity"
	"github.com/jwalitptl/sitehub-api/internal/service/badge"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

// StoreResolver returns the notification store owned by a viewer session.
type StoreResolver interface {
	Notifications(viewer model.Viewer) *Store
}

// View is what the notification panel renders.
type View struct {
	Items       []model.Notification `json:"items"`
	UnreadCount int                  `json:"unread_count"`
	Badge       badge.Badge          `json:"badge"`
}

type Service interface {
	List(ctx context.Context, viewer model.Viewer, filter Filter) View
	Badge(ctx context.Context, viewer model.Viewer) badge.Badge
	MarkRead(ctx context.Context, viewer model.Viewer, id string) (View, error)
	MarkAllRead(ctx context.Context, viewer model.Viewer) View
	Remove(ctx context.Context, viewer model.Viewer, id string) View
}

type service struct {
	stores    StoreResolver
	publisher activity.Publisher
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

func NewService(stores StoreResolver, publisher activity.Publisher, log *logger.Logger, m *metrics.Metrics) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		stores:    stores,
		publisher: publisher,
		logger:    log.With("notification"),
		metrics:   m,
	}
}

func (s *service) List(_ context.Context, viewer model.Viewer, filter Filter) View {
	store := s.stores.Notifications(viewer)
	return view(store, filter)
}

func (s *service) Badge(_ context.Context, viewer model.Viewer) badge.Badge {
	return badge.View(s.stores.Notifications(viewer).UnreadCount())
}

// MarkRead differs from the store only in reporting unknown ids, so the
// API can answer 404.
func (s *service) MarkRead(ctx context.Context, viewer model.Viewer, id string) (View, error) {
	store := s.stores.Notifications(viewer)
	if !store.MarkRead(id) {
		return view(store, Filter{}), apperrors.NotFound("notification", nil)
	}

	s.count("read")
	event := activity.For(viewer, model.ActivityNotificationRead)
	event.SubjectID = id
	s.publish(ctx, event)
	return view(store, Filter{}), nil
}

func (s *service) MarkAllRead(ctx context.Context, viewer model.Viewer) View {
	store := s.stores.Notifications(viewer)
	changed := store.MarkAllRead()

	s.count("read_all")
	event := activity.For(viewer, model.ActivityNotificationReadAll)
	event.Payload = map[string]interface{}{"changed": changed}
	s.publish(ctx, event)
	return view(store, Filter{})
}

// Remove is a no-op for unknown ids.
func (s *service) Remove(ctx context.Context, viewer model.Viewer, id string) View {
	store := s.stores.Notifications(viewer)
	if store.Remove(id) {
		s.count("remove")
		event := activity.For(viewer, model.ActivityNotificationRemoved)
		event.SubjectID = id
		s.publish(ctx, event)
	}
	return view(store, Filter{})
}

func (s *service) count(op string) {
	if s.metrics != nil {
		s.metrics.NotificationMutations.WithLabelValues(op).Inc()
	}
}

// publish failures never fail the mutation; the state change already
// happened and is what the viewer sees.
func (s *service) publish(ctx context.Context, event model.ActivityEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error(err, "failed to publish notification activity", "type", string(event.Type))
	}
}

func view(store *Store, filter Filter) View {
	unread := store.UnreadCount()
	return View{
		Items:       store.List(filter),
		UnreadCount: unread,
		Badge:       badge.View(unread),
	}
}
