package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/messaging"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
)

type FeedConfig struct {
	// PerUser caps the events kept for one user, oldest dropped first.
	PerUser int
	// RetryDelay is the wait before resubscribing after the stream ends.
	RetryDelay time.Duration
}

func DefaultFeedConfig() FeedConfig {
	return FeedConfig{PerUser: 50, RetryDelay: time.Second}
}

// Feed consumes the activity topic and keeps each user's recent events.
type Feed struct {
	broker  messaging.Broker
	config  FeedConfig
	logger  *logger.Logger
	metrics *metrics.Metrics

	mu     sync.RWMutex
	recent map[string][]model.ActivityEvent
}

func NewFeed(broker messaging.Broker, config FeedConfig, log *logger.Logger, m *metrics.Metrics) *Feed {
	def := DefaultFeedConfig()
	if config.PerUser <= 0 {
		config.PerUser = def.PerUser
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = def.RetryDelay
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Feed{
		broker:  broker,
		config:  config,
		logger:  log.With("activity_feed"),
		metrics: m,
		recent:  make(map[string][]model.ActivityEvent),
	}
}

// Start consumes until ctx is done, resubscribing when the stream ends.
func (f *Feed) Start(ctx context.Context) {
	f.logger.Info("Starting activity feed")

	for {
		if err := f.consume(ctx); err != nil {
			f.logger.Error(err, "Activity subscription failed")
		}

		select {
		case <-ctx.Done():
			f.logger.Info("Shutting down activity feed")
			return
		case <-time.After(f.config.RetryDelay):
		}
	}
}

func (f *Feed) consume(ctx context.Context) error {
	msgs, err := f.broker.Subscribe(ctx, Topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", Topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case raw, ok := <-msgs:
			if !ok {
				return nil
			}
			f.handle(raw)
		}
	}
}

func (f *Feed) handle(raw []byte) {
	var event model.ActivityEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		f.count("invalid")
		f.logger.Warn("dropping undecodable activity event", "error", err.Error())
		return
	}
	f.Record(event)
	f.count("recorded")
}

// Record appends event to its user's feed.
func (f *Feed) Record(event model.ActivityEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()

	events := append(f.recent[event.UserID], event)
	if over := len(events) - f.config.PerUser; over > 0 {
		events = append([]model.ActivityEvent(nil), events[over:]...)
	}
	f.recent[event.UserID] = events
}

// Recent returns the user's events, newest first.
func (f *Feed) Recent(userID string) []model.ActivityEvent {
	f.mu.RLock()
	defer f.mu.RUnlock()

	events := f.recent[userID]
	out := make([]model.ActivityEvent, len(events))
	for i, e := range events {
		out[len(events)-1-i] = e
	}
	return out
}

func (f *Feed) count(status string) {
	if f.metrics != nil {
		f.metrics.ActivityFeed.WithLabelValues(status).Inc()
	}
}
