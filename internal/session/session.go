package session

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jwalitptl/sitehub-api/internal/model"
	"github.com/jwalitptl/sitehub-api/internal/service/chat"
	"github.com/jwalitptl/sitehub-api/internal/service/notification"
	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/metrics"
	"github.com/jwalitptl/sitehub-api/pkg/scheduler"
)

// Session owns the mutable dashboard state of one viewer. Everything it
// holds dies with it.
type Session struct {
	Viewer        model.Viewer
	Notifications *notification.Store
	Chat          *chat.Board
	CreatedAt     time.Time

	tasks     *scheduler.Scheduler
	closeOnce sync.Once
	cancelled int
}

// Tasks is the scheduler for work that must stop when the session ends.
func (s *Session) Tasks() *scheduler.Scheduler {
	return s.tasks
}

// Close cancels pending tasks and returns how many were cancelled.
// Further calls are no-ops.
func (s *Session) Close() int {
	s.closeOnce.Do(func() {
		s.cancelled = s.tasks.Close()
	})
	return s.cancelled
}

// Factory builds the state of a new session. tasks belongs to the session
// and is closed with it.
type Factory func(viewer model.Viewer, tasks *scheduler.Scheduler) (*notification.Store, *chat.Board)

type Config struct {
	TTL             time.Duration
	CleanupInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		TTL:             30 * time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// Registry keeps live sessions in a go-cache with sliding expiration.
// Expiry and explicit End both close the session.
type Registry struct {
	mu      sync.Mutex
	cache   *cache.Cache
	ttl     time.Duration
	factory Factory
	logger  *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time

	// ending carries the reason for the next eviction of a key. It has its
	// own lock because the janitor evicts without holding mu.
	endingMu sync.Mutex
	ending   map[string]string
}

func NewRegistry(cfg Config, factory Factory, log *logger.Logger, m *metrics.Metrics) *Registry {
	def := DefaultConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if log == nil {
		log = logger.Nop()
	}

	r := &Registry{
		cache:   cache.New(cfg.TTL, cfg.CleanupInterval),
		ttl:     cfg.TTL,
		factory: factory,
		logger:  log.With("session"),
		metrics: m,
		now:     time.Now,
		ending:  make(map[string]string),
	}
	r.cache.OnEvicted(r.evicted)
	return r
}

// Get returns the viewer's session, creating it on first use, and
// extends its lifetime.
func (r *Registry) Get(viewer model.Viewer) *Session {
	key := viewer.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.cache.Get(key); ok {
		s := v.(*Session)
		r.cache.Set(key, s, r.ttl)
		return s
	}

	// An expired entry may still sit in the cache until the janitor runs.
	// Deleting it here makes sure its session is closed before being
	// replaced.
	r.cache.Delete(key)

	tasks := scheduler.New()
	store, board := r.factory(viewer, tasks)
	s := &Session{
		Viewer:        viewer,
		Notifications: store,
		Chat:          board,
		CreatedAt:     r.now(),
		tasks:         tasks,
	}
	r.cache.Set(key, s, r.ttl)

	if r.metrics != nil {
		r.metrics.SessionsActive.Inc()
	}
	r.logger.Debug("session opened", "user_id", viewer.UserID, "role", string(viewer.Role))
	return s
}

// Peek returns the session without creating or extending it.
func (r *Registry) Peek(viewer model.Viewer) (*Session, bool) {
	v, ok := r.cache.Get(viewer.Key())
	if !ok {
		return nil, false
	}
	return v.(*Session), true
}

// End tears the viewer's session down. It reports whether a session existed.
func (r *Registry) End(viewer model.Viewer) bool {
	return r.end(viewer.Key(), "ended")
}

func (r *Registry) end(key, reason string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cache.Get(key); !ok {
		return false
	}
	r.endingMu.Lock()
	r.ending[key] = reason
	r.endingMu.Unlock()

	r.cache.Delete(key)
	return true
}

func (r *Registry) Len() int {
	return r.cache.ItemCount()
}

// Close ends every session.
func (r *Registry) Close() {
	for key := range r.cache.Items() {
		r.end(key, "shutdown")
	}
}

// evicted runs for Delete and for expiry. Delete is issued with r.mu
// held, so only endingMu is taken here.
func (r *Registry) evicted(key string, v interface{}) {
	s, ok := v.(*Session)
	if !ok {
		return
	}

	r.endingMu.Lock()
	reason, explicit := r.ending[key]
	if explicit {
		delete(r.ending, key)
	} else {
		reason = "expired"
	}
	r.endingMu.Unlock()

	cancelled := s.Close()
	if r.metrics != nil {
		r.metrics.SessionsActive.Dec()
		r.metrics.SessionsEnded.WithLabelValues(reason).Inc()
		r.metrics.TasksCancelled.Add(float64(cancelled))
	}
	r.logger.Debug("session closed",
		"user_id", s.Viewer.UserID,
		"role", string(s.Viewer.Role),
		"reason", reason,
		"tasks_cancelled", cancelled,
	)
}

// Notifications resolves the viewer's notification store.
func (r *Registry) Notifications(viewer model.Viewer) *notification.Store {
	return r.Get(viewer).Notifications
}

// Board resolves the viewer's chat board.
func (r *Registry) Board(viewer model.Viewer) *chat.Board {
	return r.Get(viewer).Chat
}
