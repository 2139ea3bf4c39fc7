package notification

import (
	"sync"

	"github.com/jwalitptl/sitehub-api/internal/model"
)

// Filter narrows a listing. Zero values match everything.
type Filter struct {
	UnreadOnly bool
	Category   model.NotificationCategory
}

func (f Filter) match(n model.Notification) bool {
	if f.UnreadOnly && n.Read {
		return false
	}
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	return true
}

// Store holds one viewer's notifications in insertion order. Mutations
// never reorder the sequence and the unread count is always derived from
// the current records.
type Store struct {
	mu    sync.RWMutex
	items []model.Notification
}

// NewStore copies seed so later mutations never reach the caller's slice.
func NewStore(seed []model.Notification) *Store {
	items := make([]model.Notification, len(seed))
	copy(items, seed)
	for i := range items {
		items[i].Icon = items[i].Category.Icon()
	}
	return &Store{items: items}
}

// List returns a copy of the matching records.
func (s *Store) List(f Filter) []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Notification, 0, len(s.items))
	for _, n := range s.items {
		if f.match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (model.Notification, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	return model.Notification{}, false
}

// MarkRead flags one record as read. Unknown ids are ignored; the bool
// reports whether a record matched.
func (s *Store) MarkRead(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items[i].Read = true
	return true
}

// MarkAllRead flags every record as read and returns how many changed.
func (s *Store) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			changed++
		}
	}
	return changed
}

// Remove deletes one record. Unknown ids are ignored.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *Store) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}
