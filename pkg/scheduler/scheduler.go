// Package scheduler runs delayed tasks that belong to one owner and die
// with it.
package scheduler

import (
	"errors"
	"sync"
	"time"
)

// ErrClosed is returned by After once the scheduler has been closed.
var ErrClosed = errors.New("scheduler closed")

// Scheduler tracks pending delayed tasks so the owner can cancel all of
// them at teardown. A task that was cancelled, or is still pending when
// Close runs, never executes.
type Scheduler struct {
	mu      sync.Mutex
	next    uint64
	pending map[uint64]*time.Timer
	closed  bool
}

func New() *Scheduler {
	return &Scheduler{pending: make(map[uint64]*time.Timer)}
}

// After runs fn once d has elapsed. The returned cancel func is safe to
// call any number of times, including after fn ran.
func (s *Scheduler) After(d time.Duration, fn func()) (cancel func(), err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return func() {}, ErrClosed
	}

	s.next++
	id := s.next
	s.pending[id] = time.AfterFunc(d, func() {
		if !s.claim(id) {
			return
		}
		fn()
	})

	return func() { s.cancel(id) }, nil
}

// claim removes the task from the pending set; false means it was
// cancelled in the meantime.
func (s *Scheduler) claim(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.pending[id]; !ok {
		return false
	}
	delete(s.pending, id)
	return true
}

func (s *Scheduler) cancel(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.pending[id]; ok {
		t.Stop()
		delete(s.pending, id)
	}
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Close cancels every pending task and rejects new ones. It returns the
// number of tasks that were cancelled.
func (s *Scheduler) Close() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0
	}
	s.closed = true

	n := len(s.pending)
	for id, t := range s.pending {
		t.Stop()
		delete(s.pending, id)
	}
	return n
}
