package notification

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/sitehub-api/internal/model"
)

func seed() []model.Notification {
	return []model.Notification{
		{ID: "n-1", Category: model.NotificationCategoryMessage, Title: "New message"},
		{ID: "n-2", Category: model.NotificationCategoryPayment, Title: "Payment due", Read: true},
		{ID: "n-3", Category: model.NotificationCategoryRDO, Title: "RDO published"},
		{ID: "n-4", Category: model.NotificationCategoryPayment, Title: "Payment received"},
	}
}

func ids(items []model.Notification) []string {
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}

func countUnread(items []model.Notification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}

func TestNewStoreCopiesSeedAndSetsIcons(t *testing.T) {
	in := seed()
	s := NewStore(in)

	s.MarkAllRead()
	assert.False(t, in[0].Read, "seed slice must not be mutated")

	n, ok := s.Get("n-3")
	require.True(t, ok)
	assert.Equal(t, "file-text", n.Icon)
}

func TestMarkRead(t *testing.T) {
	s := NewStore(seed())
	assert.Equal(t, 3, s.UnreadCount())

	assert.True(t, s.MarkRead("n-3"))
	assert.Equal(t, 2, s.UnreadCount())
	assert.Equal(t, []string{"n-1", "n-2", "n-3", "n-4"}, ids(s.List(Filter{})))

	assert.False(t, s.MarkRead("missing"))
	assert.Equal(t, 2, s.UnreadCount())

	assert.True(t, s.MarkRead("n-3"), "marking twice still matches")
	assert.Equal(t, 2, s.UnreadCount())
}

func TestMarkAllRead(t *testing.T) {
	s := NewStore(seed())
	assert.Equal(t, 3, s.MarkAllRead())
	assert.Equal(t, 0, s.UnreadCount())
	assert.Equal(t, 0, s.MarkAllRead())

	empty := NewStore(nil)
	assert.Equal(t, 0, empty.MarkAllRead())
	assert.Equal(t, 0, empty.UnreadCount())
}

func TestRemove(t *testing.T) {
	s := NewStore(seed())

	assert.True(t, s.Remove("n-1"))
	assert.Equal(t, 2, s.UnreadCount())
	assert.Equal(t, []string{"n-2", "n-3", "n-4"}, ids(s.List(Filter{})))

	assert.False(t, s.Remove("n-1"))
	assert.Equal(t, 3, s.Len())
}

func TestListFilter(t *testing.T) {
	s := NewStore(seed())

	assert.Equal(t, []string{"n-1", "n-3", "n-4"}, ids(s.List(Filter{UnreadOnly: true})))
	assert.Equal(t, []string{"n-2", "n-4"}, ids(s.List(Filter{Category: model.NotificationCategoryPayment})))
	assert.Equal(t, []string{"n-4"}, ids(s.List(Filter{UnreadOnly: true, Category: model.NotificationCategoryPayment})))
}

func TestListReturnsCopies(t *testing.T) {
	s := NewStore(seed())
	items := s.List(Filter{})
	items[0].Read = true

	n, _ := s.Get("n-1")
	assert.False(t, n.Read)
}

func TestUnreadCountMatchesRecordsUnderRandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	allIDs := []string{"n-1", "n-2", "n-3", "n-4", "missing"}

	for run := 0; run < 50; run++ {
		s := NewStore(seed())
		for step := 0; step < 20; step++ {
			id := allIDs[rng.Intn(len(allIDs))]
			switch rng.Intn(3) {
			case 0:
				s.MarkRead(id)
			case 1:
				if rng.Intn(4) == 0 {
					s.MarkAllRead()
				}
			case 2:
				s.Remove(id)
			}

			got := s.UnreadCount()
			assert.GreaterOrEqual(t, got, 0)
			assert.Equal(t, countUnread(s.List(Filter{})), got)
		}
	}
}
