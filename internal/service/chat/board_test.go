package chat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/sitehub-api/internal/model"
	apperrors "github.com/jwalitptl/sitehub-api/pkg/errors"
	"github.com/jwalitptl/sitehub-api/pkg/scheduler"
)

var (
	client   = model.Viewer{UserID: "u-client", Name: "Maria Souza", Role: model.RoleClient}
	admin    = model.Viewer{UserID: "u-admin", Name: "Site Office", Role: model.RoleAdmin}
	provider = model.Viewer{UserID: "u-prov", Name: "Concrete Co", Role: model.RoleProvider}
)

func seedMessages() []model.ChatMessage {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.ChatMessage{
		{ID: "m-1", ProjectID: "p-1", SenderRole: model.RoleAdmin, Content: "Foundation poured", Timestamp: base},
		{ID: "m-2", ProjectID: "p-2", SenderRole: model.RoleAdmin, Content: "Permit approved", Timestamp: base.Add(time.Minute)},
		{ID: "m-3", ProjectID: "p-1", SenderRole: model.RoleClient, Content: "Great news", Timestamp: base.Add(2 * time.Minute), Read: true},
		{ID: "m-4", ProjectID: "p-1", SenderRole: model.RoleProvider, Content: "Delivery tomorrow", Timestamp: base.Add(3 * time.Minute)},
		{ID: "m-5", ProjectID: "p-10", SenderRole: model.RoleAdmin, Content: "Kickoff", Timestamp: base.Add(4 * time.Minute)},
	}
}

func messageIDs(ms []model.ChatMessage) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.ID
	}
	return out
}

func TestMessagesFiltersByExactProjectInOrder(t *testing.T) {
	b := NewBoard(seedMessages(), BoardOptions{})

	assert.Equal(t, []string{"m-1", "m-3", "m-4"}, messageIDs(b.Messages("p-1")))
	assert.Equal(t, []string{"m-5"}, messageIDs(b.Messages("p-10")))
	assert.Empty(t, b.Messages("p-"))
	assert.NotNil(t, b.Messages("unknown"))
}

func TestUnreadCountExcludesOwnRole(t *testing.T) {
	b := NewBoard(seedMessages(), BoardOptions{})

	assert.Equal(t, 2, b.UnreadCount("p-1", model.RoleClient))
	assert.Equal(t, 1, b.UnreadCount("p-1", model.RoleAdmin))
	assert.Equal(t, 1, b.UnreadCount("p-1", model.RoleProvider))
	assert.Equal(t, 1, b.UnreadCount("p-2", model.RoleClient))
}

func TestMarkReadResetsCountForEveryRole(t *testing.T) {
	b := NewBoard(seedMessages(), BoardOptions{})

	assert.Equal(t, 2, b.MarkRead("p-1"))
	for _, role := range []model.Role{model.RoleClient, model.RoleAdmin, model.RoleProvider} {
		assert.Equal(t, 0, b.UnreadCount("p-1", role))
	}
	for _, m := range b.Messages("p-1") {
		assert.True(t, m.Read, m.ID)
	}
	assert.Equal(t, 1, b.UnreadCount("p-2", model.RoleClient), "other threads untouched")
	assert.Equal(t, 0, b.MarkRead("p-1"))
}

func TestSendAsClientSchedulesOneAdminReply(t *testing.T) {
	sched := scheduler.New()
	defer sched.Close()

	replies := make(chan model.ChatMessage, 1)
	b := NewBoard(nil, BoardOptions{
		Reply:     ReplyConfig{Enabled: true, Delay: 10 * time.Millisecond, SenderName: "Team", Content: "On it"},
		Scheduler: sched,
		OnReply:   func(m model.ChatMessage) { replies <- m },
	})

	msg, scheduled, err := b.Send("p-1", client, "  When is the inspection?  ")
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Equal(t, "When is the inspection?", msg.Content)
	assert.True(t, msg.Read)
	assert.Equal(t, model.RoleClient, msg.SenderRole)
	assert.Len(t, b.Messages("p-1"), 1)

	select {
	case reply := <-replies:
		assert.Equal(t, model.RoleAdmin, reply.SenderRole)
		assert.False(t, reply.Read)
		assert.Equal(t, "On it", reply.Content)
		assert.Equal(t, "p-1", reply.ProjectID)
	case <-time.After(time.Second):
		t.Fatal("auto reply never arrived")
	}

	thread := b.Messages("p-1")
	require.Len(t, thread, 2)
	assert.Equal(t, msg.ID, thread[0].ID)
	assert.Equal(t, 1, b.UnreadCount("p-1", model.RoleClient))
	assert.Equal(t, 0, sched.Pending())
}

func TestSendAsProviderAlsoGetsReply(t *testing.T) {
	sched := scheduler.New()
	defer sched.Close()

	b := NewBoard(nil, BoardOptions{
		Reply:     ReplyConfig{Enabled: true, Delay: time.Millisecond},
		Scheduler: sched,
	})

	_, scheduled, err := b.Send("p-1", provider, "Truck arriving")
	require.NoError(t, err)
	assert.True(t, scheduled)
	assert.Eventually(t, func() bool { return len(b.Messages("p-1")) == 2 }, time.Second, time.Millisecond)
}

func TestSendAsAdminSchedulesNothing(t *testing.T) {
	sched := scheduler.New()
	defer sched.Close()

	b := NewBoard(nil, BoardOptions{
		Reply:     ReplyConfig{Enabled: true, Delay: time.Millisecond},
		Scheduler: sched,
	})

	_, scheduled, err := b.Send("p-1", admin, "Crew starts Monday")
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.Equal(t, 0, sched.Pending())

	time.Sleep(20 * time.Millisecond)
	assert.Len(t, b.Messages("p-1"), 1)
}

func TestSendRejectsEmptyContent(t *testing.T) {
	b := NewBoard(nil, BoardOptions{})

	_, _, err := b.Send("p-1", client, "   ")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
	assert.Empty(t, b.Messages("p-1"))
}

func TestClosedSchedulerDropsReply(t *testing.T) {
	sched := scheduler.New()
	var replyErr error
	b := NewBoard(nil, BoardOptions{
		Reply:        ReplyConfig{Enabled: true, Delay: 30 * time.Millisecond},
		Scheduler:    sched,
		OnReplyError: func(err error) { replyErr = err },
	})

	_, scheduled, err := b.Send("p-1", client, "first")
	require.NoError(t, err)
	require.True(t, scheduled)

	assert.Equal(t, 1, sched.Close())
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, b.Messages("p-1"), 1, "cancelled reply must not be appended")

	_, scheduled, err = b.Send("p-1", client, "second")
	require.NoError(t, err)
	assert.False(t, scheduled)
	assert.ErrorIs(t, replyErr, scheduler.ErrClosed)
}

func TestSendUsesClock(t *testing.T) {
	at := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	b := NewBoard(nil, BoardOptions{Now: func() time.Time { return at }})

	msg, _, err := b.Send("p-1", admin, "hello")
	require.NoError(t, err)
	assert.Equal(t, at, msg.Timestamp)
}
