package memory

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/sitehub-api/pkg/messaging"
)

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestPublishFansOutJSON(t *testing.T) {
	b := NewBroker(4, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Subscribe(ctx, "activity")
	require.NoError(t, err)
	second, err := b.Subscribe(ctx, "activity")
	require.NoError(t, err)
	other, err := b.Subscribe(ctx, "other")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "activity", map[string]string{"type": "chat.read"}))

	for _, ch := range []<-chan []byte{first, second} {
		var got map[string]string
		require.NoError(t, json.Unmarshal(receive(t, ch), &got))
		assert.Equal(t, "chat.read", got["type"])
	}
	assert.Len(t, other, 0)
}

func TestFullSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker(1, nil)
	defer b.Close()

	ch, err := b.Subscribe(context.Background(), "activity")
	require.NoError(t, err)

	require.NoError(t, b.Publish(context.Background(), "activity", 1))
	require.NoError(t, b.Publish(context.Background(), "activity", 2))
	assert.Equal(t, []byte("1"), receive(t, ch))
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	b := NewBroker(1, nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx, "activity")
	require.NoError(t, err)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)
}

func TestClosedBroker(t *testing.T) {
	b := NewBroker(1, nil)
	require.NoError(t, b.Ping(context.Background()))
	require.NoError(t, b.Close())
	assert.ErrorIs(t, b.Ping(context.Background()), messaging.ErrClosed)
	require.NoError(t, b.Close())

	assert.ErrorIs(t, b.Publish(context.Background(), "activity", 1), messaging.ErrClosed)
	_, err := b.Subscribe(context.Background(), "activity")
	assert.ErrorIs(t, err, messaging.ErrClosed)
}

func TestPublishRejectsUnencodable(t *testing.T) {
	b := NewBroker(1, nil)
	defer b.Close()

	assert.Error(t, b.Publish(context.Background(), "activity", make(chan int)))
}
