// Package memory is an in-process broker. Messages are JSON encoded so
// subscribers see the same bytes a network broker would deliver.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/jwalitptl/sitehub-api/pkg/logger"
	"github.com/jwalitptl/sitehub-api/pkg/messaging"
)

const defaultBuffer = 64

type subscriber struct {
	ch chan []byte
}

type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	buffer int
	closed bool
	logger *logger.Logger
}

// NewBroker returns a broker whose subscriber channels hold buffer
// messages; a full subscriber misses messages rather than blocking
// publishers.
func NewBroker(buffer int, log *logger.Logger) *Broker {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Broker{
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: buffer,
		logger: log,
	}
}

var _ messaging.Broker = (*Broker)(nil)

func (b *Broker) Publish(_ context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return messaging.ErrClosed
	}

	b.logger.Debug("message published", "channel", channel, "bytes", len(payload))

	for sub := range b.subs[channel] {
		select {
		case sub.ch <- payload:
		default:
			b.logger.Warn("subscriber buffer full, message dropped", "channel", channel)
		}
	}
	return nil
}

// Subscribe delivers messages published on channel until ctx is done.
func (b *Broker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, messaging.ErrClosed
	}

	sub := &subscriber{ch: make(chan []byte, b.buffer)}
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[*subscriber]struct{})
	}
	b.subs[channel][sub] = struct{}{}

	go func() {
		<-ctx.Done()
		b.unsubscribe(channel, sub)
	}()

	return sub.ch, nil
}

func (b *Broker) unsubscribe(channel string, sub *subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[channel][sub]; !ok {
		return
	}
	delete(b.subs[channel], sub)
	close(sub.ch)
}

func (b *Broker) Ping(_ context.Context) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return messaging.ErrClosed
	}
	return nil
}

func (b *Broker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for sub := range subs {
			close(sub.ch)
		}
	}
	b.subs = make(map[string]map[*subscriber]struct{})
	return nil
}
