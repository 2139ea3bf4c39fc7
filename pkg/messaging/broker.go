package messaging

import (
	"context"
	"errors"
)

// ErrClosed is returned when publishing on a closed broker.
var ErrClosed = errors.New("broker closed")

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	// Ping reports whether the broker can accept messages.
	Ping(ctx context.Context) error
	Close() error
}
