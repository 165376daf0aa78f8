// Package eventbus publishes domain events onto NATS JetStream via
// watermill so downstream consumers (notifications, dashboards) can react
// to imports without coupling to this service.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// EventBus is the publish-side surface the services depend on.
type EventBus interface {
	Publish(ctx context.Context, topic string, payload any) error
	Close() error
}

// newJSONMessage marshals a payload into a watermill message with a fresh
// UUID.
func newJSONMessage(payload any) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	return message.NewMessage(uuid.New().String(), data), nil
}

// NoOp is used by the one-shot CLI import path and in tests, where no
// broker is available.
type NoOp struct{}

func (NoOp) Publish(context.Context, string, any) error { return nil }
func (NoOp) Close() error                               { return nil }
