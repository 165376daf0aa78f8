package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	nc "github.com/nats-io/nats.go"
)

// JetStreamEventBus publishes events to NATS JetStream through a watermill
// publisher, provisioning the target stream on first use.
type JetStreamEventBus struct {
	logger    watermill.LoggerAdapter
	publisher *wmnats.Publisher
	conn      *nc.Conn
	js        nc.JetStreamContext

	// mu guards streams; Publish is called from concurrent request
	// handlers.
	mu      sync.Mutex
	streams map[string]bool
}

var _ EventBus = (*JetStreamEventBus)(nil)

// NewJetStreamEventBus connects to NATS and builds the watermill publisher.
func NewJetStreamEventBus(natsURL string, logger *slog.Logger) (*JetStreamEventBus, error) {
	wmLogger := watermill.NewSlogLogger(logger)

	options := []nc.Option{
		nc.RetryOnFailedConnect(true),
		nc.Timeout(30 * time.Second),
		nc.ReconnectWait(1 * time.Second),
		nc.ErrorHandler(func(_ *nc.Conn, s *nc.Subscription, err error) {
			if s != nil {
				wmLogger.Error("Error in subscription", err, watermill.LogFields{
					"subject": s.Subject,
					"queue":   s.Queue,
				})
			} else {
				wmLogger.Error("Error in connection", err, nil)
			}
		}),
	}

	conn, err := nc.Connect(natsURL, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:         natsURL,
			NatsOptions: options,
			Marshaler:   &wmnats.NATSMarshaler{},
			JetStream: wmnats.JetStreamConfig{
				Disabled:      false,
				AutoProvision: false,
			},
		},
		wmLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill NATS publisher: %w", err)
	}

	return &JetStreamEventBus{
		logger:    wmLogger,
		publisher: publisher,
		conn:      conn,
		js:        js,
		streams:   make(map[string]bool),
	}, nil
}

// Publish marshals the payload to JSON and publishes it on the topic. The
// stream named after the topic's first segment is created when missing.
func (b *JetStreamEventBus) Publish(ctx context.Context, topic string, payload any) error {
	if err := b.ensureStream(streamForTopic(topic)); err != nil {
		return err
	}

	msg, err := newJSONMessage(payload)
	if err != nil {
		return err
	}
	msg.SetContext(ctx)

	if err := b.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

func (b *JetStreamEventBus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return fmt.Errorf("failed to close publisher: %w", err)
	}
	b.conn.Close()
	return nil
}

func (b *JetStreamEventBus) ensureStream(streamName string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.streams[streamName] {
		return nil
	}

	info, err := b.js.StreamInfo(streamName)
	if err != nil && err != nc.ErrStreamNotFound {
		return fmt.Errorf("failed to get stream info for %s: %w", streamName, err)
	}
	if info == nil {
		_, err = b.js.AddStream(&nc.StreamConfig{
			Name:     streamName,
			Subjects: []string{fmt.Sprintf("%s.>", streamName)},
		})
		if err != nil {
			return fmt.Errorf("failed to add stream %s: %w", streamName, err)
		}
		b.logger.Info("Stream created", watermill.LogFields{"stream": streamName})
	}

	b.streams[streamName] = true
	return nil
}

// streamForTopic maps "scorecard.imported" to the "scorecard" stream.
func streamForTopic(topic string) string {
	if i := strings.IndexByte(topic, '.'); i > 0 {
		return topic[:i]
	}
	return topic
}
