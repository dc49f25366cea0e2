// Package events carries in-process domain events over a watermill GoChannel.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler consumes one event. Returned errors are logged; the message is
// acknowledged either way.
type Handler func(ctx context.Context, event Event) error

// Publisher is the write side of the bus.
type Publisher interface {
	Publish(ctx context.Context, eventType EventType, payload interface{}) error
}

// Bus publishes and fans out events within the process.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewBus constructs a bus with the given per-subscriber buffer size.
func NewBus(buffer int64, logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	if buffer <= 0 {
		buffer = 64
	}
	pubsub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: buffer}, NewZapAdapter(logger))
	return &Bus{pubsub: pubsub, logger: logger}
}

// Publish wraps payload in an Event and sends it on the topic named by
// eventType. Events without subscribers are dropped.
func (b *Bus) Publish(ctx context.Context, eventType EventType, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := message.NewMessage(event.ID, body)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", string(eventType))
	msg.Metadata.Set("source", eventSource)

	if err := b.pubsub.Publish(string(eventType), msg); err != nil {
		b.logger.Error("publish event failed", zap.String("event_id", event.ID), zap.String("event_type", string(eventType)), zap.Error(err))
		return fmt.Errorf("publish %s: %w", eventType, err)
	}
	b.logger.Debug("event published", zap.String("event_id", event.ID), zap.String("event_type", string(eventType)))
	return nil
}

// Subscribe runs handler for every event of eventType until ctx is done or
// the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, eventType EventType, handler Handler) error {
	messages, err := b.pubsub.Subscribe(ctx, string(eventType))
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", eventType, err)
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for msg := range messages {
			b.dispatch(ctx, msg, handler)
		}
	}()
	return nil
}

func (b *Bus) dispatch(ctx context.Context, msg *message.Message, handler Handler) {
	defer msg.Ack()

	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		b.logger.Warn("discarding malformed event", zap.String("message_id", msg.UUID), zap.Error(err))
		return
	}
	if err := handler(ctx, event); err != nil {
		b.logger.Error("event handler failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
	}
}

// Close stops the bus and waits for subscriber goroutines to drain.
func (b *Bus) Close() error {
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}

// ZapAdapter lets watermill log through zap.
type ZapAdapter struct {
	logger *zap.Logger
}

// NewZapAdapter wraps logger as a watermill.LoggerAdapter.
func NewZapAdapter(logger *zap.Logger) watermill.LoggerAdapter {
	return &ZapAdapter{logger: logger}
}

func (a *ZapAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.logger.Error(msg, append(zapFields(fields), zap.Error(err))...)
}

func (a *ZapAdapter) Info(msg string, fields watermill.LogFields) {
	a.logger.Info(msg, zapFields(fields)...)
}

func (a *ZapAdapter) Debug(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, zapFields(fields)...)
}

func (a *ZapAdapter) Trace(msg string, fields watermill.LogFields) {
	a.logger.Debug(msg, zapFields(fields)...)
}

func (a *ZapAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &ZapAdapter{logger: a.logger.With(zapFields(fields)...)}
}

func zapFields(fields watermill.LogFields) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
