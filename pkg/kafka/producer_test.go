package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	kafka_config "deskbooker/pkg/kafka/config"
	"deskbooker/pkg/logger"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu      sync.Mutex
	written []kafka.Message
	err     error
	closed  bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.written = append(w.written, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer(writer, dlq *fakeWriter) *Producer {
	p := &Producer{writer: writer, topic: "desk-bookings", dlqTopic: "desk-bookings-dlq"}
	if dlq != nil {
		p.dlqWriter = dlq
	}
	return p
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestNewProducer_Validation(t *testing.T) {
	log := logger.Discard()

	_, err := NewProducer(nil, "desk-bookings", "", log)
	assert.Error(t, err)

	_, err = NewProducer(&kafka_config.Config{}, "desk-bookings", "", log)
	assert.Error(t, err)

	_, err = NewProducer(kafka_config.FromEnv(), "", "", log)
	assert.Error(t, err)

	p, err := NewProducer(kafka_config.FromEnv(), "desk-bookings", "desk-bookings-dlq", log)
	require.NoError(t, err)
	assert.NotNil(t, p.dlqWriter)
	require.NoError(t, p.Close())
}

func TestPublish_WritesMessageWithHeaders(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	msg := NewMessage().
		WithKey("3:2020-09-05").
		WithValue(map[string]int{"desk_id": 3}).
		WithEventType("desk_booking.created").
		Build()

	require.NoError(t, p.Publish(context.Background(), msg))

	require.Len(t, writer.written, 1)
	assert.Equal(t, "3:2020-09-05", string(writer.written[0].Key))
	assert.JSONEq(t, `{"desk_id":3}`, string(writer.written[0].Value))
	assert.Equal(t, "desk_booking.created", header(writer.written[0], HeaderEventType))
	assert.NotEmpty(t, header(writer.written[0], HeaderEventID))
}

func TestPublish_RejectsInvalidMessages(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	err := p.Publish(context.Background(), NewMessage().WithValue("x").Build())
	assert.ErrorIs(t, err, ErrEmptyKey)

	err = p.Publish(context.Background(), NewMessage().WithKey("k").WithValue(make(chan int)).Build())
	assert.ErrorIs(t, err, ErrEmptyValue)

	assert.Empty(t, writer.written)
}

func TestPublish_AfterClose(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	err := p.Publish(context.Background(), NewMessage().WithKey("k").WithValue("v").Build())
	assert.ErrorIs(t, err, ErrProducerClosed)
	assert.True(t, writer.closed)
}

func TestPublish_FailedWriteGoesToDLQ(t *testing.T) {
	boom := errors.New("broker unreachable")
	writer := &fakeWriter{err: boom}
	dlq := &fakeWriter{}
	p := newTestProducer(writer, dlq)

	err := p.Publish(context.Background(), NewMessage().WithKey("k").WithValue("v").Build())

	assert.ErrorIs(t, err, boom)
	require.Len(t, dlq.written, 1)
	assert.Equal(t, "desk-bookings", header(dlq.written[0], HeaderOriginalTopic))
	assert.Equal(t, "broker unreachable", header(dlq.written[0], "dlq-error"))
}

func TestPublish_MiddlewareRunsInOrder(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	var calls []string
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		calls = append(calls, "first")
		return next(ctx, msg)
	})
	p.Use(func(ctx context.Context, msg Message, next MessageHandler) error {
		calls = append(calls, "second:"+msg.Topic)
		return next(ctx, msg)
	})

	require.NoError(t, p.Publish(context.Background(), NewMessage().WithKey("k").WithValue("v").Build()))

	assert.Equal(t, []string{"first", "second:desk-bookings"}, calls)
	assert.Len(t, writer.written, 1)
}

func TestMessageBuilder_CorrelationID(t *testing.T) {
	msg := NewMessage().WithCorrelationID("").Build()
	assert.Empty(t, msg.GetCorrelationID())

	msg = NewMessage().WithCorrelationID("req-1").Build()
	assert.Equal(t, "req-1", msg.GetCorrelationID())
}
