package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/models/events"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	err := p.Publish(context.Background(), events.TopicRecordDeleted, events.RecordDeleted{EventID: "e-1", RecordID: 42})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)
	assert.Equal(t, events.TopicRecordDeleted, w.messages[0].Topic)

	var got events.RecordDeleted
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &got))
	assert.Equal(t, int64(42), got.RecordID)
	assert.Equal(t, "e-1", got.EventID)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_PublishError(t *testing.T) {
	p := &Publisher{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), events.TopicRecordSaved, events.RecordSaved{})
	assert.ErrorContains(t, err, "broker down")
	assert.ErrorContains(t, err, events.TopicRecordSaved)
}

func TestPublisher_UnencodableEvent(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}

	err := p.Publish(context.Background(), "t", make(chan int))
	assert.Error(t, err)
	assert.Empty(t, w.messages)
}
