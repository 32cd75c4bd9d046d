package amqp

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{-1, 1 * time.Second},
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{15, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			assert.Equal(t, tt.expected, Backoff(tt.attempt))
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "refused", err: errors.New("dial tcp: connection refused"), expected: true},
		{name: "closed sentinel", err: fmt.Errorf("publish: %w", amqp091.ErrClosed), expected: true},
		{name: "consumer channel closed", err: errors.New("message channel closed"), expected: true},
		{name: "unexpected EOF", err: errors.New("unexpected EOF"), expected: true},
		{name: "application error", err: errors.New("sheet not found"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsConnectionError(tt.err))
		})
	}
}

func TestChangeMessageRoundTrip(t *testing.T) {
	event := domain.ChangeEvent{
		ID:            "evt-1",
		UserID:        "user-1",
		TransactionID: 42,
		Action:        domain.ChangeCreated,
		Date:          "2024-03-05",
		OccurredAt:    time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC),
	}

	body, err := NewChangeMessage(event).ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(body), `"transactionId":42`)

	msg, err := ChangeMessageFromJSON(body)
	require.NoError(t, err)
	assert.Equal(t, event, msg.ChangeEvent)
}

func TestChangeMessageFromJSON_Invalid(t *testing.T) {
	for name, body := range map[string]string{
		"not json":     `{`,
		"missing user": `{"id":"e","date":"2024-03-05"}`,
		"bad date":     `{"id":"e","userId":"u","date":"yesterday"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ChangeMessageFromJSON([]byte(body))
			assert.Error(t, err)
		})
	}
}

type fakeAck struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAck) Ack(bool) error {
	f.acked = true
	return nil
}

func (f *fakeAck) Nack(_ bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func TestDispatch(t *testing.T) {
	valid, err := NewChangeMessage(domain.ChangeEvent{ID: "e", UserID: "u", Date: "2024-03-05"}).ToJSON()
	require.NoError(t, err)

	ok := func(context.Context, domain.ChangeEvent) error { return nil }
	failing := func(context.Context, domain.ChangeEvent) error { return assert.AnError }

	tests := []struct {
		name        string
		body        []byte
		redelivered bool
		handler     func(context.Context, domain.ChangeEvent) error
		want        fakeAck
	}{
		{name: "handled", body: valid, handler: ok, want: fakeAck{acked: true}},
		{name: "malformed is dropped", body: []byte("garbage"), handler: ok, want: fakeAck{nacked: true}},
		{name: "failure requeued once", body: valid, handler: failing, want: fakeAck{nacked: true, requeued: true}},
		{name: "redelivered failure dropped", body: valid, redelivered: true, handler: failing, want: fakeAck{nacked: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := &fakeAck{}
			dispatch(context.Background(), tt.body, tt.redelivered, got, tt.handler)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.PublishChange(context.Background(), domain.ChangeEvent{}))
}
