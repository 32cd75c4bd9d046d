package amqp

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// ChangeMessage is the wire form of a transaction change event.
type ChangeMessage struct {
	domain.ChangeEvent
}

// NewChangeMessage wraps an event for publishing.
func NewChangeMessage(event domain.ChangeEvent) *ChangeMessage {
	return &ChangeMessage{ChangeEvent: event}
}

// ToJSON converts the message to JSON bytes
func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangeMessageFromJSON decodes a message and checks the fields the worker
// depends on.
func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.UserID == "" {
		return nil, fmt.Errorf("change message %q has no user id", msg.ID)
	}
	if _, ok := domain.ParseDay(msg.Date); !ok {
		return nil, fmt.Errorf("change message %q has invalid date %q", msg.ID, msg.Date)
	}
	return &msg, nil
}
