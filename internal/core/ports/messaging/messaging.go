package messaging

import (
	"context"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
)

// EventPublisher announces transaction changes to interested consumers.
type EventPublisher interface {
	PublishChange(ctx context.Context, event domain.ChangeEvent) error
}

// ChangeHandler processes one change event.
type ChangeHandler func(ctx context.Context, event domain.ChangeEvent) error

// EventConsumer delivers change events to a handler until ctx is done.
type EventConsumer interface {
	ConsumeChanges(ctx context.Context, handler ChangeHandler) error
}
