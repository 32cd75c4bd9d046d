package amqp

import (
	"context"

	"github.com/SscSPs/cashflow_app/internal/core/domain"
	portsmsg "github.com/SscSPs/cashflow_app/internal/core/ports/messaging"
)

// NoopPublisher drops every event. It is used when no broker is configured.
type NoopPublisher struct{}

var _ portsmsg.EventPublisher = NoopPublisher{}

func (NoopPublisher) PublishChange(context.Context, domain.ChangeEvent) error {
	return nil
}
