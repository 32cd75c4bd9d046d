package amqp

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

const maxBackoff = 30 * time.Second

// Backoff returns the wait before reconnect attempt n: 1s doubling per
// attempt, capped at 30s.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	if attempt >= 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

// IsConnectionError reports whether err means the broker connection is gone
// and a reconnect is worth trying.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, amqp091.ErrClosed) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"connection refused", "connection closed", "connection reset", "channel closed", "eof", "broken pipe"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
