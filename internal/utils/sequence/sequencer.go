// Package sequence orders overlapping requests for the same key so that the
// one with the highest sequence number wins, regardless of which finishes
// first.
package sequence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/cashflow_app/internal/apperrors"
)

// DefaultIdleTTL is how long a key's newest sequence is remembered after its
// last request finished.
const DefaultIdleTTL = 30 * time.Minute

// Ticket identifies one in-flight request.
type Ticket struct {
	Key string
	Seq uint64
}

type entry struct {
	latest   uint64
	cancel   context.CancelFunc
	inflight int
	lastSeen time.Time
}

func (e *entry) expired(now time.Time, ttl time.Duration) bool {
	return e.inflight == 0 && now.Sub(e.lastSeen) >= ttl
}

// Sequencer tracks the newest request per key. The newest sequence of a key
// outlives its requests, so a delayed older request is still rejected after
// a newer one completed. A key is forgotten once it has been idle for the
// TTL; clients that restart their numbering use a new session key or wait
// that long.
type Sequencer struct {
	mu        sync.Mutex
	entries   map[string]*entry
	ttl       time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// Option configures a Sequencer.
type Option func(*Sequencer)

// WithIdleTTL sets how long idle keys are kept. Non-positive values are ignored.
func WithIdleTTL(ttl time.Duration) Option {
	return func(s *Sequencer) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Sequencer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSequencer returns an empty Sequencer.
func NewSequencer(options ...Option) *Sequencer {
	s := &Sequencer{
		entries: make(map[string]*entry),
		ttl:     DefaultIdleTTL,
		now:     time.Now,
	}
	for _, option := range options {
		option(s)
	}
	s.lastSweep = s.now()
	return s
}

// Begin registers a request for key. A zero seq is assigned the next number
// after the newest seen. A seq not greater than the newest one seen for the
// key is rejected with ErrStaleRequest, whether or not that request is still
// running. Otherwise the previous newest request's context is cancelled and
// a context for this request is returned. Every successful Begin must be
// paired with Done.
func (s *Sequencer) Begin(ctx context.Context, key string, seq uint64) (context.Context, Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	e, ok := s.entries[key]
	if !ok || e.expired(now, s.ttl) {
		e = &entry{}
		s.entries[key] = e
	}
	e.lastSeen = now
	if seq == 0 {
		seq = e.latest + 1
	}
	if seq <= e.latest {
		return ctx, Ticket{}, fmt.Errorf("sequence %d is not newer than %d: %w", seq, e.latest, apperrors.ErrStaleRequest)
	}

	if e.cancel != nil {
		e.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	e.latest = seq
	e.cancel = cancel
	e.inflight++

	return reqCtx, Ticket{Key: key, Seq: seq}, nil
}

// Current reports whether t is still the newest request for its key.
func (s *Sequencer) Current(t Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[t.Key]
	return ok && e.latest == t.Seq
}

// Done releases t. The key's newest sequence is kept.
func (s *Sequencer) Done(t Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[t.Key]
	if !ok || e.inflight == 0 {
		return
	}
	if e.latest == t.Seq && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.inflight--
	e.lastSeen = s.now()
}

// sweep drops idle keys past the TTL, at most once per TTL. Callers hold mu.
func (s *Sequencer) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.ttl {
		return
	}
	s.lastSweep = now
	for key, e := range s.entries {
		if e.expired(now, s.ttl) {
			delete(s.entries, key)
		}
	}
}
