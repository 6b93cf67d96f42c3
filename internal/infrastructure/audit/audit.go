// Package audit records who did what to the register. Entries are written
// fire-and-forget: a failed audit write never fails the operation it records.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Actor identifies the authenticated user performing an operation. UserID is
// the subject claim as issued, kept as a string rather than parsed.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// Entry is a single audit record
type Entry struct {
	Timestamp  time.Time
	Actor      Actor
	Action     string
	Resource   string
	ResourceID uuid.UUID
	Detail     string
}

// Sink receives audit entries
type Sink interface {
	Record(ctx context.Context, entry Entry)
}

type actorKey struct{}

// WithActor attaches the acting user to the context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext retrieves the acting user, or a zero Actor if none is set
func ActorFromContext(ctx context.Context) Actor {
	if actor, ok := ctx.Value(actorKey{}).(Actor); ok {
		return actor
	}
	return Actor{}
}

// ZapSink writes audit entries to a structured log
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a sink backed by the given logger
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger.Named("audit")}
}

// Record implements Sink
func (s *ZapSink) Record(_ context.Context, entry Entry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.logger.Info("audit",
		zap.Time("timestamp", entry.Timestamp),
		zap.String("actor_id", entry.Actor.UserID),
		zap.String("actor_username", entry.Actor.Username),
		zap.String("actor_role", entry.Actor.Role),
		zap.String("action", entry.Action),
		zap.String("resource", entry.Resource),
		zap.String("resource_id", entry.ResourceID.String()),
		zap.String("detail", entry.Detail),
	)
}

// RecordingSink captures entries in memory for tests
type RecordingSink struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingSink creates an empty in-memory sink
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Record implements Sink
func (s *RecordingSink) Record(_ context.Context, entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	s.entries = append(s.entries, entry)
}

// Entries returns a copy of the recorded entries
func (s *RecordingSink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
