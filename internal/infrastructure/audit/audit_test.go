package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithActor_RoundTrip(t *testing.T) {
	actor := Actor{UserID: uuid.NewString(), Username: "registrar@example.com", Role: "REGISTRAR"}

	ctx := WithActor(context.Background(), actor)
	got := ActorFromContext(ctx)
	assert.Equal(t, actor, got)
}

func TestActorFromContext_Missing(t *testing.T) {
	got := ActorFromContext(context.Background())
	assert.Empty(t, got.UserID)
	assert.Empty(t, got.Role)
}

func TestRecordingSink(t *testing.T) {
	sink := NewRecordingSink()
	resourceID := uuid.New()

	sink.Record(context.Background(), Entry{
		Actor:      Actor{UserID: uuid.NewString(), Role: "ADMIN"},
		Action:     "allocation.cancel",
		Resource:   "share_allocation",
		ResourceID: resourceID,
		Detail:     "reason: issued in error",
	})

	entries := sink.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "allocation.cancel", entries[0].Action)
	assert.Equal(t, resourceID, entries[0].ResourceID)
	assert.False(t, entries[0].Timestamp.IsZero())
}
