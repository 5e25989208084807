package shared

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetTraceID(ctx))

	stamped := SetTraceID(ctx)

	traceID := GetTraceID(stamped)
	require.Len(t, traceID, 32)
	_, err := hex.DecodeString(traceID)
	require.NoError(t, err, "trace IDs must be hex so they survive log pipelines")

	// The original context stays untouched.
	assert.Empty(t, GetTraceID(ctx))
}

func TestGetTraceIDWrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), TraceIDKey, 123)

	assert.Empty(t, GetTraceID(ctx))
}

func TestTraceIDsAreUnique(t *testing.T) {
	const iterations = 1000

	seen := make(map[string]bool, iterations)
	for i := 0; i < iterations; i++ {
		id := newTraceID()
		assert.Len(t, id, 32)
		assert.False(t, seen[id], "trace IDs must not repeat")
		seen[id] = true
	}
}
