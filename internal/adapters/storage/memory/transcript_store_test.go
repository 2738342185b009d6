package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/interview-api/internal/domain"
)

func TestTranscriptStoreOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()

	_, err := store.Append(ctx, "sess-1", domain.RoleAI, "Hello, let's begin.")
	require.NoError(t, err)
	_, err = store.Append(ctx, "sess-1", domain.RoleCandidate, "Hi, glad to be here.")
	require.NoError(t, err)
	_, err = store.Append(ctx, "sess-2", domain.RoleAI, "Different session.")
	require.NoError(t, err)

	turns, err := store.TurnsFor(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, 1, turns[0].Seq)
	assert.Equal(t, 2, turns[1].Seq)
	assert.Equal(t, domain.RoleAI, turns[0].Role)

	// Exact session match only: sess-2 has its own log.
	other, err := store.TurnsFor(ctx, "sess-2")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, 1, other[0].Seq)
}

func TestTranscriptStoreUnknownSessionIsEmpty(t *testing.T) {
	store := NewTranscriptStore()

	turns, err := store.TurnsFor(context.Background(), "nope")

	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestTranscriptStoreDrop(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()

	_, err := store.Append(ctx, "sess-1", domain.RoleAI, "Hello")
	require.NoError(t, err)
	require.NoError(t, store.Drop(ctx, "sess-1"))

	turns, err := store.TurnsFor(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestTranscriptStoreConcurrentAppendsGetUniqueSequences(t *testing.T) {
	ctx := context.Background()
	store := NewTranscriptStore()

	const appends = 50
	var wg sync.WaitGroup
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := store.Append(ctx, "sess-1", domain.RoleCandidate, fmt.Sprintf("turn %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	turns, err := store.TurnsFor(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, turns, appends)

	seen := make(map[int]bool, appends)
	for _, turn := range turns {
		assert.False(t, seen[turn.Seq], "duplicate seq %d", turn.Seq)
		seen[turn.Seq] = true
	}
	for i := 1; i <= appends; i++ {
		assert.True(t, seen[i], "missing seq %d", i)
	}
}
