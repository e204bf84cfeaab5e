package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Lifecycle(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	t.Run("GetIdleUser", func(t *testing.T) {
		state, err := store.Get(ctx, 100)
		assert.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("PutThenGet", func(t *testing.T) {
		err := store.Put(ctx, 100, &State{Step: "awaiting_name"})
		require.NoError(t, err)

		state, err := store.Get(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "awaiting_name", state.Step)
		assert.False(t, state.UpdatedAt.IsZero())
	})

	t.Run("PutOverwrites", func(t *testing.T) {
		err := store.Put(ctx, 100, &State{Step: "awaiting_contact", Name: "Jane Doe"})
		require.NoError(t, err)

		state, err := store.Get(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, state)
		assert.Equal(t, "awaiting_contact", state.Step)
		assert.Equal(t, "Jane Doe", state.Name)
	})

	t.Run("Clear", func(t *testing.T) {
		err := store.Clear(ctx, 100)
		require.NoError(t, err)

		state, err := store.Get(ctx, 100)
		assert.NoError(t, err)
		assert.Nil(t, state)
	})

	t.Run("ClearUnknownUserIsANoop", func(t *testing.T) {
		assert.NoError(t, store.Clear(ctx, 999))
	})
}

// Get hands out a copy, so a caller mutating the result must not leak into
// the store.
func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 100, &State{Step: "awaiting_name"}))

	state, err := store.Get(ctx, 100)
	require.NoError(t, err)
	state.Name = "mutated"

	fresh, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, fresh.Name)
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, 100, &State{Step: "awaiting_name"}))
	require.NoError(t, store.Put(ctx, 200, &State{Step: "awaiting_purpose"}))

	// Age one entry past the cutoff by hand.
	store.mu.Lock()
	store.states[100].UpdatedAt = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()

	evicted := store.Sweep(time.Hour)
	assert.Equal(t, 1, evicted)

	state, err := store.Get(ctx, 100)
	require.NoError(t, err)
	assert.Nil(t, state)

	state, err = store.Get(ctx, 200)
	require.NoError(t, err)
	assert.NotNil(t, state)
}
