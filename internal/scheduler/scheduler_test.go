package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applio/applio_bot/internal/session"
)

func TestSweepSessions(t *testing.T) {
	store := session.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), 100, &session.State{Step: "awaiting_name"}))

	s := NewScheduler(store)

	// A fresh session survives the sweep.
	s.sweepSessions()

	state, err := store.Get(context.Background(), 100)
	require.NoError(t, err)
	assert.NotNil(t, state)
}

func TestRunWithRecovery(t *testing.T) {
	s := NewScheduler(session.NewMemoryStore())

	assert.NotPanics(t, func() {
		s.runWithRecovery("Panicky", func() {
			panic("boom")
		})
	})
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(session.NewMemoryStore())

	s.Start()
	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
