package ledger_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libracore/pkg/ledger"
)

type testEvent struct {
	Message string `json:"message"`
}

func mustMarshal(t *testing.T, v interface{}) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestAppendAndLoadEvents(t *testing.T) {
	l := ledger.New()
	aggregateID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := l.AppendEvents(ctx, aggregateID, "loan", i, []ledger.Event{
			{EventType: "LoanRenewed", EventData: mustMarshal(t, testEvent{Message: "renewed"})},
		})
		require.NoError(t, err)
	}

	events, err := l.LoadEvents(ctx, aggregateID, 0, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i, event := range events {
		assert.Equal(t, i+1, event.Version)
		assert.Equal(t, aggregateID, event.AggregateID)
		assert.Equal(t, "loan", event.AggregateType)
		assert.False(t, event.CreatedAt.IsZero())
	}

	version, err := l.CurrentVersion(ctx, aggregateID)
	require.NoError(t, err)
	assert.Equal(t, 3, version)
}

func TestLoadEventsVersionRange(t *testing.T) {
	l := ledger.New()
	aggregateID := uuid.New()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		err := l.AppendEvents(ctx, aggregateID, "loan", i, []ledger.Event{
			{EventType: "LoanRenewed", EventData: mustMarshal(t, testEvent{})},
		})
		require.NoError(t, err)
	}

	events, err := l.LoadEvents(ctx, aggregateID, 2, 4)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, 2, events[0].Version)
	assert.Equal(t, 4, events[2].Version)
}

func TestAppendRejectsStaleVersion(t *testing.T) {
	l := ledger.New()
	aggregateID := uuid.New()
	ctx := context.Background()

	event := ledger.Event{EventType: "LoanCheckedOut", EventData: mustMarshal(t, testEvent{})}
	require.NoError(t, l.AppendEvents(ctx, aggregateID, "loan", 0, []ledger.Event{event}))

	// A second writer that read version 0 must lose.
	err := l.AppendEvents(ctx, aggregateID, "loan", 0, []ledger.Event{event})
	assert.ErrorIs(t, err, ledger.ErrConcurrencyConflict)

	err = l.AppendEvents(ctx, aggregateID, "loan", -1, []ledger.Event{event})
	assert.ErrorIs(t, err, ledger.ErrInvalidVersion)
}

func TestConcurrentAppendsSingleWinner(t *testing.T) {
	l := ledger.New()
	aggregateID := uuid.New()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	successCount := 0

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, _ := json.Marshal(testEvent{Message: "contended"})
			err := l.AppendEvents(ctx, aggregateID, "loan", 0, []ledger.Event{
				{EventType: "LoanRenewed", EventData: data},
			})
			if err == nil {
				mu.Lock()
				successCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successCount, "only one concurrent append at the same version should succeed")

	version, err := l.CurrentVersion(ctx, aggregateID)
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestStreamEvents(t *testing.T) {
	l := ledger.New()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		err := l.AppendEvents(ctx, uuid.New(), "loan", 0, []ledger.Event{
			{EventType: "LoanCheckedOut", EventData: mustMarshal(t, testEvent{})},
		})
		require.NoError(t, err)
	}

	batch, err := l.StreamEvents(ctx, 0, 3)
	require.NoError(t, err)
	require.Len(t, batch, 3)

	rest, err := l.StreamEvents(ctx, batch[2].ID, 10)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}
