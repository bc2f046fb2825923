package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heliowatch/internal/telemetry"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	s := Session{
		ID:       "abc",
		FileName: "day.csv",
		Samples:  []telemetry.Sample{{TimeLabel: "08:00", SolarPowerW: 100}},
	}
	require.NoError(t, store.Put(ctx, s))

	got, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "day.csv", got.FileName)
	require.Len(t, got.Samples, 1)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreReplaceIsWholesale(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Session{ID: "x", Samples: []telemetry.Sample{{TimeLabel: "08:00"}, {TimeLabel: "09:00"}}}))
	require.NoError(t, store.Put(ctx, Session{ID: "x", Samples: []telemetry.Sample{{TimeLabel: "10:00"}}}))

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	require.Len(t, got.Samples, 1, "old series must be discarded, not merged")
	assert.Equal(t, "10:00", got.Samples[0].TimeLabel)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, Session{ID: "x"}))
	require.NoError(t, store.Delete(ctx, "x"))
	_, err := store.Get(ctx, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(context.Background(), Session{ID: "x"}))

	now = now.Add(2 * time.Minute)
	_, err := store.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
