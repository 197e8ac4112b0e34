package datalake

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	blob := []byte(`{"matchId":"EUW1_6324578901","gameDuration":1834}`)

	exists, err := store.Exists(ctx, "matches/EUW1_6324578901.json")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, "matches/EUW1_6324578901.json", blob))

	exists, err = store.Exists(ctx, "matches/EUW1_6324578901.json")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Get(ctx, "matches/EUW1_6324578901.json")
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestMemoryStoreGetMissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "matches/missing.json")

	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	blob := []byte(`{"puuid":"abc"}`)

	require.NoError(t, store.Put(ctx, "players/Faker_abc.json", blob))
	blob[0] = 'X'

	got, err := store.Get(ctx, "players/Faker_abc.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"puuid":"abc"}`), got)
}

func TestKeyLayouts(t *testing.T) {
	start := time.Date(2023, 3, 28, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 3, 29, 0, 0, 0, 0, time.UTC)

	assert.Equal(t,
		"ladder/challengerleagues-RANKED_SOLO_5x5-03-28-2023_00:00:00.json",
		LadderKey("challengerleagues", "RANKED_SOLO_5x5", start))

	assert.Equal(t, "players/Faker_abc123.json", PlayerKey("Faker", "abc123"))

	assert.Equal(t,
		"match-history/puuid-1-ranked-03-28-2023_00:00:00-03-29-2023_00:00:00.json",
		MatchHistoryKey("puuid-1", "ranked", start, end))

	assert.Equal(t, "matches/EUW1_6324578901.json", MatchKey("EUW1_6324578901"))
}

func TestKeysDistinctAcrossWindows(t *testing.T) {
	start := time.Date(2023, 3, 28, 0, 0, 0, 0, time.UTC)
	shifted := start.Add(time.Second)
	end := start.Add(24 * time.Hour)

	assert.NotEqual(t,
		MatchHistoryKey("puuid-1", "ranked", start, end),
		MatchHistoryKey("puuid-1", "ranked", shifted, end))

	assert.NotEqual(t,
		MatchHistoryKey("puuid-1", "ranked", start, end),
		MatchHistoryKey("puuid-1", "normal", start, end))

	assert.NotEqual(t,
		LadderKey("challengerleagues", "RANKED_SOLO_5x5", start),
		LadderKey("grandmasterleagues", "RANKED_SOLO_5x5", start))

	// Keys are deterministic: the same inputs always hit the same blob.
	assert.Equal(t,
		MatchHistoryKey("puuid-1", "ranked", start, end),
		MatchHistoryKey("puuid-1", "ranked", start, end))
}
