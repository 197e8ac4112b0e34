package pipelineservice

import (
	"context"
	"testing"
	"time"

	historyservice "leaguelake/fetcher/services/history"
	identityservice "leaguelake/fetcher/services/identity"
	ladderservice "leaguelake/fetcher/services/ladder"
	matchservice "leaguelake/fetcher/services/match"
	"leaguelake/pkg/datalake"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRiot wires two ladder players who both played the same match.
func newTestRiot(t *testing.T) *fakeRiot {
	t.Helper()

	puuids := []string{
		"puuid-1", "puuid-2", "puuid-3", "puuid-4", "puuid-5",
		"puuid-6", "puuid-7", "puuid-8", "puuid-9", "puuid-10",
	}

	return &fakeRiot{
		ladderPayload: []byte(`{
			"tier": "CHALLENGER",
			"queue": "RANKED_SOLO_5x5",
			"entries": [
				{"summonerId": "sid-1", "summonerName": "Faker", "leaguePoints": 1204, "wins": 310, "losses": 250},
				{"summonerId": "sid-2", "summonerName": "Chovy", "leaguePoints": 1187, "wins": 295, "losses": 240}
			]
		}`),
		summoners: map[string][]byte{
			"Faker": summonerPayload(t, "sid-1", "puuid-1", "Faker"),
			"Chovy": summonerPayload(t, "sid-2", "puuid-2", "Chovy"),
		},
		matchLists: map[string][]string{
			"puuid-1": {"EUW1_100"},
			"puuid-2": {"EUW1_100"},
		},
		matches: map[string][]byte{
			"EUW1_100": matchPayload(t, "EUW1_100", puuids),
		},
	}
}

func newTestService(t *testing.T, riot *fakeRiot, lake datalake.Store) (*Service, *captureStandings, *captureParticipants) {
	t.Helper()

	log := newTestLogger(t)
	standings := &captureStandings{}
	participants := &captureParticipants{}

	service := NewService(Deps{
		Ladder:       ladderservice.NewService(riot, lake, log),
		Identity:     identityservice.NewService(riot, lake, log),
		History:      historyservice.NewService(riot, lake, log),
		Match:        matchservice.NewService(riot, lake, log),
		Standings:    standings,
		Participants: participants,
		Logger:       log,
	})

	return service, standings, participants
}

func testOptions() Options {
	start := time.Date(2023, 3, 28, 0, 0, 0, 0, time.UTC)
	return Options{
		League:    "challengerleagues",
		Queue:     "RANKED_SOLO_5x5",
		MatchType: "ranked",
		Window:    historyservice.Window{Start: start, End: start.Add(24 * time.Hour)},
		Workers:   2,
	}
}

func TestRunSharedMatchFetchedOnce(t *testing.T) {
	riot := newTestRiot(t)
	service, standings, participants := newTestService(t, riot, datalake.NewMemoryStore())

	stats, err := service.Run(context.Background(), testOptions())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.LadderEntries)
	assert.Equal(t, 2, stats.Standings)
	assert.Equal(t, 1, stats.UniqueMatches)
	assert.Equal(t, 10, stats.ParticipantRows)

	// Both players point at the same game; the detail is fetched once.
	assert.Equal(t, 1, riot.matchCalls)

	require.Len(t, standings.rows, 2)
	assert.Equal(t, "puuid-1", standings.rows[0].SummonerPuuid)
	assert.Equal(t, "puuid-2", standings.rows[1].SummonerPuuid)

	require.Len(t, participants.rows, 10)
	for _, row := range participants.rows {
		assert.Equal(t, "EUW1_100", row.MatchId)
	}
}

func TestRunIsIdempotentOverTheLake(t *testing.T) {
	riot := newTestRiot(t)
	lake := datalake.NewMemoryStore()

	service, _, _ := newTestService(t, riot, lake)
	_, err := service.Run(context.Background(), testOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, riot.ladderCalls)
	assert.Equal(t, 2, riot.byNameCalls)
	assert.Equal(t, 2, riot.listCalls)
	assert.Equal(t, 1, riot.matchCalls)

	// A re-run of the same window is served entirely from the lake.
	rerun, _, reparticipants := newTestService(t, riot, lake)
	stats, err := rerun.Run(context.Background(), testOptions())
	require.NoError(t, err)

	assert.Equal(t, 1, riot.ladderCalls)
	assert.Equal(t, 2, riot.byNameCalls)
	assert.Equal(t, 2, riot.listCalls)
	assert.Equal(t, 1, riot.matchCalls)

	assert.Equal(t, 10, stats.ParticipantRows)
	assert.Len(t, reparticipants.rows, 10)
}

func TestRunDropsUnresolvablePlayers(t *testing.T) {
	riot := newTestRiot(t)
	delete(riot.summoners, "Chovy")
	service, standings, _ := newTestService(t, riot, datalake.NewMemoryStore())

	stats, err := service.Run(context.Background(), testOptions())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.LadderEntries)
	assert.Equal(t, 1, stats.Standings)
	require.Len(t, standings.rows, 1)
	assert.Equal(t, "puuid-1", standings.rows[0].SummonerPuuid)

	// The fallback id lookup was attempted before the drop.
	assert.Equal(t, 1, riot.byIdCalls)
}

func TestRunHonorsCancellation(t *testing.T) {
	riot := newTestRiot(t)
	service, _, _ := newTestService(t, riot, datalake.NewMemoryStore())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := service.Run(ctx, testOptions())

	assert.ErrorIs(t, err, context.Canceled)
}
