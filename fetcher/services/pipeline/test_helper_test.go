package pipelineservice

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	playerfetcher "leaguelake/fetcher/data/player"
	"leaguelake/pkg/config"
	"leaguelake/pkg/database/models"
	"leaguelake/pkg/logger"

	"github.com/stretchr/testify/require"
)

// fakeRiot stands in for every upstream endpoint and counts the calls,
// so the tests can assert how much network a run actually needed.
type fakeRiot struct {
	mu sync.Mutex

	ladderCalls int
	byNameCalls int
	byIdCalls   int
	listCalls   int
	matchCalls  int

	ladderPayload []byte
	summoners     map[string][]byte
	matchLists    map[string][]string
	matches       map[string][]byte
}

func (f *fakeRiot) LadderEntries(ctx context.Context, league string, queue string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.ladderCalls++
	return f.ladderPayload, nil
}

func (f *fakeRiot) SummonerByName(ctx context.Context, summonerName string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.byNameCalls++
	payload, ok := f.summoners[summonerName]
	if !ok {
		return nil, fmt.Errorf("status code 404")
	}
	return payload, nil
}

func (f *fakeRiot) SummonerById(ctx context.Context, summonerId string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.byIdCalls++
	return nil, fmt.Errorf("status code 404")
}

func (f *fakeRiot) MatchIDs(ctx context.Context, puuid string, query playerfetcher.MatchIDsQuery) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if query.Start > 0 {
		return []string{}, nil
	}
	return f.matchLists[puuid], nil
}

func (f *fakeRiot) MatchData(ctx context.Context, matchId string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.matchCalls++
	payload, ok := f.matches[matchId]
	if !ok {
		return nil, fmt.Errorf("status code 404")
	}
	return payload, nil
}

// captureStandings collects appended standing rows in memory.
type captureStandings struct {
	rows []*models.PlayerStanding
}

func (c *captureStandings) Append(standings []*models.PlayerStanding) error {
	c.rows = append(c.rows, standings...)
	return nil
}

// captureParticipants collects appended participant rows in memory.
type captureParticipants struct {
	rows []*models.MatchParticipant
}

func (c *captureParticipants) Append(rows []*models.MatchParticipant) error {
	c.rows = append(c.rows, rows...)
	return nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&config.Config{})
	require.NoError(t, err)
	return log
}

// summonerPayload marshals a summoner-v4 identity body.
func summonerPayload(t *testing.T, id string, puuid string, name string) []byte {
	t.Helper()

	payload, err := json.Marshal(map[string]any{
		"id":            id,
		"puuid":         puuid,
		"name":          name,
		"summonerLevel": 400,
	})
	require.NoError(t, err)
	return payload
}

// matchPayload marshals a match-v5 body with one full participant per puuid.
func matchPayload(t *testing.T, matchId string, puuids []string) []byte {
	t.Helper()

	participants := make([]map[string]any, 0, len(puuids))
	for i, puuid := range puuids {
		participants = append(participants, map[string]any{
			"puuid":                       puuid,
			"summonerId":                  fmt.Sprintf("sid-%d", i),
			"summonerName":                fmt.Sprintf("Player%d", i),
			"championName":                "Azir",
			"kills":                       4,
			"deaths":                      3,
			"assists":                     7,
			"teamPosition":                "MIDDLE",
			"totalDamageDealtToChampions": 21034,
			"totalDamageTaken":            17320,
			"goldEarned":                  12840,
			"win":                         i%2 == 0,
			"totalMinionsKilled":          215,
			"neutralMinionsKilled":        8,
			"visionScore":                 28,
			"gameEndedInSurrender":        false,
			"challenges": map[string]any{
				"kda":                  3.67,
				"damagePerMinute":      701.1,
				"goldPerMinute":        428.0,
				"visionScorePerMinute": 0.93,
			},
		})
	}

	payload, err := json.Marshal(map[string]any{
		"metadata": map[string]any{"matchId": matchId},
		"info": map[string]any{
			"gameCreation":       1679961600000,
			"gameStartTimestamp": 1679961720000,
			"gameDuration":       1800,
			"queueId":            420,
			"participants":       participants,
		},
	})
	require.NoError(t, err)
	return payload
}
