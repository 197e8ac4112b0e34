package identityservice

import (
	"context"
	"errors"
	"testing"

	"leaguelake/pkg/config"
	"leaguelake/pkg/datalake"
	"leaguelake/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummonerSource struct {
	byNameCalls int
	byIdCalls   int
	byNameErr   error
	byIdErr     error
	payload     []byte
}

func (f *fakeSummonerSource) SummonerByName(ctx context.Context, summonerName string) ([]byte, error) {
	f.byNameCalls++
	if f.byNameErr != nil {
		return nil, f.byNameErr
	}
	return f.payload, nil
}

func (f *fakeSummonerSource) SummonerById(ctx context.Context, summonerId string) ([]byte, error) {
	f.byIdCalls++
	if f.byIdErr != nil {
		return nil, f.byIdErr
	}
	return f.payload, nil
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&config.Config{})
	require.NoError(t, err)
	return log
}

func TestResolveCachesIdentity(t *testing.T) {
	ctx := context.Background()
	lake := datalake.NewMemoryStore()
	source := &fakeSummonerSource{
		payload: []byte(`{"id":"sid-1","puuid":"puuid-1","name":"Faker","summonerLevel":512}`),
	}
	service := NewService(source, lake, newTestLogger(t))

	summoner, err := service.Resolve(ctx, "Faker", "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "puuid-1", summoner.Puuid)
	assert.Equal(t, 512, summoner.SummonerLevel)
	assert.Equal(t, 1, source.byNameCalls)

	exists, err := lake.Exists(ctx, datalake.PlayerKey("Faker", "sid-1"))
	require.NoError(t, err)
	assert.True(t, exists)

	// Second resolve is served from the lake.
	summoner, err = service.Resolve(ctx, "Faker", "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "puuid-1", summoner.Puuid)
	assert.Equal(t, 1, source.byNameCalls)
	assert.Zero(t, source.byIdCalls)
}

func TestResolveFallsBackToId(t *testing.T) {
	source := &fakeSummonerSource{
		byNameErr: errors.New("status code 404"),
		payload:   []byte(`{"id":"sid-2","puuid":"puuid-2","name":"Renamed","summonerLevel":305}`),
	}
	service := NewService(source, datalake.NewMemoryStore(), newTestLogger(t))

	summoner, err := service.Resolve(context.Background(), "OldName", "sid-2")

	require.NoError(t, err)
	assert.Equal(t, "puuid-2", summoner.Puuid)
	assert.Equal(t, 1, source.byNameCalls)
	assert.Equal(t, 1, source.byIdCalls)
}

func TestResolveNotFound(t *testing.T) {
	source := &fakeSummonerSource{
		byNameErr: errors.New("status code 404"),
		byIdErr:   errors.New("status code 404"),
	}
	service := NewService(source, datalake.NewMemoryStore(), newTestLogger(t))

	_, err := service.Resolve(context.Background(), "Ghost", "sid-3")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveStoresRawPayload(t *testing.T) {
	ctx := context.Background()
	lake := datalake.NewMemoryStore()
	payload := []byte(`{"id":"sid-4","accountId":"acc-4","puuid":"puuid-4","name":"Chovy","summonerLevel":431}`)
	service := NewService(&fakeSummonerSource{payload: payload}, lake, newTestLogger(t))

	_, err := service.Resolve(ctx, "Chovy", "sid-4")
	require.NoError(t, err)

	blob, err := lake.Get(ctx, datalake.PlayerKey("Chovy", "sid-4"))
	require.NoError(t, err)
	assert.Equal(t, payload, blob)
}
