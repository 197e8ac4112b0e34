package identityservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	playerfetcher "leaguelake/fetcher/data/player"
	"leaguelake/pkg/datalake"
	"leaguelake/pkg/logger"
	"leaguelake/pkg/messages"
)

// ErrNotFound signals that neither lookup path produced an identity.
// Callers drop the player and keep going.
var ErrNotFound = errors.New("summoner not found")

// SummonerSource is the pair of upstream lookups.
type SummonerSource interface {
	SummonerByName(ctx context.Context, summonerName string) ([]byte, error)
	SummonerById(ctx context.Context, summonerId string) ([]byte, error)
}

// Service resolves display names to stable puuids, cache-first.
// The by-id path is fallback-only: speculative id lookups for every
// player would burn the rate budget and risk a throttling escalation.
type Service struct {
	fetcher SummonerSource
	lake    datalake.Store
	logger  *logger.Logger
}

// NewService creates an identity service.
func NewService(fetcher SummonerSource, lake datalake.Store, log *logger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		lake:    lake,
		logger:  log,
	}
}

// Resolve returns the identity for a ladder entry.
// Order: lake, lookup by name, lookup by numeric id, ErrNotFound.
func (s *Service) Resolve(ctx context.Context, summonerName string, summonerId string) (*playerfetcher.Summoner, error) {
	key := datalake.PlayerKey(summonerName, summonerId)

	exists, err := s.lake.Exists(ctx, key)
	if err != nil {
		s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
	}

	if exists {
		blob, err := s.lake.Get(ctx, key)
		if err == nil {
			return parseSummoner(blob)
		}
		s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
	}

	raw, err := s.fetcher.SummonerByName(ctx, summonerName)
	if err != nil {
		s.logger.Infof("Summoner Name (%s) not exists using Summoner ID (%s).", summonerName, summonerId)
		raw, err = s.fetcher.SummonerById(ctx, summonerId)
	}

	if err != nil {
		return nil, ErrNotFound
	}

	if putErr := s.lake.Put(ctx, key, raw); putErr != nil {
		// A failed write costs one refetch next run, nothing more.
		s.logger.Errorf(messages.LakeWriteFailedMsg+": %v", key, putErr)
	}

	return parseSummoner(raw)
}

func parseSummoner(blob []byte) (*playerfetcher.Summoner, error) {
	var summoner playerfetcher.Summoner
	if err := json.Unmarshal(blob, &summoner); err != nil {
		return nil, fmt.Errorf(messages.FailedToParseMsg+": %w", err)
	}
	return &summoner, nil
}
