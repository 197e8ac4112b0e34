package ladderservice

import (
	"context"
	"encoding/json"
	"math"
	"time"

	leaguefetcher "leaguelake/fetcher/data/league"
	playerfetcher "leaguelake/fetcher/data/player"
	"leaguelake/pkg/database/models"
	"leaguelake/pkg/datalake"
	"leaguelake/pkg/logger"
	"leaguelake/pkg/messages"
)

// LeagueSource is the upstream call the service depends on.
type LeagueSource interface {
	LadderEntries(ctx context.Context, league string, queue string) ([]byte, error)
}

// Service fetches the ranked ladder and flattens entries into
// standing rows. The roster snapshot is cached per run window, so a
// re-run of the same window never refetches it.
type Service struct {
	fetcher LeagueSource
	lake    datalake.Store
	logger  *logger.Logger
}

// NewService creates a ladder service.
func NewService(fetcher LeagueSource, lake datalake.Store, log *logger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		lake:    lake,
		logger:  log,
	}
}

// Entries retrieves the tier roster as of the given snapshot time.
// Any failure yields an empty roster, logged, never an abort.
func (s *Service) Entries(ctx context.Context, league string, queue string, asOf time.Time) []leaguefetcher.Entry {
	key := datalake.LadderKey(league, queue, asOf)

	exists, err := s.lake.Exists(ctx, key)
	if err != nil {
		s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
	}

	var raw []byte
	if exists {
		raw, err = s.lake.Get(ctx, key)
		if err != nil {
			s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
			raw = nil
		}
	}

	if raw == nil {
		raw, err = s.fetcher.LadderEntries(ctx, league, queue)
		if err != nil {
			s.logger.Errorf("Couldn't fetch the %s-%s ladder: %v", league, queue, err)
			return nil
		}

		if putErr := s.lake.Put(ctx, key, raw); putErr != nil {
			s.logger.Errorf(messages.LakeWriteFailedMsg+": %v", key, putErr)
		}
	}

	var list leaguefetcher.LeagueList
	if err := json.Unmarshal(raw, &list); err != nil {
		s.logger.Errorf(messages.FailedToParseMsg+" for the %s-%s ladder: %v", league, queue, err)
		return nil
	}

	s.logger.Infof("In total %s-%s players exists %d.", league, queue, len(list.Entries))
	return list.Entries
}

// BuildStanding projects one resolved ladder entry into a warehouse row.
func BuildStanding(
	entry leaguefetcher.Entry,
	summoner *playerfetcher.Summoner,
	league string,
	queue string,
	retrieveTime time.Time,
) *models.PlayerStanding {
	return &models.PlayerStanding{
		League:        league,
		Queue:         queue,
		SummonerName:  entry.SummonerName,
		SummonerId:    entry.SummonerId,
		SummonerPuuid: summoner.Puuid,
		SummonerLevel: summoner.SummonerLevel,
		LeaguePoints:  entry.LeaguePoints,
		Wins:          entry.Wins,
		Losses:        entry.Losses,
		WinRate:       WinRate(entry.Wins, entry.Losses),
		TotalGames:    entry.Wins + entry.Losses,
		RetrieveTime:  retrieveTime,
	}
}

// WinRate is wins over total games.
// NaN when the player has no games, so the division never panics and
// downstream floats stay well-defined.
func WinRate(wins int, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return math.NaN()
	}
	return float64(wins) / float64(total)
}
