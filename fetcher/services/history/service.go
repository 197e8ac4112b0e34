package historyservice

import (
	"context"
	"encoding/json"
	"time"

	playerfetcher "leaguelake/fetcher/data/player"
	"leaguelake/pkg/datalake"
	"leaguelake/pkg/logger"
	"leaguelake/pkg/messages"
)

// DefaultPageSize is the maximum count match-v5 accepts per page.
const DefaultPageSize = 100

// Window is the time range of a match-id query.
type Window struct {
	Start time.Time
	End   time.Time
}

// MatchListSource is the paginated upstream listing.
type MatchListSource interface {
	MatchIDs(ctx context.Context, puuid string, query playerfetcher.MatchIDsQuery) ([]string, error)
}

// Service retrieves a player's match ids for a window, cache-first.
type Service struct {
	fetcher  MatchListSource
	lake     datalake.Store
	logger   *logger.Logger
	pageSize int
}

// NewService creates a history service.
func NewService(fetcher MatchListSource, lake datalake.Store, log *logger.Logger) *Service {
	return &Service{
		fetcher:  fetcher,
		lake:     lake,
		logger:   log,
		pageSize: DefaultPageSize,
	}
}

// MatchIDs pages through a player's match-id listing.
// Termination is dual: an empty page or a short page both end the loop
// normally. The aggregate is cached only when every page fetch
// succeeded; partial pagination state is never persisted.
func (s *Service) MatchIDs(ctx context.Context, puuid string, matchType string, window Window) ([]string, error) {
	key := datalake.MatchHistoryKey(puuid, matchType, window.Start, window.End)

	exists, err := s.lake.Exists(ctx, key)
	if err != nil {
		s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
	}

	if exists {
		blob, err := s.lake.Get(ctx, key)
		if err != nil {
			s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
		} else {
			var cached []string
			parseErr := json.Unmarshal(blob, &cached)
			if parseErr == nil {
				return cached, nil
			}
			s.logger.Errorf(messages.FailedToParseMsg+" for cached %s: %v", key, parseErr)
		}
	}

	var matchIds []string
	complete := true

	for offset := 0; ; offset += s.pageSize {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		page, err := s.fetcher.MatchIDs(ctx, puuid, playerfetcher.MatchIDsQuery{
			StartTime: window.Start,
			EndTime:   window.End,
			Type:      matchType,
			Start:     offset,
			Count:     s.pageSize,
		})
		if err != nil {
			s.logger.Errorf("Couldn't page the match history of %s at offset %d: %v", puuid, offset, err)
			complete = false
			break
		}

		if len(page) == 0 {
			break
		}

		matchIds = append(matchIds, page...)

		if len(page) < s.pageSize {
			break
		}
	}

	s.logger.Infof("In total matches played is %d.", len(matchIds))

	if complete {
		blob, err := json.Marshal(matchIds)
		if err == nil {
			if putErr := s.lake.Put(ctx, key, blob); putErr != nil {
				s.logger.Errorf(messages.LakeWriteFailedMsg+": %v", key, putErr)
			}
		}
	}

	return matchIds, nil
}
