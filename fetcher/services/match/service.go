package matchservice

import (
	"context"
	"encoding/json"
	"time"

	matchfetcher "leaguelake/fetcher/data/match"
	"leaguelake/pkg/database/models"
	"leaguelake/pkg/datalake"
	"leaguelake/pkg/logger"
	"leaguelake/pkg/messages"
)

// MatchSource is the upstream detail fetch.
type MatchSource interface {
	MatchData(ctx context.Context, matchId string) ([]byte, error)
}

// Service fetches one match's payload, cache-first, and flattens it
// into one row per participant. Finished matches are immutable, so the
// cache hit path is the common one on incremental runs.
type Service struct {
	fetcher MatchSource
	lake    datalake.Store
	logger  *logger.Logger
}

// NewService creates a match service.
func NewService(fetcher MatchSource, lake datalake.Store, log *logger.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		lake:    lake,
		logger:  log,
	}
}

// FetchAndTransform returns the flattened participant rows of a match.
// Any failure yields an empty slice, logged; one bad match never aborts
// the batch.
func (s *Service) FetchAndTransform(ctx context.Context, matchId string) []*models.MatchParticipant {
	raw := s.rawMatch(ctx, matchId)
	if raw == nil {
		return nil
	}

	var data matchfetcher.MatchData
	if err := json.Unmarshal(raw, &data); err != nil {
		s.logger.Errorf(messages.FailedToParseMsg+" for match %s: %v", matchId, err)
		return nil
	}

	return s.Transform(&data)
}

// rawMatch returns the cached blob, or fetches and caches it.
func (s *Service) rawMatch(ctx context.Context, matchId string) []byte {
	key := datalake.MatchKey(matchId)

	exists, err := s.lake.Exists(ctx, key)
	if err != nil {
		s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
	}

	if exists {
		blob, err := s.lake.Get(ctx, key)
		if err == nil {
			return blob
		}
		s.logger.Errorf(messages.LakeReadFailedMsg+": %v", key, err)
	}

	raw, err := s.fetcher.MatchData(ctx, matchId)
	if err != nil {
		s.logger.Errorf("Failed to fetch match %s: %v", matchId, err)
		return nil
	}

	if putErr := s.lake.Put(ctx, key, raw); putErr != nil {
		s.logger.Errorf(messages.LakeWriteFailedMsg+": %v", key, putErr)
	}

	return raw
}

// Transform flattens the payload into one row per participant.
// A participant missing the challenge stats is skipped with a log line;
// the other rows of the match still come through.
func (s *Service) Transform(data *matchfetcher.MatchData) []*models.MatchParticipant {
	retrieveTime := time.Now().UTC()

	matchId := data.Metadata.MatchId
	creationTime := data.Info.GameCreation.Time()
	gameStartTime := data.Info.GameStartTimestamp.Time()
	durationMin := float64(data.Info.GameDuration) / 60

	rows := make([]*models.MatchParticipant, 0, len(data.Info.Participants))

	for _, participant := range data.Info.Participants {
		challenges := participant.Challenges
		if challenges == nil ||
			challenges.Kda == nil ||
			challenges.DamagePerMinute == nil ||
			challenges.GoldPerMinute == nil ||
			challenges.VisionScorePerMinute == nil {
			s.logger.Errorf("Skipping participant %s on match %s: missing challenge stats.",
				participant.Puuid, matchId)
			continue
		}

		rows = append(rows, &models.MatchParticipant{
			MatchId:           matchId,
			SummonerPuuid:     participant.Puuid,
			SummonerId:        participant.SummonerId,
			SummonerName:      participant.SummonerName,
			CreationTime:      creationTime,
			GameStartTime:     gameStartTime,
			DurationMin:       durationMin,
			Champion:          participant.ChampionName,
			Kills:             participant.Kills,
			Deaths:            participant.Deaths,
			Assists:           participant.Assists,
			Kda:               *challenges.Kda,
			Lane:              participant.TeamPosition,
			DamageDealt:       participant.TotalDamageDealtToChampions,
			DamagePerMin:      *challenges.DamagePerMinute,
			DamageTaken:       participant.TotalDamageTaken,
			Gold:              participant.GoldEarned,
			GoldPerMin:        *challenges.GoldPerMinute,
			Win:               participant.Win,
			Cs:                participant.TotalMinionsKilled + participant.NeutralMinionsKilled,
			VisionScore:       participant.VisionScore,
			VisionScorePerMin: *challenges.VisionScorePerMinute,
			Surrender:         participant.GameEndedInSurrender,
			RetrieveTime:      retrieveTime,
		})
	}

	return rows
}
