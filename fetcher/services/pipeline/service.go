package pipelineservice

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	historyservice "leaguelake/fetcher/services/history"
	identityservice "leaguelake/fetcher/services/identity"
	ladderservice "leaguelake/fetcher/services/ladder"
	matchservice "leaguelake/fetcher/services/match"
	"leaguelake/pkg/database/models"
	"leaguelake/pkg/logger"
)

// Options parameterizes one pipeline run.
type Options struct {
	League    string
	Queue     string
	MatchType string
	Window    historyservice.Window
	Workers   int
}

// RunStats summarizes what a run produced.
type RunStats struct {
	LadderEntries   int
	Standings       int
	UniqueMatches   int
	ParticipantRows int
}

// StandingSink receives the flattened standing rows.
type StandingSink interface {
	Append(standings []*models.PlayerStanding) error
}

// ParticipantSink receives the flattened participant rows.
type ParticipantSink interface {
	Append(rows []*models.MatchParticipant) error
}

// Service orchestrates a full ingestion run:
// ladder, identity resolution, standings sink, match-id union,
// match detail fetch plus transform, participant sink.
type Service struct {
	ladder       *ladderservice.Service
	identity     *identityservice.Service
	history      *historyservice.Service
	match        *matchservice.Service
	standings    StandingSink
	participants ParticipantSink
	logger       *logger.Logger
}

// Deps are the collaborators of the pipeline service.
type Deps struct {
	Ladder       *ladderservice.Service
	Identity     *identityservice.Service
	History      *historyservice.Service
	Match        *matchservice.Service
	Standings    StandingSink
	Participants ParticipantSink
	Logger       *logger.Logger
}

// NewService creates the pipeline service.
func NewService(deps Deps) *Service {
	return &Service{
		ladder:       deps.Ladder,
		identity:     deps.Identity,
		history:      deps.History,
		match:        deps.Match,
		standings:    deps.Standings,
		participants: deps.Participants,
		logger:       deps.Logger,
	}
}

// matchResult carries one worker's output back to the collector.
type matchResult struct {
	matchId string
	rows    []*models.MatchParticipant
}

// Run executes the full pipeline once.
// Entity-level failures are logged and skipped; the run only errors on
// cancellation or a sink failure.
func (s *Service) Run(ctx context.Context, opts Options) (*RunStats, error) {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}

	stats := &RunStats{}

	standings, puuids, err := s.processPlayers(ctx, opts, stats)
	if err != nil {
		return stats, err
	}

	if err := s.standings.Append(standings); err != nil {
		return stats, errors.Join(errors.New("couldn't append the standing rows"), err)
	}
	stats.Standings = len(standings)

	matchIds, err := s.collectMatchIds(ctx, puuids, opts)
	if err != nil {
		return stats, err
	}
	stats.UniqueMatches = len(matchIds)
	s.logger.Infof("Total games are %d.", len(matchIds))

	rows, err := s.processMatches(ctx, matchIds, opts.Workers)
	if err != nil {
		return stats, err
	}

	if err := s.participants.Append(rows); err != nil {
		return stats, errors.Join(errors.New("couldn't append the participant rows"), err)
	}
	stats.ParticipantRows = len(rows)

	return stats, nil
}

// processPlayers fetches the ladder and resolves every entry.
// Unresolvable players are dropped, never fatal.
func (s *Service) processPlayers(
	ctx context.Context,
	opts Options,
	stats *RunStats,
) ([]*models.PlayerStanding, []string, error) {
	entries := s.ladder.Entries(ctx, opts.League, opts.Queue, opts.Window.Start)
	stats.LadderEntries = len(entries)

	retrieveTime := time.Now().UTC()

	var standings []*models.PlayerStanding
	var puuids []string

	for _, entry := range entries {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}

		summoner, err := s.identity.Resolve(ctx, entry.SummonerName, entry.SummonerId)
		if err != nil {
			s.logger.Errorf("Dropping player %s (%s): %v", entry.SummonerName, entry.SummonerId, err)
			continue
		}

		standings = append(standings, ladderservice.BuildStanding(entry, summoner, opts.League, opts.Queue, retrieveTime))
		puuids = append(puuids, summoner.Puuid)
	}

	s.logger.Infof("In total %d/%d puuids obtained.", len(puuids), len(entries))

	return standings, puuids, nil
}

// collectMatchIds unions every player's window into a deduplicated,
// deterministic list. Players in the same match share the match id, so
// the set is what bounds the detail fetch count.
func (s *Service) collectMatchIds(ctx context.Context, puuids []string, opts Options) ([]string, error) {
	seen := make(map[string]struct{})

	for _, puuid := range puuids {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		ids, err := s.history.MatchIDs(ctx, puuid, opts.MatchType, opts.Window)
		if err != nil {
			return nil, err
		}

		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	matchIds := make([]string, 0, len(seen))
	for id := range seen {
		matchIds = append(matchIds, id)
	}
	sort.Strings(matchIds)

	return matchIds, nil
}

// processMatches runs the detail fetch and transform over a bounded
// worker pool. Each match is independent; a failed match contributes
// zero rows and the rest keep going.
func (s *Service) processMatches(ctx context.Context, matchIds []string, workers int) ([]*models.MatchParticipant, error) {
	matchChan := make(chan string, len(matchIds))
	resultChan := make(chan matchResult, len(matchIds))

	for _, matchId := range matchIds {
		matchChan <- matchId
	}
	close(matchChan)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go s.matchWorker(ctx, matchChan, resultChan, &wg)
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	var rows []*models.MatchParticipant
	for result := range resultChan {
		rows = append(rows, result.rows...)
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return rows, nil
}

// matchWorker drains the match channel until it closes or the run is
// cancelled. Cache writes are per-match and atomic, so stopping between
// entities leaves the lake resumable.
func (s *Service) matchWorker(
	ctx context.Context,
	matchChan <-chan string,
	resultChan chan<- matchResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for matchId := range matchChan {
		select {
		case <-ctx.Done():
			return
		default:
		}

		resultChan <- matchResult{
			matchId: matchId,
			rows:    s.match.FetchAndTransform(ctx, matchId),
		}
	}
}
