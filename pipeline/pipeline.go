package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"leaguelake/fetcher/data"
	"leaguelake/fetcher/repositories"
	"leaguelake/fetcher/requests"
	historyservice "leaguelake/fetcher/services/history"
	identityservice "leaguelake/fetcher/services/identity"
	ladderservice "leaguelake/fetcher/services/ladder"
	matchservice "leaguelake/fetcher/services/match"
	pipelineservice "leaguelake/fetcher/services/pipeline"
	"leaguelake/pkg/config"
	"leaguelake/pkg/database"
	"leaguelake/pkg/datalake"
	"leaguelake/pkg/logger"
	"leaguelake/pkg/redis"
	queuevalues "leaguelake/pkg/riotvalues/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	league := flag.String("league", cfg.League, "high elo league path (e.g. challengerleagues)")
	queue := flag.String("queue", cfg.Queue, "ranked queue (e.g. RANKED_SOLO_5x5)")
	start := flag.String("start", "", "window start as RFC3339; defaults to 24h ago")
	flag.Parse()

	if !queuevalues.ValidLeague(*league) {
		log.Fatalf("Unknown league %q, expected one of %v.", *league, queuevalues.HighEloLeagues)
	}
	if !queuevalues.ValidQueue(*queue) {
		log.Fatalf("Unknown queue %q, expected one of %v.", *queue, queuevalues.RankedQueues)
	}

	window := historyservice.Window{
		Start: time.Now().UTC().Add(-24 * time.Hour),
		End:   time.Now().UTC(),
	}
	if *start != "" {
		parsed, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			log.Fatalf("Invalid -start value %q: %v", *start, err)
		}
		window.Start = parsed
	}

	runLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Couldn't create the run logger: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	// The Redis memo is optional; without it every exists check goes
	// straight to the lake.
	var lake datalake.Store = datalake.NewS3Store(cfg.Lake)
	if cfg.Redis.Host != "" {
		redisClient := redis.NewClient(cfg.Redis)
		defer redisClient.Close()
		lake = datalake.NewMemoizedStore(lake, redisClient)
	}

	limiter := requests.NewRateLimiter(cfg.Limits)
	client := requests.NewClient(cfg.ApiKey, limiter)
	riot := data.NewRiotFetcher(client, cfg.Routing)

	service := pipelineservice.NewService(pipelineservice.Deps{
		Ladder:       ladderservice.NewService(riot.League, lake, runLogger),
		Identity:     identityservice.NewService(riot.Player, lake, runLogger),
		History:      historyservice.NewService(riot.Player, lake, runLogger),
		Match:        matchservice.NewService(riot.Match, lake, runLogger),
		Standings:    repositories.NewStandingRepository(db),
		Participants: repositories.NewParticipantRepository(db),
		Logger:       runLogger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runLogger.Infof("Starting run for %s-%s from %s.", *league, *queue, window.Start.Format(time.RFC3339))

	stats, err := service.Run(ctx, pipelineservice.Options{
		League:    *league,
		Queue:     *queue,
		MatchType: cfg.MatchType,
		Window:    window,
		Workers:   cfg.Workers,
	})
	if err != nil {
		runLogger.Errorf("Run failed: %v", err)
	}

	runLogger.Infof("Run finished: %d entries, %d standings, %d matches, %d participant rows.",
		stats.LadderEntries, stats.Standings, stats.UniqueMatches, stats.ParticipantRows)

	logKey := "runs/" + time.Now().UTC().Format("2006-01-02T15-04-05") + ".log"
	if err := runLogger.UploadToBucket(context.Background(), logKey); err != nil {
		log.Printf("Couldn't ship the run log: %v", err)
	}

	if err != nil {
		log.Fatal(err)
	}
}
