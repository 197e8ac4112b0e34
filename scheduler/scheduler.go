package main

import (
	"context"
	"log"
	"os"
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

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	db, err := database.NewConnection(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	log.Println("Starting scheduler.")

	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	// Daily ingestion run at 3:00 AM UTC, covering the previous day.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(3, 0, 0),
			),
		),
		gocron.NewTask(
			runPipeline,
			cfg,
			db,
		),
		gocron.WithName("daily-ingestion"),
		gocron.WithTags("ingestion"),
	)
	if err != nil {
		log.Fatalf("Failed to create ingestion job: %v", err)
	}

	s.Start()

	defer func() {
		if err := s.Shutdown(); err != nil {
			log.Printf("Error shutting down scheduler: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("Shutting down scheduler...")
}

// runPipeline executes one full ingestion run for the trailing day.
func runPipeline(cfg *config.Config, db *gorm.DB) {
	runLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Printf("Couldn't create the run logger: %v", err)
		return
	}

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

	now := time.Now().UTC()
	stats, err := service.Run(context.Background(), pipelineservice.Options{
		League:    cfg.League,
		Queue:     cfg.Queue,
		MatchType: cfg.MatchType,
		Window: historyservice.Window{
			Start: now.Add(-24 * time.Hour),
			End:   now,
		},
		Workers: cfg.Workers,
	})
	if err != nil {
		runLogger.Errorf("Run failed: %v", err)
	} else {
		runLogger.Infof("Run finished: %d entries, %d standings, %d matches, %d participant rows.",
			stats.LadderEntries, stats.Standings, stats.UniqueMatches, stats.ParticipantRows)
	}

	logKey := "runs/" + now.Format("2006-01-02T15-04-05") + ".log"
	if err := runLogger.UploadToBucket(context.Background(), logKey); err != nil {
		log.Printf("Couldn't ship the run log: %v", err)
	}
}
