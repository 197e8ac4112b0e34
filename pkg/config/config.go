package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	queuevalues "leaguelake/pkg/riotvalues/queue"

	"github.com/joho/godotenv"
)

// RateWindow is a single request budget over a reset interval.
type RateWindow struct {
	Count         int
	ResetInterval time.Duration
}

// RateLimits holds the two Riot enforcement windows.
type RateLimits struct {
	Lower  RateWindow
	Higher RateWindow
}

// Routing holds the API hosts per resource family.
// League and summoner endpoints live on the platform host,
// match-v5 lives on the regional host.
type Routing struct {
	PlatformHost string
	RegionalHost string
}

// LakeConfiguration is the blob storage backing the content cache.
type LakeConfiguration struct {
	Endpoint     string
	Region       string
	AccessKey    string
	AccessSecret string
	Bucket       string
	LogBucket    string
}

// RedisConfiguration for the existence memo in front of the lake.
type RedisConfiguration struct {
	Host     string
	Port     string
	Password string
}

// DatabaseConfiguration for the warehouse connection.
type DatabaseConfiguration struct {
	URL string
}

// Config is the full application configuration.
// Built once at startup and passed by reference, never global.
type Config struct {
	ApiKey string

	// Pipeline run defaults.
	League    string
	Queue     string
	MatchType string
	Workers   int

	Routing  Routing
	Lake     LakeConfiguration
	Redis    RedisConfiguration
	Database DatabaseConfiguration
	Limits   RateLimits
}

// Load reads the environment into a Config.
// The .env file is only loaded outside of docker, where the
// environment is injected by the container runtime.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	apiKey := os.Getenv("RIOT_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("RIOT_API_KEY must be set")
	}

	platform := getEnvDefault("RIOT_PLATFORM", "euw1")
	regional := getEnvDefault("RIOT_REGIONAL", "europe")

	cfg := &Config{
		ApiKey:    apiKey,
		League:    getEnvDefault("LADDER_LEAGUE", "challengerleagues"),
		Queue:     getEnvDefault("LADDER_QUEUE", "RANKED_SOLO_5x5"),
		MatchType: getEnvDefault("MATCH_TYPE", "ranked"),
		Workers:   getEnvIntDefault("PIPELINE_WORKERS", 4),
		Routing: Routing{
			PlatformHost: fmt.Sprintf("https://%s.api.riotgames.com", platform),
			RegionalHost: fmt.Sprintf("https://%s.api.riotgames.com", regional),
		},
		Lake: LakeConfiguration{
			Endpoint:     os.Getenv("LAKE_ENDPOINT"),
			Region:       getEnvDefault("LAKE_REGION", "us-east-1"),
			AccessKey:    os.Getenv("LAKE_ACCESS_KEY"),
			AccessSecret: os.Getenv("LAKE_ACCESS_SECRET"),
			Bucket:       os.Getenv("LAKE_BUCKET"),
			LogBucket:    os.Getenv("LAKE_LOG_BUCKET"),
		},
		Redis: RedisConfiguration{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     os.Getenv("REDIS_PORT"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Database: DatabaseConfiguration{
			URL: os.Getenv("DATABASE_URL"),
		},
		Limits: RateLimits{
			Lower: RateWindow{
				Count:         getEnvIntDefault("RATE_LOWER_COUNT", 20),
				ResetInterval: time.Second,
			},
			Higher: RateWindow{
				Count:         getEnvIntDefault("RATE_HIGHER_COUNT", 100),
				ResetInterval: 2 * time.Minute,
			},
		},
	}

	if cfg.Lake.Bucket == "" {
		return nil, fmt.Errorf("LAKE_BUCKET must be set")
	}

	if !queuevalues.ValidLeague(cfg.League) {
		return nil, fmt.Errorf("unknown league %q", cfg.League)
	}

	if !queuevalues.ValidQueue(cfg.Queue) {
		return nil, fmt.Errorf("unknown queue %q", cfg.Queue)
	}

	return cfg, nil
}

// getEnvDefault returns the env value or a fallback.
func getEnvDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvIntDefault returns the env value as int or a fallback.
func getEnvIntDefault(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
