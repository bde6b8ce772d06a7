package config

import (
	"fmt"
	"os"
	"strconv"
	"warships-tracker/internal/constants"
	"warships-tracker/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBPath      string
	ServerPort  string
	LogLevel    string
	WorkerCount int
	QueueSize   int
	JobMaxTries int
}

func Load(log zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		DBPath:     getEnv("DB_PATH", "warships.db"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		// the level the logger was actually built with
		LogLevel: logger.ParseLevel(os.Getenv("LOG_LEVEL")).String(),
	}

	var err error
	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", constants.DefaultWorkerCount); err != nil {
		return nil, err
	}
	if cfg.QueueSize, err = getEnvInt("QUEUE_SIZE", constants.DefaultQueueSize); err != nil {
		return nil, err
	}
	if cfg.JobMaxTries, err = getEnvInt("JOB_MAX_TRIES", constants.DefaultJobMaxTries); err != nil {
		return nil, err
	}

	log.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Int("worker_count", cfg.WorkerCount).
		Int("queue_size", cfg.QueueSize).
		Int("job_max_tries", cfg.JobMaxTries).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

var Module = fx.Provide(Load)
