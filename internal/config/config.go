package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/nihaocards/internal/logger"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	WorkerCount     int
	WorkerQueueSize int

	// Countdown defaults in seconds, used until a user saves their own.
	DefaultFlashcardTimer int
	DefaultMiniGameTimer  int
	DefaultTypeTimer      int

	// MiniGameResetsLevel keeps the cross-track effect where a wrong mini-game
	// answer also drops the card's flashcard level back to 1.
	MiniGameResetsLevel bool

	RewardsRPCURL    string
	ShuffleSeed      uint64
	LeaderboardLimit int

	// SessionIdleTimeout is in minutes; idle sessions are evicted by the reaper.
	SessionIdleTimeout int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// .env is optional outside development.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:nihaocards.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		WorkerCount:           envIntOr("WORKER_COUNT", 2),
		WorkerQueueSize:       envIntOr("WORKER_QUEUE_SIZE", 64),
		DefaultFlashcardTimer: envIntOr("DEFAULT_FLASHCARD_TIMER", 10),
		DefaultMiniGameTimer:  envIntOr("DEFAULT_MINIGAME_TIMER", 10),
		DefaultTypeTimer:      envIntOr("DEFAULT_TYPE_TIMER", 30),
		MiniGameResetsLevel:   envBoolOr("MINIGAME_RESETS_LEVEL", true),
		RewardsRPCURL:         envOr("REWARDS_RPC_URL", ""),
		ShuffleSeed:           envUintOr("SHUFFLE_SEED", 0),
		LeaderboardLimit:      envIntOr("LEADERBOARD_LIMIT", 100),
		SessionIdleTimeout:    envIntOr("SESSION_IDLE_TIMEOUT", 30),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("ADDR must not be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		return fmt.Errorf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount)
	}
	if c.WorkerQueueSize <= 0 {
		return fmt.Errorf("WORKER_QUEUE_SIZE must be positive, got %d", c.WorkerQueueSize)
	}
	for name, v := range map[string]int{
		"DEFAULT_FLASHCARD_TIMER": c.DefaultFlashcardTimer,
		"DEFAULT_MINIGAME_TIMER":  c.DefaultMiniGameTimer,
		"DEFAULT_TYPE_TIMER":      c.DefaultTypeTimer,
	} {
		if v < 1 {
			return fmt.Errorf("%s must be at least 1 second, got %d", name, v)
		}
	}
	if c.LeaderboardLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive, got %d", c.LeaderboardLimit)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("SESSION_IDLE_TIMEOUT must be positive, got %d", c.SessionIdleTimeout)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envUintOr(key string, def uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
