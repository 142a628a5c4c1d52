package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/sheikh-saqib/cash-drawer-planner/internal/till"
)

const (
	StoreMemory   = "memory"
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

type Config struct {
	Addr         string   `env:"TILL_ADDR" env-default:":8080"`
	Reserve      string   `env:"TILL_RESERVE" env-default:"200.00"`
	Store        string   `env:"TILL_STORE" env-default:"memory"`
	RecordsFile  string   `env:"TILL_RECORDS_FILE" env-default:"till-records.json"`
	RedisAddr    string   `env:"TILL_REDIS_ADDR" env-default:"localhost:6379"`
	RedisKey     string   `env:"TILL_REDIS_KEY" env-default:"cvsTillRecords"`
	DatabaseURL  string   `env:"TILL_DATABASE_URL"`
	KafkaBrokers []string `env:"TILL_KAFKA_BROKERS" env-separator:","`
	LogLevel     string   `env:"TILL_LOG_LEVEL" env-default:"info"`

	// ReserveMinor is Reserve converted to cents by Load
	ReserveMinor int64
}

// Load reads .env files (if present) into the environment, then the
// environment into a Config.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("couldn't load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("couldn't read environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	reserve, err := till.ParseAmount("TILL_RESERVE", c.Reserve)
	if err != nil {
		return fmt.Errorf("invalid reserve: %w", err)
	}
	if reserve < 0 {
		return fmt.Errorf("invalid reserve: %s is negative", c.Reserve)
	}
	c.ReserveMinor = reserve

	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("TILL_DATABASE_URL is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	return nil
}
