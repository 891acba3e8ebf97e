package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// TokenKey is the shared symmetric key for the token codec. Its length
	// selects the AES variant: 16, 24 or 32 bytes.
	TokenKey string `env:"TOKEN_KEY"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type AuthConfig struct {
	RevocationCapacity int           `env:"REVOCATION_CAPACITY,       default=10000"`
	SweepInterval      time.Duration `env:"REVOCATION_SWEEP_INTERVAL, default=1h"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS,        default=10"`
	LoginWindow        time.Duration `env:"LOGIN_ATTEMPT_WINDOW,      default=5m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=eventify"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
