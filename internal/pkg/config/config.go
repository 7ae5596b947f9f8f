package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL,     default=http://localhost:5126/api/"`
	ConsoleAddr    string        `env:"CONSOLE_ADDR,     default=:4200"`
	Env            string        `env:"ENV,              default=development"`
	LogLevel       string        `env:"LOG_LEVEL,        default=info"`
	EffectWorkers  int           `env:"EFFECT_WORKERS,   default=4"`
	ExpirySchedule string        `env:"EXPIRY_SCHEDULE,  default=@every 1m"`
	OptionCacheTTL time.Duration `env:"OPTION_CACHE_TTL, default=1m"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type SessionConfig struct {
	Backend  string `env:"SESSION_BACKEND,   default=bolt"`
	Prefix   string `env:"SESSION_PREFIX,    default=clinic"`
	BoltPath string `env:"SESSION_BOLT_PATH, default=clinic-console.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=clinic_console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Pretty reports whether logs should be human-readable.
func (c *Config) Pretty() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), nil)
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration from lookuper, or the process environment
// when lookuper is nil.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
