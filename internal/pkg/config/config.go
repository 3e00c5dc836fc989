package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// devJWTSecret signs tokens when ENV=development and no JWT_SECRET is set.
const devJWTSecret = "dev-only-insecure-secret"

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	TokenTTL      time.Duration `env:"TOKEN_TTL,       default=30m"`
	EventCacheTTL time.Duration `env:"EVENT_CACHE_TTL, default=5m"`
	AuditWorkers  int           `env:"AUDIT_WORKERS,   default=4"`
	BcryptCost    int           `env:"BCRYPT_COST,     default=10"`

	Mongo MongoConfig
	Redis RedisConfig
	Seed  SeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=newyears_db"`
}

type RedisConfig struct {
	Addr      string        `env:"REDIS_ADDR,       default=localhost:6379"`
	Password  string        `env:"REDIS_PASSWORD"`
	DB        int           `env:"REDIS_DB,         default=0"`
	PoolSize  int           `env:"REDIS_POOL_SIZE,  default=10"`
	OpTimeout time.Duration `env:"REDIS_OP_TIMEOUT, default=500ms"`
}

// SeedConfig describes the accounts created at startup when absent.
type SeedConfig struct {
	AdminUsername string `env:"ADMIN_USERNAME, default=admin"`
	AdminEmail    string `env:"ADMIN_EMAIL,    default=admin@newyears.com"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=admin123"`
	// UsersPath optionally points at a YAML file of extra accounts.
	UsersPath string `env:"SEED_USERS_PATH"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return errors.New("JWT_SECRET is required outside development")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.AuditWorkers <= 0 {
		return fmt.Errorf("AUDIT_WORKERS must be positive, got %d", c.AuditWorkers)
	}
	return nil
}
