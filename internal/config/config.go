package config

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string `env:"PORT, default=5000"`
	SwaggerHost string `env:"SWAGGER_HOST"`

	// RequireAPIKey turns on the server-side X-API-Key check. Off by default so the
	// wire contract matches existing clients, which never send a credential.
	RequireAPIKey bool `env:"REQUIRE_API_KEY, default=false"`
	// PasswordMode is "bcrypt" or "plain". Use "plain" only against legacy rows.
	PasswordMode string `env:"PASSWORD_MODE, default=bcrypt"`

	DB    DBConfig
	Redis RedisConfig
	Log   LogConfig
}

// DBConfig carries MySQL connection and pool settings.
type DBConfig struct {
	Host            string        `env:"DB_HOST, default=localhost"`
	Port            string        `env:"DB_PORT, default=3308"`
	User            string        `env:"DB_USER, default=root"`
	Password        string        `env:"DB_PASSWORD"`
	Name            string        `env:"DB_NAME, default=hijab_store_db"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS, default=10"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS, default=5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME, default=30m"`
	AutoMigrate     bool          `env:"AUTO_MIGRATE, default=true"`
	// Reset drops the tables before migrating. Development only.
	Reset bool `env:"RESET_DB, default=false"`
}

// RedisConfig carries cache settings. A zero TTL disables the matching cache.
type RedisConfig struct {
	Addr           string        `env:"REDIS_ADDR, default=localhost:6379"`
	Password       string        `env:"REDIS_PASSWORD"`
	DB             int           `env:"REDIS_DB, default=0"`
	SearchCacheTTL time.Duration `env:"SEARCH_CACHE_TTL, default=30s"`
	APIKeyCacheTTL time.Duration `env:"API_KEY_CACHE_TTL, default=5m"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL, default=info"`
	Pretty bool   `env:"LOG_PRETTY, default=false"`
	File   string `env:"LOG_FILE"`
}

// DSN builds the go-sql-driver DSN for the configured database.
func (c DBConfig) DSN() string {
	mc := mysql.NewConfig()
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, c.Port)
	mc.DBName = c.Name
	mc.ParseTime = true
	mc.Loc = time.Local
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc.FormatDSN()
}

// Load builds Config from the process environment.
func Load() (*Config, error) {
	return LoadFrom(context.Background(), envconfig.OsLookuper())
}

// LoadFrom builds Config from the given lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.PasswordMode != "bcrypt" && cfg.PasswordMode != "plain" {
		return nil, fmt.Errorf("load config: unknown PASSWORD_MODE %q", cfg.PasswordMode)
	}
	return &cfg, nil
}
