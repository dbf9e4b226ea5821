// Package config loads settings from defaults, an optional config file, a
// .env file and MOODTUNE_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Strum355/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "MOODTUNE"

// Config is the resolved application configuration.
type Config struct {
	HTTP    HTTPConfig
	Storage StorageConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Session SessionConfig
	Worker  WorkerConfig
}

type HTTPConfig struct {
	Addr       string
	CORSOrigin string
}

type StorageConfig struct {
	Driver      string
	SQLitePath  string
	PostgresDSN string
}

type RedisConfig struct {
	Address string
}

type CatalogConfig struct {
	Driver        string
	Root          string
	PublicBaseURL string
	CacheTTL      time.Duration
	RemoteURL     string
	ClientID      string
	ClientSecret  string
	TokenURL      string
}

type SessionConfig struct {
	TTL time.Duration
}

type WorkerConfig struct {
	Count int
	Queue int
}

// Load reads configuration. configFile may be empty; .env files are
// optional.
func Load(configFile string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, proceeding with defaults.")
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	initDefaults(v)
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:       v.GetString("http.addr"),
			CORSOrigin: v.GetString("http.cors_origin"),
		},
		Storage: StorageConfig{
			Driver:      strings.ToLower(v.GetString("storage.driver")),
			SQLitePath:  v.GetString("storage.sqlite_path"),
			PostgresDSN: v.GetString("storage.postgres_dsn"),
		},
		Redis: RedisConfig{
			Address: v.GetString("redis.address"),
		},
		Catalog: CatalogConfig{
			Driver:        strings.ToLower(v.GetString("catalog.driver")),
			Root:          v.GetString("catalog.root"),
			PublicBaseURL: v.GetString("catalog.public_base_url"),
			CacheTTL:      v.GetDuration("catalog.cache_ttl"),
			RemoteURL:     v.GetString("catalog.remote_url"),
			ClientID:      v.GetString("catalog.client_id"),
			ClientSecret:  v.GetString("catalog.client_secret"),
			TokenURL:      v.GetString("catalog.token_url"),
		},
		Session: SessionConfig{
			TTL: v.GetDuration("session.ttl"),
		},
		Worker: WorkerConfig{
			Count: v.GetInt("worker.count"),
			Queue: v.GetInt("worker.queue"),
		},
	}
}

// Validate checks driver names and the settings each driver needs.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.SQLitePath == "" {
			errs = append(errs, errors.New("storage.sqlite_path is required for the sqlite driver"))
		}
	case "postgres":
		if c.Storage.PostgresDSN == "" {
			errs = append(errs, errors.New("storage.postgres_dsn is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	switch c.Catalog.Driver {
	case "fs":
		if c.Catalog.Root == "" {
			errs = append(errs, errors.New("catalog.root is required for the fs catalog"))
		}
	case "remote":
		if c.Catalog.RemoteURL == "" {
			errs = append(errs, errors.New("catalog.remote_url is required for the remote catalog"))
		}
		if c.Catalog.ClientID != "" && c.Catalog.TokenURL == "" {
			errs = append(errs, errors.New("catalog.token_url is required with catalog.client_id"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown catalog driver %q", c.Catalog.Driver))
	}
	if c.Worker.Count < 0 || c.Worker.Queue < 0 {
		errs = append(errs, errors.New("worker.count and worker.queue must not be negative"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
