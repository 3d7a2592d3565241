// Package config loads and validates service configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Crawler  CrawlerConfig  `mapstructure:"crawler"`
	Headless HeadlessConfig `mapstructure:"headless"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
	DB       DBConfig       `mapstructure:"db"`
	PubSub   PubSubConfig   `mapstructure:"pubsub"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	SafeMode bool           `mapstructure:"safe_mode"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port           int `mapstructure:"port"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// AuthConfig guards the reindex endpoint. An empty key disables the check.
type AuthConfig struct {
	ReindexKey string `mapstructure:"reindex_key"`
}

// CrawlerConfig governs the acquisition pipeline.
type CrawlerConfig struct {
	IndexURL       string  `mapstructure:"index_url"`
	UserAgent      string  `mapstructure:"user_agent"`
	BatchSize      int     `mapstructure:"batch_size"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
	FetchRPS       float64 `mapstructure:"fetch_rps"`
}

// HeadlessConfig enables browser rendering for the index page when the
// static fetch misses script-injected cards.
type HeadlessConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxParallel   int  `mapstructure:"max_parallel"`
	NavTimeoutSec int  `mapstructure:"nav_timeout_seconds"`
}

// CacheConfig selects and configures the snapshot store.
type CacheConfig struct {
	// Backend is "file", "postgres", or "memory".
	Backend string `mapstructure:"backend"`
	Dir     string `mapstructure:"dir"`
}

// ArchiveConfig controls raw HTML retention.
type ArchiveConfig struct {
	// Backend is "none", "local", or "gcs".
	Backend   string `mapstructure:"backend"`
	Dir       string `mapstructure:"dir"`
	GCSBucket string `mapstructure:"gcs_bucket"`
	Prefix    string `mapstructure:"prefix"`
}

// DBConfig controls access to the relational snapshot store.
type DBConfig struct {
	DSN   string `mapstructure:"dsn"`
	Table string `mapstructure:"table"`
}

// PubSubConfig holds metadata for reindex-completed notifications.
type PubSubConfig struct {
	ProjectID string `mapstructure:"project_id"`
	TopicName string `mapstructure:"topic_name"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BEVTRENDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 60)
	v.SetDefault("crawler.index_url", "https://iba-world.com/cocktails/all-cocktails/")
	v.SetDefault("crawler.user_agent", "Mozilla/5.0 (compatible; BevTrendsBot/1.0)")
	v.SetDefault("crawler.batch_size", 5)
	v.SetDefault("crawler.timeout_seconds", 15)
	v.SetDefault("crawler.fetch_rps", 0)
	v.SetDefault("headless.enabled", false)
	v.SetDefault("headless.max_parallel", 1)
	v.SetDefault("headless.nav_timeout_seconds", 25)
	v.SetDefault("cache.backend", "file")
	v.SetDefault("cache.dir", "data")
	v.SetDefault("archive.backend", "none")
	v.SetDefault("archive.dir", "data/archive")
	v.SetDefault("archive.prefix", "pages")
	v.SetDefault("db.table", "iba_cocktails")
	v.SetDefault("logging.development", true)
	v.SetDefault("safe_mode", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.TimeoutSeconds <= 0 {
		return fmt.Errorf("server.timeout_seconds must be > 0")
	}
	if c.Crawler.IndexURL == "" {
		return fmt.Errorf("crawler.index_url must be set")
	}
	if c.Crawler.BatchSize <= 0 {
		return fmt.Errorf("crawler.batch_size must be > 0")
	}
	if c.Crawler.TimeoutSeconds <= 0 {
		return fmt.Errorf("crawler.timeout_seconds must be > 0")
	}
	if c.Headless.Enabled && c.Headless.MaxParallel <= 0 {
		return fmt.Errorf("headless.max_parallel must be > 0 when headless is enabled")
	}
	switch c.Cache.Backend {
	case "file":
		if c.Cache.Dir == "" {
			return fmt.Errorf("cache.dir must be set for the file backend")
		}
	case "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn must be set for the postgres backend")
		}
	case "memory":
	default:
		return fmt.Errorf("cache.backend must be file, postgres, or memory")
	}
	switch c.Archive.Backend {
	case "none":
	case "local":
		if c.Archive.Dir == "" {
			return fmt.Errorf("archive.dir must be set for the local backend")
		}
	case "gcs":
		if c.Archive.GCSBucket == "" {
			return fmt.Errorf("archive.gcs_bucket must be set for the gcs backend")
		}
	default:
		return fmt.Errorf("archive.backend must be none, local, or gcs")
	}
	if c.PubSub.TopicName != "" && c.PubSub.ProjectID == "" {
		return fmt.Errorf("pubsub.project_id must be set when a topic is configured")
	}
	return nil
}

// FetchTimeout returns the per-page fetch budget.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.Crawler.TimeoutSeconds) * time.Second
}

// RequestTimeout returns the outer HTTP handler budget.
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
