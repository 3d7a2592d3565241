package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if !strings.Contains(cfg.Crawler.IndexURL, "iba-world.com") {
		t.Fatalf("unexpected default index url %q", cfg.Crawler.IndexURL)
	}
	if cfg.Crawler.BatchSize != 5 {
		t.Fatalf("expected default batch size 5, got %d", cfg.Crawler.BatchSize)
	}
	if !cfg.SafeMode {
		t.Fatalf("expected safe mode on by default")
	}
	if got := cfg.FetchTimeout(); got != 15*time.Second {
		t.Fatalf("expected fetch timeout 15s, got %v", got)
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  timeout_seconds: 30
auth:
  reindex_key: secret
crawler:
  index_url: https://iba-world.com/cocktails/all-cocktails/
  user_agent: trend-bot
  batch_size: 8
  timeout_seconds: 20
  fetch_rps: 2
headless:
  enabled: true
  max_parallel: 2
cache:
  backend: postgres
archive:
  backend: gcs
  gcs_bucket: bev-archive
  prefix: raw
db:
  dsn: postgres://localhost/bevtrends
  table: cocktails
pubsub:
  project_id: bev-prod
  topic_name: reindex-done
logging:
  development: false
safe_mode: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.ReindexKey != "secret" {
		t.Fatalf("expected reindex key to load")
	}
	if cfg.Crawler.BatchSize != 8 || cfg.Crawler.FetchRPS != 2 {
		t.Fatalf("expected crawler overrides to apply: %+v", cfg.Crawler)
	}
	if cfg.Cache.Backend != "postgres" || cfg.DB.Table != "cocktails" {
		t.Fatalf("expected postgres cache config: %+v", cfg.Cache)
	}
	if cfg.Archive.Backend != "gcs" || cfg.Archive.GCSBucket != "bev-archive" {
		t.Fatalf("expected gcs archive config: %+v", cfg.Archive)
	}
	if cfg.SafeMode {
		t.Fatalf("expected safe mode off")
	}
	if got := cfg.RequestTimeout(); got != 30*time.Second {
		t.Fatalf("expected request timeout 30s, got %v", got)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 8080, TimeoutSeconds: 60},
		Crawler: CrawlerConfig{
			IndexURL:       "https://iba-world.com/cocktails/all-cocktails/",
			BatchSize:      5,
			TimeoutSeconds: 15,
		},
		Cache:   CacheConfig{Backend: "memory"},
		Archive: ArchiveConfig{Backend: "none"},
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "invalid port",
			mutate: func(c *Config) { c.Server.Port = 0 },
			want:   "server.port",
		},
		{
			name:   "missing index url",
			mutate: func(c *Config) { c.Crawler.IndexURL = "" },
			want:   "crawler.index_url",
		},
		{
			name:   "invalid batch size",
			mutate: func(c *Config) { c.Crawler.BatchSize = 0 },
			want:   "crawler.batch_size",
		},
		{
			name: "headless without parallelism",
			mutate: func(c *Config) {
				c.Headless.Enabled = true
				c.Headless.MaxParallel = 0
			},
			want: "headless.max_parallel",
		},
		{
			name:   "unknown cache backend",
			mutate: func(c *Config) { c.Cache.Backend = "redis" },
			want:   "cache.backend",
		},
		{
			name:   "postgres without dsn",
			mutate: func(c *Config) { c.Cache.Backend = "postgres" },
			want:   "db.dsn",
		},
		{
			name: "gcs without bucket",
			mutate: func(c *Config) {
				c.Archive.Backend = "gcs"
				c.Archive.GCSBucket = ""
			},
			want: "archive.gcs_bucket",
		},
		{
			name:   "topic without project",
			mutate: func(c *Config) { c.PubSub.TopicName = "reindex-done" },
			want:   "pubsub.project_id",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tc.want)
			}
		})
	}
}
