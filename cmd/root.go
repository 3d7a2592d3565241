// Package cmd defines the CLI commands for the bevtrends executable.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bevtrends/bevtrends/internal/archive"
	"github.com/bevtrends/bevtrends/internal/catalog"
	"github.com/bevtrends/bevtrends/internal/config"
	"github.com/bevtrends/bevtrends/internal/crawl"
	"github.com/bevtrends/bevtrends/internal/fetcher"
	"github.com/bevtrends/bevtrends/internal/logging"
	"github.com/bevtrends/bevtrends/internal/metrics"
	"github.com/bevtrends/bevtrends/internal/publisher"
	"github.com/bevtrends/bevtrends/internal/store"
	"github.com/bevtrends/bevtrends/internal/trends"
)

var cfgFile string

// app bundles the wired service graph shared by the subcommands.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	catalog *catalog.Catalog
	trends  trends.Repository
	closers []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}

// buildApp loads configuration and assembles the crawl and catalog
// pipeline behind it.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Development)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	metrics.Init()

	a := &app{cfg: cfg, logger: logger}

	st, err := buildStore(ctx, cfg, a)
	if err != nil {
		a.close()
		return nil, err
	}

	arch, err := buildArchive(ctx, cfg, logger, a)
	if err != nil {
		a.close()
		return nil, err
	}

	detail := fetcher.NewColly(fetcher.Config{
		UserAgent: cfg.Crawler.UserAgent,
		Timeout:   cfg.FetchTimeout(),
	})

	var index fetcher.Fetcher
	if cfg.Headless.Enabled {
		headless, err := fetcher.NewHeadless(fetcher.HeadlessConfig{
			UserAgent:         cfg.Crawler.UserAgent,
			MaxParallel:       cfg.Headless.MaxParallel,
			NavigationTimeout: time.Duration(cfg.Headless.NavTimeoutSec) * time.Second,
		})
		if err != nil {
			logger.Warn("headless fetcher init failed, using static fetch", zap.Error(err))
		} else {
			index = headless
			a.closers = append(a.closers, headless.Close)
		}
	}

	var pub publisher.Publisher
	if cfg.PubSub.TopicName != "" {
		ps, err := publisher.NewPubSub(ctx, cfg.PubSub.ProjectID, cfg.PubSub.TopicName)
		if err != nil {
			a.close()
			return nil, fmt.Errorf("init publisher: %w", err)
		}
		pub = ps
		a.closers = append(a.closers, func() { _ = ps.Close() })
	}

	crawler := crawl.New(crawl.Config{
		IndexURL:      cfg.Crawler.IndexURL,
		BatchSize:     cfg.Crawler.BatchSize,
		FetchRPS:      cfg.Crawler.FetchRPS,
		ArchivePrefix: cfg.Archive.Prefix,
	}, detail, index, arch, logger.Named("crawl"))

	a.catalog = catalog.New(catalog.Config{
		SafeMode: cfg.SafeMode,
		Topic:    cfg.PubSub.TopicName,
	}, st, crawler, pub, logger.Named("catalog"))
	a.trends = trends.NewMemory()

	return a, nil
}

func buildStore(ctx context.Context, cfg config.Config, a *app) (store.Store, error) {
	switch cfg.Cache.Backend {
	case "file":
		st, err := store.NewFile(cfg.Cache.Dir)
		if err != nil {
			return nil, fmt.Errorf("init file store: %w", err)
		}
		return st, nil
	case "postgres":
		st, err := store.NewPostgres(ctx, store.PostgresConfig{
			DSN:   cfg.DB.DSN,
			Table: cfg.DB.Table,
		})
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
		a.closers = append(a.closers, st.Close)
		return st, nil
	default:
		return store.NewMemory(), nil
	}
}

func buildArchive(ctx context.Context, cfg config.Config, logger *zap.Logger, a *app) (archive.Provider, error) {
	switch cfg.Archive.Backend {
	case "local":
		arch, err := archive.NewLocalProvider(cfg.Archive.Dir)
		if err != nil {
			return nil, fmt.Errorf("init local archive: %w", err)
		}
		return arch, nil
	case "gcs":
		// Object names already carry the configured prefix; see
		// crawl.Config.ArchivePrefix.
		arch, err := archive.NewGCSProvider(ctx, cfg.Archive.GCSBucket, "", logger.Named("archive"))
		if err != nil {
			return nil, fmt.Errorf("init gcs archive: %w", err)
		}
		a.closers = append(a.closers, func() { _ = arch.Close() })
		return arch, nil
	default:
		return archive.NoOpProvider{}, nil
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bevtrends",
		Short: "Cocktail index scraper and API for the BevTrends service.",
		Long: `bevtrends maintains a searchable snapshot of the IBA cocktail list.
It crawls the public index on demand, normalizes each recipe page into a
structured record, and serves the result over HTTP with spirit and
flavor-tag filtering.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is environment-only)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newReindexCmd())

	return cmd
}

// Execute is the entry point for the CLI.
func Execute() error {
	return newRootCmd().Execute()
}
