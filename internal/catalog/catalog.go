// Package catalog binds the crawler, snapshot store, and mock fallback
// into the read/reindex surface the API serves.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/bevtrends/bevtrends/internal/cocktail"
	"github.com/bevtrends/bevtrends/internal/crawl"
	"github.com/bevtrends/bevtrends/internal/metrics"
	"github.com/bevtrends/bevtrends/internal/publisher"
	"github.com/bevtrends/bevtrends/internal/search"
	"github.com/bevtrends/bevtrends/internal/store"
)

// ErrNotFound marks a lookup for an id that is not in the active set.
var ErrNotFound = errors.New("cocktail not found")

// ErrReindexRunning rejects a reindex while another is in flight. The
// whole-snapshot overwrite is not safe under concurrent writers, so a
// second trigger fails fast instead of queueing.
var ErrReindexRunning = errors.New("reindex in progress")

// Crawler runs one acquisition pass. *crawl.Crawler satisfies it.
type Crawler interface {
	Crawl(ctx context.Context) (crawl.Result, error)
}

// Config controls catalog behavior.
type Config struct {
	// SafeMode disables live crawling; reindex and empty-snapshot reads
	// serve the static mock set instead.
	SafeMode bool
	// Topic names the pub/sub topic for reindex-completed events; empty
	// disables publishing.
	Topic string
}

// Summary reports the outcome of a reindex.
type Summary struct {
	Count  int          `json:"count"`
	Safe   bool         `json:"safe"`
	Report crawl.Report `json:"-"`
}

// Stats describes the current snapshot without touching the mock fallback.
type Stats struct {
	Cached bool `json:"cached"`
	Count  int  `json:"count"`
	Safe   bool `json:"safe"`
}

// Catalog owns the in-memory snapshot. Reads see the most recently loaded
// or crawled set; a successful reindex swaps it atomically under the lock.
type Catalog struct {
	cfg     Config
	store   store.Store
	crawler Crawler
	pub     publisher.Publisher
	logger  *zap.Logger

	mu      sync.RWMutex
	records []cocktail.Record
	loaded  bool

	reindexMu  sync.Mutex
	reindexing bool
}

// New constructs a Catalog. pub may be nil to disable event publishing.
func New(cfg Config, st store.Store, crawler Crawler, pub publisher.Publisher, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{
		cfg:     cfg,
		store:   st,
		crawler: crawler,
		pub:     pub,
		logger:  logger,
	}
}

// Records returns the active set: the loaded snapshot, else the mock set
// in safe mode, else empty. It never fails on absent data.
func (c *Catalog) Records(ctx context.Context) []cocktail.Record {
	if records, ok := c.snapshot(ctx); ok {
		return records
	}
	if c.cfg.SafeMode {
		return MockSet()
	}
	return []cocktail.Record{}
}

// Search applies the filter engine to the active set.
func (c *Catalog) Search(ctx context.Context, params search.Params) []cocktail.Record {
	return search.Apply(c.Records(ctx), params)
}

// Get returns the record with the exact id from the active set.
func (c *Catalog) Get(ctx context.Context, id string) (cocktail.Record, error) {
	for _, rec := range c.Records(ctx) {
		if rec.ID == id {
			return rec, nil
		}
	}
	return cocktail.Record{}, ErrNotFound
}

// Stats reports on the snapshot itself; the mock fallback does not count
// as cached data.
func (c *Catalog) Stats(ctx context.Context) Stats {
	records, ok := c.snapshot(ctx)
	return Stats{Cached: ok, Count: len(records), Safe: c.cfg.SafeMode}
}

// Reindex runs one crawl and persists the result as the new snapshot.
// Only one reindex runs at a time; concurrent callers get
// ErrReindexRunning. In safe mode no crawl happens and the mock set is
// reported.
//
// A store failure after a successful crawl is surfaced (the caller must
// know the result was not persisted) but the fresh records still replace
// the in-memory set so reads benefit from the work already done.
func (c *Catalog) Reindex(ctx context.Context) (Summary, error) {
	if !c.beginReindex() {
		metrics.ObserveReindex("busy")
		return Summary{}, ErrReindexRunning
	}
	defer c.endReindex()

	if c.cfg.SafeMode {
		metrics.ObserveReindex("safe")
		return Summary{Count: len(mockSet), Safe: true}, nil
	}

	result, err := c.crawler.Crawl(ctx)
	if err != nil {
		metrics.ObserveReindex("failed")
		return Summary{}, fmt.Errorf("crawl: %w", err)
	}

	saveErr := c.store.Save(ctx, result.Records)

	c.mu.Lock()
	c.records = result.Records
	c.loaded = true
	c.mu.Unlock()
	metrics.SetCatalogRecords(len(result.Records))

	if saveErr != nil {
		metrics.ObserveReindex("failed")
		return Summary{}, fmt.Errorf("persist snapshot: %w", saveErr)
	}
	metrics.ObserveReindex("ok")
	c.publishCompleted(ctx, result)

	return Summary{Count: len(result.Records), Safe: false, Report: result.Report}, nil
}

func (c *Catalog) publishCompleted(ctx context.Context, result crawl.Result) {
	if c.pub == nil || c.cfg.Topic == "" {
		return
	}
	payload := map[string]any{
		"count":       len(result.Records),
		"skipped":     result.Report.Skipped,
		"failed":      result.Report.Failed,
		"duration_ms": result.Report.Duration.Milliseconds(),
	}
	if _, err := c.pub.Publish(ctx, c.cfg.Topic, payload); err != nil {
		// The snapshot is already durable; a lost event is only a
		// delayed feed refresh.
		c.logger.Warn("publish reindex event", zap.Error(err))
	}
}

// snapshot returns the in-memory set, loading it from the store on first
// use. An absent snapshot is remembered so the store is not re-read on
// every request; a load error is retried on the next call.
func (c *Catalog) snapshot(ctx context.Context) ([]cocktail.Record, bool) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.records, len(c.records) > 0
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.records, len(c.records) > 0
	}
	records, ok, err := c.store.Load(ctx)
	if err != nil {
		c.logger.Warn("load snapshot", zap.Error(err))
		return nil, false
	}
	if !ok {
		c.loaded = true
		return nil, false
	}
	c.records = records
	c.loaded = true
	metrics.SetCatalogRecords(len(records))
	return c.records, len(c.records) > 0
}

func (c *Catalog) beginReindex() bool {
	c.reindexMu.Lock()
	defer c.reindexMu.Unlock()
	if c.reindexing {
		return false
	}
	c.reindexing = true
	return true
}

func (c *Catalog) endReindex() {
	c.reindexMu.Lock()
	c.reindexing = false
	c.reindexMu.Unlock()
}
