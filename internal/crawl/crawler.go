// Package crawl orchestrates the index fetch, candidate extraction, and
// batched detail-page acquisition.
package crawl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bevtrends/bevtrends/internal/archive"
	"github.com/bevtrends/bevtrends/internal/cocktail"
	"github.com/bevtrends/bevtrends/internal/fetcher"
	"github.com/bevtrends/bevtrends/internal/metrics"
	"github.com/bevtrends/bevtrends/internal/scrape"
)

// DefaultBatchSize bounds in-flight detail fetches. Each batch fully
// settles before the next starts, which is the only backpressure the
// upstream site sees besides the rate limiter.
const DefaultBatchSize = 5

// Config controls crawl behavior.
type Config struct {
	IndexURL  string
	BatchSize int
	// FetchRPS caps detail fetches per second across the whole crawl;
	// zero or negative disables the limiter.
	FetchRPS      float64
	ArchivePrefix string
}

// Result carries the deduplicated records plus the per-URL report.
type Result struct {
	Records []cocktail.Record
	Report  Report
}

// Crawler runs the acquisition pipeline. It holds no state between runs;
// mutual exclusion between concurrent crawls belongs to the caller.
type Crawler struct {
	cfg     Config
	detail  fetcher.Fetcher
	index   fetcher.Fetcher
	archive archive.Provider
	limiter *rate.Limiter
	logger  *zap.Logger
}

// New constructs a Crawler. index may be nil to reuse the detail fetcher
// for the index page; arch may be nil to disable archival.
func New(cfg Config, detail fetcher.Fetcher, index fetcher.Fetcher, arch archive.Provider, logger *zap.Logger) *Crawler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if index == nil {
		index = detail
	}
	if arch == nil {
		arch = archive.NoOpProvider{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := rate.Inf
	if cfg.FetchRPS > 0 {
		limit = rate.Limit(cfg.FetchRPS)
	}
	return &Crawler{
		cfg:     cfg,
		detail:  detail,
		index:   index,
		archive: arch,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}
}

// Crawl fetches the index page, extracts candidates, and processes them in
// fixed-size concurrent batches. Per-URL failures are recorded and
// skipped; an index failure is fatal because no candidate list exists
// without it.
func (c *Crawler) Crawl(ctx context.Context) (Result, error) {
	start := time.Now()

	indexPage, err := c.index.Fetch(ctx, c.cfg.IndexURL)
	if err != nil {
		return Result{}, fmt.Errorf("fetch index %s: %w", c.cfg.IndexURL, err)
	}
	urls, err := scrape.ExtractLinks(indexPage.Body)
	if err != nil {
		return Result{}, fmt.Errorf("extract candidates: %w", err)
	}
	c.logger.Info("index extracted",
		zap.String("index_url", c.cfg.IndexURL),
		zap.Int("candidates", len(urls)),
	)

	type slot struct {
		record *cocktail.Record
		item   Item
	}
	slots := make([]slot, len(urls))

	for batchStart := 0; batchStart < len(urls); batchStart += c.cfg.BatchSize {
		batchEnd := batchStart + c.cfg.BatchSize
		if batchEnd > len(urls) {
			batchEnd = len(urls)
		}
		var wg sync.WaitGroup
		for i := batchStart; i < batchEnd; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				rec, item := c.processURL(ctx, urls[i])
				slots[i] = slot{record: rec, item: item}
			}(i)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("crawl canceled: %w", err)
		}
	}

	report := Report{Candidates: len(urls), Items: make([]Item, 0, len(urls))}
	seen := make(map[string]struct{})
	var records []cocktail.Record
	for _, s := range slots {
		report.Items = append(report.Items, s.item)
		switch s.item.Outcome {
		case OutcomeOK:
			if _, dup := seen[s.record.ID]; dup {
				report.Duplicates++
				continue
			}
			seen[s.record.ID] = struct{}{}
			records = append(records, *s.record)
			report.Succeeded++
		case OutcomeSkipped:
			report.Skipped++
		case OutcomeFailed:
			report.Failed++
		}
	}
	report.Duration = time.Since(start)
	metrics.ObserveCrawlDuration(report.Duration)

	c.logger.Info("crawl finished",
		zap.Int("records", len(records)),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Int("duplicates", report.Duplicates),
		zap.Duration("duration", report.Duration),
	)
	return Result{Records: records, Report: report}, nil
}

// processURL fetches and parses one candidate. All failure modes collapse
// to "no record for this URL".
func (c *Crawler) processURL(ctx context.Context, url string) (*cocktail.Record, Item) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.failed(url, fmt.Errorf("rate limit wait: %w", err))
	}

	page, err := c.detail.Fetch(ctx, url)
	if err != nil {
		return nil, c.failed(url, err)
	}
	rec, err := scrape.ParseDetail(page.Body, url)
	if err != nil {
		return nil, c.failed(url, err)
	}
	if rec == nil {
		metrics.ObserveCrawlPage(string(OutcomeSkipped))
		c.logger.Debug("page rejected", zap.String("url", url))
		return nil, Item{URL: url, Outcome: OutcomeSkipped}
	}

	if c.archive != nil {
		name := c.archiveName(rec.ID)
		if aerr := c.archive.Save(ctx, name, page.Body); aerr != nil {
			// Archival is best effort; the record is still good.
			c.logger.Warn("archive page", zap.String("url", url), zap.Error(aerr))
		}
	}

	metrics.ObserveCrawlPage(string(OutcomeOK))
	return rec, Item{URL: url, Outcome: OutcomeOK}
}

func (c *Crawler) failed(url string, err error) Item {
	metrics.ObserveCrawlPage(string(OutcomeFailed))
	c.logger.Warn("page failed", zap.String("url", url), zap.Error(err))
	return Item{URL: url, Outcome: OutcomeFailed, Error: err.Error()}
}

func (c *Crawler) archiveName(slug string) string {
	if c.cfg.ArchivePrefix == "" {
		return slug + ".html"
	}
	return c.cfg.ArchivePrefix + "/" + slug + ".html"
}
