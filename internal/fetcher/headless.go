package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
)

// HeadlessConfig controls the browser-backed fetcher.
type HeadlessConfig struct {
	UserAgent         string
	MaxParallel       int
	NavigationTimeout time.Duration
}

// Headless implements Fetcher with chromedp. The IBA index page is built
// with Elementor and can render its card grid client-side; when enabled,
// the crawler uses this fetcher for the index only.
type Headless struct {
	cfg         HeadlessConfig
	limiter     chan struct{}
	allocator   context.Context
	allocCancel context.CancelFunc
}

// NewHeadless creates a headless fetcher backed by a shared exec allocator.
func NewHeadless(cfg HeadlessConfig) (*Headless, error) {
	if cfg.MaxParallel < 0 {
		return nil, fmt.Errorf("max parallel must be >= 0")
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 45 * time.Second
	}
	var limiter chan struct{}
	if cfg.MaxParallel > 0 {
		limiter = make(chan struct{}, cfg.MaxParallel)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if cfg.UserAgent != "" {
		opts = append(opts, chromedp.UserAgent(cfg.UserAgent))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Headless{
		cfg:         cfg,
		limiter:     limiter,
		allocator:   allocCtx,
		allocCancel: allocCancel,
	}, nil
}

// Close cancels the allocator context and tears down the browser.
func (f *Headless) Close() {
	f.allocCancel()
}

// Fetch navigates with a headless browser and returns the rendered DOM.
func (f *Headless) Fetch(ctx context.Context, url string) (Page, error) {
	if err := f.acquire(ctx); err != nil {
		return Page{}, err
	}
	defer f.release()

	taskCtx, taskCancel := chromedp.NewContext(f.allocator)
	defer taskCancel()
	taskCtx, cancel := context.WithTimeout(taskCtx, f.cfg.NavigationTimeout)
	defer cancel()
	// The task context descends from the allocator, not the caller, so
	// propagate the caller's cancellation by hand.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	start := time.Now()
	var html string
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	}
	if err := chromedp.Run(taskCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return Page{}, fmt.Errorf("render %s: %w", url, ctx.Err())
		}
		if taskCtx.Err() == context.DeadlineExceeded {
			return Page{}, fmt.Errorf("render %s: %w", url, ErrTimeout)
		}
		return Page{}, fmt.Errorf("render %s: %w", url, err)
	}

	return Page{
		URL:        url,
		StatusCode: http.StatusOK,
		Body:       []byte(html),
		Duration:   time.Since(start),
	}, nil
}

func (f *Headless) acquire(ctx context.Context) error {
	if f.limiter == nil {
		return nil
	}
	select {
	case f.limiter <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("headless slot wait: %w", ctx.Err())
	}
}

func (f *Headless) release() {
	if f.limiter == nil {
		return
	}
	<-f.limiter
}
