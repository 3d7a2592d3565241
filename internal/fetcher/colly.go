package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gocolly/colly/v2"
)

// Config controls collector behavior.
type Config struct {
	UserAgent string
	Timeout   time.Duration
}

// DefaultTimeout bounds a detail-page fetch when none is configured.
const DefaultTimeout = 15 * time.Second

// Colly implements Fetcher using the Colly collector.
type Colly struct {
	cfg       Config
	transport http.RoundTripper
	base      *colly.Collector
}

// NewColly builds a Colly fetcher with a pooled transport shared across
// per-request collector clones.
func NewColly(cfg Config) *Colly {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	// colly v2.1.0's Async option sets Async=true regardless of its
	// argument; rely on the synchronous default instead.
	c := colly.NewCollector()
	transport := newHTTPTransport()
	c.WithTransport(transport)
	return &Colly{
		cfg:       cfg,
		transport: transport,
		base:      c,
	}
}

// Fetch executes a single HTTP GET. A non-2xx response yields a
// *StatusError; an elapsed deadline yields an error matching ErrTimeout.
func (f *Colly) Fetch(ctx context.Context, url string) (Page, error) {
	var (
		result   Page
		fetchErr error
	)
	start := time.Now()

	collector := f.base.Clone()
	collector.UserAgent = f.cfg.UserAgent
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(f.cfg.Timeout)
	collector.WithTransport(f.transport)

	collector.OnResponse(func(r *colly.Response) {
		result = Page{
			URL:        r.Request.URL.String(),
			StatusCode: r.StatusCode,
			Body:       append([]byte(nil), r.Body...),
			Duration:   time.Since(start),
		}
	})
	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode > 0 {
			fetchErr = &StatusError{Code: r.StatusCode, URL: url}
			return
		}
		fetchErr = err
	})

	if err := f.runCollector(ctx, collector, url, &fetchErr); err != nil {
		return Page{}, err
	}
	if result.StatusCode < 200 || result.StatusCode >= 300 {
		return Page{}, &StatusError{Code: result.StatusCode, URL: url}
	}
	return result, nil
}

func (f *Colly) runCollector(ctx context.Context, collector *colly.Collector, url string, fetchErr *error) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(url)
	}()

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("fetch %s: %w", url, ErrTimeout)
		}
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	case err := <-done:
		if *fetchErr != nil {
			return classify(url, *fetchErr)
		}
		if err != nil {
			return classify(url, err)
		}
		return nil
	}
}

// classify maps transport-level timeouts onto ErrTimeout and leaves
// everything else wrapped as-is.
func classify(url string, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("fetch %s: %w", url, ErrTimeout)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("fetch %s: %w", url, ErrTimeout)
	}
	return fmt.Errorf("fetch %s: %w", url, err)
}

func newHTTPTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   15 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
	}
}
