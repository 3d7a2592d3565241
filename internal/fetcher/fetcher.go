// Package fetcher retrieves page markup over HTTP with bounded timeouts.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrTimeout marks a fetch that was aborted because its deadline elapsed.
// Callers distinguish it from HTTP-status failures via errors.Is.
var ErrTimeout = errors.New("fetch timed out")

// StatusError reports a non-2xx response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Code)
}

// Page is the raw result of a single fetch.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
	Duration   time.Duration
}

// Fetcher retrieves one page. Implementations issue exactly one outbound
// request per call; retry, if any, belongs to the caller.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Page, error)
}
