// Package store persists the crawl snapshot. Each successful crawl fully
// replaces prior data; there is no merge or per-record update path.
package store

import (
	"context"
	"sync"

	"github.com/bevtrends/bevtrends/internal/cocktail"
)

// Store loads and saves the durable snapshot.
//
// Load returns ok=false when no snapshot is present; a missing or
// unparsable snapshot is not an error. Save replaces the whole snapshot.
type Store interface {
	Load(ctx context.Context) (records []cocktail.Record, ok bool, err error)
	Save(ctx context.Context, records []cocktail.Record) error
}

// Memory is an in-process Store used in tests and safe-mode local runs.
type Memory struct {
	mu      sync.RWMutex
	records []cocktail.Record
	set     bool
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns the held snapshot, if any.
func (m *Memory) Load(_ context.Context) ([]cocktail.Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return nil, false, nil
	}
	out := make([]cocktail.Record, len(m.records))
	copy(out, m.records)
	return out, true, nil
}

// Save replaces the held snapshot.
func (m *Memory) Save(_ context.Context, records []cocktail.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = make([]cocktail.Record, len(records))
	copy(m.records, records)
	m.set = true
	return nil
}
