// Package archive defines the interface for raw-markup archival.
// Successfully parsed detail pages are kept so extraction heuristics can be
// re-run offline without another crawl. The abstraction keeps the crawler
// independent of the storage backend (local filesystem or Google Cloud
// Storage).
package archive

import "context"

// Provider saves raw page bytes under an object name.
type Provider interface {
	Save(ctx context.Context, objectName string, data []byte) error
}

// NoOpProvider discards everything. It is the default when archival is not
// configured and doubles as a test fake.
type NoOpProvider struct{}

// Save for NoOpProvider does nothing and always returns nil.
func (NoOpProvider) Save(_ context.Context, _ string, _ []byte) error {
	return nil
}
