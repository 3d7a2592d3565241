package archive

import (
	"context"
	"fmt"
	"path"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

// GCSProvider archives pages to a Google Cloud Storage bucket.
// Authentication uses Application Default Credentials.
type GCSProvider struct {
	client *storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewGCSProvider initializes the client and verifies bucket access so a bad
// configuration fails at startup rather than mid-crawl.
func NewGCSProvider(ctx context.Context, bucket, prefix string, logger *zap.Logger) (*GCSProvider, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		if cerr := client.Close(); cerr != nil {
			logger.Warn("close gcs client after attrs failure", zap.Error(cerr))
		}
		return nil, fmt.Errorf("get gcs bucket %q attributes: %w", bucket, err)
	}
	return &GCSProvider{client: client, bucket: bucket, prefix: prefix, logger: logger}, nil
}

// Save uploads the object, finalizing via Close.
func (p *GCSProvider) Save(ctx context.Context, objectName string, data []byte) error {
	name := objectName
	if p.prefix != "" {
		name = path.Join(p.prefix, objectName)
	}
	wc := p.client.Bucket(p.bucket).Object(name).NewWriter(ctx)
	wc.ContentType = "text/html; charset=utf-8"
	if _, err := wc.Write(data); err != nil {
		if cerr := wc.Close(); cerr != nil {
			p.logger.Warn("close gcs writer after write failure", zap.Error(cerr))
		}
		return fmt.Errorf("write gcs object %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("finalize gcs object %s: %w", name, err)
	}
	return nil
}

// Close releases the underlying client.
func (p *GCSProvider) Close() error {
	if err := p.client.Close(); err != nil {
		return fmt.Errorf("close gcs client: %w", err)
	}
	return nil
}
