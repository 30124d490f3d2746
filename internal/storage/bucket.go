package storage

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/portfolio/internal/config"
)

// Bucket stores published documents under a slash-separated key.
type Bucket interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
}

// NewFromConfig builds the bucket selected by CV_STORAGE. A nil bucket with a nil
// error means publishing is disabled.
func NewFromConfig(ctx context.Context, cfg config.AppConfig) (Bucket, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.CVStorage)) {
	case config.StorageDisabled:
		return nil, nil
	case config.StorageFS:
		bucket, err := NewFileBucket(cfg.CVStorageDir)
		if err != nil {
			return nil, err
		}
		return bucket, nil
	case config.StorageS3:
		bucket, err := NewS3Bucket(ctx, S3Options{
			Bucket:   cfg.CVBucket,
			Endpoint: cfg.S3Endpoint,
			Region:   cfg.S3Region,
		})
		if err != nil {
			return nil, err
		}
		return bucket, nil
	default:
		return nil, errors.Errorf("unknown CV_STORAGE %q", cfg.CVStorage)
	}
}
