package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cfg "github.com/snapnest/snapnest/internal/config"
)

// Storage is the image host. Keys are slash-separated object names such as
// "pins/<uuid>.png"; the key doubles as the storage id persisted on rows.
type Storage interface {
	Save(ctx context.Context, key string, file io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

// New builds the storage driver selected by STORAGE_DRIVER.
func New(c *cfg.Config) (Storage, error) {
	switch c.StorageDriver {
	case "s3":
		slog.Info("initializing S3 storage",
			"bucket", c.S3Bucket,
			"region", c.S3Region,
			"endpoint", c.S3Endpoint,
		)
		return NewS3Storage(S3Config{
			Region:    c.S3Region,
			Bucket:    c.S3Bucket,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Endpoint:  c.S3Endpoint,
		})
	case "local":
		slog.Info("initializing local storage", "dir", c.UploadDir)
		return NewLocalStorage(c.UploadDir, "/uploads")
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
}
