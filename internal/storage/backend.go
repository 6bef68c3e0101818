package storage

import (
	"fmt"

	"reviewapi/internal/config"
)

// New selects and constructs the configured blob-store backend.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocal(cfg.LocalDir)
	case "s3", "minio":
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Backend)
	}
}
