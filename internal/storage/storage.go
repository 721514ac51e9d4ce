package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fixkit/repairdesk/internal/config"
)

// BlobStorage persists the full serialized shop state as a single record
// under one fixed key. Implementations do whole-blob reads and writes;
// there is no partial update, no versioning, and writers from separate
// processes are not coordinated (last write wins).
type BlobStorage interface {
	// Load returns the stored blob. found is false when no record exists yet.
	Load(ctx context.Context) (data []byte, found bool, err error)
	// Save replaces the stored blob.
	Save(ctx context.Context, data []byte) error
	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
	// Close releases backend resources.
	Close()
}

// New constructs the blob storage backend selected by configuration.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (BlobStorage, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendFile:
		return NewFile(cfg.Storage.FilePath), nil
	case config.BackendRedis:
		return NewRedis(cfg.Redis, cfg.Storage.Key, logger), nil
	case config.BackendPostgres:
		return NewPostgres(ctx, cfg.Postgres, cfg.Storage.Key, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}
