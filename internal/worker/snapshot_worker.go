package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fixkit/repairdesk/internal/config"
	"github.com/fixkit/repairdesk/internal/store"
)

// SnapshotWorker periodically writes the full state to a timestamped
// pretty-printed JSON file, the same shape the export endpoint serves.
// Disabled unless SNAPSHOT_ENABLED is set.
type SnapshotWorker struct {
	store  *store.Store
	logger *zap.Logger
	cfg    config.SnapshotConfig
}

// NewSnapshotWorker constructs the worker.
func NewSnapshotWorker(st *store.Store, logger *zap.Logger, cfg config.SnapshotConfig) *SnapshotWorker {
	return &SnapshotWorker{store: st, logger: logger, cfg: cfg}
}

// Run writes snapshots on the configured interval until ctx is done.
func (w *SnapshotWorker) Run(ctx context.Context) {
	if !w.cfg.Enabled {
		return
	}
	ticker := time.NewTicker(w.cfg.Interval())
	defer ticker.Stop()

	w.logger.Info("snapshot worker started",
		zap.String("dir", w.cfg.Dir),
		zap.Duration("interval", w.cfg.Interval()))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.writeSnapshot(); err != nil {
				w.logger.Warn("snapshot failed", zap.Error(err))
			}
		}
	}
}

func (w *SnapshotWorker) writeSnapshot() error {
	data, err := w.store.ExportAll()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(w.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	name := fmt.Sprintf("repairdesk-export-%s.json", time.Now().Format("20060102-150405"))
	path := filepath.Join(w.cfg.Dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	w.logger.Info("snapshot written", zap.String("path", path))
	return nil
}
