package workers

import (
	"context"
	"errors"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
)

// syncWorker periodically checks whether the active directory configuration
// is due for a synchronization run and triggers one when it is. The check
// cadence is the worker's tick interval; the sync cadence itself comes from
// the configuration's sync_interval_minutes.
type syncWorker struct {
	syncService service.SyncService
	configStore *directory.ConfigStore
	tick        time.Duration
	logger      *logger.Logger
}

func newSyncWorker(syncService service.SyncService, configStore *directory.ConfigStore, tick time.Duration, logger *logger.Logger) *syncWorker {
	return &syncWorker{
		syncService: syncService,
		configStore: configStore,
		tick:        tick,
		logger:      logger,
	}
}

// Run spawns the worker goroutine and returns immediately.
func (w *syncWorker) Run() {
	w.logger.Info().Dur("tick", w.tick).Msg("starting directory sync worker")

	go func() {
		ticker := time.NewTicker(w.tick)
		defer ticker.Stop()

		for range ticker.C {
			w.runIfDue()
		}
	}()
}

func (w *syncWorker) runIfDue() {
	log := w.logger.With().Str("func", "syncWorker.runIfDue").Logger()

	cfg, ok := w.configStore.Snapshot()
	if !ok || !cfg.Active {
		log.Debug().Msg("no active directory configuration, skipping")
		return
	}
	if cfg.SyncIntervalMinutes <= 0 {
		log.Debug().Msg("scheduled sync disabled, skipping")
		return
	}

	if cfg.LastSyncAt != nil {
		due := cfg.LastSyncAt.Add(time.Duration(cfg.SyncIntervalMinutes) * time.Minute)
		if time.Now().Before(due) {
			return
		}
	}

	result, err := w.syncService.Run(context.Background())
	switch {
	case errors.Is(err, service.ErrSyncInProgress):
		log.Debug().Msg("sync already running, skipping")
	case errors.Is(err, service.ErrDirectoryDisabled):
		log.Debug().Msg("directory disabled, skipping")
	case err != nil:
		log.Error().Err(err).Msg("scheduled directory sync failed")
	default:
		log.Info().Int("changes", result.Total()).Msg("scheduled directory sync finished")
	}
}
