package workers

import (
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/config"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/service"
)

// Workers aggregates all background workers of the application.
type Workers struct {
	workers []Worker
}

// NewWorkers creates the application's background workers.
func NewWorkers(services *service.Services, configStore *directory.ConfigStore, cfg config.Workers, logger *logger.Logger) *Workers {
	logger.Debug().Msg("creating workers...")

	return &Workers{
		workers: []Worker{
			newSyncWorker(services.SyncService, configStore, cfg.SyncInterval, logger),
		},
	}
}

// Run starts every registered worker.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
