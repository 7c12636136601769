package service

import (
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/config"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
)

// Services aggregates every service implementation behind its interface.
type Services struct {
	AuthService       AuthService
	PermissionService PermissionService
	SyncService       SyncService
	DirectoryService  DirectoryService
}

// NewServices wires the service layer to the repositories, the directory
// client and the in-process directory config store.
func NewServices(
	storages *store.Storages,
	directoryClient directory.Client,
	configStore *directory.ConfigStore,
	cfg *config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	permissionService := NewPermissionService(storages.GroupRepository, logger)

	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			storages.AccessLogRepository,
			permissionService,
			directoryClient,
			configStore,
			cfg.App,
			logger,
		),
		PermissionService: permissionService,
		SyncService: NewSyncService(
			directoryClient,
			configStore,
			storages.DirectoryConfigRepository,
			storages.DirectorySyncRepository,
			logger,
		),
		DirectoryService: NewDirectoryService(
			directoryClient,
			configStore,
			storages.DirectoryConfigRepository,
			logger,
		),
	}
}
