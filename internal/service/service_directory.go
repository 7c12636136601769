package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// directoryService is the administrative surface for the directory
// configuration: read, save, connection test.
type directoryService struct {
	directoryClient           directory.Client
	configStore               *directory.ConfigStore
	directoryConfigRepository store.DirectoryConfigRepository
	logger                    *logger.Logger
}

// NewDirectoryService constructs a DirectoryService.
func NewDirectoryService(
	directoryClient directory.Client,
	configStore *directory.ConfigStore,
	directoryConfigRepository store.DirectoryConfigRepository,
	logger *logger.Logger,
) DirectoryService {
	return &directoryService{
		directoryClient:           directoryClient,
		configStore:               configStore,
		directoryConfigRepository: directoryConfigRepository,
		logger:                    logger,
	}
}

// GetConfig returns the active configuration with the bind secret stripped.
func (d *directoryService) GetConfig(ctx context.Context) (models.DirectoryConfig, error) {
	cfg, err := d.directoryConfigRepository.GetActive(ctx)
	if err != nil {
		if errors.Is(err, store.ErrNoActiveDirectoryConfig) {
			return models.DirectoryConfig{}, err
		}
		return models.DirectoryConfig{}, fmt.Errorf("loading directory config: %w", err)
	}

	return cfg.Sanitized(), nil
}

// SaveConfig validates and persists the configuration, then reloads the
// in-process config store so the change takes effect on the next directory
// operation. The returned copy has the bind secret stripped.
func (d *directoryService) SaveConfig(ctx context.Context, cfg models.DirectoryConfig) (models.DirectoryConfig, error) {
	log := logger.FromContext(ctx)

	if cfg.ServerURL == "" || cfg.BindDN == "" || cfg.SearchBase == "" {
		log.Error().Str("func", "*directoryService.SaveConfig").Msg("missing required directory config fields")
		return models.DirectoryConfig{}, ErrValidation
	}
	// A brand-new configuration cannot inherit a stored secret.
	if cfg.ID == 0 && cfg.BindPassword == "" {
		return models.DirectoryConfig{}, ErrValidation
	}

	saved, err := d.directoryConfigRepository.Save(ctx, cfg)
	if err != nil {
		log.Err(err).Msg("saving directory config failed")
		return models.DirectoryConfig{}, fmt.Errorf("saving directory config: %w", err)
	}

	d.reloadConfigStore(ctx)

	return saved.Sanitized(), nil
}

// TestConnection opens a connection and binds as the supplied administrative
// identity. An empty bind secret falls back to the stored one so a saved
// configuration can be tested without re-entering the password.
func (d *directoryService) TestConnection(ctx context.Context, cfg models.DirectoryConfig) error {
	log := logger.FromContext(ctx)

	if cfg.ServerURL == "" || cfg.BindDN == "" {
		return ErrValidation
	}
	cfg.ApplyDefaults()

	if cfg.BindPassword == "" {
		stored, ok := d.configStore.Snapshot()
		if !ok {
			return ErrValidation
		}
		cfg.BindPassword = stored.BindPassword
	}

	if err := d.directoryClient.Test(ctx, cfg); err != nil {
		log.Warn().Err(err).Str("server_url", cfg.ServerURL).Msg("directory connection test failed")
		return err
	}

	return nil
}

// reloadConfigStore swaps the in-process configuration for the active row,
// clearing it when every row was deactivated.
func (d *directoryService) reloadConfigStore(ctx context.Context) {
	log := logger.FromContext(ctx)

	active, err := d.directoryConfigRepository.GetActive(ctx)
	switch {
	case errors.Is(err, store.ErrNoActiveDirectoryConfig):
		d.configStore.Clear()
	case err != nil:
		log.Err(err).Msg("reloading directory config after save failed")
	default:
		d.configStore.Load(active)
	}
}
