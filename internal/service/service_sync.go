package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// syncService pulls users and groups from the directory and reconciles the
// local records. All writes happen inside the single transaction owned by
// the sync repository, so a failed run leaves no partial import behind.
type syncService struct {
	// mu guards against overlapping runs. TryLock keeps a second trigger
	// from queueing behind a long run.
	mu sync.Mutex

	directoryClient           directory.Client
	configStore               *directory.ConfigStore
	directoryConfigRepository store.DirectoryConfigRepository
	directorySyncRepository   store.DirectorySyncRepository
	logger                    *logger.Logger
}

// NewSyncService constructs a SyncService.
func NewSyncService(
	directoryClient directory.Client,
	configStore *directory.ConfigStore,
	directoryConfigRepository store.DirectoryConfigRepository,
	directorySyncRepository store.DirectorySyncRepository,
	logger *logger.Logger,
) SyncService {
	return &syncService{
		directoryClient:           directoryClient,
		configStore:               configStore,
		directoryConfigRepository: directoryConfigRepository,
		directorySyncRepository:   directorySyncRepository,
		logger:                    logger,
	}
}

// Run executes one synchronization pass against the active configuration.
//
// Returns ErrSyncInProgress when another run holds the lock,
// ErrDirectoryDisabled when no active configuration is loaded, or a wrapped
// directory/storage error. On success the config store is reloaded so the
// fresh last-sync timestamp is visible immediately.
func (s *syncService) Run(ctx context.Context) (models.SyncResult, error) {
	if !s.mu.TryLock() {
		return models.SyncResult{}, ErrSyncInProgress
	}
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)

	cfg, ok := s.configStore.Snapshot()
	if !ok || !cfg.Active {
		return models.SyncResult{}, ErrDirectoryDisabled
	}

	started := time.Now()
	log.Info().Str("server_url", cfg.ServerURL).Msg("directory sync started")

	userEntries, err := s.directoryClient.SearchUsers(ctx, cfg)
	if err != nil {
		log.Err(err).Msg("directory user search failed")
		return models.SyncResult{}, fmt.Errorf("searching directory users: %w", err)
	}

	groupEntries, err := s.directoryClient.SearchGroups(ctx, cfg)
	if err != nil {
		log.Err(err).Msg("directory group search failed")
		return models.SyncResult{}, fmt.Errorf("searching directory groups: %w", err)
	}

	users := mapUserEntries(ctx, cfg, userEntries)
	groups, memberships := mapGroupEntries(ctx, cfg, groupEntries)

	result, err := s.directorySyncRepository.ApplySync(ctx, cfg.ID, time.Now(), users, groups, memberships)
	if err != nil {
		log.Err(err).Msg("applying directory sync failed")
		return models.SyncResult{}, fmt.Errorf("applying directory sync: %w", err)
	}

	s.reloadConfigStore(ctx)

	log.Info().
		Dur("elapsed", time.Since(started)).
		Int("users_created", result.UsersCreated).
		Int("users_updated", result.UsersUpdated).
		Int("groups_created", result.GroupsCreated).
		Int("groups_updated", result.GroupsUpdated).
		Int("memberships_created", result.MembershipsCreated).
		Int("memberships_removed", result.MembershipsRemoved).
		Msg("directory sync finished")

	return result, nil
}

// reloadConfigStore refreshes the in-process configuration after a
// successful run so the stamped last-sync time is observable.
func (s *syncService) reloadConfigStore(ctx context.Context) {
	log := logger.FromContext(ctx)

	cfg, err := s.directoryConfigRepository.GetActive(ctx)
	switch {
	case errors.Is(err, store.ErrNoActiveDirectoryConfig):
		s.configStore.Clear()
	case err != nil:
		log.Err(err).Msg("reloading directory config after sync failed")
	default:
		s.configStore.Load(cfg)
	}
}

// mapUserEntries converts raw directory entries into user records using the
// configured attribute mapping. Entries without a login attribute value are
// skipped.
func mapUserEntries(ctx context.Context, cfg models.DirectoryConfig, entries []models.DirectoryEntry) []models.User {
	log := logger.FromContext(ctx)

	users := make([]models.User, 0, len(entries))
	for _, entry := range entries {
		username := entry.GetAttributeValue(cfg.LoginAttr)
		if username == "" {
			log.Warn().Str("dn", entry.DN).Msg("directory user entry has no login attribute, skipping")
			continue
		}
		users = append(users, models.User{
			Username:    username,
			Email:       entry.GetAttributeValue(cfg.EmailAttr),
			Name:        entry.GetAttributeValue(cfg.NameAttr),
			AuthMode:    models.AuthModeDirectory,
			DirectoryDN: entry.DN,
		})
	}

	return users
}

// mapGroupEntries converts raw directory entries into group records plus a
// group-name to member-DN mapping. Entries without a name attribute value
// are skipped.
func mapGroupEntries(ctx context.Context, cfg models.DirectoryConfig, entries []models.DirectoryEntry) ([]models.Group, map[string][]string) {
	log := logger.FromContext(ctx)

	groups := make([]models.Group, 0, len(entries))
	memberships := make(map[string][]string, len(entries))
	for _, entry := range entries {
		name := entry.GetAttributeValue(cfg.GroupNameAttr)
		if name == "" {
			log.Warn().Str("dn", entry.DN).Msg("directory group entry has no name attribute, skipping")
			continue
		}
		groups = append(groups, models.Group{
			Name:        name,
			Description: entry.GetAttributeValue("description"),
			Source:      models.GroupSourceDirectory,
			DirectoryDN: entry.DN,
		})
		memberships[name] = entry.Attributes[cfg.GroupMemberAttr]
	}

	return groups, memberships
}
