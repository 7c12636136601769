package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// directorySyncRepository is the PostgreSQL-backed implementation of
// [DirectorySyncRepository]. It owns the sync transaction boundary: every
// write of a synchronization run happens inside the single transaction
// opened by ApplySync, and any failure rolls all of it back.
type directorySyncRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDirectorySyncRepository constructs a [DirectorySyncRepository] backed
// by the provided database connection and logger.
func NewDirectorySyncRepository(db *DB, logger *logger.Logger) DirectorySyncRepository {
	logger.Debug().Msg("creating directory sync repository")
	return &directorySyncRepository{
		db:     db,
		logger: logger,
	}
}

// ApplySync reconciles the local records with the given directory search
// results inside one transaction.
//
// Users are matched by username (the configured login attribute value):
// absent users are created as directory-mode accounts, present users get
// their email, display name and — for directory-mode accounts only — DN
// refreshed. An account's auth mode is never changed by sync.
//
// Groups are matched by name: absent groups are created with the directory
// source, present directory-source groups get description and DN refreshed.
// A local group that happens to share a name with a directory group is left
// untouched.
//
// Memberships are reconciled per directory-source group, but only for
// directory-mode users: locally-assigned memberships of local accounts
// survive every sync.
//
// The run is idempotent: re-applying an unchanged directory snapshot
// reports zero changes and rewrites nothing except last_sync_at.
func (r *directorySyncRepository) ApplySync(ctx context.Context, configID int64, syncedAt time.Time, users []models.User, groups []models.Group, memberships map[string][]string) (models.SyncResult, error) {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*directorySyncRepository.ApplySync").Msg("error: beginning sync transaction failed")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var result models.SyncResult

	for _, user := range users {
		if err := r.upsertUser(ctx, tx, user, &result); err != nil {
			return models.SyncResult{}, err
		}
	}

	groupIDs := make(map[string]int64, len(groups))
	for _, group := range groups {
		groupID, err := r.upsertGroup(ctx, tx, group, &result)
		if err != nil {
			return models.SyncResult{}, err
		}
		if groupID != 0 {
			groupIDs[group.Name] = groupID
		}
	}

	usersByDN, err := loadUserIDsByDN(ctx, tx)
	if err != nil {
		log.Err(err).Msg("error: loading directory user DNs failed")
		return models.SyncResult{}, err
	}

	for groupName, memberDNs := range memberships {
		groupID, ok := groupIDs[groupName]
		if !ok {
			continue
		}
		if err := r.reconcileMembers(ctx, tx, groupID, memberDNs, usersByDN, &result); err != nil {
			return models.SyncResult{}, err
		}
	}

	if _, err := tx.ExecContext(ctx, stampLastSync, configID, syncedAt); err != nil {
		log.Err(err).Msg("error: stamping last_sync_at failed")
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if err := tx.Commit(); err != nil {
		return models.SyncResult{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return result, nil
}

func (r *directorySyncRepository) upsertUser(ctx context.Context, tx *sql.Tx, user models.User, result *models.SyncResult) error {
	log := logger.FromContext(ctx)

	var (
		userID      int64
		email       string
		name        string
		authMode    models.AuthMode
		directoryDN string
	)

	err := tx.QueryRowContext(ctx, syncFindUser, user.Username).
		Scan(&userID, &email, &name, &authMode, &directoryDN)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := tx.QueryRowContext(ctx, syncInsertUser, user.Username, user.Email, user.Name, user.DirectoryDN).Scan(&userID); err != nil {
			log.Err(err).Str("username", user.Username).Msg("error: importing user failed")
			return fmt.Errorf("importing user %q: %w", user.Username, err)
		}
		result.UsersCreated++
		return nil

	case err != nil:
		log.Err(err).Str("username", user.Username).Msg("error: user lookup failed")
		return fmt.Errorf("looking up user %q: %w", user.Username, err)
	}

	// A local account keeps its DN column and auth mode untouched; only
	// the directory-owned attributes refresh.
	newDN := directoryDN
	if authMode == models.AuthModeDirectory {
		newDN = user.DirectoryDN
	}

	if email == user.Email && name == user.Name && newDN == directoryDN {
		return nil
	}

	if _, err := tx.ExecContext(ctx, syncUpdateUser, userID, user.Email, user.Name, nullableString(newDN)); err != nil {
		log.Err(err).Str("username", user.Username).Msg("error: refreshing user failed")
		return fmt.Errorf("refreshing user %q: %w", user.Username, err)
	}
	result.UsersUpdated++

	return nil
}

// upsertGroup returns the group id, or 0 when the matched group is locally
// managed and therefore excluded from membership reconciliation.
func (r *directorySyncRepository) upsertGroup(ctx context.Context, tx *sql.Tx, group models.Group, result *models.SyncResult) (int64, error) {
	log := logger.FromContext(ctx)

	var (
		groupID     int64
		description string
		source      models.GroupSource
		directoryDN string
	)

	err := tx.QueryRowContext(ctx, syncFindGroup, group.Name).
		Scan(&groupID, &description, &source, &directoryDN)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if err := tx.QueryRowContext(ctx, syncInsertGroup, group.Name, group.Description, group.DirectoryDN).Scan(&groupID); err != nil {
			log.Err(err).Str("group", group.Name).Msg("error: importing group failed")
			return 0, fmt.Errorf("importing group %q: %w", group.Name, err)
		}
		result.GroupsCreated++
		return groupID, nil

	case err != nil:
		log.Err(err).Str("group", group.Name).Msg("error: group lookup failed")
		return 0, fmt.Errorf("looking up group %q: %w", group.Name, err)
	}

	if source != models.GroupSourceDirectory {
		log.Warn().Str("group", group.Name).Msg("directory group shadowed by a local group of the same name, skipping")
		return 0, nil
	}

	if description == group.Description && directoryDN == group.DirectoryDN {
		return groupID, nil
	}

	if _, err := tx.ExecContext(ctx, syncUpdateGroup, groupID, group.Description, group.DirectoryDN); err != nil {
		log.Err(err).Str("group", group.Name).Msg("error: refreshing group failed")
		return 0, fmt.Errorf("refreshing group %q: %w", group.Name, err)
	}
	result.GroupsUpdated++

	return groupID, nil
}

func (r *directorySyncRepository) reconcileMembers(ctx context.Context, tx *sql.Tx, groupID int64, memberDNs []string, usersByDN map[string]int64, result *models.SyncResult) error {
	log := logger.FromContext(ctx)

	desired := make(map[int64]struct{}, len(memberDNs))
	for _, dn := range memberDNs {
		if userID, ok := usersByDN[dn]; ok {
			desired[userID] = struct{}{}
		}
	}

	current := make(map[int64]struct{})
	rows, err := tx.QueryContext(ctx, syncSelectDirectoryMembers, groupID)
	if err != nil {
		return fmt.Errorf("loading group members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		current[userID] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("loading group members: %w", err)
	}

	for userID := range desired {
		if _, ok := current[userID]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, syncInsertMembership, userID, groupID); err != nil {
			log.Err(err).Int64("user_id", userID).Int64("group_id", groupID).Msg("error: adding membership failed")
			return fmt.Errorf("adding membership: %w", err)
		}
		result.MembershipsCreated++
	}

	for userID := range current {
		if _, ok := desired[userID]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, syncDeleteMembership, userID, groupID); err != nil {
			log.Err(err).Int64("user_id", userID).Int64("group_id", groupID).Msg("error: removing membership failed")
			return fmt.Errorf("removing membership: %w", err)
		}
		result.MembershipsRemoved++
	}

	return nil
}

func loadUserIDsByDN(ctx context.Context, tx *sql.Tx) (map[string]int64, error) {
	rows, err := tx.QueryContext(ctx, syncSelectUserIDsByDN)
	if err != nil {
		return nil, fmt.Errorf("loading user DNs: %w", err)
	}
	defer rows.Close()

	usersByDN := make(map[string]int64)
	for rows.Next() {
		var userID int64
		var dn string
		if err := rows.Scan(&userID, &dn); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		usersByDN[dn] = userID
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("loading user DNs: %w", err)
	}

	return usersByDN, nil
}
