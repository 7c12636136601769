package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// groupRepository is the PostgreSQL-backed implementation of [GroupRepository].
//
// Group permissions exist in two storage representations: normalized
// permission rows linked via group_permissions, and a legacy inline JSON
// map (resource → [actions]) on the group row itself. Both are folded into
// a single deduplicated name set at scan time so callers never branch on
// the representation.
type groupRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewGroupRepository constructs a [GroupRepository] backed by the provided
// database connection and logger.
func NewGroupRepository(db *DB, logger *logger.Logger) GroupRepository {
	logger.Debug().Msg("creating group repository")
	return &groupRepository{
		db:     db,
		logger: logger,
	}
}

// FindGroupsByUserID returns all groups the user belongs to, each with its
// normalized permission set populated. A user in zero groups yields an
// empty slice, not an error.
func (r *groupRepository) FindGroupsByUserID(ctx context.Context, userID int64) ([]models.Group, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findGroupsByUserID, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*groupRepository.FindGroupsByUserID").Msg("error: group query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		var legacyPermissions []byte

		if err := rows.Scan(&group.GroupID, &group.Name, &group.Description, &group.Source, &group.DirectoryDN, &legacyPermissions); err != nil {
			log.Err(err).Str("func", "*groupRepository.FindGroupsByUserID").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		permissions, err := r.loadPermissions(ctx, group.GroupID, legacyPermissions)
		if err != nil {
			return nil, err
		}
		group.Permissions = permissions

		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*groupRepository.FindGroupsByUserID").Msg("error: rows iteration failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	return groups, nil
}

// loadPermissions unions the group's normalized permission rows with any
// legacy inline map and returns a sorted, deduplicated name set.
func (r *groupRepository) loadPermissions(ctx context.Context, groupID int64, legacyPermissions []byte) ([]string, error) {
	log := logger.FromContext(ctx)

	set := make(map[string]struct{})

	rows, err := r.db.QueryContext(ctx, findPermissionsByGroupID, groupID)
	if err != nil {
		log.Err(err).Int64("group_id", groupID).Str("func", "*groupRepository.loadPermissions").Msg("error: permission query failed")
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			log.Err(err).Str("func", "*groupRepository.loadPermissions").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		set[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := foldLegacyPermissions(legacyPermissions, set); err != nil {
		log.Err(err).Int64("group_id", groupID).Msg("error: legacy permission map is malformed")
		return nil, err
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// foldLegacyPermissions merges a legacy inline permission map
// (resource → [actions]) into set using the "resource:action" convention.
// A NULL or empty column is a no-op.
func foldLegacyPermissions(raw []byte, set map[string]struct{}) error {
	if len(raw) == 0 {
		return nil
	}

	var legacy map[string][]string
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return fmt.Errorf("decoding legacy permission map: %w", err)
	}

	for resource, actions := range legacy {
		for _, action := range actions {
			set[resource+":"+action] = struct{}{}
		}
	}

	return nil
}

// legacyPermissionsColumn converts a legacy map into its storage form.
// Used by tests and fixtures; the application itself never writes the
// legacy representation.
func legacyPermissionsColumn(legacy map[string][]string) (sql.NullString, error) {
	if len(legacy) == 0 {
		return sql.NullString{}, nil
	}

	raw, err := json.Marshal(legacy)
	if err != nil {
		return sql.NullString{}, err
	}

	return sql.NullString{String: string(raw), Valid: true}, nil
}
