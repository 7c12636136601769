package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	sq "github.com/Masterminds/squirrel"
)

// directoryConfigRepository is the PostgreSQL-backed implementation of
// [DirectoryConfigRepository].
//
// Updates are built dynamically with squirrel because the bind secret is
// optional on save: an empty BindPassword means "keep the stored secret",
// so the column must be omitted from the UPDATE rather than overwritten.
type directoryConfigRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewDirectoryConfigRepository constructs a [DirectoryConfigRepository]
// backed by the provided database connection and logger.
func NewDirectoryConfigRepository(db *DB, logger *logger.Logger) DirectoryConfigRepository {
	logger.Debug().Msg("creating directory config repository")
	return &directoryConfigRepository{
		db:     db,
		logger: logger,
	}
}

// GetActive returns the single active configuration row.
func (r *directoryConfigRepository) GetActive(ctx context.Context) (models.DirectoryConfig, error) {
	log := logger.FromContext(ctx)

	var cfg models.DirectoryConfig
	row := r.db.QueryRowContext(ctx, getActiveDirectoryConfig)

	if err := scanDirectoryConfig(row, &cfg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DirectoryConfig{}, ErrNoActiveDirectoryConfig
		}

		log.Err(err).Str("func", "*directoryConfigRepository.GetActive").Msg("error: unexpected DB error")
		return models.DirectoryConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return cfg, nil
}

// Save inserts a new configuration (ID == 0) or updates an existing one.
// When the saved row is active, every other row is deactivated inside the
// same transaction so the single-active-row invariant holds.
func (r *directoryConfigRepository) Save(ctx context.Context, cfg models.DirectoryConfig) (models.DirectoryConfig, error) {
	log := logger.FromContext(ctx)

	cfg.ApplyDefaults()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "*directoryConfigRepository.Save").Msg("error: beginning transaction failed")
		return models.DirectoryConfig{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var saved models.DirectoryConfig
	if cfg.ID == 0 {
		saved, err = r.insert(ctx, tx, cfg)
	} else {
		saved, err = r.update(ctx, tx, cfg)
	}
	if err != nil {
		return models.DirectoryConfig{}, err
	}

	if saved.Active {
		if _, err := tx.ExecContext(ctx, deactivateOtherDirectoryConfigs, saved.ID); err != nil {
			log.Err(err).Str("func", "*directoryConfigRepository.Save").Msg("error: deactivating other configs failed")
			return models.DirectoryConfig{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.DirectoryConfig{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return saved, nil
}

func (r *directoryConfigRepository) insert(ctx context.Context, tx *sql.Tx, cfg models.DirectoryConfig) (models.DirectoryConfig, error) {
	log := logger.FromContext(ctx)

	var saved models.DirectoryConfig
	row := tx.QueryRowContext(ctx, insertDirectoryConfig,
		cfg.ServerURL, cfg.BindDN, cfg.BindPassword, cfg.SearchBase,
		cfg.UserFilter, cfg.GroupFilter,
		cfg.LoginAttr, cfg.EmailAttr, cfg.NameAttr, cfg.GroupNameAttr, cfg.GroupMemberAttr,
		cfg.Active, cfg.SyncIntervalMinutes)

	if err := scanDirectoryConfig(row, &saved); err != nil {
		log.Err(err).Str("func", "*directoryConfigRepository.insert").Msg("error: inserting directory config failed")
		return models.DirectoryConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func (r *directoryConfigRepository) update(ctx context.Context, tx *sql.Tx, cfg models.DirectoryConfig) (models.DirectoryConfig, error) {
	log := logger.FromContext(ctx)

	builder := sq.Update("directory_configs").
		Set("server_url", cfg.ServerURL).
		Set("bind_dn", cfg.BindDN).
		Set("search_base", cfg.SearchBase).
		Set("user_filter", cfg.UserFilter).
		Set("group_filter", cfg.GroupFilter).
		Set("login_attr", cfg.LoginAttr).
		Set("email_attr", cfg.EmailAttr).
		Set("name_attr", cfg.NameAttr).
		Set("group_name_attr", cfg.GroupNameAttr).
		Set("group_member_attr", cfg.GroupMemberAttr).
		Set("active", cfg.Active).
		Set("sync_interval_minutes", cfg.SyncIntervalMinutes).
		Where(sq.Eq{"id": cfg.ID}).
		PlaceholderFormat(sq.Dollar)

	// Empty secret on update means "keep the stored one".
	if cfg.BindPassword != "" {
		builder = builder.Set("bind_password", cfg.BindPassword)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return models.DirectoryConfig{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*directoryConfigRepository.update").Msg("error: updating directory config failed")
		return models.DirectoryConfig{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.DirectoryConfig{}, err
	}
	if affected == 0 {
		return models.DirectoryConfig{}, ErrNoActiveDirectoryConfig
	}

	var saved models.DirectoryConfig
	row := tx.QueryRowContext(ctx, getDirectoryConfigByID, cfg.ID)
	if err := scanDirectoryConfig(row, &saved); err != nil {
		log.Err(err).Str("func", "*directoryConfigRepository.update").Msg("error: re-reading directory config failed")
		return models.DirectoryConfig{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return saved, nil
}

func scanDirectoryConfig(row rowScanner, cfg *models.DirectoryConfig) error {
	var lastSyncAt sql.NullTime

	err := row.Scan(
		&cfg.ID, &cfg.ServerURL, &cfg.BindDN, &cfg.BindPassword, &cfg.SearchBase,
		&cfg.UserFilter, &cfg.GroupFilter,
		&cfg.LoginAttr, &cfg.EmailAttr, &cfg.NameAttr, &cfg.GroupNameAttr, &cfg.GroupMemberAttr,
		&cfg.Active, &cfg.SyncIntervalMinutes, &lastSyncAt)
	if err != nil {
		return err
	}

	if lastSyncAt.Valid {
		t := lastSyncAt.Time
		cfg.LastSyncAt = &t
	}

	return nil
}
