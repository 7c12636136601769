package store

import (
	"context"
	"fmt"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// accessLogRepository is the PostgreSQL-backed implementation of
// [AccessLogRepository]. The access_logs table is append-only; no update
// or delete statement exists in this package.
type accessLogRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccessLogRepository constructs an [AccessLogRepository] backed by the
// provided database connection and logger.
func NewAccessLogRepository(db *DB, logger *logger.Logger) AccessLogRepository {
	logger.Debug().Msg("creating access log repository")
	return &accessLogRepository{
		db:     db,
		logger: logger,
	}
}

// Append inserts one audit entry. The created_at column defaults to now()
// in the database.
func (r *accessLogRepository) Append(ctx context.Context, entry models.AccessLogEntry) error {
	log := logger.FromContext(ctx)

	_, err := r.db.ExecContext(ctx, appendAccessLog, entry.UserID, entry.Action, entry.IP, entry.Detail)
	if err != nil {
		log.Err(err).Str("action", string(entry.Action)).Str("func", "*accessLogRepository.Append").Msg("error: appending audit entry failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
