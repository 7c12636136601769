package store

import (
	"context"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// UserRepository is the data-access contract for operator accounts.
//
// IncrementFailedLogins and RegisterLogin are the lockout-tracking
// operations: both are single-row UPDATE statements so concurrent calls
// for the same user are serialized by the database row lock and no
// increment is ever lost to a read-modify-write race.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// IncrementFailedLogins atomically adds one to the user's failed-login
	// counter. No lockout threshold is enforced here; the counter exists
	// for observability and for deployer-configured downstream policy.
	IncrementFailedLogins(ctx context.Context, userID int64) error

	// RegisterLogin resets the failed-login counter to zero and records
	// the login timestamp in a single statement.
	RegisterLogin(ctx context.Context, userID int64, at time.Time) error

	// SetUserActive flips the account's active flag. Only explicit
	// administrative action calls this.
	SetUserActive(ctx context.Context, userID int64, active bool) error
}

// GroupRepository loads group records with their permission sets already
// normalized (explicit permission rows and legacy inline maps folded into
// a single name set).
type GroupRepository interface {
	FindGroupsByUserID(ctx context.Context, userID int64) ([]models.Group, error)
}

// AccessLogRepository appends audit records. Entries are append-only and
// never mutated.
type AccessLogRepository interface {
	Append(ctx context.Context, entry models.AccessLogEntry) error
}

// DirectoryConfigRepository manages the persisted directory configuration.
// At most one row is active at a time.
type DirectoryConfigRepository interface {
	// GetActive returns the single active configuration row, or
	// ErrNoActiveDirectoryConfig if none exists.
	GetActive(ctx context.Context) (models.DirectoryConfig, error)

	// Save inserts a new configuration or updates an existing one.
	// An empty BindPassword on update keeps the stored secret.
	// Saving an active row deactivates all others in the same transaction.
	Save(ctx context.Context, cfg models.DirectoryConfig) (models.DirectoryConfig, error)
}

// DirectorySyncRepository applies the result of a directory search to the
// local records inside a single transaction. The transaction boundary is
// owned here: the sync engine performs no write outside ApplySync.
type DirectorySyncRepository interface {
	// ApplySync upserts users and groups, reconciles directory-managed
	// memberships, and stamps last_sync_at on the configuration row —
	// all inside one transaction. Any failure rolls back every change,
	// including the last_sync_at update.
	//
	// memberships maps a group name to the member user DNs reported by
	// the directory; DNs that match no imported user are ignored.
	ApplySync(ctx context.Context, configID int64, syncedAt time.Time, users []models.User, groups []models.Group, memberships map[string][]string) (models.SyncResult, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
