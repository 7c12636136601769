package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles operator account creation, lookup, and the lockout counter
// against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUsernameTaken].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var created models.User
	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.PasswordHash, user.Email, user.Name,
		user.AuthMode, nullableString(user.DirectoryDN), user.Active)

	if err := scanUser(row, &created); err != nil {
		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUsernameTaken
		case "":
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")
			return models.User{}, err
		default:
			log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: unexpected DB error")
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByUsername retrieves the user record matching the given username.
//
// Error handling:
//   - No matching row → [ErrUserNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := scanUser(row, &foundUser); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Msg("error: unexpected DB error")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return foundUser, nil
}

// IncrementFailedLogins atomically bumps the failed-login counter for the
// given user. The arithmetic runs inside the UPDATE statement, so two
// concurrent failed logins both land: the row lock serializes them.
//
// Transient driver errors (connection loss, deadlock) are retried once,
// per the error classifier.
func (r *userRepository) IncrementFailedLogins(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	err := r.execForUser(ctx, incrementFailedLogins, userID)
	if err != nil && r.db.errorClassificator.Classify(err) == Retryable {
		log.Warn().Err(err).Int64("user_id", userID).Msg("retrying failed-login counter update")
		err = r.execForUser(ctx, incrementFailedLogins, userID)
	}

	if err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*userRepository.IncrementFailedLogins").Msg("error: counter update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// RegisterLogin resets the failed-login counter and records the login
// timestamp in one statement.
func (r *userRepository) RegisterLogin(ctx context.Context, userID int64, at time.Time) error {
	log := logger.FromContext(ctx)

	if err := r.execForUser(ctx, registerLogin, userID, at); err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*userRepository.RegisterLogin").Msg("error: login registration failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// SetUserActive flips the account's active flag.
func (r *userRepository) SetUserActive(ctx context.Context, userID int64, active bool) error {
	log := logger.FromContext(ctx)

	if err := r.execForUser(ctx, setUserActive, userID, active); err != nil {
		log.Err(err).Int64("user_id", userID).Str("func", "*userRepository.SetUserActive").Msg("error: active flag update failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// execForUser runs a single-row UPDATE keyed by user id and verifies that
// exactly one row was affected.
func (r *userRepository) execForUser(ctx context.Context, query string, userID int64, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, append([]any{userID}, args...)...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row so scan helpers are usable with both rows
// and single-row results.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, user *models.User) error {
	var directoryDN sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&user.UserID, &user.Username, &user.PasswordHash, &user.Email, &user.Name,
		&user.AuthMode, &directoryDN, &user.Active,
		&user.FailedLoginAttempts, &lastLoginAt, &user.CreatedAt)
	if err != nil {
		return err
	}

	if directoryDN.Valid {
		user.DirectoryDN = directoryDN.String
	}
	if lastLoginAt.Valid {
		t := lastLoginAt.Time
		user.LastLoginAt = &t
	}

	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
