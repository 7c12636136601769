package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification is returned by [ErrorClassificator.Classify]. It tells
// a repository whether a failed statement is worth one more attempt.
type ErrorClassification int

const (
	// NonRetryable is the default classification: constraint violations,
	// data exceptions, syntax errors, and anything unrecognised.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures (connection loss, serialization
	// failure, deadlock rollback) that may succeed on a second attempt.
	Retryable
)

// PostgresErrorClassifier implements [ErrorClassificator] by inspecting the
// SQLSTATE code carried by pgx driver errors.
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports whether err is a transient PostgreSQL failure. Errors
// that do not unwrap to *pgconn.PgError are never retried.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	var pgErr *pgconn.PgError
	if err == nil || !errors.As(err, &pgErr) {
		return NonRetryable
	}

	switch pgErr.Code {
	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return Retryable

	// Class 40: transaction rollback
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return Retryable

	// Class 57: operator intervention
	case pgerrcode.CannotConnectNow:
		return Retryable
	}

	return NonRetryable
}
