package service

import "errors"

var (
	// ErrValidation indicates required request fields are missing or empty.
	ErrValidation = errors.New("invalid data provided")

	// ErrInvalidCredentials is the single caller-visible authentication
	// failure. The cause (unknown user, inactive account, wrong password,
	// rejected bind) is recorded in the audit log only, never returned, so
	// responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenExpired indicates the session token's expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the session token failed signature or
	// claim validation.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrDirectoryDisabled indicates no active directory configuration is
	// loaded, so directory logins, sync and connection tests are refused.
	ErrDirectoryDisabled = errors.New("directory integration disabled")

	// ErrSyncInProgress indicates a synchronization run is already active.
	ErrSyncInProgress = errors.New("directory sync already in progress")
)
