package service

import (
	"context"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// AuthService is the authentication entry point exposed to the transport
// layer: login, logout and session token verification.
type AuthService interface {
	// Login verifies the supplied credentials against the account's
	// configured authentication mode and, on success, returns the user
	// record, the resolved permission set and a signed session token.
	//
	// Every failure a caller could probe with (unknown user, inactive
	// account, wrong password, rejected directory bind) is returned as
	// ErrInvalidCredentials; the audit log carries the actual reason.
	Login(ctx context.Context, username, password, ip string) (models.AuthResult, error)

	// Logout records the logout in the audit log. The server keeps no
	// session state, so there is nothing else to invalidate.
	Logout(ctx context.Context, userID int64, username, ip string) error

	// VerifyToken validates a raw session token string and returns its
	// claims. Returns ErrTokenExpired or ErrTokenInvalid.
	VerifyToken(ctx context.Context, tokenString string) (models.Token, error)
}

// PermissionService resolves the effective permission set of a user as the
// deduplicated union over all groups the user belongs to.
type PermissionService interface {
	Resolve(ctx context.Context, userID int64) ([]string, error)
}

// SyncService runs directory synchronization: pull users and groups from
// the directory and reconcile the local records in one transaction.
type SyncService interface {
	// Run executes one synchronization pass. At most one run is active at
	// a time; a concurrent call returns ErrSyncInProgress immediately.
	Run(ctx context.Context) (models.SyncResult, error)
}

// DirectoryService is the administrative surface for the directory
// configuration.
type DirectoryService interface {
	// GetConfig returns the active configuration with the bind secret
	// stripped.
	GetConfig(ctx context.Context) (models.DirectoryConfig, error)

	// SaveConfig persists the configuration and reloads the in-process
	// config store so the change takes effect immediately. An empty bind
	// secret on update keeps the stored one.
	SaveConfig(ctx context.Context, cfg models.DirectoryConfig) (models.DirectoryConfig, error)

	// TestConnection verifies connectivity and the administrative bind
	// using the supplied parameters. An empty bind secret falls back to
	// the stored one so a saved config can be tested without re-entering
	// the password.
	TestConnection(ctx context.Context, cfg models.DirectoryConfig) error
}
