package models

import "time"

// AuthMode selects how a user's credentials are verified during login.
// It is a closed set: every switch over AuthMode must handle both values.
type AuthMode string

const (
	// AuthModeLocal verifies the supplied password against the bcrypt hash
	// stored in the local database.
	AuthModeLocal AuthMode = "local"

	// AuthModeDirectory verifies the supplied password by binding to the
	// external directory with the user's distinguished name.
	AuthModeDirectory AuthMode = "directory"
)

// User represents an operator account of the access manager.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// PasswordHash stores the bcrypt hash of the local password.
	// Empty for directory-mode accounts; never serialized.
	PasswordHash string `json:"-"`

	// Email is the user's contact address, refreshed by directory sync
	// for directory-mode accounts.
	Email string `json:"email"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// AuthMode selects the credential verification branch for this account.
	AuthMode AuthMode `json:"auth_mode"`

	// DirectoryDN is the distinguished name of the account in the external
	// directory. Set only when AuthMode is AuthModeDirectory.
	DirectoryDN string `json:"directory_dn,omitempty"`

	// Active indicates whether the account may log in at all.
	Active bool `json:"active"`

	// FailedLoginAttempts counts consecutive failed logins since the last
	// successful one. Incremented atomically at the persistence layer.
	FailedLoginAttempts int `json:"failed_login_attempts"`

	// LastLoginAt is the timestamp of the last successful login, nil if the
	// user has never logged in.
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// AuthResult is what a successful authentication or token verification
// hands back to the routing layer.
type AuthResult struct {
	User        User     `json:"user"`
	Permissions []string `json:"permissions"`
	Token       string   `json:"token,omitempty"`
}
