package models

import "time"

// AccessAction is the kind of event recorded in the access log.
type AccessAction string

const (
	ActionLogin       AccessAction = "login"
	ActionLogout      AccessAction = "logout"
	ActionLoginFailed AccessAction = "login_failed"
)

// AccessLogEntry is a single append-only audit record of an authentication
// event. Entries are never mutated after creation.
//
// Detail carries the human-readable cause (user not found, inactive account,
// bad credential, directory bind failure). The cause is recorded here only;
// the caller-facing login error never distinguishes it.
type AccessLogEntry struct {
	// ID is the internal unique identifier of the entry.
	ID int64 `json:"id"`

	// UserID references the affected user; nil when the attempted username
	// matched no account.
	UserID *int64 `json:"user_id,omitempty"`

	// Action is the recorded event kind.
	Action AccessAction `json:"action"`

	// IP is the client address the request originated from.
	IP string `json:"ip"`

	// Detail is a free-text description of the event.
	Detail string `json:"detail"`

	// CreatedAt is the timestamp the entry was appended.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AccessLogEntry model.
func (e AccessLogEntry) TableName() string {
	return "access_logs"
}
