package models

import "time"

// Default values applied to a DirectoryConfig when the administrator leaves
// the corresponding field empty on save.
const (
	DefaultUserFilter      = "(objectClass=person)"
	DefaultGroupFilter     = "(objectClass=group)"
	DefaultLoginAttr       = "sAMAccountName"
	DefaultEmailAttr       = "mail"
	DefaultNameAttr        = "displayName"
	DefaultGroupNameAttr   = "cn"
	DefaultGroupMemberAttr = "member"
	DefaultSyncIntervalMin = 60
)

// DirectoryConfig is the persisted configuration of the external directory
// connection. At most one row is active at a time; the active row is loaded
// into the in-process config store at startup and after every save.
type DirectoryConfig struct {
	// ID is the internal unique identifier of the configuration row.
	ID int64 `json:"id"`

	// ServerURL is the directory server address in URL form
	// (e.g. "ldap://dc01.example.com:389" or "ldaps://...").
	ServerURL string `json:"server_url"`

	// BindDN is the distinguished name of the administrative identity used
	// for searches and connection tests.
	BindDN string `json:"bind_dn"`

	// BindPassword is the administrative bind secret.
	// Never serialized; callers receive configs with this field blanked.
	BindPassword string `json:"-"`

	// SearchBase is the DN subtree searched for users and groups
	// (e.g. "DC=example,DC=com").
	SearchBase string `json:"search_base"`

	// UserFilter selects user entries (default "(objectClass=person)").
	UserFilter string `json:"user_filter"`

	// GroupFilter selects group entries (default "(objectClass=group)").
	GroupFilter string `json:"group_filter"`

	// LoginAttr is the attribute holding the login name (default "sAMAccountName").
	LoginAttr string `json:"login_attr"`

	// EmailAttr is the attribute holding the mail address (default "mail").
	EmailAttr string `json:"email_attr"`

	// NameAttr is the attribute holding the display name (default "displayName").
	NameAttr string `json:"name_attr"`

	// GroupNameAttr is the attribute holding the group name (default "cn").
	GroupNameAttr string `json:"group_name_attr"`

	// GroupMemberAttr is the attribute listing member DNs (default "member").
	GroupMemberAttr string `json:"group_member_attr"`

	// Active marks this row as the configuration in effect. Directory-mode
	// logins and sync are refused while no active configuration exists.
	Active bool `json:"active"`

	// SyncIntervalMinutes is how often the background worker runs a
	// directory sync (default 60).
	SyncIntervalMinutes int `json:"sync_interval_minutes"`

	// LastSyncAt is the completion time of the last successful sync,
	// nil if a sync has never completed.
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the DirectoryConfig model.
func (c DirectoryConfig) TableName() string {
	return "directory_configs"
}

// ApplyDefaults fills empty filter, attribute and interval fields with the
// platform defaults. The bind secret is never defaulted.
func (c *DirectoryConfig) ApplyDefaults() {
	if c.UserFilter == "" {
		c.UserFilter = DefaultUserFilter
	}
	if c.GroupFilter == "" {
		c.GroupFilter = DefaultGroupFilter
	}
	if c.LoginAttr == "" {
		c.LoginAttr = DefaultLoginAttr
	}
	if c.EmailAttr == "" {
		c.EmailAttr = DefaultEmailAttr
	}
	if c.NameAttr == "" {
		c.NameAttr = DefaultNameAttr
	}
	if c.GroupNameAttr == "" {
		c.GroupNameAttr = DefaultGroupNameAttr
	}
	if c.GroupMemberAttr == "" {
		c.GroupMemberAttr = DefaultGroupMemberAttr
	}
	if c.SyncIntervalMinutes <= 0 {
		c.SyncIntervalMinutes = DefaultSyncIntervalMin
	}
}

// Sanitized returns a copy of the configuration with the bind secret blanked,
// safe to return to administrative callers.
func (c DirectoryConfig) Sanitized() DirectoryConfig {
	c.BindPassword = ""
	return c
}

// DirectoryEntry is one parsed result of a directory search: a distinguished
// name plus an attribute-name to value-list mapping.
type DirectoryEntry struct {
	DN         string
	Attributes map[string][]string
}

// GetAttributeValue returns the first value of the named attribute, or the
// empty string if the attribute is absent or empty.
func (e DirectoryEntry) GetAttributeValue(name string) string {
	values := e.Attributes[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
