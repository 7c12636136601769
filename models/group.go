package models

// GroupSource marks where a group record originated.
type GroupSource string

const (
	// GroupSourceLocal marks a group created by a local administrator.
	GroupSourceLocal GroupSource = "local"

	// GroupSourceDirectory marks a group imported from the external directory.
	GroupSourceDirectory GroupSource = "directory"
)

// Group is a named set of permissions users are assigned to via memberships.
//
// Permissions is always the normalized form: regardless of whether a group's
// permissions are stored as explicit permission rows or as a legacy inline
// JSON map, the repository folds them into a single deduplicated name set at
// load time so that callers never branch on the storage representation.
type Group struct {
	// GroupID is the internal unique identifier of the group.
	GroupID int64 `json:"id"`

	// Name is the unique group name.
	Name string `json:"name"`

	// Description is a free-text group description.
	Description string `json:"description"`

	// Source marks whether the group is locally managed or directory-imported.
	Source GroupSource `json:"source"`

	// DirectoryDN is the distinguished name of the group in the external
	// directory. Empty for local groups.
	DirectoryDN string `json:"directory_dn,omitempty"`

	// Permissions is the normalized set of permission names granted by this
	// group, using the "resource:action" naming convention.
	Permissions []string `json:"permissions"`
}

// TableName returns the name of the database table
// associated with the Group model.
func (g Group) TableName() string {
	return "groups"
}

// Membership links a user to a group. The (UserID, GroupID) pair is unique.
type Membership struct {
	UserID  int64 `json:"user_id"`
	GroupID int64 `json:"group_id"`
}

// TableName returns the name of the database table
// associated with the Membership model.
func (m Membership) TableName() string {
	return "user_groups"
}
