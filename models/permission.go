package models

// Permission is a single named capability, following the "resource:action"
// naming convention (e.g. "devices:write").
type Permission struct {
	// PermissionID is the internal unique identifier of the permission.
	PermissionID int64 `json:"id"`

	// Name is the unique permission name.
	Name string `json:"name"`

	// Description is a free-text explanation of what the permission grants.
	Description string `json:"description"`
}

// TableName returns the name of the database table
// associated with the Permission model.
func (p Permission) TableName() string {
	return "permissions"
}
