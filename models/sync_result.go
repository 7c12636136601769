package models

// SyncResult summarizes what a directory synchronization run changed.
// All counters are zero when the directory content matched the local
// records exactly (an idempotent re-run).
type SyncResult struct {
	UsersCreated       int `json:"users_created"`
	UsersUpdated       int `json:"users_updated"`
	GroupsCreated      int `json:"groups_created"`
	GroupsUpdated      int `json:"groups_updated"`
	MembershipsCreated int `json:"memberships_created"`
	MembershipsRemoved int `json:"memberships_removed"`
}

// Total returns the overall number of applied changes.
func (r SyncResult) Total() int {
	return r.UsersCreated + r.UsersUpdated +
		r.GroupsCreated + r.GroupsUpdated +
		r.MembershipsCreated + r.MembershipsRemoved
}
