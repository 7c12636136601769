package directory

import (
	"context"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// Client is a stateless facade over the external directory. Every call
// opens a fresh connection, performs the operation and releases the
// connection before returning; no session state is held between calls.
type Client interface {
	// Authenticate binds as the given distinguished name with the supplied
	// password. A nil error means the directory accepted the credentials.
	Authenticate(ctx context.Context, cfg models.DirectoryConfig, dn, password string) error

	// FindUserDN searches for the user entry whose configured login
	// attribute equals username and returns its distinguished name.
	// Returns ErrSearchFailed when no matching entry exists.
	FindUserDN(ctx context.Context, cfg models.DirectoryConfig, username string) (string, error)

	// SearchUsers returns all entries matching the configured user filter
	// under the configured search base.
	SearchUsers(ctx context.Context, cfg models.DirectoryConfig) ([]models.DirectoryEntry, error)

	// SearchGroups returns all entries matching the configured group filter
	// under the configured search base.
	SearchGroups(ctx context.Context, cfg models.DirectoryConfig) ([]models.DirectoryEntry, error)

	// Test verifies connectivity and the administrative bind identity.
	Test(ctx context.Context, cfg models.DirectoryConfig) error
}
