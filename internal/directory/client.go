package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/config"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
)

// client implements [Client] over go-ldap. It holds only the client-side
// timeouts; the connection parameters come from the configuration passed
// to every call, so a config save takes effect on the next operation.
type client struct {
	connectTimeout   time.Duration
	operationTimeout time.Duration
	logger           *logger.Logger
}

// NewClient constructs a directory [Client] with the given client-side
// timeout bounds.
func NewClient(cfg config.Directory, logger *logger.Logger) Client {
	logger.Debug().
		Dur("connect_timeout", cfg.ConnectTimeout).
		Dur("operation_timeout", cfg.OperationTimeout).
		Msg("creating directory client")
	return &client{
		connectTimeout:   cfg.ConnectTimeout,
		operationTimeout: cfg.OperationTimeout,
		logger:           logger,
	}
}

// Authenticate binds as the given user DN with the supplied password.
func (c *client) Authenticate(ctx context.Context, cfg models.DirectoryConfig, dn, password string) error {
	conn, err := dial(ctx, cfg.ServerURL, c.connectTimeout, c.operationTimeout)
	if err != nil {
		return err
	}
	defer conn.close()

	return conn.bind(dn, password)
}

// FindUserDN looks up the distinguished name of the user entry whose login
// attribute equals username.
func (c *client) FindUserDN(ctx context.Context, cfg models.DirectoryConfig, username string) (string, error) {
	conn, err := c.adminSession(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer conn.close()

	filter := BuildLoginFilter(cfg.UserFilter, cfg.LoginAttr, username)
	entries, err := conn.search(cfg.SearchBase, filter, []string{cfg.LoginAttr})
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("%w: no entry matches login %q", ErrSearchFailed, username)
	}

	return entries[0].DN, nil
}

// SearchUsers returns every entry matching the configured user filter.
func (c *client) SearchUsers(ctx context.Context, cfg models.DirectoryConfig) ([]models.DirectoryEntry, error) {
	conn, err := c.adminSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer conn.close()

	return conn.search(cfg.SearchBase, cfg.UserFilter,
		[]string{cfg.LoginAttr, cfg.EmailAttr, cfg.NameAttr})
}

// SearchGroups returns every entry matching the configured group filter.
func (c *client) SearchGroups(ctx context.Context, cfg models.DirectoryConfig) ([]models.DirectoryEntry, error) {
	conn, err := c.adminSession(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer conn.close()

	return conn.search(cfg.SearchBase, cfg.GroupFilter,
		[]string{cfg.GroupNameAttr, "description", cfg.GroupMemberAttr})
}

// Test opens a connection and binds as the administrative identity.
func (c *client) Test(ctx context.Context, cfg models.DirectoryConfig) error {
	conn, err := c.adminSession(ctx, cfg)
	if err != nil {
		return err
	}
	conn.close()

	return nil
}

// adminSession opens a connection already bound as the configured
// administrative identity. The caller owns the returned connection and
// must close it.
func (c *client) adminSession(ctx context.Context, cfg models.DirectoryConfig) (*connection, error) {
	conn, err := dial(ctx, cfg.ServerURL, c.connectTimeout, c.operationTimeout)
	if err != nil {
		return nil, err
	}

	if err := conn.bind(cfg.BindDN, cfg.BindPassword); err != nil {
		conn.close()
		return nil, err
	}

	return conn, nil
}
