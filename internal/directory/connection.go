package directory

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/go-ldap/ldap/v3"
)

// pagingSize bounds how many entries the server returns per page during
// sync searches.
const pagingSize = 500

// connection is a single bind/search/unbind session against the directory
// server. Callers obtain one with dial and must release it with close on
// every exit path.
type connection struct {
	conn             *ldap.Conn
	operationTimeout time.Duration
}

// dial opens a network connection to the directory server. The dial itself
// is bounded by connectTimeout and honors ctx cancellation; every later
// operation on the returned connection is bounded by operationTimeout.
func dial(ctx context.Context, serverURL string, connectTimeout, operationTimeout time.Duration) (*connection, error) {
	dialer := &net.Dialer{Timeout: connectTimeout}
	if deadline, ok := ctx.Deadline(); ok {
		dialer.Deadline = deadline
	}

	conn, err := ldap.DialURL(serverURL, ldap.DialWithDialer(dialer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDirectoryUnavailable, err)
	}
	conn.SetTimeout(operationTimeout)

	return &connection{conn: conn, operationTimeout: operationTimeout}, nil
}

// bind authenticates the session as the given distinguished name.
func (c *connection) bind(dn, password string) error {
	if err := c.conn.Bind(dn, password); err != nil {
		return fmt.Errorf("%w: %w", classifyBindError(err), err)
	}
	return nil
}

// search runs a paged whole-subtree search and parses the results into
// directory entries.
func (c *connection) search(base, filter string, attributes []string) ([]models.DirectoryEntry, error) {
	request := ldap.NewSearchRequest(
		base,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		int(c.operationTimeout.Seconds()),
		false,
		filter,
		attributes,
		nil,
	)

	result, err := c.conn.SearchWithPaging(request, pagingSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}

	entries := make([]models.DirectoryEntry, 0, len(result.Entries))
	for _, raw := range result.Entries {
		entry := models.DirectoryEntry{
			DN:         raw.DN,
			Attributes: make(map[string][]string, len(raw.Attributes)),
		}
		for _, attr := range raw.Attributes {
			entry.Attributes[attr.Name] = attr.Values
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// close releases the underlying network connection.
func (c *connection) close() {
	c.conn.Close()
}
