package directory

import (
	"fmt"

	"github.com/go-ldap/ldap/v3"
)

// BuildLoginFilter combines the configured user filter with an equality
// clause on the login attribute. The username is escaped so directory
// filter metacharacters in the input cannot alter the filter structure.
func BuildLoginFilter(userFilter, loginAttr, username string) string {
	return fmt.Sprintf("(&%s(%s=%s))", userFilter, loginAttr, ldap.EscapeFilter(username))
}
