package directory

import (
	"errors"

	"github.com/go-ldap/ldap/v3"
)

// Sentinel errors returned by the directory client. All of them are
// recoverable at the caller level: the authenticator translates them into a
// generic credential failure, the sync engine reports them as a failed run.
var (
	// ErrDirectoryUnavailable indicates the server could not be reached or
	// the connection timed out.
	ErrDirectoryUnavailable = errors.New("directory server unavailable")

	// ErrBindFailed indicates the directory rejected the bind credentials.
	ErrBindFailed = errors.New("directory bind failed")

	// ErrSearchFailed indicates a search could not be completed.
	ErrSearchFailed = errors.New("directory search failed")
)

// classifyBindError maps a go-ldap bind error onto a sentinel. Credential
// rejections become ErrBindFailed; everything else counts as the server
// being unavailable.
func classifyBindError(err error) error {
	if ldap.IsErrorAnyOf(err,
		ldap.LDAPResultInvalidCredentials,
		ldap.LDAPResultInsufficientAccessRights,
		ldap.LDAPResultUnwillingToPerform,
		ldap.LDAPResultInappropriateAuthentication,
	) {
		return ErrBindFailed
	}
	return ErrDirectoryUnavailable
}
