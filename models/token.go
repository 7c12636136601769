package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT session token with the identity claims this service
// issues and verifies.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (issuer, expiry).
// The identity claims (uid, username, email) travel alongside the
// registered ones so that token verification alone is enough to rebuild
// the caller's identity without a database round trip.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
// The server keeps no session state: validity is purely cryptographic
// plus expiry.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from claim serialization.
	*jwt.Token `json:"-"`

	// UserID is the internal identifier of the user the token was issued for.
	UserID int64 `json:"uid"`

	// Username is the login name of the token's subject.
	Username string `json:"username"`

	// Email is the mail address of the token's subject.
	Email string `json:"email"`

	// RegisteredClaims provides the standard JWT claim set
	// (iss, iat, exp) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	// Excluded from claim serialization; use [Token.String] to retrieve it.
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
