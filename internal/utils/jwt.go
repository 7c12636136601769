package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateSessionToken creates a signed HMAC-SHA256 session token for the
// given user.
//
// The token carries the service identity claims (uid, username, email)
// plus the standard claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// All parameters are required. Returns an error if issuer or signKey are
// empty, tokenDuration is zero, or signing fails.
func GenerateSessionToken(issuer string, user models.User, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating session token")
	}

	now := time.Now()
	claims := &models.Token{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	claims.Token = token
	claims.SignedString = tokenString

	return *claims, nil
}

// ValidateAndParseSessionToken validates the given token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//
// Expired tokens are reported as an error wrapping [jwt.ErrTokenExpired]
// so callers can distinguish expiry from other validation failures via
// errors.Is.
func ValidateAndParseSessionToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	parsed := &models.Token{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	parsed.Token = token
	parsed.SignedString = tokenString

	return *parsed, nil
}

// ParseBearerToken extracts the token string from a raw "Authorization"
// header value of the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
