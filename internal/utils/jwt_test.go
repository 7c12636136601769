package utils

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testIssuer  = "proxinoc-test"
	testSignKey = "test-sign-key"
)

func testUser() models.User {
	return models.User{
		UserID:   42,
		Username: "jdoe",
		Email:    "jdoe@example.com",
	}
}

func TestGenerateSessionToken_RoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token.SignedString == "" {
		t.Fatal("expected non-empty signed string")
	}

	parsed, err := ValidateAndParseSessionToken(token.SignedString, testSignKey, testIssuer)
	if err != nil {
		t.Fatalf("unexpected error validating freshly issued token: %v", err)
	}

	if parsed.UserID != 42 {
		t.Errorf("expected uid 42, got %d", parsed.UserID)
	}
	if parsed.Username != "jdoe" {
		t.Errorf("expected username jdoe, got %q", parsed.Username)
	}
	if parsed.Email != "jdoe@example.com" {
		t.Errorf("expected email jdoe@example.com, got %q", parsed.Email)
	}
}

func TestGenerateSessionToken_InvalidParams(t *testing.T) {
	if _, err := GenerateSessionToken("", testUser(), time.Hour, testSignKey); err == nil {
		t.Error("expected error for empty issuer")
	}
	if _, err := GenerateSessionToken(testIssuer, testUser(), 0, testSignKey); err == nil {
		t.Error("expected error for zero duration")
	}
	if _, err := GenerateSessionToken(testIssuer, testUser(), time.Hour, ""); err == nil {
		t.Error("expected error for empty sign key")
	}
}

func TestValidateAndParseSessionToken_Expired(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUser(), -time.Minute, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = ValidateAndParseSessionToken(token.SignedString, testSignKey, testIssuer)
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected jwt.ErrTokenExpired, got %v", err)
	}
}

func TestValidateAndParseSessionToken_Tampered(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// flip the last character of the signature
	tampered := token.SignedString[:len(token.SignedString)-1]
	if strings.HasSuffix(token.SignedString, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}

	if _, err := ValidateAndParseSessionToken(tampered, testSignKey, testIssuer); err == nil {
		t.Fatal("expected error for tampered token")
	}
}

func TestValidateAndParseSessionToken_WrongIssuer(t *testing.T) {
	token, err := GenerateSessionToken("other-service", testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseSessionToken(token.SignedString, testSignKey, testIssuer); err == nil {
		t.Fatal("expected error for wrong issuer")
	}
}

func TestValidateAndParseSessionToken_WrongKey(t *testing.T) {
	token, err := GenerateSessionToken(testIssuer, testUser(), time.Hour, testSignKey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := ValidateAndParseSessionToken(token.SignedString, "other-key", testIssuer); err == nil {
		t.Fatal("expected error for wrong sign key")
	}
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Errorf("expected abc.def.ghi, got %q", token)
	}

	if _, err := ParseBearerToken("Bearer"); err == nil {
		t.Error("expected error for missing token part")
	}
	if _, err := ParseBearerToken("Bearer "); err == nil {
		t.Error("expected error for empty token part")
	}
}
