package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/config"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/directory"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/logger"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/store"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/internal/utils"
	"github.com/AlefMartins/ProxiNOC-Network-Operation-Center-sub000/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService. It orchestrates
// credential verification (local bcrypt hash or directory bind depending on
// the account's auth mode), lockout counter updates, audit logging, and
// session token issuance.
type authService struct {
	userRepository      store.UserRepository
	accessLogRepository store.AccessLogRepository
	permissionService   PermissionService
	directoryClient     directory.Client
	configStore         *directory.ConfigStore

	// tokenSignKey is the HMAC secret used to sign and verify session tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	// tokenDuration controls how long a newly issued token remains valid.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewAuthService constructs an AuthService wired to the given repositories,
// directory client and config store, with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	userRepository store.UserRepository,
	accessLogRepository store.AccessLogRepository,
	permissionService PermissionService,
	directoryClient directory.Client,
	configStore *directory.ConfigStore,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository:      userRepository,
		accessLogRepository: accessLogRepository,
		permissionService:   permissionService,
		directoryClient:     directoryClient,
		configStore:         configStore,
		tokenSignKey:        cfg.TokenSignKey,
		tokenIssuer:         cfg.TokenIssuer,
		tokenDuration:       cfg.TokenDuration,
		logger:              logger,
	}
}

// Login verifies the supplied credentials and issues a session token.
//
// Per attempt it performs exactly one audit append and, when the username
// matched an account, exactly one write to the user row: the failed-login
// counter increment on failure or the reset-plus-timestamp on success.
//
// Returns:
//   - ErrValidation if username or password is empty.
//   - ErrInvalidCredentials for every verification failure; the cause is
//     written to the audit log only.
//   - A wrapped storage error if the user lookup or a lockout-counter write
//     fails; this is a system failure, distinct from a rejected credential.
func (a *authService) Login(ctx context.Context, username, password, ip string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	if username == "" || password == "" {
		log.Error().Str("func", "*authService.Login").Msg("empty username or password")
		return models.AuthResult{}, ErrValidation
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			a.appendAudit(ctx, nil, models.ActionLoginFailed, ip, fmt.Sprintf("login %q: user not found", username))
			return models.AuthResult{}, ErrInvalidCredentials
		}

		log.Err(err).Str("username", username).Msg("user lookup failed")
		return models.AuthResult{}, fmt.Errorf("user lookup failed: %w", err)
	}

	if !user.Active {
		return models.AuthResult{}, a.failAttempt(ctx, user, ip, "account inactive")
	}

	switch user.AuthMode {
	case models.AuthModeLocal:
		if err := a.verifyLocalPassword(user, password); err != nil {
			return models.AuthResult{}, a.failAttempt(ctx, user, ip, "bad credential")
		}

	case models.AuthModeDirectory:
		if err := a.verifyDirectoryBind(ctx, user, password); err != nil {
			if errors.Is(err, ErrDirectoryDisabled) {
				return models.AuthResult{}, a.failAttempt(ctx, user, ip, "directory authentication disabled")
			}
			log.Warn().Err(err).Str("username", username).Msg("directory bind rejected")
			return models.AuthResult{}, a.failAttempt(ctx, user, ip, "directory bind failed")
		}

	default:
		log.Error().Str("username", username).Str("auth_mode", string(user.AuthMode)).Msg("unknown auth mode")
		return models.AuthResult{}, a.failAttempt(ctx, user, ip, "unknown auth mode")
	}

	return a.completeLogin(ctx, user, ip)
}

// Logout appends the logout audit record.
func (a *authService) Logout(ctx context.Context, userID int64, username, ip string) error {
	log := logger.FromContext(ctx)

	entry := models.AccessLogEntry{
		UserID: &userID,
		Action: models.ActionLogout,
		IP:     ip,
		Detail: fmt.Sprintf("user %q logged out", username),
	}
	if err := a.accessLogRepository.Append(ctx, entry); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("appending logout audit entry failed")
		return fmt.Errorf("appending logout audit entry: %w", err)
	}

	return nil
}

// VerifyToken validates a raw session token string and returns its claims.
// Any validation failure is normalized to ErrTokenExpired or ErrTokenInvalid
// so callers never inspect low-level token errors.
func (a *authService) VerifyToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenInvalid
	}

	return token, nil
}

// verifyLocalPassword compares the supplied password against the stored
// bcrypt hash. An empty stored hash never verifies, regardless of input.
func (a *authService) verifyLocalPassword(user models.User, password string) error {
	if user.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
}

// verifyDirectoryBind authenticates the user by binding to the external
// directory with the user's DN. When the account has no stored DN yet, the
// DN is looked up by the configured login attribute first.
func (a *authService) verifyDirectoryBind(ctx context.Context, user models.User, password string) error {
	cfg, ok := a.configStore.Snapshot()
	if !ok || !cfg.Active {
		return ErrDirectoryDisabled
	}

	dn := user.DirectoryDN
	if dn == "" {
		found, err := a.directoryClient.FindUserDN(ctx, cfg, user.Username)
		if err != nil {
			return err
		}
		dn = found
	}

	return a.directoryClient.Authenticate(ctx, cfg, dn, password)
}

// failAttempt records a failed login: one counter increment on the user row
// and one audit entry carrying the actual cause. The returned error is the
// generic ErrInvalidCredentials unless persisting the counter itself failed,
// which is surfaced as a system error instead.
func (a *authService) failAttempt(ctx context.Context, user models.User, ip, reason string) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.IncrementFailedLogins(ctx, user.UserID); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("recording failed login failed")
		return fmt.Errorf("recording failed login: %w", err)
	}

	a.appendAudit(ctx, &user.UserID, models.ActionLoginFailed, ip,
		fmt.Sprintf("login %q: %s", user.Username, reason))

	return ErrInvalidCredentials
}

// completeLogin resets the lockout counter, records the audit entry,
// resolves permissions and issues the session token.
func (a *authService) completeLogin(ctx context.Context, user models.User, ip string) (models.AuthResult, error) {
	log := logger.FromContext(ctx)

	now := time.Now()
	if err := a.userRepository.RegisterLogin(ctx, user.UserID, now); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("registering login failed")
		return models.AuthResult{}, fmt.Errorf("registering login: %w", err)
	}
	user.FailedLoginAttempts = 0
	user.LastLoginAt = &now

	a.appendAudit(ctx, &user.UserID, models.ActionLogin, ip,
		fmt.Sprintf("user %q logged in", user.Username))

	permissions, err := a.permissionService.Resolve(ctx, user.UserID)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("resolving permissions failed")
		return models.AuthResult{}, fmt.Errorf("resolving permissions: %w", err)
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, user, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("issuing session token failed")
		return models.AuthResult{}, fmt.Errorf("issuing session token: %w", err)
	}

	return models.AuthResult{
		User:        user,
		Permissions: permissions,
		Token:       token.SignedString,
	}, nil
}

// appendAudit writes the audit record. A failing audit write is logged but
// never changes the outcome of the attempt it describes.
func (a *authService) appendAudit(ctx context.Context, userID *int64, action models.AccessAction, ip, detail string) {
	log := logger.FromContext(ctx)

	entry := models.AccessLogEntry{
		UserID: userID,
		Action: action,
		IP:     ip,
		Detail: detail,
	}
	if err := a.accessLogRepository.Append(ctx, entry); err != nil {
		log.Err(err).Str("action", string(action)).Msg("appending audit entry failed")
	}
}
