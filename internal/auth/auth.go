// Package auth manages the single admin account: password verification,
// password changes, and the session markers that back issued tokens.
package auth

import (
	"context"       // Context for storage operations
	"crypto/subtle" // Constant-time comparison of the default password
	"errors"        // Sentinel errors
	"fmt"           // Error wrapping

	"earning_admin/internal/store" // Well-known keys
	"earning_admin/internal/utils" // JWT and Redis helpers

	"github.com/google/uuid"       // Session IDs
	"github.com/redis/go-redis/v9" // Session markers
	"github.com/sirupsen/logrus"   // Logging library
	"golang.org/x/crypto/bcrypt"   // Password hashing
)

const (
	AdminUsername     = "admin"         // The only admin account
	DefaultPassword   = "12345"         // Used until a password is set
	MinPasswordLength = 4               // Shortest accepted new password
	SessionKeyPrefix  = "adminLoggedIn" // Redis key prefix of session markers
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrSessionExpired     = errors.New("session expired or logged out")
)

// CredentialStore holds the stored password hash
type CredentialStore interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	PutValue(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Service authenticates the admin and tracks live sessions
type Service struct {
	creds  CredentialStore // Password hash storage
	rdb    *redis.Client   // Session markers
	secret string          // JWT signing secret
}

// NewService creates an auth service
func NewService(creds CredentialStore, rdb *redis.Client, secret string) *Service {
	return &Service{creds: creds, rdb: rdb, secret: secret}
}

func sessionKey(sessionID string) string {
	return SessionKeyPrefix + ":" + sessionID
}

// checkPassword compares password with the stored hash, or with the default when none is stored
func (s *Service) checkPassword(ctx context.Context, password string) error {
	hash, ok, err := s.creds.GetValue(ctx, store.PasswordKey)
	if err != nil {
		return err
	}
	if !ok {
		if subtle.ConstantTimeCompare([]byte(password), []byte(DefaultPassword)) != 1 {
			return ErrInvalidCredentials
		}
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login verifies the credentials, records a session marker and returns a signed token
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	if username != AdminUsername {
		return "", ErrInvalidCredentials
	}
	if err := s.checkPassword(ctx, password); err != nil {
		return "", err
	}
	sessionID := uuid.NewString() // One marker per login
	if err := s.rdb.Set(ctx, sessionKey(sessionID), username, utils.TokenTTL).Err(); err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}
	token, err := utils.GenerateJWT(username, sessionID, s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	logrus.WithField("session_id", sessionID).Info("Admin logged in")
	return token, nil
}

// VerifySession checks that the session marker of a token still exists
func (s *Service) VerifySession(ctx context.Context, sessionID string) error {
	n, err := s.rdb.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if n == 0 {
		return ErrSessionExpired
	}
	return nil
}

// Logout removes the session marker so its token stops working
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := utils.DeleteCache(ctx, s.rdb, sessionKey(sessionID)); err != nil {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	logrus.WithField("session_id", sessionID).Info("Admin logged out")
	return nil
}

// ChangePassword stores a bcrypt hash of the new password
func (s *Service) ChangePassword(ctx context.Context, password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.creds.PutValue(ctx, store.PasswordKey, string(hash)); err != nil {
		return err
	}
	logrus.Info("Admin password changed")
	return nil
}

// Reset forgets the stored password and ends every session
func (s *Service) Reset(ctx context.Context) error {
	if err := s.creds.Delete(ctx, store.PasswordKey); err != nil {
		return err
	}
	if err := utils.DeleteCachePattern(ctx, s.rdb, SessionKeyPrefix+":*"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	logrus.Warn("Admin credentials reset")
	return nil
}
