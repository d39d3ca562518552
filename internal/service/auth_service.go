// Package service holds the account and price estimation logic. Handlers
// pass request-scoped state in explicitly; nothing here is global.
package service

import (
	"context"
	"fmt"
	"sync"

	"carprice/internal/common"
	"carprice/internal/entity"
	"carprice/internal/logging"
	"carprice/internal/repository"
)

type AuthService struct {
	// serializes load-modify-save of the store within this process
	mu            sync.Mutex
	store         repository.CredentialStore
	hashPasswords bool
	logger        logging.Logger
}

func NewAuthService(store repository.CredentialStore, hashPasswords bool, logger logging.Logger) *AuthService {
	return &AuthService{
		store:         store,
		hashPasswords: hashPasswords,
		logger:        logger,
	}
}

// CreateAccount adds a new user. The session is not touched.
func (s *AuthService) CreateAccount(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}
	if s.hashPasswords && len(password) > maxHashedPasswordLen {
		return fmt.Errorf("%w: password is longer than %d bytes", common.ErrValidation, maxHashedPasswordLen)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}
	if creds.Has(username) {
		return fmt.Errorf("%w: %s", common.ErrConflict, username)
	}

	stored := password
	if s.hashPasswords {
		if stored, err = hashPassword(password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	creds[username] = stored
	if err := s.store.Save(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}

	s.logger.Info(ctx, "account created", "user", username)
	return nil
}

// Login checks the pair against the store and, on success, marks sess as
// logged in for username.
func (s *AuthService) Login(ctx context.Context, sess *entity.Session, username, password string) error {
	creds, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credentials: %w", err)
	}

	stored, ok := creds[username]
	if !ok || !passwordMatches(stored, password) {
		s.logger.Warn(ctx, "login failed", "user", username)
		return common.ErrAuth
	}

	sess.SignIn(username)
	s.logger.Info(ctx, "login", "user", username)
	return nil
}

// Logout resets sess. It never fails.
func (s *AuthService) Logout(ctx context.Context, sess *entity.Session) {
	if sess.LoggedIn {
		s.logger.Info(ctx, "logout", "user", sess.CurrentUser)
	}
	sess.SignOut()
}
