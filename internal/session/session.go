// Package session holds the signed-in operator for the lifetime of the
// process and persists it between runs.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/ledgerdeck/internal/common"
	"github.com/Veraticus/ledgerdeck/internal/model"
	"github.com/Veraticus/ledgerdeck/internal/service"
)

// UserKey is the store key holding the signed-in user.
const UserKey = "user"

// Authenticator exchanges credentials for a user record.
type Authenticator interface {
	SignIn(ctx context.Context, creds model.Credentials, signup bool) (model.User, error)
}

// Session is the explicit application session. It is created once at start
// up and passed to every command and screen that needs the current user.
type Session struct {
	store  service.SessionStore
	logger *slog.Logger
	user   *model.User
	mu     sync.RWMutex
}

// Open restores the session persisted in store, if any.
func Open(ctx context.Context, store service.SessionStore, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Session{store: store, logger: logger}

	raw, ok, err := store.Get(ctx, UserKey)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}
	if !ok {
		return s, nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		logger.Warn("discarding unreadable session", "error", err)
		if delErr := store.Delete(ctx, UserKey); delErr != nil {
			return nil, fmt.Errorf("failed to clear session: %w", delErr)
		}
		return s, nil
	}
	s.user = &u
	return s, nil
}

// User returns the signed-in user.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

// Require returns the signed-in user or common.ErrNotSignedIn.
func (s *Session) Require() (model.User, error) {
	u, ok := s.User()
	if !ok {
		return model.User{}, common.ErrNotSignedIn
	}
	return u, nil
}

// Login persists u as the signed-in user.
func (s *Session) Login(ctx context.Context, u model.User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Put(ctx, UserKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.logger.Info("signed in", "email", u.Email, "role", u.Role)
	return nil
}

// Logout clears the signed-in user.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.logger.Info("signed out")
	return nil
}

// SignIn authenticates against the backend and logs the result in. With
// signup set a new account is registered first.
func (s *Session) SignIn(ctx context.Context, auth Authenticator, creds model.Credentials, signup bool) (model.User, error) {
	u, err := auth.SignIn(ctx, creds, signup)
	if err != nil {
		return model.User{}, err
	}
	if err := s.Login(ctx, u); err != nil {
		return model.User{}, err
	}
	return u, nil
}
