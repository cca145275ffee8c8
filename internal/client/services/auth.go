// Package services contains the application services the UI layer talks to:
// authentication state, the vehicle garage, and the shopping cart. Each
// service owns its mutable state behind a single mutex.
package services

import (
	"context"
	"sync"

	"github.com/dkazlou/gearhub/internal/client/api"
	"github.com/dkazlou/gearhub/internal/client/models"
	"github.com/dkazlou/gearhub/internal/client/session"
	"github.com/dkazlou/gearhub/internal/logging"
)

// AuthState is the authentication lifecycle state shown to the UI.
type AuthState string

const (
	StateLoading         AuthState = "loading"
	StateUnauthenticated AuthState = "unauthenticated"
	StateAuthenticated   AuthState = "authenticated"
)

// AuthService orchestrates login/register/logout and tracks the current
// user. Construction resolves the initial state from local token presence
// only; the token is never validated against the backend.
type AuthService struct {
	mu      sync.Mutex
	state   AuthState
	user    *models.User
	client  api.Client
	session *session.Store
	log     logging.Logger
}

func NewAuthService(client api.Client, sess *session.Store, log logging.Logger) *AuthService {
	s := &AuthService{
		state:   StateLoading,
		client:  client,
		session: sess,
		log:     log,
	}
	s.resolveInitialState()
	return s
}

func (s *AuthService) resolveInitialState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session.IsAuthenticated() {
		s.state = StateAuthenticated
	} else {
		s.state = StateUnauthenticated
	}
}

// State reports the current authentication state. A token cleared behind our
// back (a 401 on any authenticated call) flips the reported state on the
// next check here.
func (s *AuthService) State() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAuthenticated && !s.session.IsAuthenticated() {
		s.state = StateUnauthenticated
		s.user = nil
	}
	return s.state
}

// CurrentUser returns the user stored from the last successful
// login/register, or nil.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Login authenticates and, on success, stores the returned user and
// transitions to authenticated. On failure the state remains
// unauthenticated and the error is returned for display; there is no retry.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &api.ServerError{Message: resp.Message}
	}

	s.mu.Lock()
	s.user = resp.User
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.log.Info(ctx, "logged in", "email", email)
	return nil
}

// Register mirrors Login for account creation.
func (s *AuthService) Register(ctx context.Context, email, password, username string) error {
	resp, err := s.client.Register(ctx, email, password, username)
	if err != nil {
		return err
	}
	if !resp.Success {
		return &api.ServerError{Message: resp.Message}
	}

	s.mu.Lock()
	s.user = resp.User
	s.state = StateAuthenticated
	s.mu.Unlock()

	s.log.Info(ctx, "registered", "email", email)
	return nil
}

// Logout clears the token and current user. Idempotent: logging out while
// already unauthenticated has no further effect.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.client.Logout(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = nil
	s.state = StateUnauthenticated
	s.mu.Unlock()

	return nil
}
