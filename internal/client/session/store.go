// Package session owns the bearer token for the current device session.
//
// The token is the one piece of state written from several call sites
// (login, register, logout, 401 handling), so all access goes through a
// single mutex-guarded Store.
package session

import (
	"context"
	"sync"

	"github.com/dkazlou/gearhub/internal/client/repositories/metadata"
	"github.com/dkazlou/gearhub/internal/logging"
)

// authTokenKey is the single global key the token persists under.
const authTokenKey = "auth_token"

// Store holds the bearer token in memory and mirrors it to the on-device
// key-value store.
type Store struct {
	mu    sync.Mutex
	token string
	repo  metadata.Repository
	log   logging.Logger
}

func NewStore(repo metadata.Repository, log logging.Logger) *Store {
	return &Store{repo: repo, log: log}
}

// Load reads a previously persisted token, if any. Absence of a token is a
// valid state, not an error; storage failures are logged and leave the store
// unauthenticated.
func (s *Store) Load(ctx context.Context) {
	value, err := s.repo.Get(ctx, authTokenKey)
	if err != nil {
		s.log.Warn(ctx, "failed to load session token", "error", err)
		return
	}

	s.mu.Lock()
	s.token = string(value)
	s.mu.Unlock()
}

// SetToken stores the token in memory and persists it. Subsequent
// authenticated requests pick it up immediately.
func (s *Store) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.repo.Set(ctx, authTokenKey, []byte(token)); err != nil {
		return err
	}
	return nil
}

// ClearToken removes the token from memory and from persistent storage.
func (s *Store) ClearToken(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	return s.repo.Delete(ctx, authTokenKey)
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// IsAuthenticated reports whether a token is present. It says nothing about
// the token still being valid server-side.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}
