package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"im-client/internal/models"
)

var (
	// ErrNotAuthenticated is returned once the session has been closed.
	ErrNotAuthenticated = errors.New("session is not authenticated")
	// ErrTokenExpired is returned by Restore for a persisted token past its exp claim.
	ErrTokenExpired = errors.New("persisted token has expired")
)

// Session holds the authenticated identity for the lifetime of one login.
// It starts from a collaborator-provided credential (NewSession) or a
// persisted one (Restore), and ends with Close.
type Session struct {
	store CredentialStore

	mu       sync.RWMutex
	identity *models.Identity
}

// NewSession starts a session for identity and persists it to store.
// store may be nil, in which case nothing survives the process.
func NewSession(ctx context.Context, identity models.Identity, store CredentialStore) (*Session, error) {
	if identity.IsZero() || identity.Token == "" {
		return nil, errors.New("identity needs an id and a token")
	}
	if store != nil {
		if err := store.Save(ctx, identity); err != nil {
			return nil, fmt.Errorf("persist credentials: %w", err)
		}
	}
	id := identity
	return &Session{store: store, identity: &id}, nil
}

// Restore starts a session from the credentials in store. An expired token
// is cleared from the store and reported as ErrTokenExpired.
func Restore(ctx context.Context, store CredentialStore, now time.Time) (*Session, error) {
	identity, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if identity.Token == "" {
		return nil, ErrNoCredentials
	}
	if TokenExpired(identity.Token, now) {
		if err := store.Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear expired credentials: %w", err)
		}
		return nil, ErrTokenExpired
	}
	return &Session{store: store, identity: &identity}, nil
}

// Identity returns the authenticated identity, or ErrNotAuthenticated after Close.
func (s *Session) Identity() (models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, ErrNotAuthenticated
	}
	return *s.identity, nil
}

// Active reports whether the session still holds an identity.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity != nil
}

// Close drops the identity and clears persisted credentials. Closing twice is
// harmless.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	return s.store.Clear(ctx)
}
