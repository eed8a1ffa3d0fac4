package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"im-client/internal/auth"
	"im-client/internal/imtypes"
	"im-client/internal/models"
	"im-client/internal/session"
)

// ErrNoSession is returned while nobody is logged in.
var ErrNoSession = errors.New("no active session")

// DirectoryScoper is implemented by backends whose directory calls can carry
// the caller's credentials.
type DirectoryScoper interface {
	DirectoryFor(identity models.Identity) imtypes.DirectoryGateway
}

// SessionService owns the lifecycle of the one controller the client runs.
type SessionService interface {
	// Restore resumes the persisted session, if any.
	Restore(ctx context.Context) (*session.Controller, error)
	Login(ctx context.Context, username, password string) (*session.Controller, error)
	Signup(ctx context.Context, username, password, avatarURL string) (*session.Controller, error)
	Logout(ctx context.Context) error
	// Controller returns the live controller or ErrNoSession.
	Controller() (*session.Controller, error)
}

// sessionService 是 SessionService 的实现。
type sessionService struct {
	backend   imtypes.Backend
	responder imtypes.ResponderGateway
	store     auth.CredentialStore
	opts      session.Options
	now       func() time.Time
	logger    *slog.Logger

	mu      sync.RWMutex
	current *session.Controller
}

// NewSessionService creates a SessionService. store may be nil, in which
// case nothing survives a restart.
func NewSessionService(backend imtypes.Backend, responder imtypes.ResponderGateway, store auth.CredentialStore, opts session.Options, logger *slog.Logger) SessionService {
	return &sessionService{
		backend:   backend,
		responder: responder,
		store:     store,
		opts:      opts,
		now:       time.Now,
		logger:    logger,
	}
}

func (s *sessionService) Restore(ctx context.Context) (*session.Controller, error) {
	if s.store == nil {
		return nil, auth.ErrNoCredentials
	}
	sess, err := auth.Restore(ctx, s.store, s.now())
	if err != nil {
		return nil, err
	}
	return s.start(ctx, sess)
}

func (s *sessionService) Login(ctx context.Context, username, password string) (*session.Controller, error) {
	identity, err := s.backend.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, identity)
}

func (s *sessionService) Signup(ctx context.Context, username, password, avatarURL string) (*session.Controller, error) {
	identity, err := s.backend.Signup(ctx, username, password, avatarURL)
	if err != nil {
		return nil, err
	}
	return s.open(ctx, identity)
}

func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	ctrl := s.current
	s.current = nil
	s.mu.Unlock()

	if ctrl == nil {
		return ErrNoSession
	}
	return ctrl.Logout(ctx)
}

func (s *sessionService) Controller() (*session.Controller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil || !s.current.Session().Active() {
		return nil, ErrNoSession
	}
	return s.current, nil
}

func (s *sessionService) open(ctx context.Context, identity models.Identity) (*session.Controller, error) {
	sess, err := auth.NewSession(ctx, identity, s.store)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return s.start(ctx, sess)
}

// start builds the controller for sess, mounts it and makes it current. A
// previous controller is dropped without logging out, its credentials were
// already replaced in the store.
func (s *sessionService) start(ctx context.Context, sess *auth.Session) (*session.Controller, error) {
	identity, err := sess.Identity()
	if err != nil {
		return nil, err
	}
	gw := session.GatewaysFor(s.backend, s.responder)
	if scoper, ok := s.backend.(DirectoryScoper); ok {
		gw.Directory = scoper.DirectoryFor(identity)
	}

	ctrl := session.NewController(sess, gw, s.opts)
	if err := ctrl.Mount(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = ctrl
	s.mu.Unlock()
	s.logger.Info("session started", slog.String("user", identity.ID), slog.String("name", identity.DisplayName))
	return ctrl, nil
}
