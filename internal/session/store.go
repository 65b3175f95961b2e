package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/linemk/coffee-shop/internal/api"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

// AuthAPI is the slice of the backend client the session store needs.
type AuthAPI interface {
	Login(ctx context.Context, req api.AuthenticationRequest) (*api.AuthenticationResponse, error)
	Register(ctx context.Context, req api.UserCreationRequest) (*models.User, error)
	MyInfo(ctx context.Context, token string) (*models.User, error)
}

// Snapshot is an immutable view of the session state handed to subscribers.
type Snapshot struct {
	Token   string
	User    *models.User
	Loading bool
}

// Store owns the session: the bearer token, the resolved user, and the
// persisted copy of the token. It is the single writer for all three.
//
// A token alone is a transient state: whenever one appears (from disk or
// from login) the store resolves "who am I" against the backend, and a
// resolve failure degrades silently to logged-out. An expired token never
// surfaces an error, it just disappears.
type Store struct {
	log    *slog.Logger
	auth   AuthAPI
	tokens TokenStore

	mu      sync.Mutex
	token   string
	user    *models.User
	loading bool
	subs    []func(Snapshot)
}

func NewStore(log *slog.Logger, auth AuthAPI, tokens TokenStore) *Store {
	return &Store{log: log, auth: auth, tokens: tokens}
}

// Start reads the persisted token and, if one exists, resolves the user
// behind it. Call once before using the store.
func (s *Store) Start(ctx context.Context) error {
	const op = "session.Store.Start"
	logger := s.log.With(slog.String("op", op))

	token, err := s.tokens.Load()
	if err != nil {
		return fmt.Errorf("%s: failed to load token: %w", op, err)
	}
	if token == "" {
		s.set(func() bool { s.loading = false; return true })
		return nil
	}

	logger.Debug("persisted token found, resolving user")
	s.set(func() bool {
		s.token = token
		s.loading = true
		return true
	})
	s.resolve(ctx, token)
	return nil
}

// Login exchanges credentials for a token, persists it, and resolves the
// user. A failed authentication propagates to the caller; a failed
// resolve after a successful authentication follows the implicit-logout
// rule and is not an error.
func (s *Store) Login(ctx context.Context, username, password string) error {
	const op = "session.Store.Login"
	logger := s.log.With(slog.String("op", op), slog.String("username", username))

	resp, err := s.auth.Login(ctx, api.AuthenticationRequest{Username: username, Password: password})
	if err != nil {
		logger.Warn("authentication failed", slog.Any("error", err))
		return err
	}
	if err := s.tokens.Save(resp.Token); err != nil {
		return fmt.Errorf("%s: failed to persist token: %w", op, err)
	}

	s.set(func() bool {
		s.token = resp.Token
		s.user = nil
		s.loading = true
		return true
	})
	s.resolve(ctx, resp.Token)

	logger.Info("user logged in")
	return nil
}

// Logout clears the in-memory and persisted session immediately. No
// network call is involved.
func (s *Store) Logout() {
	const op = "session.Store.Logout"
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn("failed to clear persisted token", slog.String("op", op), slog.Any("error", err))
	}
	s.set(func() bool {
		s.token = ""
		s.user = nil
		s.loading = false
		return true
	})
}

// resolve asks the backend who the token belongs to. Failure means the
// token is invalid or expired: clear everything, surface nothing.
func (s *Store) resolve(ctx context.Context, token string) {
	const op = "session.Store.resolve"
	logger := s.log.With(slog.String("op", op))

	user, err := s.auth.MyInfo(ctx, token)
	if err != nil {
		logger.Info("token rejected, logging out", slog.Any("error", err))
		s.Logout()
		return
	}

	s.set(func() bool {
		// the token may have been cleared while the request was in
		// flight; a stale resolve must not resurrect the session,
		// and subscribers have nothing new to see
		if s.token != token {
			return false
		}
		s.user = user
		s.loading = false
		return true
	})
}

// Token returns the current bearer token, empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the resolved user, nil when unresolved or logged out.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Loading reports whether a resolve is pending.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// IsAuthenticated requires both a token and a resolved user.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user != nil
}

// Snapshot returns a consistent view of the session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Token: s.token, User: s.user, Loading: s.loading}
}

// Subscribe registers fn to run with a fresh snapshot after every state
// change. Subscribers run outside the store lock.
func (s *Store) Subscribe(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// set applies a mutation under the lock, then notifies subscribers. The
// mutation reports whether it changed anything; a no-op stays silent.
func (s *Store) set(mutate func() bool) {
	s.mu.Lock()
	changed := mutate()
	snap := Snapshot{Token: s.token, User: s.user, Loading: s.loading}
	subs := make([]func(Snapshot), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	if !changed {
		return
	}
	for _, fn := range subs {
		fn(snap)
	}
}
