// Package auth holds the per-request authentication context: a small
// state machine that owns the current session and exposes exactly four
// operations (restore, login, register, logout) plus read-only access.
// Nothing else in the application mutates session state directly.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"blogfront/internal/api"
	"blogfront/internal/models"
	"blogfront/internal/session"
)

// State is the authentication state of the current request.
type State int

const (
	// StateInitializing means the session store has not been consulted
	// yet. Guards must not make a redirect decision in this state.
	StateInitializing State = iota

	// StateAnonymous means no session exists.
	StateAnonymous

	// StateAuthenticated means a token+user pair is held.
	StateAuthenticated
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Backend is the slice of the REST client the auth context needs.
type Backend interface {
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResult, error)
	Register(ctx context.Context, reg api.Registration) (*api.AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// SessionStore persists the token+user pair across page loads.
type SessionStore interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Get(ctx context.Context, r *http.Request) (*session.Data, error)
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// Context is the single source of truth for the current session. It is
// created per request in StateInitializing; Restore resolves it to
// Authenticated or Anonymous before any guard runs.
type Context struct {
	backend Backend
	store   SessionStore

	state State
	sess  *session.Data
}

// NewContext creates an unresolved auth context.
func NewContext(backend Backend, store SessionStore) *Context {
	return &Context{
		backend: backend,
		store:   store,
		state:   StateInitializing,
	}
}

// State returns the current authentication state.
func (c *Context) State() State { return c.state }

// Session returns the current token+user pair, or nil when not
// authenticated.
func (c *Context) Session() *session.Data {
	if c.state != StateAuthenticated {
		return nil
	}
	return c.sess
}

// User returns the current user snapshot, or nil when not authenticated.
func (c *Context) User() *models.User {
	if sess := c.Session(); sess != nil {
		return &sess.User
	}
	return nil
}

// Token returns the current bearer token, or "" when not authenticated.
func (c *Context) Token() string {
	if sess := c.Session(); sess != nil {
		return sess.Token
	}
	return ""
}

// Restore reads the session store once and adopts the persisted pair if
// present. Store failures degrade to Anonymous rather than blocking the
// request. No backend call is made; the token is trusted until the
// backend rejects it.
func (c *Context) Restore(ctx context.Context, r *http.Request) {
	data, err := c.store.Get(ctx, r)
	if err != nil {
		slog.Warn("session restore failed", "error", err)
		c.state = StateAnonymous
		c.sess = nil
		return
	}
	if data == nil || data.Token == "" {
		c.state = StateAnonymous
		c.sess = nil
		return
	}
	c.state = StateAuthenticated
	c.sess = data
}

// Login performs one authentication attempt. On success the returned
// token+user pair is persisted and becomes the current session. On
// failure the current state is left unchanged and the error is returned
// for the view to render.
func (c *Context) Login(ctx context.Context, w http.ResponseWriter, creds api.Credentials) error {
	result, err := c.backend.Login(ctx, creds)
	if err != nil {
		return err
	}
	return c.adopt(ctx, w, result)
}

// Register creates an account and establishes a session, with the same
// contract as Login.
func (c *Context) Register(ctx context.Context, w http.ResponseWriter, reg api.Registration) error {
	result, err := c.backend.Register(ctx, reg)
	if err != nil {
		return err
	}
	return c.adopt(ctx, w, result)
}

// Logout revokes the token on the backend and clears the local session.
// The backend call is best-effort: the local session is cleared even when
// the network call fails.
func (c *Context) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if token := c.Token(); token != "" {
		if err := c.backend.Logout(ctx, token); err != nil {
			slog.Warn("backend logout failed, clearing local session anyway", "error", err)
		}
	}
	c.clear(ctx, w, r)
}

// Invalidate clears the session without a backend call. Handlers call it
// when any data request comes back 401 — the backend has revoked the
// token, so holding on to the pair would leave a stale authenticated
// state.
func (c *Context) Invalidate(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	slog.Info("session invalidated after auth failure")
	c.clear(ctx, w, r)
}

// adopt persists the pair and transitions to Authenticated. Persistence
// failure fails the whole operation so that token and user are never
// exposed without being durable.
func (c *Context) adopt(ctx context.Context, w http.ResponseWriter, result *api.AuthResult) error {
	data := &session.Data{Token: result.Token, User: result.User}
	if _, err := c.store.Create(ctx, w, data); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	c.state = StateAuthenticated
	c.sess = data
	return nil
}

func (c *Context) clear(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if err := c.store.Destroy(ctx, w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	c.state = StateAnonymous
	c.sess = nil
}
