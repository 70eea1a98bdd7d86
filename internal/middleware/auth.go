// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"

	"blogfront/internal/auth"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// AuthKey is the context key for the per-request auth context.
	AuthKey contextKey = "auth"
)

// pendingHTML is the neutral indicator rendered when a guard cannot
// decide yet. It shows neither the protected view nor a redirect.
const pendingHTML = `<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><meta http-equiv="refresh" content="1"><title>Loading</title></head>
<body><p>Loading…</p></body></html>`

// WithAuth builds the auth context for every request and resolves it by
// restoring the persisted session before any handler or guard runs.
// It does NOT enforce authentication — it only makes the resolved state
// available via AuthFromCtx().
func WithAuth(backend auth.Backend, store auth.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ac := auth.NewContext(backend, store)
			ac.Restore(r.Context(), r)

			ctx := context.WithValue(r.Context(), AuthKey, ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth wraps views that need a session. Anonymous users are
// redirected to the login page; the attempted path is discarded. Must be
// applied after WithAuth in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return guard(next, auth.RequireAuthenticated)
}

// RequireAnonymous wraps views like login and register. Users who
// already hold a session are redirected to the home view.
func RequireAnonymous(next http.Handler) http.Handler {
	return guard(next, auth.RequireAnonymous)
}

func guard(next http.Handler, predicate func(auth.State) (auth.Decision, string)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := auth.StateInitializing
		if ac := AuthFromCtx(r.Context()); ac != nil {
			state = ac.State()
		}

		decision, target := predicate(state)
		switch decision {
		case auth.DecisionAllow:
			next.ServeHTTP(w, r)
		case auth.DecisionRedirect:
			http.Redirect(w, r, target, http.StatusSeeOther)
		default:
			// Unresolved state: no content, no redirect.
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(pendingHTML))
		}
	})
}

// AuthFromCtx extracts the auth context from the request context.
// Returns nil if WithAuth has not run.
func AuthFromCtx(ctx context.Context) *auth.Context {
	ac, _ := ctx.Value(AuthKey).(*auth.Context)
	return ac
}
