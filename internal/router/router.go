// Package router sets up all HTTP routes and middleware chains for the
// blogfront server. Routes are organized into anonymous-only, public, and
// authenticated groups with appropriate guard stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"blogfront/internal/auth"
	"blogfront/internal/handlers"
	"blogfront/internal/middleware"
)

// loginRateLimit allows this many login/register submissions per IP and
// window before returning 429.
const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(backend auth.Backend, store auth.SessionStore, authHandlers *handlers.Auth, postHandlers *handlers.Posts) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request. WithAuth restores the
	// session before any guard makes a decision.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.WithAuth(backend, store))
	r.Use(middleware.CSRF)

	// Health check.
	r.Get("/health", healthHandler)

	// Auth pages — anonymous-only, with rate limiting on submissions.
	limiter := middleware.NewRateLimiter(loginRateLimit, loginRateWindow)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAnonymous)

		r.Get("/login", authHandlers.LoginPage)
		r.With(limiter.Middleware).Post("/login", authHandlers.LoginSubmit)
		r.Get("/register", authHandlers.RegisterPage)
		r.With(limiter.Middleware).Post("/register", authHandlers.RegisterSubmit)
	})

	r.Post("/logout", authHandlers.Logout)

	// Public views — the list shows a welcome page to anonymous visitors.
	r.Get("/", postHandlers.List)
	r.Get("/posts/{id}", postHandlers.Detail)

	// Authenticated views.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/posts/new", postHandlers.NewForm)
		r.Post("/posts", postHandlers.Create)
		r.Get("/posts/{id}/edit", postHandlers.EditForm)
		r.Post("/posts/{id}", postHandlers.Update)
		r.Post("/posts/{id}/delete", postHandlers.Delete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
