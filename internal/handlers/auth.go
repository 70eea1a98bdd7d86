// Package handlers contains the HTTP handlers for every view: the auth
// pages (login, register, logout) and the post views. Each handler
// converts failures into view-local error state — nothing propagates to a
// global handler.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"blogfront/internal/api"
	"blogfront/internal/middleware"
	"blogfront/internal/render"
)

// Auth groups the authentication-related HTTP handlers.
type Auth struct {
	renderer *render.Renderer
}

// NewAuth creates a new Auth handler group.
func NewAuth(renderer *render.Renderer) *Auth {
	return &Auth{renderer: renderer}
}

// LoginPage renders the login form. The anonymous-only guard has already
// redirected authenticated users before this runs.
func (a *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "login", &render.PageData{
		Title: "Login",
		Data:  map[string]any{},
	})
}

// LoginSubmit processes the login form: one attempt, no retry. On failure
// the form re-renders with the error and the entered email.
func (a *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	creds := api.Credentials{
		Email:    strings.TrimSpace(r.FormValue("email")),
		Password: r.FormValue("password"),
	}

	renderError := func(msg string) {
		a.renderer.Page(w, r, "login", &render.PageData{
			Title: "Login",
			Error: msg,
			Data:  map[string]any{"Email": creds.Email},
		})
	}

	if msg := validateInput(creds); msg != "" {
		renderError(msg)
		return
	}

	ac := middleware.AuthFromCtx(r.Context())
	if err := ac.Login(r.Context(), w, creds); err != nil {
		renderError(userMessage(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (a *Auth) RegisterPage(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "register", &render.PageData{
		Title: "Register",
		Data:  map[string]any{},
	})
}

// RegisterSubmit processes the registration form with the same contract
// as login. Backend validation messages are shown verbatim.
func (a *Auth) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	reg := api.Registration{
		Name:                 strings.TrimSpace(r.FormValue("name")),
		Email:                strings.TrimSpace(r.FormValue("email")),
		Password:             r.FormValue("password"),
		PasswordConfirmation: r.FormValue("password_confirmation"),
	}

	renderError := func(msg string, fields []string) {
		a.renderer.Page(w, r, "register", &render.PageData{
			Title: "Register",
			Error: msg,
			Data: map[string]any{
				"Name":        reg.Name,
				"Email":       reg.Email,
				"FieldErrors": fields,
			},
		})
	}

	if msg := validateInput(reg); msg != "" {
		renderError(msg, nil)
		return
	}

	ac := middleware.AuthFromCtx(r.Context())
	if err := ac.Register(r.Context(), w, reg); err != nil {
		renderError(userMessage(err), fieldMessages(err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout clears the session (best-effort on the backend side) and sends
// the user to the login page.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ac := middleware.AuthFromCtx(r.Context())
	ac.Logout(r.Context(), w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// userMessage maps an error to something presentable. Backend messages
// (invalid credentials, validation) are surfaced verbatim; anything else
// gets a generic fallback.
func userMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "An unexpected error occurred. Please try again."
}

// fieldMessages extracts per-field backend validation messages, if any.
func fieldMessages(err error) []string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.FieldMessages()
	}
	return nil
}
