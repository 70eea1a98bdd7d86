// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

// Decision is a route guard's verdict, evaluated before rendering so the
// logic stays testable without any HTTP machinery.
type Decision int

const (
	// DecisionPending means the auth state is still unresolved: render a
	// neutral pending indicator, neither the view nor a redirect.
	DecisionPending Decision = iota

	// DecisionAllow means the wrapped view may render.
	DecisionAllow

	// DecisionRedirect means navigation is redirected; the attempted
	// path is discarded (no deep-link preservation).
	DecisionRedirect
)

const (
	// LoginPath is where authenticated-only guards send anonymous users.
	LoginPath = "/login"

	// HomePath is where anonymous-only guards send authenticated users.
	HomePath = "/"
)

// RequireAuthenticated gates views that need a session. While the state
// is unresolved it withholds any decision to avoid a flash-redirect
// before session restoration completes.
func RequireAuthenticated(state State) (Decision, string) {
	switch state {
	case StateInitializing:
		return DecisionPending, ""
	case StateAuthenticated:
		return DecisionAllow, ""
	default:
		return DecisionRedirect, LoginPath
	}
}

// RequireAnonymous gates views like login and register that only make
// sense without a session.
func RequireAnonymous(state State) (Decision, string) {
	switch state {
	case StateInitializing:
		return DecisionPending, ""
	case StateAnonymous:
		return DecisionAllow, ""
	default:
		return DecisionRedirect, HomePath
	}
}
