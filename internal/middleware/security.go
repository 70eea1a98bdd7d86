// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders stamps baseline browser protections on every response the
// frontend serves. The views are plain server-rendered HTML, so a small
// fixed set suffices.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Responses are always the declared Content-Type; forbid sniffing.
		h.Set("X-Content-Type-Options", "nosniff")

		// The login and post forms must not be framable by other origins.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// Legacy XSS filter off; template auto-escaping is the defense.
		h.Set("X-XSS-Protection", "0")

		// Keep full URLs (post IDs, query notices) off cross-origin Referers.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}
