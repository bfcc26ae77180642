// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRFConfig holds configuration for cross-origin request protection.
// filippo.io/csrf/gorilla checks Fetch metadata and Origin headers, so no
// token or cookie is involved.
type CSRFConfig struct {
	// AuthKey satisfies the gorilla/csrf API; it is not used for validation.
	AuthKey []byte

	// ErrorHandler is called when validation fails. Defaults to a JSON 403.
	ErrorHandler http.Handler

	// TrustedOrigins lists host[:port] values allowed to make cross-origin
	// state-changing requests.
	TrustedOrigins []string
}

// DefaultCSRFConfig returns the protection used for the API. In development
// the local listen address is trusted as well.
func DefaultCSRFConfig(authKey []byte, isDev bool, devHosts ...string) CSRFConfig {
	cfg := CSRFConfig{AuthKey: authKey}
	if isDev {
		cfg.TrustedOrigins = append([]string{"localhost:8080", "127.0.0.1:8080"}, devHosts...)
	}
	return cfg
}

// CSRF returns middleware rejecting cross-origin POST, PUT, PATCH and DELETE
// requests from browsers.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	errorHandler := cfg.ErrorHandler
	if errorHandler == nil {
		errorHandler = http.HandlerFunc(csrfErrorHandler)
	}

	opts := []csrf.Option{csrf.ErrorHandler(errorHandler)}
	if len(cfg.TrustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(cfg.TrustedOrigins))
	}

	return csrf.Protect(cfg.AuthKey, opts...)
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("cross-origin request rejected",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	WriteAPIError(w, http.StatusForbidden, "Forbidden")
}
