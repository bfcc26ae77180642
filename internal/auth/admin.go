// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/subtle"
	"log/slog"
)

// AdminVerifier checks submitted passwords against the configured admin secret.
// The zero value rejects every password.
type AdminVerifier struct {
	secret string
	hash   string
}

// NewAdminVerifier returns a verifier for the given secret. When hash is set it
// takes precedence over the plain secret.
func NewAdminVerifier(secret, hash string) *AdminVerifier {
	return &AdminVerifier{secret: secret, hash: hash}
}

// Configured reports whether any secret is set.
func (v *AdminVerifier) Configured() bool {
	return v != nil && (v.secret != "" || v.hash != "")
}

// Verify reports whether password matches the admin secret.
func (v *AdminVerifier) Verify(password string) bool {
	if !v.Configured() {
		return false
	}

	if v.hash != "" {
		ok, err := VerifyArgon2(password, v.hash)
		if err != nil {
			slog.Error("admin password hash is malformed", "error", err)
			return false
		}
		return ok
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(v.secret)) == 1
}
