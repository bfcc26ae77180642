// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"strings"
	"testing"
)

func TestHashArgon2(t *testing.T) {
	hash, err := HashArgon2("changeme")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$") {
		t.Fatalf("unexpected hash prefix: %s", hash)
	}

	other, err := HashArgon2("changeme")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}
	if hash == other {
		t.Fatal("two hashes of the same input should use different salts")
	}
}

func TestVerifyArgon2(t *testing.T) {
	hash, err := HashArgon2("changeme")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}

	valid, err := VerifyArgon2("changeme", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2 error: %v", err)
	}
	if !valid {
		t.Fatal("correct password was rejected")
	}

	valid, err = VerifyArgon2("wrongpassword", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2 error: %v", err)
	}
	if valid {
		t.Fatal("wrong password was accepted")
	}
}

func TestVerifyArgon2_ForeignParameters(t *testing.T) {
	// Hash of "changeme" created with m=65536,t=1,p=4.
	hash := "$argon2id$v=19$m=65536,t=1,p=4$mucMvOaS6lZ2LWNS1OEFKw$UYEWv8cvCOO6l2zGeqv3JPVe1nyy0x9GXBfYEuDM544"

	valid, err := VerifyArgon2("changeme", hash)
	if err != nil {
		t.Fatalf("VerifyArgon2 error: %v", err)
	}
	if !valid {
		t.Fatal("hash rejected correct password")
	}
}

func TestVerifyArgon2_Malformed(t *testing.T) {
	tests := []string{
		"",
		"plain",
		"$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=x$m=1,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$bad$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=1,t=1,p=1$!!!$aGFzaA",
	}
	for _, hash := range tests {
		if _, err := VerifyArgon2("x", hash); err == nil {
			t.Errorf("VerifyArgon2(%q) expected error", hash)
		}
	}
}

func TestAdminVerifier(t *testing.T) {
	hash, err := HashArgon2("hashed-secret")
	if err != nil {
		t.Fatalf("HashArgon2 error: %v", err)
	}

	tests := []struct {
		name     string
		verifier *AdminVerifier
		password string
		want     bool
	}{
		{"nil verifier", nil, "anything", false},
		{"unconfigured", NewAdminVerifier("", ""), "", false},
		{"unconfigured non-empty", NewAdminVerifier("", ""), "admin", false},
		{"plain match", NewAdminVerifier("s3cret", ""), "s3cret", true},
		{"plain mismatch", NewAdminVerifier("s3cret", ""), "s3cre", false},
		{"plain empty submission", NewAdminVerifier("s3cret", ""), "", false},
		{"hash match", NewAdminVerifier("", hash), "hashed-secret", true},
		{"hash mismatch", NewAdminVerifier("", hash), "other", false},
		{"hash takes precedence", NewAdminVerifier("plain", hash), "plain", false},
		{"malformed hash", NewAdminVerifier("", "not-a-hash"), "not-a-hash", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.verifier.Verify(tt.password); got != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestAdminVerifier_Configured(t *testing.T) {
	if NewAdminVerifier("", "").Configured() {
		t.Error("empty verifier reported configured")
	}
	if !NewAdminVerifier("x", "").Configured() {
		t.Error("plain secret not reported configured")
	}
	if !NewAdminVerifier("", "$argon2id$...").Configured() {
		t.Error("hash not reported configured")
	}
}
