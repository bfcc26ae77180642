// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/tuition-cms/internal/auth"
	"github.com/olegiv/tuition-cms/internal/middleware"
)

func TestSections_CheckPassword(t *testing.T) {
	env := newTestEnv(t, Deps{})

	rec := env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"letmein"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"success":false}`, rec.Body.String())
}

func TestSections_CheckPasswordIgnoresContentFields(t *testing.T) {
	env := newTestEnv(t, Deps{})

	rec := env.do(http.MethodPost, RouteSections,
		`{"checkPassword":true,"password":"letmein","section":"home","field":"title","content":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	_, err := env.queries.GetSection(context.Background(), "home", "title")
	assert.Error(t, err, "password check must not write content")
}

func TestSections_CheckPasswordUnconfigured(t *testing.T) {
	env := newTestEnv(t, Deps{Verifier: auth.NewAdminVerifier("", "")})

	for _, pw := range []string{"", "letmein"} {
		rec := env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"`+pw+`"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "password %q", pw)
	}
}

func TestSections_CheckPasswordLockout(t *testing.T) {
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		MaxFailedAttempts: 2,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Minute,
	})
	t.Cleanup(lp.Stop)
	env := newTestEnv(t, Deps{Lockout: lp})

	for range 2 {
		rec := env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"wrong"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// Locked out: even the right password is refused.
	rec := env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"letmein"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, msgTooManyAttempts, body["error"])

	retry, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retry, 0)
	assert.LessOrEqual(t, retry, 60)
}

func TestSections_SuccessResetsFailures(t *testing.T) {
	lp := middleware.NewLoginProtection(middleware.LoginProtectionConfig{MaxFailedAttempts: 3})
	t.Cleanup(lp.Stop)
	env := newTestEnv(t, Deps{Lockout: lp})

	// httptest requests come from 192.0.2.1.
	env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"wrong"}`)
	assert.Equal(t, 2, lp.RemainingAttempts("192.0.2.1"))

	env.do(http.MethodPost, RouteSections, `{"checkPassword":true,"password":"letmein"}`)
	assert.Equal(t, 3, lp.RemainingAttempts("192.0.2.1"))
}

func TestSections_Upsert(t *testing.T) {
	env := newTestEnv(t, Deps{})
	ctx := context.Background()

	rec := env.do(http.MethodPost, RouteSections, `{"section":"home","field":"title","content":"Welcome"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = env.do(http.MethodPost, RouteSections, `{"section":"home","field":"title","content":"Hello again"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	s, err := env.queries.GetSection(ctx, "home", "title")
	require.NoError(t, err)
	assert.Equal(t, "Hello again", s.Content)

	n, err := env.queries.CountSections(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSections_EmptyContentIsStored(t *testing.T) {
	env := newTestEnv(t, Deps{})

	rec := env.do(http.MethodPost, RouteSections, `{"section":"about","field":"bio","content":""}`)
	require.Equal(t, http.StatusOK, rec.Code)

	s, err := env.queries.GetSection(context.Background(), "about", "bio")
	require.NoError(t, err)
	assert.Equal(t, "", s.Content)
}

func TestSections_MissingFields(t *testing.T) {
	env := newTestEnv(t, Deps{})

	bodies := []string{
		``,
		`{}`,
		`{"field":"title","content":"x"}`,
		`{"section":"home","content":"x"}`,
		`{"section":"home","field":"title"}`,
		`{"section":"home","field":"title","content":null}`,
		`{"checkPassword":false,"password":"letmein"}`,
	}
	for _, body := range bodies {
		rec := env.do(http.MethodPost, RouteSections, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "Missing required fields", decodeBody(t, rec)["error"], "body %s", body)
	}
}

func TestSections_MalformedBody(t *testing.T) {
	env := newTestEnv(t, Deps{})

	rec := env.do(http.MethodPost, RouteSections, `{"section":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, msgInvalidBody, decodeBody(t, rec)["error"])
}
