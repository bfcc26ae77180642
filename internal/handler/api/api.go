// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON handlers behind the public site: the data
// read endpoint and the section, subject and booking write endpoints.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/tuition-cms/internal/middleware"
	"github.com/olegiv/tuition-cms/internal/model"
	"github.com/olegiv/tuition-cms/internal/service"
	"github.com/olegiv/tuition-cms/internal/store"
)

// Route paths.
const (
	RouteData     = "/api/data"
	RouteSections = "/api/sections"
	RouteSubjects = "/api/subjects"
	RouteBooking  = "/api/booking"
)

const msgMethodNotAllowed = "Method not allowed"

// PasswordVerifier checks a submitted admin password.
type PasswordVerifier interface {
	Verify(password string) bool
}

// Lockout tracks failed password checks per client.
type Lockout interface {
	IsLocked(key string) (bool, time.Duration)
	RecordFailure(key string) (bool, time.Duration)
	RecordSuccess(key string)
}

// Notifier announces a stored booking.
type Notifier interface {
	Notify(ctx context.Context, b model.Booking) service.NotifyResult
}

// Deps are the collaborators of Handler. Lockout and Notifier may be nil.
type Deps struct {
	Verifier PasswordVerifier
	Lockout  Lockout
	Notifier Notifier
	Logger   *slog.Logger
}

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	queries  *store.Queries
	verifier PasswordVerifier
	lockout  Lockout
	notifier Notifier
	logger   *slog.Logger
}

// NewHandler creates the API handlers over db using the given SQL driver.
func NewHandler(db *sql.DB, driver string, deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		queries:  store.NewWithDriver(db, driver),
		verifier: deps.Verifier,
		lockout:  deps.Lockout,
		notifier: deps.Notifier,
		logger:   logger,
	}
}

// Register mounts the API routes on r. Each handler checks the method
// itself so every other method gets the same 405 JSON body.
func (h *Handler) Register(r chi.Router) {
	r.HandleFunc(RouteData, h.Data)
	r.HandleFunc(RouteSections, h.Sections)
	r.HandleFunc(RouteSubjects, h.Subjects)
	r.HandleFunc(RouteBooking, h.Booking)
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": message}.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	middleware.WriteAPIError(w, statusCode, message)
}

// requireMethod rejects requests not using method with a 405.
func requireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	return false
}

type successResponse struct {
	Success bool `json:"success"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
