// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"math"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/olegiv/tuition-cms/internal/middleware"
	"github.com/olegiv/tuition-cms/internal/store"
)

const msgTooManyAttempts = "Too many failed attempts. Please try again later."

// SectionRequest is the body of POST /api/sections. With CheckPassword set
// only Password is read; otherwise Section, Field and Content describe a write.
type SectionRequest struct {
	CheckPassword bool    `json:"checkPassword"`
	Password      string  `json:"password"`
	Section       string  `json:"section"`
	Field         string  `json:"field"`
	Content       *string `json:"content"`
}

// Validate checks the fields required for a content write. Content may be
// empty but must be present.
func (req SectionRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Section, validation.Required),
		validation.Field(&req.Field, validation.Required),
		validation.Field(&req.Content, validation.NotNil),
	)
}

// Sections handles POST /api/sections.
func (h *Handler) Sections(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req SectionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if req.CheckPassword {
		h.checkPassword(w, r, req.Password)
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.queries.UpsertSection(r.Context(), store.UpsertSectionParams{
		Section: req.Section,
		Field:   req.Field,
		Content: *req.Content,
	})
	if err != nil {
		h.logger.Error("updating section", "error", err, "section", req.Section, "field", req.Field)
		writeError(w, http.StatusInternalServerError, "Failed to update section")
		return
	}

	WriteJSON(w, http.StatusOK, successResponse{Success: true})
}

// checkPassword answers a password check. Nothing is issued on success; the
// client keeps its own edit-mode flag.
func (h *Handler) checkPassword(w http.ResponseWriter, r *http.Request, password string) {
	ip := middleware.ClientIP(r)

	if h.lockout != nil {
		if locked, remaining := h.lockout.IsLocked(ip); locked {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(remaining.Seconds()))))
			WriteJSON(w, http.StatusTooManyRequests, failureResponse{Error: msgTooManyAttempts})
			return
		}
	}

	if h.verifier != nil && h.verifier.Verify(password) {
		if h.lockout != nil {
			h.lockout.RecordSuccess(ip)
		}
		h.logger.Info("admin password accepted", "ip", ip)
		WriteJSON(w, http.StatusOK, successResponse{Success: true})
		return
	}

	if h.lockout != nil {
		h.lockout.RecordFailure(ip)
	}
	h.logger.Warn("admin password rejected", "ip", ip)
	WriteJSON(w, http.StatusUnauthorized, successResponse{Success: false})
}
