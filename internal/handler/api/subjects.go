// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/olegiv/tuition-cms/internal/model"
	"github.com/olegiv/tuition-cms/internal/store"
)

// Subject actions.
const (
	ActionAdd    = "add"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// SubjectRequest is the body of POST /api/subjects.
type SubjectRequest struct {
	Action      string     `json:"action"`
	ID          FlexibleID `json:"id"`
	Category    string     `json:"category"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
}

func (req SubjectRequest) validateFields() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Category, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Description, validation.Required),
	)
}

func (req SubjectRequest) validateID() error {
	return validation.Validate(int64(req.ID), validation.Required)
}

func (req SubjectRequest) validateCategory() error {
	return validation.Validate(req.Category, validation.By(knownCategory))
}

func knownCategory(value any) error {
	if c, _ := value.(string); !model.IsValidCategory(c) {
		return errors.New("unknown category")
	}
	return nil
}

func (req SubjectRequest) params() store.SubjectParams {
	return store.SubjectParams{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
	}
}

// Subjects handles POST /api/subjects.
func (h *Handler) Subjects(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req SubjectRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := validation.Validate(req.Action, validation.Required); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required action field")
		return
	}

	ctx := r.Context()
	var err error

	switch req.Action {
	case ActionAdd:
		if req.validateFields() != nil {
			writeError(w, http.StatusBadRequest, "Missing required fields for adding a subject")
			return
		}
		if req.validateCategory() != nil {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		var id int64
		id, err = h.queries.CreateSubject(ctx, req.params())
		if err == nil {
			h.logger.Info("subject added", "id", id, "name", req.Name)
		}

	case ActionEdit:
		if req.validateID() != nil || req.validateFields() != nil {
			writeError(w, http.StatusBadRequest, "Missing required fields for editing a subject")
			return
		}
		if req.validateCategory() != nil {
			writeError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		var n int64
		n, err = h.queries.UpdateSubject(ctx, int64(req.ID), req.params())
		if err == nil && n == 0 {
			h.logger.Info("subject edit matched no row", "id", int64(req.ID))
		}

	case ActionDelete:
		if req.validateID() != nil {
			writeError(w, http.StatusBadRequest, "Missing required ID field for deleting a subject")
			return
		}
		var n int64
		n, err = h.queries.DeleteSubject(ctx, int64(req.ID))
		if err == nil && n == 0 {
			h.logger.Info("subject delete matched no row", "id", int64(req.ID))
		}

	default:
		writeError(w, http.StatusBadRequest, "Invalid action")
		return
	}

	if err != nil {
		h.logger.Error("processing subject operation", "error", err, "action", req.Action)
		writeError(w, http.StatusInternalServerError, "Failed to process subject operation")
		return
	}

	WriteJSON(w, http.StatusOK, successResponse{Success: true})
}
