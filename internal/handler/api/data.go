// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/olegiv/tuition-cms/internal/model"
)

// DataResponse is the full site content returned by GET /api/data.
type DataResponse struct {
	Sections []model.Section `json:"sections"`
	Subjects []model.Subject `json:"subjects"`
}

// Data handles GET /api/data.
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	ctx := r.Context()

	sections, err := h.queries.ListSections(ctx)
	if err != nil {
		h.logger.Error("fetching sections", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch data from database")
		return
	}

	subjects, err := h.queries.ListSubjects(ctx)
	if err != nil {
		h.logger.Error("fetching subjects", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch data from database")
		return
	}

	WriteJSON(w, http.StatusOK, DataResponse{Sections: sections, Subjects: subjects})
}
