// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/olegiv/tuition-cms/internal/service"
	"github.com/olegiv/tuition-cms/internal/store"
)

// BookingRequest is the body of POST /api/booking.
type BookingRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Message string `json:"message"`
}

// Validate checks the required booking fields.
func (req BookingRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Time, validation.Required),
	)
}

// BookingResponse reports a stored booking and whether notifications went out.
type BookingResponse struct {
	Success   bool   `json:"success"`
	EmailSent bool   `json:"emailSent"`
	Message   string `json:"message,omitempty"`
}

// Booking handles POST /api/booking. The booking is stored first; email
// problems never turn a stored booking into a failure.
func (h *Handler) Booking(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required booking fields")
		return
	}

	ctx := r.Context()

	booking, err := h.queries.CreateBooking(ctx, store.CreateBookingParams{
		Name:    req.Name,
		Email:   req.Email,
		Date:    req.Date,
		Time:    req.Time,
		Message: req.Message,
	})
	if err != nil {
		h.logger.Error("storing booking", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to process booking")
		return
	}
	h.logger.Info("booking stored", "reference", booking.Reference, "date", booking.Date, "time", booking.Time)

	result := service.NotifyResult{Message: service.MsgMissingAPIKey}
	if h.notifier != nil {
		result = h.notifier.Notify(ctx, booking)
	}

	WriteJSON(w, http.StatusOK, BookingResponse{
		Success:   true,
		EmailSent: result.Sent,
		Message:   result.Message,
	})
}
