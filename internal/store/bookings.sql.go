// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/olegiv/tuition-cms/internal/model"
)

const createBooking = `
INSERT INTO bookings (reference, name, email, date, time, message, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id`

// CreateBookingParams holds a submitted consultation request.
type CreateBookingParams struct {
	Name    string
	Email   string
	Date    string
	Time    string
	Message string
}

// CreateBooking stores a booking under a fresh reference and returns it.
func (q *Queries) CreateBooking(ctx context.Context, arg CreateBookingParams) (model.Booking, error) {
	b := model.Booking{
		Reference: uuid.NewString(),
		Name:      arg.Name,
		Email:     arg.Email,
		Date:      arg.Date,
		Time:      arg.Time,
		Message:   arg.Message,
		CreatedAt: time.Now().UTC(),
	}

	err := q.queryRow(ctx, createBooking,
		b.Reference, b.Name, b.Email, b.Date, b.Time, b.Message, b.CreatedAt,
	).Scan(&b.ID)
	if err != nil {
		return model.Booking{}, fmt.Errorf("creating booking: %w", err)
	}
	return b, nil
}

const getBookingByReference = `
SELECT id, reference, name, email, date, time, message
FROM bookings WHERE reference = ?`

// GetBookingByReference returns the booking with the given reference or sql.ErrNoRows.
func (q *Queries) GetBookingByReference(ctx context.Context, reference string) (model.Booking, error) {
	var b model.Booking
	err := q.queryRow(ctx, getBookingByReference, reference).Scan(
		&b.ID, &b.Reference, &b.Name, &b.Email, &b.Date, &b.Time, &b.Message,
	)
	return b, err
}

const countBookings = `SELECT COUNT(*) FROM bookings`

// CountBookings returns the number of stored bookings.
func (q *Queries) CountBookings(ctx context.Context) (int64, error) {
	var n int64
	err := q.queryRow(ctx, countBookings).Scan(&n)
	return n, err
}
