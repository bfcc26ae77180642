// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package email abstracts the transactional email provider used for booking
// notifications.
package email

import (
	"context"
	"time"
)

// Message is a single outgoing HTML email.
type Message struct {
	To      []string
	From    string // falls back to the sender's default
	Subject string
	HTML    string
	ReplyTo string
}

// Result is the provider receipt for an accepted message.
type Result struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers messages through an external provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Result, error)
	SendBatch(ctx context.Context, msgs []Message) ([]Result, error)
}
