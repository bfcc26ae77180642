// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic shared by the HTTP handlers.
package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/olegiv/tuition-cms/internal/email"
	"github.com/olegiv/tuition-cms/internal/model"
)

// Outcome messages reported to the visitor when a booking was stored but not
// (fully) announced by email.
const (
	MsgMissingAPIKey   = "Booking saved but email notifications were not sent due to missing API key"
	MsgMissingEmailCfg = "Booking saved but email notifications were not sent due to missing email configuration"
	MsgSendFailed      = "Booking saved but there was an error sending email notifications"
)

// Subjects of the two notification emails.
const (
	AdminSubjectPrefix  = "New Tuition Consultation Booking: "
	ConfirmationSubject = "Your Tuition Consultation Booking Confirmation"
)

// DisplayDateLayout renders booking dates as "Wednesday, May 1, 2024".
const DisplayDateLayout = "Monday, January 2, 2006"

const noMessage = "No message provided"

// NotifierConfig carries the email settings the notifier depends on.
type NotifierConfig struct {
	APIKey     string
	AdminEmail string
	FromEmail  string
}

// NotifyResult describes what happened to the notification emails.
type NotifyResult struct {
	Sent    bool
	Message string
}

// BookingNotifier sends the administrator notification and the requester
// confirmation for a stored booking.
type BookingNotifier struct {
	cfg    NotifierConfig
	sender email.Sender
	logger *slog.Logger
}

// NewBookingNotifier creates a BookingNotifier. A nil logger uses slog.Default.
func NewBookingNotifier(cfg NotifierConfig, sender email.Sender, logger *slog.Logger) *BookingNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingNotifier{cfg: cfg, sender: sender, logger: logger}
}

// Notify sends both emails for b in a single provider batch. It never fails:
// every problem is folded into the returned result.
func (n *BookingNotifier) Notify(ctx context.Context, b model.Booking) NotifyResult {
	if n.cfg.APIKey == "" || n.sender == nil {
		n.logger.Warn("email provider key not configured, skipping booking notifications",
			"reference", b.Reference)
		return NotifyResult{Message: MsgMissingAPIKey}
	}
	if n.cfg.AdminEmail == "" || n.cfg.FromEmail == "" {
		n.logger.Warn("email addresses not configured, skipping booking notifications",
			"reference", b.Reference)
		return NotifyResult{Message: MsgMissingEmailCfg}
	}

	msgs, err := n.Messages(b)
	if err != nil {
		n.logger.Error("rendering booking emails", "error", err, "reference", b.Reference)
		return NotifyResult{Message: MsgSendFailed}
	}

	if _, err := n.sender.SendBatch(ctx, msgs); err != nil {
		n.logger.Error("sending booking emails", "error", err, "reference", b.Reference)
		return NotifyResult{Message: MsgSendFailed}
	}

	n.logger.Info("booking notifications sent", "reference", b.Reference)
	return NotifyResult{Sent: true}
}

// Messages renders the admin notification and the requester confirmation.
func (n *BookingNotifier) Messages(b model.Booking) ([]email.Message, error) {
	data := bookingEmailData{
		Name:    b.Name,
		Email:   b.Email,
		Date:    FormatBookingDate(b.Date),
		Time:    b.Time,
		Message: b.Message,
	}
	if data.Message == "" {
		data.Message = noMessage
	}

	adminHTML, err := render(adminTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("rendering admin email: %w", err)
	}
	userHTML, err := render(confirmationTemplate, data)
	if err != nil {
		return nil, fmt.Errorf("rendering confirmation email: %w", err)
	}

	return []email.Message{
		{
			To:      []string{n.cfg.AdminEmail},
			From:    n.cfg.FromEmail,
			Subject: AdminSubjectPrefix + b.Name,
			HTML:    adminHTML,
			ReplyTo: b.Email,
		},
		{
			To:      []string{b.Email},
			From:    n.cfg.FromEmail,
			Subject: ConfirmationSubject,
			HTML:    userHTML,
		},
	}, nil
}

// FormatBookingDate renders an ISO date for humans. Values that do not parse
// are returned unchanged.
func FormatBookingDate(date string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Format(DisplayDateLayout)
		}
	}
	return date
}

type bookingEmailData struct {
	Name    string
	Email   string
	Date    string
	Time    string
	Message string
}

func render(tmpl *template.Template, data bookingEmailData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var adminTemplate = template.Must(template.New("admin").Parse(`
<h2>New Booking Request</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Time:</strong> {{.Time}}</p>
<p><strong>Message:</strong> {{.Message}}</p>
`))

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`
<h2>Booking Confirmation</h2>
<p>Dear {{.Name}},</p>
<p>Thank you for booking a tuition consultation with us. We have received your request for:</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p><strong>Time:</strong> {{.Time}}</p>
<p>We will review your booking and contact you shortly to confirm the appointment.</p>
<p>If you have any questions, please reply to this email or call us.</p>
<p>Best regards,<br>Expert Tuition Services</p>
`))
