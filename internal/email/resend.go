// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/resend/resend-go/v2"
)

// resendBatchLimit is the maximum number of messages per Resend batch call.
const resendBatchLimit = 100

// ResendSender sends messages via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender using apiKey and the default from address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (s *ResendSender) request(msg Message) *resend.SendEmailRequest {
	from := msg.From
	if from == "" {
		from = s.from
	}
	req := &resend.SendEmailRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		req.ReplyTo = msg.ReplyTo
	}
	return req
}

// Send delivers a single message.
func (s *ResendSender) Send(ctx context.Context, msg Message) (Result, error) {
	sent, err := s.client.Emails.SendWithContext(ctx, s.request(msg))
	if err != nil {
		slog.Error("resend send failed", "error", err, "subject", msg.Subject)
		return Result{}, fmt.Errorf("resend send: %w", err)
	}

	slog.Info("email sent", "message_id", sent.Id, "subject", msg.Subject)
	return Result{MessageID: sent.Id, SentAt: time.Now()}, nil
}

// SendBatch delivers msgs using the batch endpoint, chunked to the provider
// limit. Results are returned in request order up to the first failed chunk.
func (s *ResendSender) SendBatch(ctx context.Context, msgs []Message) ([]Result, error) {
	if len(msgs) == 0 {
		return nil, nil
	}

	var results []Result
	for start := 0; start < len(msgs); start += resendBatchLimit {
		end := min(start+resendBatchLimit, len(msgs))

		params := make([]*resend.SendEmailRequest, 0, end-start)
		for _, msg := range msgs[start:end] {
			params = append(params, s.request(msg))
		}

		resp, err := s.client.Batch.SendWithContext(ctx, params)
		if err != nil {
			slog.Error("resend batch failed", "error", err, "batch_size", len(params))
			return results, fmt.Errorf("resend batch send: %w", err)
		}

		for _, item := range resp.Data {
			results = append(results, Result{MessageID: item.Id, SentAt: time.Now()})
		}
	}

	slog.Info("email batch sent", "count", len(results))
	return results, nil
}
