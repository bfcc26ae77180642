// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs messages instead of delivering them. It is used in
// development when no provider key is configured.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs msg.
func (s *NoopSender) Send(_ context.Context, msg Message) (Result, error) {
	slog.Info("noop email send", "to", msg.To, "subject", msg.Subject)
	return Result{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// SendBatch logs every message in msgs.
func (s *NoopSender) SendBatch(ctx context.Context, msgs []Message) ([]Result, error) {
	results := make([]Result, 0, len(msgs))
	for _, msg := range msgs {
		r, _ := s.Send(ctx, msg)
		results = append(results, r)
	}
	return results, nil
}
