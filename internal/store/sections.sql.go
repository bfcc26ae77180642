// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/tuition-cms/internal/model"
)

const listSections = `SELECT section, field, content FROM sections ORDER BY section, field`

// ListSections returns every content section ordered by (section, field).
func (q *Queries) ListSections(ctx context.Context) ([]model.Section, error) {
	rows, err := q.query(ctx, listSections)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.Section{}
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.Section, &s.Field, &s.Content); err != nil {
			return nil, fmt.Errorf("scanning section: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sections: %w", err)
	}
	return items, nil
}

const getSection = `SELECT section, field, content FROM sections WHERE section = ? AND field = ?`

// GetSection returns the section for (section, field) or sql.ErrNoRows.
func (q *Queries) GetSection(ctx context.Context, section, field string) (model.Section, error) {
	var s model.Section
	err := q.queryRow(ctx, getSection, section, field).Scan(&s.Section, &s.Field, &s.Content)
	return s, err
}

const countSections = `SELECT COUNT(*) FROM sections`

// CountSections returns the number of stored sections.
func (q *Queries) CountSections(ctx context.Context) (int64, error) {
	var n int64
	err := q.queryRow(ctx, countSections).Scan(&n)
	return n, err
}

const upsertSection = `
INSERT INTO sections (section, field, content, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (section, field) DO UPDATE SET
    content = excluded.content,
    updated_at = excluded.updated_at`

// UpsertSectionParams holds the key and content of a section write.
type UpsertSectionParams struct {
	Section string
	Field   string
	Content string
}

// UpsertSection inserts the section or replaces its content in one statement.
func (q *Queries) UpsertSection(ctx context.Context, arg UpsertSectionParams) error {
	_, err := q.exec(ctx, upsertSection, arg.Section, arg.Field, arg.Content, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upserting section %s/%s: %w", arg.Section, arg.Field, err)
	}
	return nil
}
