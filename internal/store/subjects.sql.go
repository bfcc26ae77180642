// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/olegiv/tuition-cms/internal/model"
)

const listSubjects = `SELECT id, category, name, description FROM subjects ORDER BY category, name, id`

// ListSubjects returns the subject catalog ordered by (category, name).
func (q *Queries) ListSubjects(ctx context.Context) ([]model.Subject, error) {
	rows, err := q.query(ctx, listSubjects)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Category, &s.Name, &s.Description); err != nil {
			return nil, fmt.Errorf("scanning subject: %w", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return items, nil
}

const getSubject = `SELECT id, category, name, description FROM subjects WHERE id = ?`

// GetSubject returns the subject with the given id or sql.ErrNoRows.
func (q *Queries) GetSubject(ctx context.Context, id int64) (model.Subject, error) {
	var s model.Subject
	err := q.queryRow(ctx, getSubject, id).Scan(&s.ID, &s.Category, &s.Name, &s.Description)
	return s, err
}

const createSubject = `
INSERT INTO subjects (category, name, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING id`

// SubjectParams holds the mutable fields of a subject.
type SubjectParams struct {
	Category    string
	Name        string
	Description string
}

// CreateSubject inserts a subject and returns the id assigned by the database.
func (q *Queries) CreateSubject(ctx context.Context, arg SubjectParams) (int64, error) {
	now := time.Now().UTC()
	var id int64
	err := q.queryRow(ctx, createSubject, arg.Category, arg.Name, arg.Description, now, now).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("creating subject: %w", err)
	}
	return id, nil
}

const updateSubject = `
UPDATE subjects
SET category = ?, name = ?, description = ?, updated_at = ?
WHERE id = ?`

// UpdateSubject replaces category, name and description of subject id.
// It returns the number of rows affected; zero is not an error.
func (q *Queries) UpdateSubject(ctx context.Context, id int64, arg SubjectParams) (int64, error) {
	res, err := q.exec(ctx, updateSubject, arg.Category, arg.Name, arg.Description, time.Now().UTC(), id)
	if err != nil {
		return 0, fmt.Errorf("updating subject %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

const deleteSubject = `DELETE FROM subjects WHERE id = ?`

// DeleteSubject removes subject id and returns the number of rows affected.
func (q *Queries) DeleteSubject(ctx context.Context, id int64) (int64, error) {
	res, err := q.exec(ctx, deleteSubject, id)
	if err != nil {
		return 0, fmt.Errorf("deleting subject %d: %w", id, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
