// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/olegiv/tuition-cms/internal/config"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by Queries.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries runs the content store statements against a database or transaction.
// Statements are written with "?" placeholders and rebound per driver.
type Queries struct {
	db     DBTX
	driver string
}

// New returns Queries for a SQLite database.
func New(db DBTX) *Queries {
	return NewWithDriver(db, config.DriverSQLite)
}

// NewWithDriver returns Queries bound to the placeholder style of driver.
func NewWithDriver(db DBTX, driver string) *Queries {
	return &Queries{db: db, driver: driver}
}

// WithTx returns a copy of q that runs against tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx, driver: q.driver}
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return q.db.ExecContext(ctx, q.rebind(query), args...)
}

func (q *Queries) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.rebind(query), args...)
}

func (q *Queries) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.rebind(query), args...)
}

// rebind rewrites "?" placeholders to "$1", "$2", ... for PostgreSQL.
func (q *Queries) rebind(query string) string {
	if q.driver != config.DriverPostgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
