// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/olegiv/tuition-cms/internal/model"
)

// DefaultSections is the starter site copy written by Seed.
var DefaultSections = []UpsertSectionParams{
	{Section: "home", Field: "title", Content: "Expert Tuition Services"},
	{Section: "home", Field: "subtitle", Content: "Personalised tutoring for school and university students"},
	{Section: "home", Field: "hero_image", Content: "https://placehold.co/1600x600?text=Expert+Tuition"},
	{Section: "about", Field: "bio", Content: "Experienced tutor helping students reach their potential."},
	{Section: "about", Field: "image", Content: "https://placehold.co/400x400?text=About"},
	{Section: "contact", Field: "address", Content: "123 Example Street"},
	{Section: "contact", Field: "phone", Content: "+1 555 0100"},
	{Section: "contact", Field: "email", Content: "hello@example.com"},
}

// DefaultSubjects is the starter subject catalog written by Seed.
var DefaultSubjects = []SubjectParams{
	{Category: model.CategorySchool, Name: "Mathematics", Description: "Algebra, geometry and exam preparation."},
	{Category: model.CategorySchool, Name: "English", Description: "Reading, writing and essay skills."},
	{Category: model.CategoryUniversity, Name: "Calculus", Description: "Limits, derivatives and integrals."},
	{Category: model.CategoryUniversity, Name: "Statistics", Description: "Probability, inference and data analysis."},
}

// Seed writes the default site content when doSeed is set and the store is empty.
// Existing content is never overwritten.
func Seed(ctx context.Context, db *sql.DB, driver string, doSeed bool) error {
	if !doSeed {
		slog.Info("database seeding disabled, skipping seed")
		return nil
	}

	queries := NewWithDriver(db, driver)

	n, err := queries.CountSections(ctx)
	if err != nil {
		return fmt.Errorf("counting sections: %w", err)
	}
	if n > 0 {
		slog.Info("site content already exists, skipping seed", "sections", n)
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	qtx := queries.WithTx(tx)
	for _, s := range DefaultSections {
		if err := qtx.UpsertSection(ctx, s); err != nil {
			return fmt.Errorf("seeding sections: %w", err)
		}
	}
	for _, s := range DefaultSubjects {
		if _, err := qtx.CreateSubject(ctx, s); err != nil {
			return fmt.Errorf("seeding subjects: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing seed: %w", err)
	}

	slog.Info("seeded default site content",
		"sections", len(DefaultSections),
		"subjects", len(DefaultSubjects),
	)
	return nil
}
