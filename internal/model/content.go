// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

import (
	"strings"
	"time"
)

// Subject categories. The set is closed.
const (
	CategorySchool     = "school"
	CategoryUniversity = "university"
)

// AllCategories returns every valid subject category.
func AllCategories() []string {
	return []string{CategorySchool, CategoryUniversity}
}

// IsValidCategory reports whether c is one of the known subject categories.
func IsValidCategory(c string) bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// Section is a single editable content slot on the site, keyed by (Section, Field).
type Section struct {
	Section string `json:"section"`
	Field   string `json:"field"`
	Content string `json:"content"`
}

// ElementID returns the page element id the section is rendered into.
func (s Section) ElementID() string {
	return s.Section + "-" + s.Field
}

// Subject is an entry of the offered subject catalog.
type Subject struct {
	ID          int64  `json:"id"`
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Booking is a consultation request. Bookings are write-only from the site's perspective.
type Booking struct {
	ID        int64     `json:"-"`
	Reference string    `json:"reference"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// EditableField describes a text element the administrator can edit in place.
type EditableField struct {
	ElementID string `json:"id"`
	Section   string `json:"section"`
	Field     string `json:"field"`
}

// EditableImage describes an image the administrator can replace by URL.
// Background images are rendered through CSS rather than an img src.
type EditableImage struct {
	ElementID  string `json:"id"`
	Section    string `json:"section"`
	Field      string `json:"field"`
	Background bool   `json:"background,omitempty"`
}

// EditableFields returns the fixed set of in-place editable text elements.
func EditableFields() []EditableField {
	ids := []string{
		"home-title",
		"home-subtitle",
		"about-bio",
		"contact-address",
		"contact-phone",
		"contact-email",
	}
	fields := make([]EditableField, 0, len(ids))
	for _, id := range ids {
		section, field, _ := SplitElementID(id)
		fields = append(fields, EditableField{ElementID: id, Section: section, Field: field})
	}
	return fields
}

// EditableImages returns the two images that can be replaced in edit mode.
func EditableImages() []EditableImage {
	return []EditableImage{
		{ElementID: "hero-image", Section: "home", Field: "hero_image", Background: true},
		{ElementID: "about-image", Section: "about", Field: "image"},
	}
}

// SplitElementID splits an element id into (section, field) on its first "-".
// ok is false when either part would be empty.
func SplitElementID(id string) (section, field string, ok bool) {
	section, field, found := strings.Cut(id, "-")
	if !found || section == "" || field == "" {
		return "", "", false
	}
	return section, field, true
}
