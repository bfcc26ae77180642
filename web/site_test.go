// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"encoding/json"
	"html"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/olegiv/tuition-cms/internal/model"
	"github.com/olegiv/tuition-cms/internal/store"
)

func newTestSite(t *testing.T) *Site {
	t.Helper()
	s, err := NewSite("")
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}
	return s
}

func TestIndex(t *testing.T) {
	s := newTestSite(t)

	rec := httptest.NewRecorder()
	s.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}

	body := rec.Body.String()
	for _, id := range []string{
		"home-title", "home-subtitle", "hero-image", "about-bio", "about-image",
		"contact-address", "contact-phone", "contact-email",
		"school-subjects-container", "university-subjects-container",
		"admin-password", "login-btn", "logout-btn",
		"booking-form", "booking-confirmation",
		"subject-modal", "subject-form", "subject-action", "subject-id", "subject-category",
	} {
		if !strings.Contains(body, `id="`+id+`"`) {
			t.Errorf("index is missing element %q", id)
		}
	}
	if !strings.Contains(body, "<title>"+DefaultTitle+"</title>") {
		t.Error("index is missing the default title")
	}
}

func TestIndexEditableConfig(t *testing.T) {
	s := newTestSite(t)

	m := regexp.MustCompile(`data-editable="([^"]*)"`).FindSubmatch(s.index)
	if m == nil {
		t.Fatal("index has no data-editable attribute")
	}

	var cfg editableConfig
	if err := json.Unmarshal([]byte(html.UnescapeString(string(m[1]))), &cfg); err != nil {
		t.Fatalf("decoding editable config: %v", err)
	}
	if len(cfg.Fields) != 6 {
		t.Errorf("fields = %d, want 6", len(cfg.Fields))
	}
	if len(cfg.Images) != 2 {
		t.Errorf("images = %d, want 2", len(cfg.Images))
	}
	if f := cfg.Fields[0]; f.ElementID != "home-title" || f.Section != "home" || f.Field != "title" {
		t.Errorf("first field = %+v", f)
	}
	if img := cfg.Images[0]; img.ElementID != "hero-image" || !img.Background {
		t.Errorf("first image = %+v", img)
	}
}

func TestAssets(t *testing.T) {
	s := newTestSite(t)
	h := http.StripPrefix("/static/", s.Assets())

	tests := []struct {
		path     string
		wantCode int
		wantType string
	}{
		{"/static/css/styles.css", http.StatusOK, "text/css"},
		{"/static/js/script.js", http.StatusOK, "javascript"},
		{"/static/missing.txt", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if tt.wantType != "" && !strings.Contains(rec.Header().Get("Content-Type"), tt.wantType) {
				t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
			}
		})
	}
}

// Every seeded section must land on an element the controller can render.
func TestIndex_SeededSectionsHaveElements(t *testing.T) {
	s := newTestSite(t)

	rec := httptest.NewRecorder()
	s.Index(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()

	imageIDs := make(map[string]string)
	for _, img := range model.EditableImages() {
		imageIDs[img.Section+"/"+img.Field] = img.ElementID
	}

	for _, sec := range store.DefaultSections {
		id := model.Section{Section: sec.Section, Field: sec.Field}.ElementID()
		if img, ok := imageIDs[sec.Section+"/"+sec.Field]; ok {
			id = img
		}
		if !strings.Contains(body, `id="`+id+`"`) {
			t.Errorf("seeded section %s/%s has no element %q", sec.Section, sec.Field, id)
		}
	}
}
