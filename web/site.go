// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web embeds the public site and serves its page and assets.
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/olegiv/tuition-cms/internal/model"
)

// DefaultTitle is the site name used in the page title and footer.
const DefaultTitle = "Expert Tuition Services"

// PageData is passed to the index template.
type PageData struct {
	Title    string
	Year     int
	Editable string
}

// editableConfig tells the client controller which elements are editable.
type editableConfig struct {
	Fields []model.EditableField `json:"fields"`
	Images []model.EditableImage `json:"images"`
}

// Site serves the rendered index page and the embedded static assets.
type Site struct {
	index  []byte
	assets http.Handler
}

// NewSite renders the index page once and prepares the asset file server.
func NewSite(title string) (*Site, error) {
	if title == "" {
		title = DefaultTitle
	}

	tmpl, err := template.ParseFS(Templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}

	editable, err := json.Marshal(editableConfig{
		Fields: model.EditableFields(),
		Images: model.EditableImages(),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding editable config: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, PageData{
		Title:    title,
		Year:     time.Now().Year(),
		Editable: string(editable),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering index: %w", err)
	}

	staticFS, err := fs.Sub(Static, "static")
	if err != nil {
		return nil, fmt.Errorf("loading static assets: %w", err)
	}

	return &Site{
		index:  buf.Bytes(),
		assets: http.FileServer(http.FS(staticFS)),
	}, nil
}

// Index serves the site page.
func (s *Site) Index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(s.index)
}

// Assets serves files from the embedded static directory. Mount it behind
// http.StripPrefix.
func (s *Site) Assets() http.Handler {
	return s.assets
}
