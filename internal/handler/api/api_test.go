// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/tuition-cms/internal/auth"
	"github.com/olegiv/tuition-cms/internal/config"
	"github.com/olegiv/tuition-cms/internal/model"
	"github.com/olegiv/tuition-cms/internal/service"
	"github.com/olegiv/tuition-cms/internal/store"
	"github.com/olegiv/tuition-cms/internal/testutil"
)

const testPassword = "letmein"

type fakeNotifier struct {
	mu       sync.Mutex
	result   service.NotifyResult
	bookings []model.Booking
}

func (f *fakeNotifier) Notify(_ context.Context, b model.Booking) service.NotifyResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, b)
	return f.result
}

type testEnv struct {
	router   chi.Router
	db       *sql.DB
	queries  *store.Queries
	notifier *fakeNotifier
}

func newTestEnv(t *testing.T, deps Deps) *testEnv {
	t.Helper()

	db, queries := testutil.TestQueries(t)
	if deps.Verifier == nil {
		deps.Verifier = auth.NewAdminVerifier(testPassword, "")
	}
	notifier, _ := deps.Notifier.(*fakeNotifier)
	if deps.Notifier == nil {
		notifier = &fakeNotifier{result: service.NotifyResult{Sent: true}}
		deps.Notifier = notifier
	}
	deps.Logger = testutil.TestLogger()

	r := chi.NewRouter()
	NewHandler(db, config.DriverSQLite, deps).Register(r)

	return &testEnv{router: r, db: db, queries: queries, notifier: notifier}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), "body: %s", rec.Body.String())
	return body
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, Deps{})

	tests := []struct {
		method string
		path   string
		allow  string
	}{
		{http.MethodPost, RouteData, http.MethodGet},
		{http.MethodDelete, RouteData, http.MethodGet},
		{http.MethodGet, RouteSections, http.MethodPost},
		{http.MethodPut, RouteSections, http.MethodPost},
		{http.MethodGet, RouteSubjects, http.MethodPost},
		{http.MethodPatch, RouteSubjects, http.MethodPost},
		{http.MethodGet, RouteBooking, http.MethodPost},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := env.do(tt.method, tt.path, "")
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, tt.allow, rec.Header().Get("Allow"))
			assert.Equal(t, "Method not allowed", decodeBody(t, rec)["error"])
		})
	}
}

func TestData_Empty(t *testing.T) {
	env := newTestEnv(t, Deps{})

	rec := env.do(http.MethodGet, RouteData, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"sections":[],"subjects":[]}`, rec.Body.String())
}

func TestData_ReturnsStoredContent(t *testing.T) {
	env := newTestEnv(t, Deps{})
	ctx := context.Background()

	require.NoError(t, env.queries.UpsertSection(ctx, store.UpsertSectionParams{Section: "home", Field: "title", Content: "Welcome"}))
	require.NoError(t, env.queries.UpsertSection(ctx, store.UpsertSectionParams{Section: "about", Field: "bio", Content: "Ten years"}))
	_, err := env.queries.CreateSubject(ctx, store.SubjectParams{Category: model.CategoryUniversity, Name: "Physics", Description: "Mechanics"})
	require.NoError(t, err)
	_, err = env.queries.CreateSubject(ctx, store.SubjectParams{Category: model.CategorySchool, Name: "Maths", Description: "GCSE"})
	require.NoError(t, err)

	rec := env.do(http.MethodGet, RouteData, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got DataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	require.Len(t, got.Sections, 2)
	assert.Equal(t, "about", got.Sections[0].Section)
	assert.Equal(t, "home", got.Sections[1].Section)

	require.Len(t, got.Subjects, 2)
	assert.Equal(t, "Maths", got.Subjects[0].Name)
	assert.Equal(t, "Physics", got.Subjects[1].Name)
	assert.NotZero(t, got.Subjects[0].ID)
}

func TestHandlers_StoreFailure(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		wantErr string
	}{
		{"data", http.MethodGet, RouteData, "", "Failed to fetch data from database"},
		{"section update", http.MethodPost, RouteSections,
			`{"section":"home","field":"title","content":"x"}`, "Failed to update section"},
		{"subject add", http.MethodPost, RouteSubjects,
			`{"action":"add","category":"school","name":"Maths","description":"GCSE"}`, "Failed to process subject operation"},
		{"subject edit", http.MethodPost, RouteSubjects,
			`{"action":"edit","id":1,"category":"school","name":"Maths","description":"GCSE"}`, "Failed to process subject operation"},
		{"subject delete", http.MethodPost, RouteSubjects,
			`{"action":"delete","id":1}`, "Failed to process subject operation"},
		{"booking", http.MethodPost, RouteBooking, validBooking, "Failed to process booking"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, Deps{})
			require.NoError(t, env.db.Close())

			rec := env.do(tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.wantErr+`"}`, rec.Body.String())

			env.notifier.mu.Lock()
			defer env.notifier.mu.Unlock()
			assert.Empty(t, env.notifier.bookings)
		})
	}
}
