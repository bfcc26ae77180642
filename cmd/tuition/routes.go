// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olegiv/tuition-cms/internal/config"
	"github.com/olegiv/tuition-cms/internal/handler"
	"github.com/olegiv/tuition-cms/internal/handler/api"
	"github.com/olegiv/tuition-cms/internal/middleware"
	"github.com/olegiv/tuition-cms/internal/version"
	"github.com/olegiv/tuition-cms/web"
)

// staticMaxAge is the Cache-Control max-age for embedded assets (1 day).
const staticMaxAge = 86400

type routerDeps struct {
	Config   *config.Config
	DB       *sql.DB
	Info     version.Info
	Site     *web.Site
	Verifier api.PasswordVerifier
	Lockout  api.Lockout
	Notifier api.Notifier
	CSRFKey  []byte
	Logger   *slog.Logger
}

func newRouter(d routerDeps) chi.Router {
	cfg := d.Config

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))

	healthHandler := handler.NewHealthHandler(d.DB, d.Info)
	r.Get("/health", healthHandler.Health)
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	apiHandler := api.NewHandler(d.DB, cfg.DBDriver, api.Deps{
		Verifier: d.Verifier,
		Lockout:  d.Lockout,
		Notifier: d.Notifier,
		Logger:   d.Logger,
	})
	rateLimiter := middleware.NewAPIRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst)
	devHost := "localhost:" + strconv.Itoa(cfg.ServerPort)
	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig(d.CSRFKey, cfg.IsDevelopment(), devHost))

	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware())
		r.Use(csrfMiddleware)
		r.Use(middleware.NoStore)
		apiHandler.Register(r)
	})
	slog.Info("API mounted", "routes", []string{api.RouteData, api.RouteSections, api.RouteSubjects, api.RouteBooking})

	r.Get("/", d.Site.Index)
	r.Handle("/static/*", middleware.StaticCache(staticMaxAge)(http.StripPrefix("/static/", d.Site.Assets())))

	return r
}
