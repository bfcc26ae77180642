// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/tuition-cms/internal/auth"
	"github.com/olegiv/tuition-cms/internal/config"
	"github.com/olegiv/tuition-cms/internal/email"
	"github.com/olegiv/tuition-cms/internal/logging"
	"github.com/olegiv/tuition-cms/internal/middleware"
	"github.com/olegiv/tuition-cms/internal/service"
	"github.com/olegiv/tuition-cms/internal/store"
	"github.com/olegiv/tuition-cms/internal/version"
	"github.com/olegiv/tuition-cms/web"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")
	hashPassword := flag.String("hash-password", "", "Print the argon2id hash of the given admin password and exit")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "tuition - tuition site with editable content and booking\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_DB_DRIVER            sqlite|postgres (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_DB_DSN               SQLite path or PostgreSQL URL (default: ./data/tuition.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_ENV                  development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_ADMIN_PASSWORD       Admin password\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_ADMIN_PASSWORD_HASH  Admin password argon2id hash (see -hash-password)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_RESEND_API_KEY       Email provider API key\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_ADMIN_EMAIL          Booking notification recipient\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_FROM_EMAIL           Sender address for booking emails\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_EMAIL_LOG_ONLY       Log booking emails instead of sending them\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TUITION_DO_SEED              Seed default content into an empty database\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	info := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}

	if *showVersion {
		_, _ = fmt.Printf("tuition %s\n", info)
		os.Exit(0)
	}

	if *hashPassword != "" {
		hash, err := auth.HashArgon2(*hashPassword)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "hashing password: %v\n", err)
			os.Exit(1)
		}
		_, _ = fmt.Println(hash)
		os.Exit(0)
	}

	if err := run(info); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(info version.Info) error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	slog.SetDefault(logger)
	slog.Info("starting tuition", "version", info.String())

	if cfg.DBDriver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBDSN), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.NewDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	if err := store.Seed(context.Background(), db, cfg.DBDriver, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	var sender email.Sender
	switch {
	case cfg.EmailLogOnly:
		sender = email.NewNoopSender()
		slog.Info("email provider initialized", "provider", "log")
	case cfg.ResendAPIKey != "":
		sender = email.NewResendSender(cfg.ResendAPIKey, cfg.FromEmail)
		slog.Info("email provider initialized", "provider", "resend")
	}

	loginProtection := middleware.NewLoginProtection(middleware.LoginProtectionConfig{
		MaxFailedAttempts: cfg.LoginMaxFailures,
	})
	defer loginProtection.Stop()

	// The gorilla-compatible CSRF API requires a key; validation does not use it.
	csrfKey := make([]byte, 32)
	if _, err := rand.Read(csrfKey); err != nil {
		return fmt.Errorf("generating csrf key: %w", err)
	}

	site, err := web.NewSite(web.DefaultTitle)
	if err != nil {
		return fmt.Errorf("loading site: %w", err)
	}

	r := newRouter(routerDeps{
		Config:   cfg,
		DB:       db,
		Info:     info,
		Site:     site,
		Verifier: auth.NewAdminVerifier(cfg.AdminPassword, cfg.AdminPasswordHash),
		Lockout:  loginProtection,
		Notifier: service.NewBookingNotifier(service.NotifierConfig{
			APIKey:     cfg.ResendAPIKey,
			AdminEmail: cfg.AdminEmail,
			FromEmail:  cfg.FromEmail,
		}, sender, logger),
		CSRFKey: csrfKey,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
