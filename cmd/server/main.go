// Package main is the entry point for the devconnect server.
//
// Its job is configuration and assembly only: read the environment,
// build the logger, hand everything to internal/server. All actual
// logic lives in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/sakif/devconnect/internal/server"
)

func main() {
	// .env is a development convenience; in production the variables
	// come from the real environment and the file simply isn't there.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// JWT_SECRET has no default on purpose: a guessable secret means
	// anyone can mint tokens. Generate one with `openssl rand -hex 32`.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	tokenTTL := 24 * time.Hour
	if ttlStr := os.Getenv("JWT_TTL_HOURS"); ttlStr != "" {
		hours, err := strconv.Atoi(ttlStr)
		if err != nil || hours <= 0 {
			logger.Error("invalid JWT_TTL_HOURS value", slog.String("value", ttlStr))
			os.Exit(1)
		}
		tokenTTL = time.Duration(hours) * time.Hour
	}

	dbPath := "data/devconnect.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	templateDir, _ := filepath.Abs("web/templates")
	staticDir, _ := filepath.Abs("web/static")

	cfg := server.Config{
		Port:        port,
		DBPath:      dbPath,
		JWTSecret:   jwtSecret,
		TokenTTL:    tokenTTL,
		GithubToken: os.Getenv("GITHUB_TOKEN"), // optional, raises the API rate limit
		TemplateDir: templateDir,
		StaticDir:   staticDir,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
