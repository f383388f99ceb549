// Package main is the entry point for the Krishi Mitra backend. It
// reads configuration from the environment, builds the optional AI
// client, and hands everything to internal/server.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/krishi-mitra/internal/ai"
	"github.com/sakif/krishi-mitra/internal/ai/gemini"
	"github.com/sakif/krishi-mitra/internal/server"
)

func main() {
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

	dbPath := "data/krishi-mitra.db"
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

	// JWT_SECRET should be a long random string, e.g.:
	//   JWT_SECRET=$(openssl rand -hex 32)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET not set — using an insecure development default")
		jwtSecret = "insecure-dev-secret-change-me"
	}

	// The AI client is optional. Without GEMINI_API_KEY the server
	// still runs; the AI routes report the assistant as unavailable.
	var generator ai.Generator
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := gemini.New(context.Background(), gemini.DefaultConfig(apiKey), logger)
		if err != nil {
			logger.Warn("AI client unavailable",
				slog.String("error", err.Error()),
			)
		} else {
			generator = client
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set — AI routes will return 503")
	}

	// Demo credentials matching the shipped frontend; override in any
	// real deployment.
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	farmerPassword := os.Getenv("FARMER_PASSWORD")
	if farmerPassword == "" {
		farmerPassword = "password123"
	}

	cfg := server.Config{
		Port:           port,
		DBPath:         dbPath,
		JWTSecret:      jwtSecret,
		AdminPassword:  adminPassword,
		FarmerPassword: farmerPassword,
	}

	srv, err := server.New(cfg, logger, generator)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
