// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package main is the entry point for the Coconut Farm server.
//
// The server initializes components in order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, config file, env)
//  2. Logging: zerolog global logger
//  3. Store: MongoDB client, explicitly constructed and passed down
//  4. Image host: Cloudinary-style unsigned upload client, circuit-broken
//  5. HTTP server: chi router with the API, backup, and metrics routes
//
// # Configuration
//
// Environment variables (highest priority), then an optional config.yaml,
// then built-in defaults:
//
//	export MONGODB_URI=mongodb://localhost:27017
//	export MONGODB_DATABASE=coconut-farm
//	export HTTP_PORT=3000
//	export OWNER_PASSWORD=change-me
//	export CLOUDINARY_CLOUD_NAME=demo
//	./coconut-farm
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the listener stops, in-flight
// requests get 10 seconds to finish, then the store client closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Ireshudayanga/coconut-farm-application/internal/api"
	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/media"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("database", cfg.Mongo.Database).
		Int("port", cfg.Server.Port).
		Bool("image_host_configured", cfg.Media.CloudName != "").
		Msg("Starting Coconut Farm server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, cfg.Mongo.Timeout)
	st, err := store.New(connectCtx, &cfg.Mongo)
	connectCancel()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		if err := st.Close(closeCtx); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store connected")

	uploader := media.NewUploader(&cfg.Media)

	handler := api.NewHandler(st, uploader, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logging.Error().Err(err).Msg("HTTP server shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server failed")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
}
