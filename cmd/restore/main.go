// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package main is the operator CLI that restores a backup payload into
// MongoDB.
//
// Usage:
//
//	MONGODB_URI=mongodb://localhost:27017 restore backup-2024-06.json
//
// A .env file in the working directory is loaded if present. The restore is
// best-effort per document: skipped documents are listed with reasons, and
// the exit code is zero as long as the payload itself was processed.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Ireshudayanga/coconut-farm-application/internal/backup"
	"github.com/Ireshudayanga/coconut-farm-application/internal/config"
	"github.com/Ireshudayanga/coconut-farm-application/internal/logging"
	"github.com/Ireshudayanga/coconut-farm-application/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "restore:", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional: lets operators keep MONGODB_URI in a local .env file.
	_ = godotenv.Load()

	logging.Init(logging.Config{Level: "info", Format: "console"})

	if len(os.Args) != 2 {
		return fmt.Errorf("usage: %s <backup-file.json>", os.Args[0])
	}
	path := os.Args[1]

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}

	mongoCfg := config.MongoConfig{
		URI:      uri,
		Database: os.Getenv("MONGODB_DATABASE"),
		Timeout:  15 * time.Second,
	}

	ctx := context.Background()
	connectCtx, cancel := context.WithTimeout(ctx, mongoCfg.Timeout)
	st, err := store.New(connectCtx, &mongoCfg)
	cancel()
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = st.Close(closeCtx)
	}()

	fmt.Printf("Restoring %s\n", path)
	start := time.Now()

	result, err := backup.NewRestorer(st).Restore(ctx, data)
	if err != nil {
		return err
	}

	fmt.Printf("\nApplied in %s:\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  farmers:     %d\n", result.Applied.Farmers)
	fmt.Printf("  fertilizers: %d\n", result.Applied.Fertilizers)
	fmt.Printf("  pests:       %d\n", result.Applied.Pests)
	fmt.Printf("  trees:       %d\n", result.Applied.Trees)
	fmt.Printf("  updates:     %d\n", result.Applied.Updates)

	if len(result.Skipped) > 0 {
		fmt.Printf("\nSkipped %d document(s):\n", len(result.Skipped))
		for _, s := range result.Skipped {
			fmt.Printf("  %s[%d]: %s\n", s.Category, s.Index, s.Reason)
		}
	}

	fmt.Printf("\nStore totals: farmers=%d fertilizers=%d pests=%d trees=%d updates=%d\n",
		result.Totals.Farmers, result.Totals.Fertilizers, result.Totals.Pests,
		result.Totals.Trees, result.Totals.Updates)
	return nil
}
