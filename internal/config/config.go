// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package config loads layered configuration with Koanf v2:
// built-in defaults, then an optional YAML config file, then environment
// variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for both the server and the restore CLI.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Mongo    MongoConfig    `koanf:"mongo"`
	Security SecurityConfig `koanf:"security"`
	Media    MediaConfig    `koanf:"media"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitRPS is the sustained per-IP request rate allowed on API
	// route groups; RateLimitBurst is extra headroom on top of it. Zero
	// RPS disables rate limiting.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`
}

// MongoConfig holds document store settings.
type MongoConfig struct {
	// URI is the MongoDB connection string. The database name in the URI is
	// used when Database is empty.
	URI      string        `koanf:"uri"`
	Database string        `koanf:"database"`
	Timeout  time.Duration `koanf:"timeout"`
}

// SecurityConfig holds the shared-secret owner credential.
type SecurityConfig struct {
	// OwnerPassword is compared verbatim by the owner-login endpoint; the
	// session itself is the owner_token=valid cookie scheme carried over
	// from the original deployment.
	OwnerPassword string `koanf:"owner_password"`
}

// MediaConfig holds the external image-host settings for update photos.
type MediaConfig struct {
	CloudName    string        `koanf:"cloud_name"`
	UploadPreset string        `koanf:"upload_preset"`
	Folder       string        `koanf:"folder"`
	Timeout      time.Duration `koanf:"timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           3000,
			Timeout:        30 * time.Second,
			RateLimitRPS:   50,
			RateLimitBurst: 100,
		},
		Mongo: MongoConfig{
			URI:      "",
			Database: "",
			Timeout:  10 * time.Second,
		},
		Security: SecurityConfig{
			OwnerPassword: "",
		},
		Media: MediaConfig{
			CloudName:    "",
			UploadPreset: "treeFarm",
			Folder:       "tree-updates",
			Timeout:      30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("mongo.uri is required (set MONGODB_URI)")
	}
	if c.Mongo.Timeout <= 0 {
		return fmt.Errorf("mongo.timeout must be positive")
	}
	return nil
}
