// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"MONGODB_URI", "mongo.uri"},
		{"MONGODB_DATABASE", "mongo.database"},
		{"HTTP_PORT", "server.port"},
		{"OWNER_PASSWORD", "security.owner_password"},
		{"CLOUDINARY_CLOUD_NAME", "media.cloud_name"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransformFunc(tt.env), "env %s", tt.env)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/farm")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv(ConfigPathEnvVar, "/nonexistent/config.yaml")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/farm", cfg.Mongo.URI)
	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched keys keep defaults.
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "tree-updates", cfg.Media.Folder)
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Mongo.URI = "mongodb://localhost:27017"
	require.NoError(t, cfg.Validate())

	missing := defaultConfig()
	assert.Error(t, missing.Validate())

	badPort := defaultConfig()
	badPort.Mongo.URI = "mongodb://localhost:27017"
	badPort.Server.Port = 0
	assert.Error(t, badPort.Validate())
}
