// Pathforge - Learning Content Recommendation Engine
// Copyright 2026 Pathforge Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pathforge/pathforge

// Package config loads layered application configuration:
// built-in defaults, then an optional YAML file, then environment
// variables. Later layers win.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/pathforge/pathforge/internal/complexity"
	"github.com/pathforge/pathforge/internal/logging"
	"github.com/pathforge/pathforge/internal/recommend"
)

// ConfigPathEnvVar names the environment variable pointing to the
// config file.
const ConfigPathEnvVar = "PATHFORGE_CONFIG"

// envPrefix scopes environment overrides to this application.
const envPrefix = "PATHFORGE_"

// defaultConfigPaths are checked in order when no explicit path is set.
var defaultConfigPaths = []string{
	"pathforge.yaml",
	"config/pathforge.yaml",
	"/etc/pathforge/pathforge.yaml",
}

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig            `json:"server" koanf:"server"`
	Logging logging.Config          `json:"logging" koanf:"logging"`
	Engine  recommend.Config        `json:"engine" koanf:"engine"`
	Gemini  complexity.GeminiConfig `json:"gemini" koanf:"gemini"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `json:"host" koanf:"host"`

	// Port is the listen port.
	Port int `json:"port" koanf:"port"`

	// ReadTimeout bounds request reads.
	ReadTimeout time.Duration `json:"read_timeout" koanf:"read_timeout"`

	// WriteTimeout bounds response writes.
	WriteTimeout time.Duration `json:"write_timeout" koanf:"write_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" koanf:"shutdown_timeout"`

	// RateLimit is the per-client request budget per RateWindow.
	RateLimit int `json:"rate_limit" koanf:"rate_limit"`

	// RateWindow is the rate limiting window.
	RateWindow time.Duration `json:"rate_window" koanf:"rate_window"`

	// CORSOrigins lists allowed cross-origin hosts.
	CORSOrigins []string `json:"cors_origins" koanf:"cors_origins"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       100,
			RateWindow:      time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: logging.DefaultConfig(),
		Engine:  *recommend.DefaultConfig(),
		Gemini:  complexity.DefaultGeminiConfig(),
	}
}

// Load builds the configuration from defaults, an optional YAML file,
// and PATHFORGE_* environment variables, in ascending precedence.
// An empty path falls back to PATHFORGE_CONFIG and the default paths.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, candidate := range defaultConfigPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// envTransform maps environment variable names to koanf paths:
// PATHFORGE_SERVER_PORT -> server.port,
// PATHFORGE_ENGINE_WEIGHTS_CONTENT -> engine.weights.content.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Section names are single segments; everything after the section
	// keeps its underscores except nested weight keys.
	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return key
	}
	section, rest := parts[0], parts[1]
	switch section {
	case "engine":
		if after, ok := strings.CutPrefix(rest, "weights_"); ok {
			return "engine.weights." + after
		}
	case "server", "logging", "gemini":
	default:
		return key
	}
	return section + "." + rest
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive")
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be positive, got %d", c.Server.RateLimit)
	}
	if c.Server.RateWindow <= 0 {
		return fmt.Errorf("server.rate_window must be positive")
	}
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	return nil
}
