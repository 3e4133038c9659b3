/*
Package config loads server configuration from YAML.

PURPOSE:
  One file configures the HTTP server, the database, CORS origins for the
  dashboard and the rest-compliance monitor. Any field left out keeps its
  default, and an absent file means "all defaults".

EXAMPLE FILE:
  server:
    port: 8080
    read_timeout: 15s
  database:
    path: production.db
  cors:
    allowed_origins: ["http://localhost:5173"]
  compliance:
    enabled: true
    max_worked_days_per_week: 5
    scan_interval: 1h

Command-line flags override the file (see cmd/server).
*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Database   Database   `yaml:"database"`
	CORS       CORS       `yaml:"cors"`
	Compliance Compliance `yaml:"compliance"`
}

type Server struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	// ShutdownTimeout bounds how long in-flight requests may finish.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Database struct {
	// Path is the SQLite file. ":memory:" keeps everything in memory.
	Path string `yaml:"path"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Compliance configures the background rest-compliance monitor.
type Compliance struct {
	Enabled              bool          `yaml:"enabled"`
	MaxWorkedDaysPerWeek int           `yaml:"max_worked_days_per_week"`
	ScanInterval         time.Duration `yaml:"scan_interval"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: Server{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Database: Database{Path: "production.db"},
		CORS: CORS{
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
		Compliance: Compliance{
			Enabled:              true,
			MaxWorkedDaysPerWeek: 5,
			ScanInterval:         time.Hour,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the server cannot run with.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	if c.Compliance.MaxWorkedDaysPerWeek < 1 || c.Compliance.MaxWorkedDaysPerWeek > 7 {
		return fmt.Errorf("compliance.max_worked_days_per_week must be 1..7, got %d", c.Compliance.MaxWorkedDaysPerWeek)
	}
	if c.Compliance.Enabled && c.Compliance.ScanInterval <= 0 {
		return errors.New("compliance.scan_interval must be positive when the monitor is enabled")
	}
	return nil
}
