// Package config provides the runtime settings of the user search service.
// Settings are layered: defaults, then an optional YAML file, then
// LEARNR_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sajidahmed21/LearnR/internal/logger"
)

// Settings contains all configuration options for the search service.
type Settings struct {
	Addr     string `koanf:"addr"`      // HTTP listen address, e.g. ":8080"
	LogLevel string `koanf:"log_level"` // debug, info, warn or error

	DatabasePath string        `koanf:"database_path"` // SQLite file holding users and login credentials
	QueryTimeout time.Duration `koanf:"query_timeout"` // Bound on a single candidate fetch
	SeedFile     string        `koanf:"seed_file"`     // YAML fixtures loaded into an empty database on serve

	// MaxLimit caps the number of suggestions of any search; 0 disables the cap
	MaxLimit int `koanf:"max_limit"`
	// DeterministicTies orders equal scores by display value, then user ID
	DeterministicTies bool `koanf:"deterministic_ties"`

	AnalyticsMaxEvents  int `koanf:"analytics_max_events"`  // Search events kept in memory
	AnalyticsTopQueries int `koanf:"analytics_top_queries"` // Distinct queries tracked for popularity

	CORSAllowedOrigin string `koanf:"cors_allowed_origin"`
}

// New returns Settings populated with defaults.
func New() *Settings {
	return &Settings{
		Addr:                ":8080",
		LogLevel:            "info",
		DatabasePath:        "learnr.db",
		QueryTimeout:        2 * time.Second,
		MaxLimit:            0,
		DeterministicTies:   false,
		AnalyticsMaxEvents:  10000,
		AnalyticsTopQueries: 1000,
		CORSAllowedOrigin:   "*",
	}
}

// Validate reports every problem with the settings. An empty result means
// the settings are usable.
func (s *Settings) Validate() []string {
	var problems []string

	if strings.TrimSpace(s.Addr) == "" {
		problems = append(problems, "addr must not be empty")
	}
	if _, err := logger.ParseLevel(s.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("log_level: %v", err))
	}
	if strings.TrimSpace(s.DatabasePath) == "" {
		problems = append(problems, "database_path must not be empty")
	}
	if s.QueryTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("query_timeout must be positive, got %s", s.QueryTimeout))
	}
	if s.MaxLimit < 0 {
		problems = append(problems, fmt.Sprintf("max_limit cannot be negative, got %d", s.MaxLimit))
	}
	if s.AnalyticsMaxEvents <= 0 {
		problems = append(problems, fmt.Sprintf("analytics_max_events must be positive, got %d", s.AnalyticsMaxEvents))
	}
	if s.AnalyticsTopQueries <= 0 {
		problems = append(problems, fmt.Sprintf("analytics_top_queries must be positive, got %d", s.AnalyticsTopQueries))
	}

	return problems
}
