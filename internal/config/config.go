// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// Database drivers accepted in [DB.Driver]. The values are the database/sql
// driver names registered by mattn/go-sqlite3 and jackc/pgx.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"
)

// Login throttle backends accepted in [Throttle.Backend].
const (
	ThrottleBackendMemory = "memory"
	ThrottleBackendRedis  = "redis"
)

// StructuredConfig is the top-level configuration container for the shipy
// server. It aggregates all sub-configurations and is populated by merging
// values from a .env file, environment variables, command-line flags, an
// optional JSON file and finally built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env      : direct environment variable name for scalar fields.
//   - validate : go-playground/validator rules checked after merging.
type StructuredConfig struct {
	// App holds session signing, password hashing and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds the relational database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds the HTTP listener and cookie settings.
	Server Server `envPrefix:"SERVER_"`

	// Throttle holds the login throttle policy and backend.
	Throttle Throttle `envPrefix:"THROTTLE_"`

	// Workers holds background worker intervals.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SessionSignKey is the HMAC key used to sign session tokens.
	// Env: APP_SESSION_SIGN_KEY
	SessionSignKey string `env:"SESSION_SIGN_KEY" validate:"required"`

	// SessionIssuer is the "iss" claim of every session token.
	// Env: APP_SESSION_ISSUER
	SessionIssuer string `env:"SESSION_ISSUER" validate:"required"`

	// SessionDuration is how long a session stays valid after login.
	// Env: APP_SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION" validate:"gt=0s"`

	// Argon2id parameters. Memory is in KiB.
	// Env: APP_ARGON_MEMORY, APP_ARGON_TIME, APP_ARGON_THREADS
	ArgonMemory  uint32 `env:"ARGON_MEMORY" validate:"gte=8"`
	ArgonTime    uint32 `env:"ARGON_TIME" validate:"gte=1"`
	ArgonThreads uint8  `env:"ARGON_THREADS" validate:"gte=1"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL" validate:"oneof=trace debug info warn error"`
}

// Storage groups the configuration for the storage backends.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the relational database.
type DB struct {
	// Driver selects the database/sql driver.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER" validate:"oneof=sqlite3 pgx"`

	// DSN is a file path for sqlite3 or a connection URL for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI" validate:"required"`
}

// Server holds network, timeout and cookie settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" validate:"required"`

	// RequestTimeout bounds the handling of a single request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" validate:"gt=0s"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" validate:"gt=0s"`

	// SecureCookies forces the Secure attribute on the session cookie.
	// Env: SERVER_SECURE_COOKIES
	SecureCookies bool `env:"SECURE_COOKIES"`

	// TrustForwardedHeaders makes the server take the client address from
	// X-Forwarded-For / X-Real-IP. Enable only behind a trusted proxy.
	// Env: SERVER_TRUST_FORWARDED_HEADERS
	TrustForwardedHeaders bool `env:"TRUST_FORWARDED_HEADERS"`
}

// Throttle holds the login throttle policy.
type Throttle struct {
	// Backend is "memory" (single process) or "redis" (shared).
	// Env: THROTTLE_BACKEND
	Backend string `env:"BACKEND" validate:"oneof=memory redis"`

	// RedisURL is required for the redis backend
	// (e.g. "redis://localhost:6379/0").
	// Env: THROTTLE_REDIS_URL
	RedisURL string `env:"REDIS_URL" validate:"required_if=Backend redis"`

	// MaxFailures is the number of failures that blocks a client.
	// Env: THROTTLE_MAX_FAILURES
	MaxFailures int `env:"MAX_FAILURES" validate:"gt=0"`

	// Window is measured from the first failure.
	// Env: THROTTLE_WINDOW
	Window time.Duration `env:"WINDOW" validate:"gt=0s"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SessionCleanupInterval controls how often expired sessions are deleted.
	// Env: WORKERS_SESSION_CLEANUP_INTERVAL
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" validate:"gt=0s"`

	// ThrottleSweepInterval controls how often expired in-memory throttle
	// records are evicted.
	// Env: WORKERS_THROTTLE_SWEEP_INTERVAL
	ThrottleSweepInterval time.Duration `env:"THROTTLE_SWEEP_INTERVAL" validate:"gt=0s"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration. For every field the first non-zero value wins in this order:
//  1. Environment variables (a .env file in the working directory is loaded
//     first and never overrides variables already set)
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv(defaultDotEnvPath).
		withEnv().
		withFlags(os.Args[1:]).
		withJSON().
		withDefaults().
		build()
}
