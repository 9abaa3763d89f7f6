// Package config provides environment-based configuration.
//
// Redis and PostgreSQL are optional: without REDIS_URL selections live in
// process memory, without DATABASE_URL the roster is the compiled-in default
// (or ROSTER_FILE).
package config
