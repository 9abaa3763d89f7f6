// Package database provides the PostgreSQL-backed roster repository.
//
// Optional: without DATABASE_URL the app serves the compiled-in roster.
// When configured, the roster table is migrated at startup and seeded from
// the configured roster if empty, so the database copy can be edited
// operationally without a redeploy.
package database
