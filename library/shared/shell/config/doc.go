// Package config provides configuration helpers for the library circulation system.
//
// It reads the fine rate and database DSNs from the environment and creates database
// connections using the supported PostgreSQL drivers (pgx.Pool, sql.DB, sqlx.DB)
// with pre-configured pool sizes. It also sets up the OpenTelemetry providers
// used by the librarian CLI.
//
// This package is part of the shell (infrastructure) layer.
package config
