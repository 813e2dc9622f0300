package config

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrInvalidPostgresDSN is returned when a DSN cannot be parsed.
var ErrInvalidPostgresDSN = errors.New("invalid postgres dsn")

// PostgresPGXPoolConfig creates a pgxpool.Config for the given DSN.
func PostgresPGXPoolConfig(dsn string, settings PoolSettings) (*pgxpool.Config, error) {
	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, errors.Join(ErrInvalidPostgresDSN, err)
	}

	dbConfig.MaxConns = int32(settings.MaxOpen) //nolint:gosec // small configured value
	dbConfig.MinConns = int32(settings.MaxIdle) //nolint:gosec // small configured value
	dbConfig.MaxConnLifetime = settings.MaxConnLifetime
	dbConfig.MaxConnIdleTime = settings.MaxConnIdleTime
	dbConfig.ConnConfig.ConnectTimeout = settings.ConnectTimeout

	return dbConfig, nil
}
