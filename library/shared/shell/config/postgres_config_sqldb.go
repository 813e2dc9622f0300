package config

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLDBConfig opens a *sql.DB over lib/pq and pings it within the connect timeout.
func PostgresSQLDBConfig(ctx context.Context, dsn string, settings PoolSettings) (*sql.DB, error) {
	db, err := sql.Open(driverPostgres, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.MaxOpen)
	db.SetMaxIdleConns(settings.MaxIdle)
	db.SetConnMaxLifetime(settings.MaxConnLifetime)
	db.SetConnMaxIdleTime(settings.MaxConnIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, settings.ConnectTimeout)
	defer cancel()

	if err = db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
