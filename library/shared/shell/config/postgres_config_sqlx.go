package config

import (
	"context"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

// PostgresSQLXConfig connects a *sqlx.DB over lib/pq with the given pool settings.
func PostgresSQLXConfig(ctx context.Context, dsn string, settings PoolSettings) (*sqlx.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, settings.ConnectTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(connectCtx, driverPostgres, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(settings.MaxOpen)
	db.SetMaxIdleConns(settings.MaxIdle)
	db.SetConnMaxLifetime(settings.MaxConnLifetime)
	db.SetConnMaxIdleTime(settings.MaxConnIdleTime)

	return db, nil
}
