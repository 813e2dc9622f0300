package config

import "time"

const driverPostgres = "postgres"

// PoolSettings bounds the connections one process keeps to a database.
type PoolSettings struct {
	MaxOpen         int
	MaxIdle         int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	ConnectTimeout  time.Duration
}

// CLIPoolSettings suits a process which runs one or a few transactions and exits.
func CLIPoolSettings() PoolSettings {
	return PoolSettings{
		MaxOpen:         4,
		MaxIdle:         1,
		MaxConnLifetime: 30 * time.Minute,
		MaxConnIdleTime: time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}

// TestPoolSettings allows the concurrent borrowers of the integration tests to hold a connection each.
func TestPoolSettings() PoolSettings {
	return PoolSettings{
		MaxOpen:         20,
		MaxIdle:         5,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 5 * time.Minute,
		ConnectTimeout:  5 * time.Second,
	}
}
