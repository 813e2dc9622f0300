package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/library/shared/shell/config"
)

func Test_PostgresPGXPoolConfig_AppliesPoolSettings(t *testing.T) {
	// arrange
	settings := config.CLIPoolSettings()

	// act
	poolConfig, err := config.PostgresPGXPoolConfig("postgres://u:p@localhost:5432/circulation?sslmode=disable", settings)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(settings.MaxOpen), poolConfig.MaxConns)
	assert.Equal(t, int32(settings.MaxIdle), poolConfig.MinConns)
	assert.Equal(t, settings.MaxConnLifetime, poolConfig.MaxConnLifetime)
	assert.Equal(t, 5*time.Second, poolConfig.ConnConfig.ConnectTimeout)
	assert.Equal(t, "circulation", poolConfig.ConnConfig.Database)
}

func Test_PostgresPGXPoolConfig_RejectsMalformedDSN(t *testing.T) {
	// act
	_, err := config.PostgresPGXPoolConfig("postgres://localhost:notaport/circulation", config.TestPoolSettings())

	// assert
	assert.ErrorIs(t, err, config.ErrInvalidPostgresDSN)
}

func Test_PostgresDSN_FromEnvironment(t *testing.T) {
	// arrange
	t.Setenv("CIRCULATION_POSTGRES_DSN", "postgres://primary/circulation")
	t.Setenv("CIRCULATION_POSTGRES_REPLICA_DSN", "")

	// act + assert
	assert.Equal(t, "postgres://primary/circulation", config.PostgresDSN())
	assert.Empty(t, config.PostgresReplicaDSN())
}
