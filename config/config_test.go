package config

import (
	"testing"

	"github.com/kelseyhightower/envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessIgnoresShellWorkingDirectory(t *testing.T) {
	t.Setenv("PWD", "/home/tourism/module")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, int64(8000), cfg.EntranceFee.PWD)
	assert.Equal(t, int64(10000), cfg.EntranceFee.Adult)
}

func TestProcessEntranceFeeOverride(t *testing.T) {
	t.Setenv("PWD", "/home/tourism/module")
	t.Setenv("ENTRANCE_FEE_PWD_FEE", "6500")

	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, int64(6500), cfg.EntranceFee.PWD)
}

func TestProcessDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, envconfig.Process("", &cfg))

	assert.Equal(t, 24, cfg.Booking.PendingExpireHours)
	assert.Equal(t, 30, cfg.Booking.DownPaymentPercent)
	assert.Equal(t, "disable", cfg.DB.Postgres.Read.SSLMode)
	assert.Equal(t, "schema_migrations", cfg.DB.Postgres.MigrationTable)
}
