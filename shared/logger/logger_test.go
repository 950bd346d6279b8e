package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"tourism/config"
	"tourism/shared/constant"
	"tourism/shared/logger"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restore puts the global logger back after a test swaps it.
func restore(t *testing.T) {
	t.Helper()

	originalLogger := log.Logger
	originalLevel := zerolog.GlobalLevel()
	originalTimeFormat := zerolog.TimeFieldFormat

	t.Cleanup(func() {
		log.Logger = originalLogger
		zerolog.SetGlobalLevel(originalLevel)
		zerolog.TimeFieldFormat = originalTimeFormat
	})
}

func TestInitLogger(t *testing.T) {
	restore(t)

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("booking store unavailable"))

	assert.Contains(t, buf.String(), "booking store unavailable")
}

func TestConfigureLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "info", level: "info", expected: zerolog.InfoLevel},
		{name: "warn", level: "warn", expected: zerolog.WarnLevel},
		{name: "error", level: "error", expected: zerolog.ErrorLevel},
		{name: "disabled", level: "disabled", expected: zerolog.Disabled},
		{name: "invalid falls back to trace", level: "loud", expected: zerolog.TraceLevel},
		{name: "empty falls back to trace", level: "", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restore(t)

			var buf bytes.Buffer

			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.Configure(cfg, &buf)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestConfigureProductionWritesJSON(t *testing.T) {
	restore(t)

	var buf bytes.Buffer

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction
	cfg.Server.LogLevel = "info"
	cfg.App.Name = "tourism"

	logger.Configure(cfg, &buf)

	log.Info().Str("booking_id", "b-1").Msg("booking accepted")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "tourism", line["service"])
	assert.Equal(t, "b-1", line["booking_id"])
	assert.Equal(t, "booking accepted", line["message"])
	assert.Equal(t, "info", line["level"])
}

func TestConfigureDevelopmentKeepsWriter(t *testing.T) {
	restore(t)

	var console, out bytes.Buffer
	log.Logger = log.Output(&console)

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvDevelopment
	cfg.Server.LogLevel = "info"

	logger.Configure(cfg, &out)

	log.Info().Msg("still on the console")

	assert.Empty(t, out.String())
	assert.Contains(t, console.String(), "still on the console")
}
