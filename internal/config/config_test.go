package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.CyclePeriod)
	assert.Equal(t, 1.20, cfg.AlertLevel)
	assert.Equal(t, 0.15, cfg.SurgePerTick)
	assert.Empty(t, cfg.StationsFile)
	assert.Zero(t, cfg.SimSeed)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "floodwatch-alerts", cfg.KafkaAlertsTopic)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CYCLE_PERIOD_MS", "1000")
	t.Setenv("ALERT_LEVEL", "2.5")
	t.Setenv("SURGE_PER_TICK", "0.4")
	t.Setenv("STATIONS_FILE", "/etc/floodwatch/stations.json")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_ALERTS_TOPIC", "custom-alerts")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 1*time.Second, cfg.CyclePeriod)
	assert.Equal(t, 2.5, cfg.AlertLevel)
	assert.Equal(t, 0.4, cfg.SurgePerTick)
	assert.Equal(t, "/etc/floodwatch/stations.json", cfg.StationsFile)
	assert.Equal(t, int64(42), cfg.SimSeed)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-alerts", cfg.KafkaAlertsTopic)
	assert.True(t, cfg.KafkaEnabled)
}

func TestLoad_BrokersTrimmed(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " broker1:9092 , ,broker2:9092 ")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_NegativeSeedAccepted(t *testing.T) {
	t.Setenv("SIM_SEED", "-7")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(-7), cfg.SimSeed)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidCyclePeriod(t *testing.T) {
	t.Setenv("CYCLE_PERIOD_MS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CYCLE_PERIOD_MS")
}

func TestLoad_NonNumericCyclePeriod(t *testing.T) {
	t.Setenv("CYCLE_PERIOD_MS", "fast")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CYCLE_PERIOD_MS")
}

func TestLoad_InvalidAlertLevel(t *testing.T) {
	t.Setenv("ALERT_LEVEL", "-1.2")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ALERT_LEVEL")
}

func TestLoad_InvalidSurgePerTick(t *testing.T) {
	t.Setenv("SURGE_PER_TICK", "zero")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SURGE_PER_TICK")
}

func TestLoad_InvalidSeed(t *testing.T) {
	t.Setenv("SIM_SEED", "not-a-number")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SIM_SEED")
}

func TestLoad_BrokersImplyForwarding(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, "floodwatch-alerts", cfg.KafkaAlertsTopic)
}
