package config

import (
	"testing"
	"time"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "raw-rupture-sets", cfg.KafkaSourceTopic)
	assert.Equal(t, "scenario-events", cfg.KafkaSinkTopic)
	assert.Equal(t, "quake-scenario-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.False(t, cfg.Directivity)
	assert.Equal(t, 1, cfg.DirectivityIndex)
	assert.Empty(t, cfg.RuptureReference)
	assert.Empty(t, cfg.StableBoundaryFile)
	assert.Empty(t, cfg.ScenarioDBPath)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("DIRECTIVITY", "true")
	t.Setenv("DIRECTIVITY_INDEX", "2")
	t.Setenv("RUPTURE_REFERENCE", "UCERF3 2014")
	t.Setenv("STABLE_BOUNDARY_FILE", "/etc/quake/nshmp_stable.json")
	t.Setenv("SCENARIO_DB_PATH", "/var/lib/quake/scenarios.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.True(t, cfg.Directivity)
	assert.Equal(t, 2, cfg.DirectivityIndex)
	assert.Equal(t, "UCERF3 2014", cfg.RuptureReference)
	assert.Equal(t, "/etc/quake/nshmp_stable.json", cfg.StableBoundaryFile)
	assert.Equal(t, "/var/lib/quake/scenarios.db", cfg.ScenarioDBPath)

	opts := cfg.Options()
	assert.Equal(t, domain.Directivity{Enabled: true, Index: domain.SecondUnilateral}, opts.Directivity)
	assert.Equal(t, "UCERF3 2014", opts.Reference)
	assert.Empty(t, opts.Index)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidBatchFlushInterval(t *testing.T) {
	t.Setenv("BATCH_FLUSH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_FLUSH_INTERVAL")
}

func TestLoad_InvalidDirectivity(t *testing.T) {
	t.Setenv("DIRECTIVITY", "maybe")
	_, err := Load()
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "DIRECTIVITY")
}

func TestLoad_InvalidDirectivityIndex(t *testing.T) {
	for _, v := range []string{"3", "-1", "first"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("DIRECTIVITY_INDEX", v)
			_, err := Load()
			require.ErrorIs(t, err, domain.ErrConfiguration)
			assert.Contains(t, err.Error(), "DIRECTIVITY_INDEX")
		})
	}
}
