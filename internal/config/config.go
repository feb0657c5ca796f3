package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/quake-scenario-etl/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Scenario conversion.
	Directivity        bool
	DirectivityIndex   int
	RuptureReference   string
	StableBoundaryFile string
	ScenarioDBPath     string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	directivity, err := parseBool("DIRECTIVITY", false)
	if err != nil {
		return nil, err
	}

	dirIndex, err := parseDirectivityIndex()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-rupture-sets"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "scenario-events"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "quake-scenario-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		Directivity:        directivity,
		DirectivityIndex:   dirIndex,
		RuptureReference:   os.Getenv("RUPTURE_REFERENCE"),
		StableBoundaryFile: os.Getenv("STABLE_BOUNDARY_FILE"),
		ScenarioDBPath:     os.Getenv("SCENARIO_DB_PATH"),
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}

	return cfg, nil
}

// Options builds the conversion options for the service.
func (c *Config) Options() domain.Options {
	return domain.Options{
		Reference: c.RuptureReference,
		Directivity: domain.Directivity{
			Enabled: c.Directivity,
			Index:   domain.DirectivityIndex(c.DirectivityIndex),
		},
	}
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, s, domain.ErrConfiguration)
	}
	return v, nil
}

func parseDirectivityIndex() (int, error) {
	s := sharedcfg.EnvOrDefault("DIRECTIVITY_INDEX", "1")
	n, err := strconv.Atoi(s)
	if err != nil || !domain.DirectivityIndex(n).Valid() {
		return 0, fmt.Errorf("invalid DIRECTIVITY_INDEX %q, want 0, 1 or 2: %w", s, domain.ErrConfiguration)
	}
	return n, nil
}
