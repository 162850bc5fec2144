package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	CyclePeriod  time.Duration
	AlertLevel   float64
	SurgePerTick float64
	StationsFile string
	SimSeed      int64

	// Kafka alert forwarding configuration.
	KafkaBrokers     []string
	KafkaAlertsTopic string
	KafkaEnabled     bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	periodMS, err := parsePositiveInt("CYCLE_PERIOD_MS", 5000)
	if err != nil {
		return nil, err
	}

	alertLevel, err := parsePositiveFloat("ALERT_LEVEL", 1.20)
	if err != nil {
		return nil, err
	}

	surgePerTick, err := parsePositiveFloat("SURGE_PER_TICK", 0.15)
	if err != nil {
		return nil, err
	}

	simSeed, err := parseSeed("SIM_SEED")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CyclePeriod:  time.Duration(periodMS) * time.Millisecond,
		AlertLevel:   alertLevel,
		SurgePerTick: surgePerTick,
		StationsFile: os.Getenv("STATIONS_FILE"),
		SimSeed:      simSeed,

		KafkaBrokers:     brokers,
		KafkaAlertsTopic: envOrDefault("KAFKA_ALERTS_TOPIC", "floodwatch-alerts"),
		KafkaEnabled:     len(brokers) > 0,
	}

	if cfg.KafkaEnabled && cfg.KafkaAlertsTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_ALERTS_TOPIC is empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parsePositiveFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return f, nil
}

// parseSeed accepts any integer. Zero means derive the seed from the clock
// at startup, so it is a valid explicit value too.
func parseSeed(key string) (int64, error) {
	s := os.Getenv(key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if b := strings.TrimSpace(p); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
