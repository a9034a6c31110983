package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/joho/godotenv"
)

// Report output formats accepted by REPORT_FORMAT and --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var reportFormats = []string{FormatText, FormatJSON, FormatYAML}

// Config holds all service settings, populated from environment variables.
type Config struct {
	Days int
	// Seed is nil when SEED is unset; the run then derives one from the clock.
	Seed         *uint64
	StartDate    time.Time
	ReportFormat string
	ChartEnabled bool

	HTTPAddr        string
	ReportCacheSize int
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	KafkaEnabled     bool
	KafkaBrokers     []string
	KafkaReportTopic string
}

// Load reads configuration from environment variables (and a .env file when
// present), applying defaults where unset.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	days, err := strconv.Atoi(sharedcfg.EnvOrDefault("DAYS", "1095"))
	if err != nil {
		return nil, errors.New("invalid DAYS")
	}

	var seed *uint64
	if s := os.Getenv("SEED"); s != "" {
		v, err := ParseSeed(s)
		if err != nil {
			return nil, err
		}
		seed = &v
	}

	start, err := ParseStartDate(sharedcfg.EnvOrDefault("START_DATE", "2021-01-01"))
	if err != nil {
		return nil, err
	}

	chart, err := parseBool("CHART_ENABLED", true)
	if err != nil {
		return nil, err
	}
	kafkaEnabled, err := parseBool("KAFKA_ENABLED", false)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Days:         days,
		Seed:         seed,
		StartDate:    start,
		ReportFormat: strings.ToLower(sharedcfg.EnvOrDefault("REPORT_FORMAT", FormatText)),
		ChartEnabled: chart,

		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ReportCacheSize: parseReportCacheSize(),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		ShutdownTimeout: shutdownTimeout,

		KafkaEnabled:     kafkaEnabled,
		KafkaBrokers:     sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaReportTopic: sharedcfg.EnvOrDefault("KAFKA_REPORT_TOPIC", "weather-analytics-reports"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that command-line flags may have overridden
// after Load.
func (c *Config) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("DAYS must be at least 1, got %d", c.Days)
	}
	if !slices.Contains(reportFormats, c.ReportFormat) {
		return fmt.Errorf("REPORT_FORMAT must be one of %s, got %q", strings.Join(reportFormats, "|"), c.ReportFormat)
	}
	if c.KafkaEnabled {
		if len(c.KafkaBrokers) == 0 {
			return errors.New("KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if c.KafkaReportTopic == "" {
			return errors.New("KAFKA_REPORT_TOPIC is required when KAFKA_ENABLED is true")
		}
	}
	return nil
}

// ParseSeed parses a SEED value as an unsigned 64-bit integer.
func ParseSeed(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid SEED %q: %w", s, err)
	}
	return v, nil
}

// ParseStartDate parses a START_DATE value in YYYY-MM-DD form as a UTC date.
func ParseStartDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid START_DATE %q: %w", s, err)
	}
	return t, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, s)
	}
	return v, nil
}

func parseReportCacheSize() int {
	if s := os.Getenv("REPORT_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 32
}
