package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const defaultBroker = "localhost:9092"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1095, cfg.Days)
	assert.Nil(t, cfg.Seed)
	assert.Equal(t, time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, FormatText, cfg.ReportFormat)
	assert.True(t, cfg.ChartEnabled)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 32, cfg.ReportCacheSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{defaultBroker}, cfg.KafkaBrokers)
	assert.Equal(t, "weather-analytics-reports", cfg.KafkaReportTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("DAYS", "365")
	t.Setenv("SEED", "42")
	t.Setenv("START_DATE", "2024-02-28")
	t.Setenv("REPORT_FORMAT", "JSON")
	t.Setenv("CHART_ENABLED", "false")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("REPORT_CACHE_SIZE", "8")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_REPORT_TOPIC", "custom-reports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 365, cfg.Days)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.Equal(t, time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), cfg.StartDate)
	assert.Equal(t, FormatJSON, cfg.ReportFormat)
	assert.False(t, cfg.ChartEnabled)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 8, cfg.ReportCacheSize)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-reports", cfg.KafkaReportTopic)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"non-numeric days", "DAYS", "many", "DAYS"},
		{"zero days", "DAYS", "0", "DAYS"},
		{"negative days", "DAYS", "-5", "DAYS"},
		{"negative seed", "SEED", "-1", "SEED"},
		{"non-numeric seed", "SEED", "abc", "SEED"},
		{"bad start date", "START_DATE", "01/01/2021", "START_DATE"},
		{"unknown format", "REPORT_FORMAT", "xml", "REPORT_FORMAT"},
		{"bad chart flag", "CHART_ENABLED", "maybe", "CHART_ENABLED"},
		{"bad kafka flag", "KAFKA_ENABLED", "sometimes", "KAFKA_ENABLED"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "not-a-duration", "SHUTDOWN_TIMEOUT"},
		{"negative shutdown timeout", "SHUTDOWN_TIMEOUT", "-1s", "SHUTDOWN_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_KafkaEnabledWithoutTopic(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	cfg, err := Load()
	require.NoError(t, err)

	cfg.KafkaReportTopic = ""
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_REPORT_TOPIC")
}

func TestValidate_FlagOverrides(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Days = 1
	cfg.ReportFormat = FormatYAML
	require.NoError(t, cfg.Validate())

	cfg.ReportFormat = "csv"
	require.Error(t, cfg.Validate())
}

func TestParseSeed_Max(t *testing.T) {
	v, err := ParseSeed("18446744073709551615")
	require.NoError(t, err)
	assert.Equal(t, ^uint64(0), v)
}

func TestLoad_InvalidReportCacheSizeFallsBack(t *testing.T) {
	t.Setenv("REPORT_CACHE_SIZE", "-3")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.ReportCacheSize)
}
