//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/couchcryptid/weather-analytics/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-analytics/internal/adapter/kafka"
	"github.com/couchcryptid/weather-analytics/internal/config"
	"github.com/couchcryptid/weather-analytics/internal/domain"
	"github.com/couchcryptid/weather-analytics/internal/observability"
	"github.com/couchcryptid/weather-analytics/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testReportTopic = "test-reports"

// publishedReport holds the fields of a report message the tests check.
type publishedReport struct {
	Key     string
	Headers map[string]string
	Body    struct {
		Run struct {
			ID        string `json:"id"`
			Seed      uint64 `json:"seed"`
			Days      int    `json:"days"`
			StartDate string `json:"start_date"`
			EndDate   string `json:"end_date"`
		} `json:"run"`
		Insights struct {
			HotDays int `json:"hot_days"`
			WetDays int `json:"wet_days"`
		} `json:"insights"`
	}
}

func readReport(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedReport {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from report topic")

	out := publishedReport{Key: string(msg.Key), Headers: make(map[string]string, len(msg.Headers))}
	for _, h := range msg.Headers {
		out.Headers[h.Key] = string(h.Value)
	}
	require.NoError(t, json.Unmarshal(msg.Value, &out.Body), "unmarshal report message")
	return out
}

// TestReportPublishedToKafka runs the full pipeline with the Kafka sink and
// the in-memory store and checks both received the same report.
func TestReportPublishedToKafka(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testReportTopic)

	cfg := &config.Config{
		KafkaEnabled:     true,
		KafkaBrokers:     []string{broker},
		KafkaReportTopic: testReportTopic,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	store := httpadapter.NewReportStore()

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(domain.NewGenerator(time.Time{}), []pipeline.ReportLoader{writer, store}, discardLogger(), metrics)

	res, err := p.Run(ctx, 1095, 42)
	require.NoError(t, err)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testReportTopic,
		GroupID:     fmt.Sprintf("test-reports-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	got := readReport(ctx, t, consumer)
	assert.Equal(t, res.Report.Run.ID, got.Key)
	assert.Equal(t, res.Report.Run.ID, got.Body.Run.ID)
	assert.Equal(t, "42", got.Headers["seed"])
	assert.Equal(t, "1095", got.Headers["days"])
	_, err = time.Parse(time.RFC3339, got.Headers["generated_at"])
	assert.NoError(t, err, "generated_at should be valid RFC3339")

	assert.Equal(t, "2021-01-01", got.Body.Run.StartDate)
	assert.Equal(t, "2023-12-31", got.Body.Run.EndDate)
	assert.Equal(t, res.Report.Insights.HotDays, got.Body.Insights.HotDays)
	assert.Equal(t, res.Report.Insights.WetDays, got.Body.Insights.WetDays)

	latest, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, res.Report.Run.ID, latest.Run.ID)

	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.SinkLoads.WithLabelValues(kafka.SinkName, observability.OutcomeSuccess)), 0)
}

// TestReportSinkUnavailable points the Kafka sink at a closed port and checks
// the report is still produced and delivered to the other sink.
func TestReportSinkUnavailable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaReportTopic: testReportTopic}
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })
	store := httpadapter.NewReportStore()

	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(domain.NewGenerator(time.Time{}), []pipeline.ReportLoader{writer, store}, discardLogger(), metrics,
		pipeline.WithRetryPolicy(pipeline.RetryPolicy{Attempts: 2, Initial: 10 * time.Millisecond, Max: 20 * time.Millisecond}))

	res, err := p.Run(ctx, 365, 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink kafka")
	assert.Equal(t, 365, res.Report.Run.Days)

	_, ok := store.Latest()
	assert.True(t, ok)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.SinkLoads.WithLabelValues(kafka.SinkName, observability.OutcomeError)), 0)
}
