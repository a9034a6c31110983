package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-analytics/internal/analysis"
	"github.com/couchcryptid/weather-analytics/internal/config"
	"github.com/couchcryptid/weather-analytics/internal/pipeline"
	kafkago "github.com/segmentio/kafka-go"
)

// SinkName labels this sink in logs and metrics.
const SinkName = "kafka"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes finished reports to a Kafka topic.
// It implements pipeline.ReportLoader.
type Writer struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaReportTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, topic: cfg.KafkaReportTopic, logger: logger}
}

func (w *Writer) Name() string { return SinkName }

// Load serializes the report and publishes it keyed by report ID.
func (w *Writer) Load(ctx context.Context, res pipeline.Result) error {
	msg, err := serializeToMessage(res.Report)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish report %s to %s: %w", res.Report.Run.ID, w.topic, err)
	}
	w.logger.Debug("report published", "topic", w.topic, "report_id", res.Report.Run.ID, "bytes", len(msg.Value))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Report into a Kafka message.
func serializeToMessage(r analysis.Report) (kafkago.Message, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(r.Run.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "seed", Value: []byte(strconv.FormatUint(r.Run.Seed, 10))},
			{Key: "days", Value: []byte(strconv.Itoa(r.Run.Days))},
			{Key: "generated_at", Value: []byte(r.Run.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
