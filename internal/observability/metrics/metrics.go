package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	feedPostings      metric.Int64Counter
	monitoringRecords metric.Int64Counter
	sagaRollbacks     metric.Int64Counter
	salesRecorded     metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "brooder"
	}
	meter := provider.Meter(name)

	feedPostings, err := meter.Int64Counter("brooder_feed_postings_total")
	if err != nil {
		return nil, err
	}
	monitoringRecords, err := meter.Int64Counter("brooder_monitoring_records_total")
	if err != nil {
		return nil, err
	}
	sagaRollbacks, err := meter.Int64Counter("brooder_saga_rollbacks_total")
	if err != nil {
		return nil, err
	}
	salesRecorded, err := meter.Int64Counter("brooder_sales_recorded_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		feedPostings:      feedPostings,
		monitoringRecords: monitoringRecords,
		sagaRollbacks:     sagaRollbacks,
		salesRecorded:     salesRecorded,
	}, nil
}

// RecordFeedPosting counts an accepted ledger transaction per direction
// (in, out, daily_usage).
func (m *Metrics) RecordFeedPosting(ctx context.Context, direction string) {
	if m == nil {
		return
	}
	m.feedPostings.Add(ctx, 1, metric.WithAttributes(attribute.String("direction", direction)))
}

// RecordMonitoringRecord counts an accepted daily monitoring record.
func (m *Metrics) RecordMonitoringRecord(ctx context.Context) {
	if m == nil {
		return
	}
	m.monitoringRecords.Add(ctx, 1)
}

// RecordSagaRollback counts a compensated linked-write failure.
func (m *Metrics) RecordSagaRollback(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.sagaRollbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordSale counts an accepted sale record.
func (m *Metrics) RecordSale(ctx context.Context) {
	if m == nil {
		return
	}
	m.salesRecorded.Add(ctx, 1)
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported metrics exporter protocol %q", protocol)
	}
}
