package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/skillsenselab/callscore/logger"
)

// MeterConfig configures the OpenTelemetry meter.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port.
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metrics holds the pipeline's metric instruments.
type Metrics struct {
	CallsProcessed metric.Int64Counter
	CallsFailed    metric.Int64Counter
	StageDuration  metric.Float64Histogram
	TurnsBuilt     metric.Int64Counter
	TurnsMerged    metric.Int64Counter
	RoleFallbacks  metric.Int64Counter
}

// NewMetrics creates the pipeline metric instruments on the given meter.
func NewMetrics(m metric.Meter) (*Metrics, error) {
	callsProcessed, err := m.Int64Counter("callscore.calls.processed",
		metric.WithDescription("Number of calls processed end to end"))
	if err != nil {
		return nil, err
	}

	callsFailed, err := m.Int64Counter("callscore.calls.failed",
		metric.WithDescription("Number of calls that failed processing"))
	if err != nil {
		return nil, err
	}

	stageDuration, err := m.Float64Histogram("callscore.stage.duration",
		metric.WithDescription("Duration of pipeline stages in seconds"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	turnsBuilt, err := m.Int64Counter("callscore.turns.built",
		metric.WithDescription("Number of attributed turns built"))
	if err != nil {
		return nil, err
	}

	turnsMerged, err := m.Int64Counter("callscore.turns.merged",
		metric.WithDescription("Number of adjacent turns merged"))
	if err != nil {
		return nil, err
	}

	roleFallbacks, err := m.Int64Counter("callscore.roles.fallbacks",
		metric.WithDescription("Number of calls where role inference fell back to the lexical strategy"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		CallsProcessed: callsProcessed,
		CallsFailed:    callsFailed,
		StageDuration:  stageDuration,
		TurnsBuilt:     turnsBuilt,
		TurnsMerged:    turnsMerged,
		RoleFallbacks:  roleFallbacks,
	}, nil
}
