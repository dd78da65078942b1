package telemetry

import (
	"context"
	"io"
	"time"

	"github.com/gruntwork-io/testgrunt/internal/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

const (
	noneMetricExporterType     metricsExporterType = "none"
	consoleMetricExporterType  metricsExporterType = "console"
	otlpHTTPMetricExporterType metricsExporterType = "otlpHttp"
	otlpGrpcMetricExporterType metricsExporterType = "otlpGrpc"

	defaultMetricInterval = time.Second
)

type metricsExporterType string

// Meter records run durations and error counts. A nil Meter runs the functions unmeasured.
type Meter struct {
	metric.Meter
	provider *sdkmetric.MeterProvider
}

// NewMeter creates and configures the metrics collection. Returns nil if no exporter is configured.
func NewMeter(ctx context.Context, appName, appVersion string, writer io.Writer, opts *Options) (*Meter, error) {
	exporter, err := NewMetricsExporter(ctx, writer, opts)
	if err != nil {
		return nil, errors.New(err)
	}

	if exporter == nil {
		return nil, nil
	}

	provider, err := newMetricsProvider(exporter, appName, appVersion)
	if err != nil {
		return nil, errors.New(err)
	}

	otel.SetMeterProvider(provider)

	return &Meter{
		Meter:    provider.Meter(appName),
		provider: provider,
	}, nil
}

// NewMetricsExporter creates a new exporter based on the telemetry options.
func NewMetricsExporter(ctx context.Context, writer io.Writer, opts *Options) (sdkmetric.Exporter, error) {
	exporterType := metricsExporterType(opts.MetricExporter)
	if exporterType == "" {
		exporterType = noneMetricExporterType
	}

	switch exporterType { //nolint:exhaustive
	case otlpHTTPMetricExporterType:
		var config []otlpmetrichttp.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetrichttp.WithInsecure())
		}

		return otlpmetrichttp.New(ctx, config...)
	case otlpGrpcMetricExporterType:
		var config []otlpmetricgrpc.Option
		if opts.MetricExporterInsecureEndpoint {
			config = append(config, otlpmetricgrpc.WithInsecure())
		}

		return otlpmetricgrpc.New(ctx, config...)
	case consoleMetricExporterType:
		return stdoutmetric.New(stdoutmetric.WithWriter(writer))
	default:
		return nil, nil
	}
}

func newMetricsProvider(exp sdkmetric.Exporter, appName, appVersion string) (*sdkmetric.MeterProvider, error) {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(appName),
			semconv.ServiceVersion(appVersion),
		),
	)
	if err != nil {
		return nil, errors.New(err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(r),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(defaultMetricInterval))),
	), nil
}

// Time records the duration of fn in the `<name>_duration` histogram and counts failures in `<name>_errors`.
func (meter *Meter) Time(ctx context.Context, name string, attrs map[string]any, fn func(childCtx context.Context) error) error {
	if meter == nil || meter.provider == nil {
		return fn(ctx)
	}

	metricAttrs := metric.WithAttributes(mapToAttributes(attrs)...)
	name = CleanMetricName(name)

	histogram, err := meter.Int64Histogram(name+"_duration", metric.WithUnit("ms"))
	if err != nil {
		return errors.New(err)
	}

	startTime := time.Now()
	err = fn(ctx)

	histogram.Record(ctx, time.Since(startTime).Milliseconds(), metricAttrs)

	if err != nil {
		if counter, cerr := meter.Int64Counter(name + "_errors"); cerr == nil {
			counter.Add(ctx, 1, metricAttrs)
		}
	}

	return err
}
