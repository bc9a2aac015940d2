// Package tracing wires OpenTelemetry tracing for transaction processing.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// DefaultServiceName identifies bluebook in exported traces.
const DefaultServiceName = "bluebook"

// Config configures the tracing subsystem.
type Config struct {
	// Enabled controls whether tracing is active. When false a no-op
	// tracer is used.
	Enabled bool `toml:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Exporter is one of "none", "stdout" or "otlp".
	Exporter string `toml:"exporter" yaml:"exporter" mapstructure:"exporter"`

	// Endpoint is the OTLP collector address.
	Endpoint string `toml:"endpoint" yaml:"endpoint" mapstructure:"endpoint"`

	// SampleRate is the fraction of traces sampled; 0 means all.
	SampleRate float64 `toml:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`

	ServiceName string `toml:"service_name" yaml:"service_name" mapstructure:"service_name"`
}

// DefaultConfig returns tracing disabled with stdout export.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Exporter:    "stdout",
		Endpoint:    "localhost:4317",
		SampleRate:  1.0,
		ServiceName: DefaultServiceName,
	}
}

// Option adjusts provider construction.
type Option func(*options)

type options struct {
	writer io.Writer
	global bool
}

// WithWriter sends stdout exporter output to w.
func WithWriter(w io.Writer) Option {
	return func(o *options) { o.writer = w }
}

// WithGlobal installs the provider as the process-wide otel provider.
func WithGlobal() Option {
	return func(o *options) { o.global = true }
}

// Provider manages the OpenTelemetry tracer provider.
type Provider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	enabled  bool
}

// NewProvider creates the trace provider described by cfg. A disabled
// config yields a no-op provider.
func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer("noop")}, nil
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch cfg.Exporter {
	case "stdout":
		stdoutOpts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		if o.writer != nil {
			stdoutOpts = append(stdoutOpts, stdouttrace.WithWriter(o.writer))
		}
		exporter, err = stdouttrace.New(stdoutOpts...)
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
	case "otlp":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "localhost:4317"
		}
		exporter, err = otlptracegrpc.New(
			context.Background(),
			otlptracegrpc.WithEndpoint(endpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.Exporter)
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", serviceName))),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRate))),
	}
	if exporter != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))
	}
	provider := sdktrace.NewTracerProvider(tpOpts...)
	if o.global {
		otel.SetTracerProvider(provider)
	}

	return &Provider{
		provider: provider,
		tracer:   provider.Tracer(serviceName),
		enabled:  true,
	}, nil
}

// Tracer returns the configured tracer. It is never nil.
func (p *Provider) Tracer() trace.Tracer {
	return p.tracer
}

// Enabled returns whether tracing is enabled.
func (p *Provider) Enabled() bool {
	return p.enabled
}

// Shutdown flushes pending spans and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.provider != nil {
		return p.provider.Shutdown(ctx)
	}
	return nil
}
