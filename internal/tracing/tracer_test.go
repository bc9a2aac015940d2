package tracing

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.False(t, cfg.Enabled, "tracing should be disabled by default")
	require.Equal(t, "stdout", cfg.Exporter)
	require.Equal(t, "localhost:4317", cfg.Endpoint)
	require.Equal(t, DefaultServiceName, cfg.ServiceName)
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{})
	require.NoError(t, err)
	require.False(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "noop")
	require.False(t, span.SpanContext().IsValid(), "noop spans carry no context")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_Stdout(t *testing.T) {
	var out bytes.Buffer
	provider, err := NewProvider(Config{
		Enabled:     true,
		Exporter:    "stdout",
		ServiceName: "bluebook-test",
	}, WithWriter(&out))
	require.NoError(t, err)
	require.True(t, provider.Enabled())

	_, span := provider.Tracer().Start(context.Background(), "tx.paste")
	require.True(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, provider.Shutdown(context.Background()))
	require.Contains(t, out.String(), "tx.paste")
	require.Contains(t, out.String(), "bluebook-test")
}

func TestNewProvider_NoExporter(t *testing.T) {
	provider, err := NewProvider(Config{Enabled: true, Exporter: "none"})
	require.NoError(t, err)

	_, span := provider.Tracer().Start(context.Background(), "internal")
	require.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
}

func TestNewProvider_UnsupportedExporter(t *testing.T) {
	_, err := NewProvider(Config{Enabled: true, Exporter: "carrier-pigeon"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported exporter type")
}

func TestRecordOutcome(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter)).Tracer("test")

	_, ok := tracer.Start(context.Background(), "tx.ok")
	RecordOutcome(ok, true, nil)
	ok.End()

	_, failed := tracer.Start(context.Background(), "tx.failed")
	RecordOutcome(failed, false, errors.New("boom"))
	failed.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	require.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Contains(t, spans[0].Attributes, attribute.Bool(AttrTxApplied, true))

	require.Equal(t, codes.Error, spans[1].Status.Code)
	require.Equal(t, "boom", spans[1].Status.Description)
	require.Len(t, spans[1].Events, 1, "error should be recorded as an event")
}
