// Copyright 2025 Waykeeper.
// SPDX-License-Identifier: AGPL-3.0-or-later

package shared

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const ServiceName = "waykeeper-brand-hub"

func newSpanExporter(ctx context.Context, kind string) (sdktrace.SpanExporter, error) {
	switch strings.ToLower(kind) {
	case "stdout":
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case "otlp":
		// endpoint and headers are read from the OTEL_EXPORTER_OTLP_* variables
		return otlptracehttp.New(ctx)
	}
	return nil, nil
}

// InitTracing installs a global tracer provider for the exporter named by OTEL_EXPORTER ("stdout" or "otlp").
// Without an exporter the otel no-op provider stays in place.
// The returned function flushes and stops the provider.
func InitTracing(ctx context.Context, exporterKind string) (func(context.Context) error, error) {
	exporter, err := newSpanExporter(ctx, exporterKind)
	if err != nil {
		return nil, errors.Wrap(err, "could not create span exporter")
	}
	if exporter == nil {
		return func(context.Context) error { return nil }, nil
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", ServiceName))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Info("tracing enabled", "exporter", exporterKind)
	return tp.Shutdown, nil
}
