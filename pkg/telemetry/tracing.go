// Copyright (c) 2025 ChainChess Inc. All Rights Reserved.
// This is licensed software from ChainChess Inc, for limitations
// and restrictions contact your company contract manager.

// Package telemetry wires the OpenTelemetry SDK for host processes that
// embed the engine. The engine itself only records spans through
// envelope.Scope; hosts call InitTracerProvider once at startup.
package telemetry

import (
	"context"

	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/chainchess/matchmaking-engine/pkg/common"
)

const defaultZipkinURL = "http://localhost:9411/api/v2/spans"

// InitTracerProvider installs a global tracer provider exporting to Zipkin
// with B3 propagation. The returned shutdown func flushes pending spans.
func InitTracerProvider(serviceName string) (func(context.Context) error, error) {
	collectorURL := common.GetEnv("ZIPKIN_COLLECTOR_URL", defaultZipkinURL)

	exporter, err := zipkin.New(collectorURL)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
		)),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(b3.New())

	return provider.Shutdown, nil
}
