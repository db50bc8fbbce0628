// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the name of the OpenTelemetry tracer used by [OtelRecorder].
const TracerName = "cogentcore.org/launch"

// OtelRecorder is a [Recorder] that records OpenTelemetry spans,
// with the non-PII properties as span attributes.
type OtelRecorder struct {
	Tracer trace.Tracer
}

// NewOtelRecorder returns a new [OtelRecorder] using a tracer
// from the given provider.
func NewOtelRecorder(tp trace.TracerProvider) *OtelRecorder {
	return &OtelRecorder{Tracer: tp.Tracer(TracerName)}
}

func (r *OtelRecorder) Start(ctx context.Context, name string, props Properties) (context.Context, Span) {
	pub := props.Public()
	attrs := make([]attribute.KeyValue, 0, len(pub))
	for _, k := range props.publicNames() {
		attrs = append(attrs, toAttribute(k, pub[k]))
	}
	ctx, span := r.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, otelSpan{span}
}

type otelSpan struct {
	span trace.Span
}

func (s otelSpan) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}

func toAttribute(k string, v any) attribute.KeyValue {
	switch v := v.(type) {
	case string:
		return attribute.String(k, v)
	case bool:
		return attribute.Bool(k, v)
	case int:
		return attribute.Int(k, v)
	case int64:
		return attribute.Int64(k, v)
	case float64:
		return attribute.Float64(k, v)
	case []string:
		return attribute.StringSlice(k, v)
	case fmt.Stringer:
		return attribute.String(k, v.String())
	default:
		return attribute.String(k, fmt.Sprint(v))
	}
}

// NewWriterProvider returns a tracer provider that synchronously
// exports finished spans as JSON to the given writer. It should be
// shut down when no longer needed.
func NewWriterProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp)), nil
}
