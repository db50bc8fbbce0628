// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry wraps operations in instrumentation spans
// carrying named properties, without changing their results.
package telemetry

import (
	"context"
	"maps"
	"sort"
)

// Property is one telemetry property value. Values marked as
// personally identifiable information are never sent by recorders.
type Property struct {
	Value any
	IsPII bool
}

// Properties maps property names to values. Properties values are
// treated as immutable: [AddProperty] returns a new map.
type Properties map[string]Property

// NewProperties returns properties with the given non-PII values.
func NewProperties(values map[string]any) Properties {
	props := make(Properties, len(values))
	for k, v := range values {
		props[k] = Property{Value: v}
	}
	return props
}

// AddProperty returns a copy of the given properties with the named
// property set to the given value. The given properties are not modified.
func AddProperty(props Properties, name string, value any, isPII bool) Properties {
	np := maps.Clone(props)
	if np == nil {
		np = Properties{}
	}
	np[name] = Property{Value: value, IsPII: isPII}
	return np
}

// Public returns the values of the properties that are not PII,
// which are the only ones recorders may transmit.
func (p Properties) Public() map[string]any {
	pub := make(map[string]any, len(p))
	for k, v := range p {
		if !v.IsPII {
			pub[k] = v.Value
		}
	}
	return pub
}

// publicNames returns the sorted names of the non-PII properties.
func (p Properties) publicNames() []string {
	names := make([]string, 0, len(p))
	for k, v := range p {
		if !v.IsPII {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Span is a started instrumentation span.
type Span interface {
	// End ends the span with the outcome of the operation.
	End(err error)
}

// Recorder starts instrumentation spans. Recorders must not transmit
// properties marked as PII.
type Recorder interface {
	Start(ctx context.Context, name string, props Properties) (context.Context, Span)
}

// Generate runs fn inside a span with the given name and properties
// started on rec, and returns the result and error of fn unchanged.
// If rec is nil, [Nop] is used.
func Generate[T any](ctx context.Context, rec Recorder, name string, props Properties, fn func(ctx context.Context) (T, error)) (T, error) {
	if rec == nil {
		rec = Nop
	}
	ctx, span := rec.Start(ctx, name, maps.Clone(props))
	v, err := fn(ctx)
	span.End(err)
	return v, err
}

// Do is [Generate] for operations that only return an error.
func Do(ctx context.Context, rec Recorder, name string, props Properties, fn func(ctx context.Context) error) error {
	_, err := Generate(ctx, rec, name, props, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// Nop is a [Recorder] that records nothing.
var Nop Recorder = nopRecorder{}

type nopRecorder struct{}

func (nopRecorder) Start(ctx context.Context, _ string, _ Properties) (context.Context, Span) {
	return ctx, nopSpan{}
}

type nopSpan struct{}

func (nopSpan) End(error) {}
