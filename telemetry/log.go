// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// LogRecorder is a [Recorder] that logs the start and end of
// each span with its non-PII properties.
type LogRecorder struct {
	// Logger is the logger to write to; if nil, [slog.Default] is used.
	Logger *slog.Logger

	// Level is the level spans are logged at.
	Level slog.Level
}

// NewLogRecorder returns a new [LogRecorder] logging at debug level.
func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{Logger: logger, Level: slog.LevelDebug}
}

func (r *LogRecorder) Start(ctx context.Context, name string, props Properties) (context.Context, Span) {
	l := r.Logger
	if l == nil {
		l = slog.Default()
	}
	s := &logSpan{
		logger: l.With("span", name, "id", uuid.NewString()),
		level:  r.Level,
		start:  time.Now(),
	}
	attrs := make([]any, 0, 2*len(props))
	pub := props.Public()
	for _, k := range props.publicNames() {
		attrs = append(attrs, k, pub[k])
	}
	s.logger.Log(ctx, r.Level, "span started", attrs...)
	return ctx, s
}

type logSpan struct {
	logger *slog.Logger
	level  slog.Level
	start  time.Time
}

func (s *logSpan) End(err error) {
	d := time.Since(s.start)
	if err != nil {
		s.logger.Log(context.Background(), s.level, "span failed", "duration", d, "error", err)
		return
	}
	s.logger.Log(context.Background(), s.level, "span succeeded", "duration", d)
}
