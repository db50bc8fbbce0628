// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"os"

	"cogentcore.org/launch/cmd/launch/config"
	"cogentcore.org/launch/telemetry"
)

// recorder returns the telemetry recorder selected by the config,
// and a function that flushes it.
func recorder(c *config.Config) (telemetry.Recorder, func(context.Context) error, error) {
	nop := func(context.Context) error { return nil }
	switch c.Telemetry {
	case config.TelemetryOtel:
		tp, err := telemetry.NewWriterProvider(os.Stderr)
		if err != nil {
			return nil, nil, err
		}
		return telemetry.NewOtelRecorder(tp), tp.Shutdown, nil
	case config.TelemetryNone:
		return telemetry.Nop, nop, nil
	}
	return telemetry.NewLogRecorder(nil), nop, nil
}
