// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd contains the commands of the launch tool.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"cogentcore.org/launch/base/errors"
	"cogentcore.org/launch/cmd/launch/config"
	"cogentcore.org/launch/platform"
	"cogentcore.org/launch/telemetry"
	"github.com/google/uuid"
)

// Run runs the app on the configured platform and target,
// succeeding once the app has been launched.
func Run(c *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return RunContext(ctx, c)
}

// RunContext is [Run] with the given context.
func RunContext(ctx context.Context, c *config.Config) error {
	rec, shutdown, err := recorder(c)
	if err != nil {
		return err
	}
	defer func() { errors.Log(shutdown(context.WithoutCancel(ctx))) }()

	p, err := newPlatform(c, rec)
	if err != nil {
		return err
	}
	if c.Prewarm {
		if err := p.PrewarmBundleCache(ctx); err != nil {
			return err
		}
	}
	return p.RunApp(ctx)
}

// Args prints the arguments that the run command would be
// started with for the configured platform and target.
func Args(c *config.Config) error {
	p, err := newPlatform(c, telemetry.Nop)
	if err != nil {
		return err
	}
	fmt.Println(strings.Join(append([]string{p.Variant.Verb()}, p.LaunchArguments()...), " "))
	return nil
}

// Prewarm asks the packager to prepare the bundle
// of the configured platform.
func Prewarm(c *config.Config) error {
	p, err := newPlatform(c, telemetry.Nop)
	if err != nil {
		return err
	}
	return p.PrewarmBundleCache(context.Background())
}

// newPlatform returns the platform for the given config,
// recording telemetry with the given recorder.
func newPlatform(c *config.Config, rec telemetry.Recorder) (*platform.Platform, error) {
	opts, err := c.RunOptions()
	if err != nil {
		return nil, err
	}
	sp, err := platform.NewCommandSpawner(opts.ProjectPath, c.Command)
	if err != nil {
		return nil, err
	}
	logger := slog.Default().With("run", uuid.NewString())
	return platform.New(opts, platform.Deps{
		Spawner:  sp,
		Packager: &platform.HTTPPackager{Host: c.Packager, Logger: logger},
		Recorder: rec,
		Logger:   logger,
	})
}
