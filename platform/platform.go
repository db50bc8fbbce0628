// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package platform runs mobile and desktop apps through the app
// framework CLI, deciding the outcome of each run from the output
// of the run command.
package platform

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"cogentcore.org/launch/telemetry"
	"cogentcore.org/launch/verify"
	"github.com/mitchellh/go-homedir"
)

// RunOptions describes one request to run an app.
// It is read-only once passed to [New].
type RunOptions struct {
	// Platform is the platform to run the app on.
	Platform PlatformType

	// ProjectPath is the root directory of the app project.
	ProjectPath string

	// Target is the device or simulator to run on.
	// It is ignored if RunArguments is set.
	Target string

	// RunArguments are explicit arguments for the run command,
	// which replace the arguments derived from Target.
	RunArguments []string

	// Env contains environment variables for the run command,
	// overriding those of the environment file and the process.
	Env map[string]string

	// EnvFile is the path of an environment file, relative to ProjectPath
	// unless absolute. Its variables override those of the process.
	EnvFile string

	// Versions are the versions of the framework packages.
	Versions Versions

	// Timeout is the longest time to wait for the outcome of the run.
	// If it is 0, there is no limit.
	Timeout time.Duration
}

// Deps contains the collaborators of a [Platform]. Zero fields
// are replaced by defaults in [New].
type Deps struct {
	// Env resolves the run environment; the default is [ResolveEnv].
	Env EnvResolver

	// ProcessEnv returns the process environment; the default is [os.Environ].
	ProcessEnv func() []string

	// Spawner starts the run command; the default is a [CommandSpawner]
	// running [DefaultCommand] in the project directory.
	Spawner Spawner

	// Packager is the packager to prewarm; the default is [NopPackager].
	Packager Packager

	// Recorder records telemetry spans; the default is [telemetry.Nop].
	Recorder telemetry.Recorder

	// Logger is the logger to use; the default is [slog.Default].
	Logger *slog.Logger

	// OnState, if set, is called with each state a launch enters.
	OnState func(State)
}

// Platform runs an app on one platform.
type Platform struct {
	// Variant contains the platform-specific behavior.
	Variant *Variant

	// Options is the run request.
	Options RunOptions

	deps         Deps
	runArguments []string
}

// New returns a new [Platform] for the given options, which must
// name a supported platform.
func New(opts RunOptions, deps Deps) (*Platform, error) {
	v, err := VariantFor(opts.Platform)
	if err != nil {
		return nil, err
	}
	opts.ProjectPath, err = homedir.Expand(opts.ProjectPath)
	if err != nil {
		return nil, err
	}
	if deps.Env == nil {
		deps.Env = ResolveEnv
	}
	if deps.ProcessEnv == nil {
		deps.ProcessEnv = os.Environ
	}
	if deps.Spawner == nil {
		deps.Spawner, err = NewCommandSpawner(opts.ProjectPath, DefaultCommand)
		if err != nil {
			return nil, err
		}
	}
	if deps.Packager == nil {
		deps.Packager = NopPackager{}
	}
	if deps.Recorder == nil {
		deps.Recorder = telemetry.Nop
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	p := &Platform{Variant: v, Options: opts, deps: deps}
	p.runArguments = v.Arguments(opts.RunArguments, opts.Target)
	return p, nil
}

// RunArguments returns the arguments derived from the explicit
// run arguments or the target.
func (p *Platform) RunArguments() []string {
	return slices.Clone(p.runArguments)
}

// LaunchArguments returns the full arguments of the run command:
// the compatibility flag, if the framework version requires it,
// followed by [Platform.RunArguments]. The flag is never added twice.
func (p *Platform) LaunchArguments() []string {
	args := make([]string, 0, len(p.runArguments)+1)
	flag := p.Variant.CompatibilityFlag
	if flag != "" && !slices.Contains(p.runArguments, flag) &&
		CompatibilityFlagRequired(p.Options.Versions.Framework, p.Variant.NoPackagerVersion) {
		args = append(args, flag)
	}
	return append(args, p.runArguments...)
}

// TelemetryProperties returns the telemetry properties of a run.
func (p *Platform) TelemetryProperties() telemetry.Properties {
	props := telemetry.NewProperties(map[string]any{"platform": string(p.Variant.Type)})
	props = telemetry.AddProperty(props, "reactNativeVersion", p.Options.Versions.Framework, false)
	if p.Variant.PlatformPackage != "" {
		props = telemetry.AddProperty(props, "reactNative"+p.Variant.Title+"Version", p.Options.Versions.Platform, false)
	}
	return props
}

// RunApp runs the app and waits until its outcome is known. It returns
// nil if the app was launched, a [*verify.Error] if the run command
// reported a failure, and the error of the environment resolution or
// of the spawner if the command could not be started.
func (p *Platform) RunApp(ctx context.Context) error {
	return telemetry.Do(ctx, p.deps.Recorder, p.Variant.Title+"Platform.runApp", p.TelemetryProperties(), p.launch)
}

// PrewarmBundleCache asks the packager to prepare the bundle of the platform.
func (p *Platform) PrewarmBundleCache(ctx context.Context) error {
	return p.deps.Packager.PrewarmBundleCache(ctx, p.Variant.Type)
}

func (p *Platform) launch(ctx context.Context) error {
	ls := &launchState{observe: p.deps.OnState, logger: p.deps.Logger}
	if p.Options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Options.Timeout)
		defer cancel()
	}

	env, err := p.deps.Env(p.deps.ProcessEnv(), p.Options.Env, p.envFile())
	if err != nil {
		return ls.settle(fmt.Errorf("resolving environment: %w", err))
	}

	args := p.LaunchArguments()
	ls.to(Spawning)
	p.deps.Logger.Info("running app", "platform", p.Variant.Type, "command", p.Variant.Verb()+" "+strings.Join(args, " "))
	proc, err := p.deps.Spawner.Spawn(ctx, p.Variant.Verb(), args, env)
	if err != nil {
		return ls.settle(err)
	}
	defer proc.Detach()

	ls.to(Observing)
	v := verify.New(p.Variant.successRules, p.Variant.failureRules, string(p.Variant.Type))
	v.Logger = p.deps.Logger
	return ls.settle(v.Process(ctx, proc))
}

// envFile returns the resolved path of the environment file, or "".
func (p *Platform) envFile() string {
	f := p.Options.EnvFile
	if f == "" {
		return ""
	}
	if ef, err := homedir.Expand(f); err == nil {
		f = ef
	}
	if !filepath.IsAbs(f) {
		f = filepath.Join(p.Options.ProjectPath, f)
	}
	return f
}
