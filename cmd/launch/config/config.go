// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the launch tool.
package config

import (
	"fmt"
	"slices"
	"time"

	"cogentcore.org/launch/base/exec"
	"cogentcore.org/launch/base/logx"
	"cogentcore.org/launch/platform"
	"github.com/mitchellh/go-homedir"
)

// Telemetry recorders that can be selected with [Config.Telemetry].
const (
	TelemetryLog  = "log"
	TelemetryOtel = "otel"
	TelemetryNone = "none"
)

// Config is the main config struct that contains all
// of the configuration options for the launch tool.
type Config struct {

	// the platform to run the app on (android, ios, macos, or windows)
	Platform platform.PlatformType `default:"android" desc:"the platform to run the app on (android, ios, macos, or windows)"`

	// the root directory of the app project
	ProjectPath string `default:"." desc:"the root directory of the app project"`

	// the device or simulator to run the app on; simulator uses the default one
	Target string `default:"simulator" desc:"the device or simulator to run the app on; simulator uses the default one"`

	// explicit arguments for the run command, which replace those derived from the target
	RunArgs []string `desc:"explicit arguments for the run command, which replace those derived from the target"`

	// environment variables for the run command, as key=value
	Env map[string]string `flag:"e,env" desc:"environment variables for the run command, as key=value"`

	// the environment file, relative to the project path
	EnvFile string `desc:"the environment file, relative to the project path"`

	// the framework version; if unset, it is read from the project
	FrameworkVersion string `desc:"the framework version; if unset, it is read from the project"`

	// the version of the platform package; if unset, it is read from the project
	PlatformVersion string `desc:"the version of the platform package; if unset, it is read from the project"`

	// the framework CLI command that the run command is passed to
	Command string `default:"npx react-native" desc:"the framework CLI command that the run command is passed to"`

	// the host and port of the packager
	Packager string `default:"localhost:8081" desc:"the host and port of the packager"`

	// whether to prewarm the packager bundle cache before running
	Prewarm bool `desc:"whether to prewarm the packager bundle cache before running"`

	// the longest time to wait for the outcome of the run; 0 means no limit
	Timeout time.Duration `desc:"the longest time to wait for the outcome of the run; 0 means no limit"`

	// where to record telemetry (log, otel, or none)
	Telemetry string `default:"log" desc:"where to record telemetry (log, otel, or none)"`

	// print debug messages
	VeryVerbose bool `flag:"vv,very-verbose" desc:"print debug messages"`

	// print info messages
	Verbose bool `flag:"v,verbose" desc:"print info messages"`

	// print only error messages
	Quiet bool `flag:"q,quiet" desc:"print only error messages"`
}

func (c *Config) OnConfig(cmd string) error {
	logx.UserLevel = logx.LevelFromFlags(c.VeryVerbose, c.Verbose, c.Quiet)
	logx.SetDefaultLogger()
	if !slices.Contains([]string{TelemetryLog, TelemetryOtel, TelemetryNone}, c.Telemetry) {
		return fmt.Errorf("unknown telemetry %q", c.Telemetry)
	}
	if _, err := platform.VariantFor(c.Platform); err != nil {
		return err
	}
	return nil
}

// RunOptions returns the run options for the config,
// reading unset versions from the project.
func (c *Config) RunOptions() (platform.RunOptions, error) {
	v, err := platform.VariantFor(c.Platform)
	if err != nil {
		return platform.RunOptions{}, err
	}
	pp, err := homedir.Expand(c.ProjectPath)
	if err != nil {
		return platform.RunOptions{}, err
	}
	vers := platform.Versions{Framework: c.FrameworkVersion, Platform: c.PlatformVersion}
	if vers.Framework == "" || vers.Platform == "" {
		// a malformed command is reported when the run starts
		cmd, _ := exec.Args(c.Command)
		dv := platform.DetectVersions(pp, v, cmd)
		if vers.Framework == "" {
			vers.Framework = dv.Framework
		}
		if vers.Platform == "" {
			vers.Platform = dv.Platform
		}
	}
	return platform.RunOptions{
		Platform:     v.Type,
		ProjectPath:  pp,
		Target:       c.Target,
		RunArguments: c.RunArgs,
		Env:          c.Env,
		EnvFile:      c.EnvFile,
		Versions:     vers,
		Timeout:      c.Timeout,
	}, nil
}
