// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package exec provides an easy way to execute commands,
// improving the ease-of-use and error handling of the
// standard library os/exec package, and streaming the
// output of long-running commands line by line.
package exec

import (
	"io"
	"maps"
	"os"
	"os/exec"
)

// Config contains the configuration information that
// controls the behavior of exec. It is passed to most
// high-level functions, and a default version of it
// can be easily constructed using [DefaultConfig].
type Config struct {
	// Dir is the directory to run commands in.
	// If it is "", commands are run in the current directory.
	Dir string

	// Env contains any additional environment variables specified.
	// The current environment variables will also be passed to the
	// command, but they will be overridden by any variables here
	// if there are conflicts.
	Env map[string]string

	// ClearEnv is whether to pass only [Config.Env] to the command,
	// without the current environment variables.
	ClearEnv bool

	// Echo is the writer for echoing the command string to.
	// It can be set to nil to disable echoing.
	Echo io.Writer

	// StdIO contains the standard input and output writers and reader.
	StdIO StdIO
}

// DefaultConfig returns a default [Config] object,
// which writes to the standard outputs and echoes commands.
func DefaultConfig() *Config {
	c := &Config{
		Env:  map[string]string{},
		Echo: os.Stdout,
	}
	c.StdIO.StdAll()
	return c
}

// Major returns a new [Config] object for a major command,
// which echoes the command and forwards all output.
func Major() *Config {
	return DefaultConfig()
}

// Minor returns a new [Config] object for a minor command,
// which does not echo the command and only forwards the
// standard error.
func Minor() *Config {
	c := DefaultConfig()
	c.Echo = nil
	c.StdIO.Out = nil
	return c
}

// Silent returns a new [Config] object that neither echoes
// the command nor forwards any output.
func Silent() *Config {
	c := DefaultConfig()
	c.Echo = nil
	c.StdIO.Out = nil
	c.StdIO.Err = nil
	return c
}

// Clone returns a copy of the config with its own environment map.
func (c *Config) Clone() *Config {
	nc := *c
	nc.Env = maps.Clone(c.Env)
	if nc.Env == nil {
		nc.Env = map[string]string{}
	}
	return &nc
}

// SetDir sets [Config.Dir] and returns the config for chaining.
func (c *Config) SetDir(dir string) *Config {
	c.Dir = dir
	return c
}

// SetEnv sets the given environment variable and returns the
// config for chaining.
func (c *Config) SetEnv(key, value string) *Config {
	if c.Env == nil {
		c.Env = map[string]string{}
	}
	c.Env[key] = value
	return c
}

// SetEnvMap sets all of the given environment variables and
// returns the config for chaining.
func (c *Config) SetEnvMap(env map[string]string) *Config {
	for k, v := range env {
		c.SetEnv(k, v)
	}
	return c
}

// SetStdout sets the standard output writer and returns the config for chaining.
func (c *Config) SetStdout(w io.Writer) *Config {
	c.StdIO.Out = w
	return c
}

// environ returns the full environment for a command:
// the current process environment overridden by [Config.Env],
// or only [Config.Env] if [Config.ClearEnv] is set.
func (c *Config) environ() []string {
	// a nil env would make the command inherit the current one
	env := []string{}
	if !c.ClearEnv {
		env = os.Environ()
	}
	for k, v := range c.Env {
		env = append(env, k+"="+v)
	}
	return env
}

// LookPath searches for an executable named file in the
// directories named by the PATH environment variable.
// It is a re-export of [exec.LookPath].
func LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// ErrNotFound is the error resulting if a path search
// failed to find an executable file.
var ErrNotFound = exec.ErrNotFound
