// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Adapted in part from: https://github.com/magefile/mage
// Copyright presumably by Nate Finch, primary contributor
// Apache License, Version 2.0, January 2004

package exec

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"cogentcore.org/launch/base/logx"
)

// Exec executes the command, piping its stdout and stderr to the config
// writers. If the command fails, it will return an error with the command output.
// The given cmd and args may include references
// to environment variables in $FOO format, in which case these will be
// expanded before the command is run.
//
// Ran reports if the command ran (rather than was not found or not executable).
// If err == nil, ran is always true.
func (c *Config) Exec(cmd string, args ...string) (ran bool, err error) {
	cmd, args = c.expand(cmd, args)
	ec := c.command(context.Background(), cmd, args...)
	ec.Stdout = c.StdIO.Out
	ec.Stderr = c.StdIO.Err
	err = ec.Run()
	if err == nil {
		return true, nil
	}
	return CmdRan(err), fmt.Errorf("failed to run %q: %w", cmd+" "+strings.Join(args, " "), err)
}

// expand expands environment variable references in the
// command and its arguments, looking first at [Config.Env].
func (c *Config) expand(cmd string, args []string) (string, []string) {
	expand := func(s string) string {
		s2, ok := c.Env[s]
		if ok || c.ClearEnv {
			return s2
		}
		return os.Getenv(s)
	}
	cmd = os.Expand(cmd, expand)
	eargs := make([]string, len(args))
	for i := range args {
		eargs[i] = os.Expand(args[i], expand)
	}
	return cmd, eargs
}

// command returns a new [exec.Cmd] for the given command with
// the directory, environment, and standard input set from the config.
// It echoes the command if [Config.Echo] is set.
func (c *Config) command(ctx context.Context, cmd string, args ...string) *exec.Cmd {
	ec := exec.CommandContext(ctx, cmd, args...)
	ec.Env = c.environ()
	ec.Stdin = c.StdIO.In
	ec.Dir = c.Dir
	if c.Echo != nil {
		if ec.Dir != "" {
			fmt.Fprint(c.Echo, logx.ApplyLevelColor(logx.UserLevel, ec.Dir)+": ")
		}
		fmt.Fprintln(c.Echo, logx.CmdColor(cmd+" "+strings.Join(args, " ")))
	}
	return ec
}

// CmdRan examines the error to determine if it was generated as a result of a
// command running via os/exec.Command. If the error is nil, or the command ran
// (even if it exited with a non-zero exit code), CmdRan reports true. If the
// error is an unrecognized type, or it is an error from exec.Command that says
// the command failed to run (usually due to the command not existing or not
// being executable), it reports false.
func CmdRan(err error) bool {
	if err == nil {
		return true
	}
	var ee *exec.ExitError
	if asExitError(err, &ee) {
		return ee.Exited()
	}
	return false
}

type exitStatus interface {
	ExitStatus() int
}

// ExitStatus returns the exit status of the error if it is an exec.ExitError
// or if it implements ExitStatus() int.
// 0 if it is nil or 1 if it is a different error.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	if e, ok := err.(exitStatus); ok {
		return e.ExitStatus()
	}
	var ee *exec.ExitError
	if asExitError(err, &ee) {
		if ex, ok := ee.Sys().(exitStatus); ok {
			return ex.ExitStatus()
		}
	}
	return 1
}
