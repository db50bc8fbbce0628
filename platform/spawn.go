// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"cogentcore.org/launch/base/exec"
	"cogentcore.org/launch/verify"
)

// DefaultCommand is the default framework CLI command that
// run verbs are passed to.
const DefaultCommand = "npx react-native"

// Process is a spawned run command.
type Process interface {
	verify.Handle

	// Detach stops delivering output lines, letting the
	// command run to completion on its own.
	Detach()
}

// Spawner starts run commands.
type Spawner interface {
	// Spawn starts the framework CLI with the given verb and arguments
	// in the given environment. It returns an error only if the command
	// could not be started.
	Spawn(ctx context.Context, verb string, args []string, env map[string]string) (Process, error)
}

// CommandSpawner is a [Spawner] that runs the framework CLI as
// an external command in the project directory.
type CommandSpawner struct {
	// Command is the framework CLI command and its leading arguments.
	Command []string

	// Dir is the project directory to run the command in.
	Dir string

	// Exec is the exec configuration to start from; if nil,
	// [exec.Major] is used.
	Exec *exec.Config
}

// NewCommandSpawner returns a new [CommandSpawner] for the given
// project directory and command line, which is split following
// shell quoting rules.
func NewCommandSpawner(dir, command string) (*CommandSpawner, error) {
	args, err := exec.Args(command)
	if err != nil {
		return nil, fmt.Errorf("parsing command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command %q", command)
	}
	return &CommandSpawner{Command: args, Dir: dir}, nil
}

// Spawn starts the command with exactly the given environment,
// on top of any variables set in [CommandSpawner.Exec].
func (s *CommandSpawner) Spawn(ctx context.Context, verb string, args []string, env map[string]string) (Process, error) {
	name := s.Command[0]
	// names with a directory are resolved against Dir when started
	if filepath.Base(name) == name {
		if _, err := exec.LookPath(name); err != nil {
			return nil, fmt.Errorf("framework CLI %q not found: %w", name, err)
		}
	}
	c := s.Exec
	if c == nil {
		c = exec.Major()
	}
	c = c.Clone().SetDir(s.Dir).SetEnvMap(env)
	c.ClearEnv = true
	cargs := slices.Concat(s.Command[1:], []string{verb}, args)
	p, err := c.Spawn(ctx, name, cargs...)
	if err != nil {
		return nil, err
	}
	return p, nil
}
