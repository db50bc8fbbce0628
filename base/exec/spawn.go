// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package exec

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// maxLineSize is the longest output line a [Process] will deliver;
// longer lines are split.
const maxLineSize = 1024 * 1024

// WaitDelay is how long a [Process] keeps reading output after the
// command exits. Background processes the command leaves behind may
// hold its output open; their output after this delay is dropped.
var WaitDelay = 500 * time.Millisecond

// Process is a running command started with [Config.Spawn].
// Its combined standard output and standard error are delivered
// line by line on [Process.Lines], in the order the command wrote them.
type Process struct {
	// Cmd is the underlying [exec.Cmd].
	Cmd *exec.Cmd

	lines    chan string
	detached chan struct{}
	detach   sync.Once
	exited   chan struct{}
	err      error
}

// Spawn starts the given command without waiting for it to finish,
// returning a [Process] that streams its output. Each output line
// is also written to [StdIO.Out] when that is set. Cancelling ctx
// kills the command. An error is returned only if the command could
// not be started; the exit status is reported by [Process.Wait].
// Unlike [Config.Exec], the arguments are passed as given, without
// expanding environment variable references.
func (c *Config) Spawn(ctx context.Context, cmd string, args ...string) (*Process, error) {
	ec := c.command(ctx, cmd, args...)
	ec.WaitDelay = WaitDelay
	pr, pw := io.Pipe()
	// the same writer for both streams keeps their relative order
	ec.Stdout = pw
	ec.Stderr = pw
	if err := ec.Start(); err != nil {
		pw.Close()
		return nil, fmt.Errorf("failed to start %q: %w", cmd+" "+strings.Join(args, " "), err)
	}
	p := &Process{
		Cmd:      ec,
		lines:    make(chan string),
		detached: make(chan struct{}),
		exited:   make(chan struct{}),
	}
	go func() {
		err := ec.Wait()
		// the command itself exited cleanly; only its output was cut short
		if errors.Is(err, exec.ErrWaitDelay) {
			err = nil
		}
		p.err = err
		pw.Close()
		close(p.exited)
	}()
	go p.pump(pr, c.StdIO.Out)
	return p, nil
}

// pump reads lines from r until EOF, forwarding each one to the
// echo writer and to the lines channel, unless the process has been
// detached. It always drains r so that the command never blocks
// writing its output.
func (p *Process) pump(r io.Reader, echo io.Writer) {
	defer close(p.lines)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for sc.Scan() {
		ln := sc.Text()
		if echo != nil {
			fmt.Fprintln(echo, ln)
		}
		select {
		case p.lines <- ln:
		case <-p.detached:
		}
	}
	io.Copy(io.Discard, r)
}

// Lines returns the channel on which output lines are delivered.
// It is closed once the command has exited and its output has been
// read, or [WaitDelay] after the command exits if the output is
// still held open by other processes.
func (p *Process) Lines() <-chan string {
	return p.lines
}

// Wait blocks until the command exits and returns its exit error,
// which is nil if it exited successfully.
func (p *Process) Wait() error {
	<-p.exited
	return p.err
}

// Detach stops delivering lines on [Process.Lines]. The command keeps
// running to completion, and its output is still drained and echoed.
// It is safe to call Detach more than once.
func (p *Process) Detach() {
	p.detach.Do(func() { close(p.detached) })
}

func (p *Process) String() string {
	if p.Cmd.ProcessState != nil {
		return p.Cmd.ProcessState.String() + " " + p.Cmd.String()
	}
	if p.Cmd.Process != nil {
		return fmt.Sprintf("%d %s", p.Cmd.Process.Pid, p.Cmd.String())
	}
	return p.Cmd.String()
}
