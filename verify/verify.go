// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package verify decides the outcome of a launch command by
// matching its output, line by line, against success and
// failure rules.
package verify

import (
	"context"
	"log/slog"
)

// Handle is a running command whose output can be verified.
// The Process type of the exec package implements it.
type Handle interface {
	// Lines returns the channel of output lines, which is closed
	// once the command has exited and all of its output has been read.
	Lines() <-chan string

	// Wait blocks until the command exits and returns its exit error.
	Wait() error
}

// Verifier matches the output of a [Handle] against its rules.
// It is safe to use one Verifier for several commands at once.
type Verifier struct {
	success func() []Rule
	failure func() []Rule
	label   string

	// Logger is used to log which rule matched, at debug level.
	Logger *slog.Logger
}

// New returns a new [Verifier] that gets its success and failure
// rules from the given functions, which are called once per
// [Verifier.Process] call. Either function may be nil. The label
// identifies the verified command in errors, typically the
// platform name.
func New(success, failure func() []Rule, label string) *Verifier {
	return &Verifier{success: success, failure: failure, label: label, Logger: slog.Default()}
}

// Classify returns the first rule that matches the given line,
// and whether any did. Failure rules are checked before success
// rules, so a failure signature is never masked by a success
// signature on the same line.
func Classify(line string, success, failure []Rule) (Rule, bool) {
	if r, ok := firstMatch(failure, line); ok {
		return r, true
	}
	return firstMatch(success, line)
}

// Process reads the output of the given handle until the launch
// outcome is known, and returns nil on success or an [*Error]
// describing the failure:
//   - the first line matching a failure rule fails the launch with
//     the code of that rule;
//   - the first line matching a success rule, with no failure rule
//     matched before it, succeeds the launch;
//   - if the output ends with no rule matched, the launch succeeds
//     if the command exited cleanly, and otherwise fails with
//     [UnrecognizedFailure].
//
// Process stops reading as soon as a rule matches; the command may
// keep running. It returns ctx.Err() if ctx is done first. There is
// no other timeout: a command that never matches and never exits
// blocks Process until ctx is done.
func (v *Verifier) Process(ctx context.Context, h Handle) error {
	success, failure := provide(v.success), provide(v.failure)
	lines := h.Lines()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ln, ok := <-lines:
			if !ok {
				return v.exited(h.Wait())
			}
			r, matched := Classify(ln, success, failure)
			if !matched {
				continue
			}
			v.logger().Debug("output matched", "label", v.label, "pattern", r.String(), "code", r.Code)
			if r.Code == Success {
				return nil
			}
			return &Error{Code: r.Code, Label: v.label, Line: ln}
		}
	}
}

// exited returns the outcome of a command that exited with
// the given error before any rule matched.
func (v *Verifier) exited(err error) error {
	if err == nil {
		v.logger().Debug("command exited cleanly with no matching output", "label", v.label)
		return nil
	}
	return &Error{Code: UnrecognizedFailure, Label: v.label, Err: err}
}

func (v *Verifier) logger() *slog.Logger {
	if v.Logger != nil {
		return v.Logger
	}
	return slog.Default()
}

func provide(f func() []Rule) []Rule {
	if f == nil {
		return nil
	}
	return f()
}
