// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package verify

import (
	"fmt"

	"cogentcore.org/launch/base/errors"
)

// ErrorCode classifies why a launch failed.
type ErrorCode int32

const (
	// Success is the code of a rule that marks a successful launch.
	Success ErrorCode = iota

	// UnrecognizedFailure is a failure with no known output signature:
	// the command exited with an error before any rule matched.
	UnrecognizedFailure

	// PlatformPluginNotInstalled is reported when the framework CLI does
	// not know the platform run command, because the out-of-tree platform
	// package is not installed in the project.
	PlatformPluginNotInstalled

	// AndroidCouldNotInstallApp is reported when the app could not be
	// installed on any available device.
	AndroidCouldNotInstallApp

	// AndroidShellCommandTimedOut is reported when an adb shell command
	// became unresponsive.
	AndroidShellCommandTimedOut

	// AndroidProjectNotFound is reported when there is no android project.
	AndroidProjectNotFound

	// AndroidMoreThanOneDevice is reported when several devices or
	// emulators are connected and none was chosen.
	AndroidMoreThanOneDevice

	// AndroidActivityNotFound is reported when the activity to launch
	// does not exist.
	AndroidActivityNotFound

	// IOSSimulatorNotLaunchable is reported when no simulator could be
	// booted or the app could not be opened in it.
	IOSSimulatorNotLaunchable

	// IOSDeployNotFound is reported when ios-deploy is needed to run on
	// a device but is not installed.
	IOSDeployNotFound
)

var codeNames = map[ErrorCode]string{
	Success:                     "Success",
	UnrecognizedFailure:         "UnrecognizedFailure",
	PlatformPluginNotInstalled:  "PlatformPluginNotInstalled",
	AndroidCouldNotInstallApp:   "AndroidCouldNotInstallApp",
	AndroidShellCommandTimedOut: "AndroidShellCommandTimedOut",
	AndroidProjectNotFound:      "AndroidProjectNotFound",
	AndroidMoreThanOneDevice:    "AndroidMoreThanOneDevice",
	AndroidActivityNotFound:     "AndroidActivityNotFound",
	IOSSimulatorNotLaunchable:   "IOSSimulatorNotLaunchable",
	IOSDeployNotFound:           "IOSDeployNotFound",
}

var codeMessages = map[ErrorCode]string{
	UnrecognizedFailure:         "the run command failed without a recognized error message",
	PlatformPluginNotInstalled:  "the platform package must be installed in the project to run the app on this platform",
	AndroidCouldNotInstallApp:   "could not install the app on any available device; make sure a device is connected or an emulator is running",
	AndroidShellCommandTimedOut: "an adb shell command timed out; try restarting the device or emulator",
	AndroidProjectNotFound:      "no android project was found in the project directory",
	AndroidMoreThanOneDevice:    "more than one device or emulator is connected; choose one with the target option",
	AndroidActivityNotFound:     "the activity to launch does not exist",
	IOSSimulatorNotLaunchable:   "could not launch the app in the iOS simulator",
	IOSDeployNotFound:           "ios-deploy is required to run on a device; install it with npm install -g ios-deploy",
}

func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int32(c))
}

// Message returns a user-facing description of the error code.
func (c ErrorCode) Message() string {
	if s, ok := codeMessages[c]; ok {
		return s
	}
	return c.String()
}

// Error is the error returned when a launch fails, either because
// an output line matched a failure rule or because the command
// exited with an error before any rule matched.
type Error struct {
	// Code is the failure classification.
	Code ErrorCode

	// Label identifies what was being launched, typically the platform name.
	Label string

	// Line is the output line that matched the failure rule, if any.
	Line string

	// Err is the underlying exit error, if any.
	Err error
}

func (e *Error) Error() string {
	s := e.Label + ": " + e.Code.Message()
	if e.Line != "" {
		s += fmt.Sprintf(" (%q)", e.Line)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

// CodeOf returns the [ErrorCode] of the first [*Error] in the tree
// of the given error, and whether there was one.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return Success, false
}
