// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import "slices"

const (
	// SimulatorTarget is the target name for the default simulator,
	// which needs no run arguments.
	SimulatorTarget = "simulator"

	// DeviceTarget is the target name for a connected device.
	DeviceTarget = "device"
)

// TargetArguments returns the run arguments for the given explicit
// arguments and target name. Explicit arguments, if any, are returned
// as they are. Otherwise a target other than [SimulatorTarget] is
// passed as a flag of the same name, and no target gives no arguments.
func TargetArguments(explicit []string, target string) []string {
	if len(explicit) > 0 {
		return slices.Clone(explicit)
	}
	if target == "" || target == SimulatorTarget {
		return []string{}
	}
	return []string{"--" + target}
}

// iosArguments is [TargetArguments] for iOS, where the target
// selects a connected device or a simulator by name.
func iosArguments(explicit []string, target string) []string {
	if len(explicit) > 0 {
		return slices.Clone(explicit)
	}
	switch target {
	case "", SimulatorTarget:
		return []string{}
	case DeviceTarget:
		return []string{"--device"}
	}
	return []string{"--simulator", target}
}

// androidArguments is [TargetArguments] for Android, where the
// target is a device id as listed by adb.
func androidArguments(explicit []string, target string) []string {
	if len(explicit) > 0 {
		return slices.Clone(explicit)
	}
	switch target {
	case "", SimulatorTarget, DeviceTarget:
		return []string{}
	}
	return []string{"--deviceId", target}
}
