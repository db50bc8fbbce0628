// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"
	"slices"
	"strings"

	"cogentcore.org/launch/verify"
	"github.com/Masterminds/semver/v3"
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// PlatformType identifies a target platform.
type PlatformType string

const (
	MacOS   PlatformType = "macos"
	Windows PlatformType = "windows"
	IOS     PlatformType = "ios"
	Android PlatformType = "android"
)

// NoPackagerFlag is the compatibility flag that stops the run command
// from starting its own packager.
const NoPackagerFlag = "--no-packager"

// Variant contains everything that differs between platforms when
// running an app. Variants are shared by all runs and must not be
// modified after they are created.
type Variant struct {
	// Type is the platform type; the run command is "run-" + Type.
	Type PlatformType

	// Title is the display name of the platform, used in telemetry.
	Title string

	// PlatformPackage is the npm package providing the platform,
	// if it is not part of the framework itself.
	PlatformPackage string

	// NoPackagerVersion is the first framework version whose run
	// command accepts [Variant.CompatibilityFlag].
	NoPackagerVersion *semver.Version

	// CompatibilityFlag is the flag added for framework versions
	// at or above [Variant.NoPackagerVersion].
	CompatibilityFlag string

	// SuccessRules are the output rules that mark a successful launch.
	SuccessRules []verify.Rule

	// FailureRules are the output rules that mark a failed launch.
	FailureRules []verify.Rule

	// Arguments returns the run arguments for the given explicit
	// arguments and target.
	Arguments func(explicit []string, target string) []string
}

// Verb returns the framework CLI command that runs the app.
func (v *Variant) Verb() string {
	return "run-" + string(v.Type)
}

func (v *Variant) successRules() []verify.Rule { return v.SuccessRules }
func (v *Variant) failureRules() []verify.Rule { return v.FailureRules }

func (v *Variant) String() string {
	return v.Title
}

var (
	// MacOSVariant runs apps on macOS.
	MacOSVariant = &Variant{
		Type:              MacOS,
		Title:             "macOS",
		PlatformPackage:   "react-native-macos",
		NoPackagerVersion: semver.MustParse("0.53.0"),
		CompatibilityFlag: NoPackagerFlag,
		SuccessRules:      verify.SuccessRules("Launching app"),
		FailureRules: []verify.Rule{
			verify.Literal("Unrecognized command 'run-macos'", verify.PlatformPluginNotInstalled),
		},
		Arguments: TargetArguments,
	}

	// WindowsVariant runs apps on Windows.
	WindowsVariant = &Variant{
		Type:              Windows,
		Title:             "Windows",
		PlatformPackage:   "react-native-windows",
		NoPackagerVersion: semver.MustParse("0.53.0"),
		CompatibilityFlag: NoPackagerFlag,
		SuccessRules:      verify.SuccessRules("Starting the app"),
		FailureRules: []verify.Rule{
			verify.Literal("Unrecognized command 'run-windows'", verify.PlatformPluginNotInstalled),
		},
		Arguments: TargetArguments,
	}

	// IOSVariant runs apps on an iOS simulator or device.
	IOSVariant = &Variant{
		Type:              IOS,
		Title:             "iOS",
		NoPackagerVersion: semver.MustParse("0.42.0"),
		CompatibilityFlag: NoPackagerFlag,
		SuccessRules:      verify.SuccessRules("BUILD SUCCEEDED"),
		FailureRules: []verify.Rule{
			verify.Literal("No devices are booted", verify.IOSSimulatorNotLaunchable),
			verify.Literal("FBSOpenApplicationErrorDomain", verify.IOSSimulatorNotLaunchable),
			verify.Literal("Make sure you have ios-deploy installed globally", verify.IOSDeployNotFound),
		},
		Arguments: iosArguments,
	}

	// AndroidVariant runs apps on an Android emulator or device.
	AndroidVariant = &Variant{
		Type:              Android,
		Title:             "Android",
		NoPackagerVersion: semver.MustParse("0.42.0"),
		CompatibilityFlag: NoPackagerFlag,
		SuccessRules:      verify.SuccessRules("BUILD SUCCESSFUL", "Starting the app", "Starting: Intent"),
		FailureRules: []verify.Rule{
			verify.Literal("Failed to install on any devices", verify.AndroidCouldNotInstallApp),
			verify.Literal("com.android.ddmlib.ShellCommandUnresponsiveException", verify.AndroidShellCommandTimedOut),
			verify.Literal("Android project not found", verify.AndroidProjectNotFound),
			verify.Literal("error: more than one device/emulator", verify.AndroidMoreThanOneDevice),
			verify.Regexp(`^Error: Activity class \{.*\} does not exist\.$`, verify.AndroidActivityNotFound),
		},
		Arguments: androidArguments,
	}
)

// Variants contains all of the supported platform variants.
var Variants = []*Variant{MacOSVariant, WindowsVariant, IOSVariant, AndroidVariant}

// VariantFor returns the variant for the given platform type,
// which is matched case-insensitively.
func VariantFor(t PlatformType) (*Variant, error) {
	lt := PlatformType(strings.ToLower(string(t)))
	i := slices.IndexFunc(Variants, func(v *Variant) bool { return v.Type == lt })
	if i < 0 {
		if s := suggestPlatform(lt); s != "" {
			return nil, fmt.Errorf("platform %q is not supported; did you mean %q?", t, s)
		}
		return nil, fmt.Errorf("platform %q is not supported", t)
	}
	return Variants[i], nil
}

// suggestPlatform returns the supported platform type most similar
// to the given one, or "" if none is similar enough.
func suggestPlatform(t PlatformType) PlatformType {
	lv := metrics.NewLevenshtein()
	var best PlatformType
	bestSim := 0.6
	for _, v := range Variants {
		if sim := strutil.Similarity(string(t), string(v.Type), lv); sim > bestSim {
			best, bestSim = v.Type, sim
		}
	}
	return best
}
