// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"cogentcore.org/launch/base/exec"
)

// FrameworkPackage is the npm package of the app framework.
const FrameworkPackage = "react-native"

// Versions contains the versions of the packages an app is launched with.
type Versions struct {
	// Framework is the version of the app framework.
	Framework string

	// Platform is the version of the out-of-tree platform
	// package, if the platform has one.
	Platform string
}

// DetectVersions returns the versions of the framework and of the platform
// package of the given variant installed in the project. If the framework
// package is not installed and command is not empty, the framework version
// is asked from the framework CLI command with [CLIVersion]. Versions that
// cannot be determined are left empty.
func DetectVersions(projectPath string, v *Variant, command []string) Versions {
	vs := Versions{Framework: PackageVersion(projectPath, FrameworkPackage)}
	if vs.Framework == "" && len(command) > 0 {
		vs.Framework = CLIVersion(projectPath, command)
	}
	if v.PlatformPackage != "" {
		vs.Platform = PackageVersion(projectPath, v.PlatformPackage)
	}
	return vs
}

// PackageVersion returns the version of the given npm package installed
// in the project, or "" if it cannot be read.
func PackageVersion(projectPath, pkg string) string {
	b, err := os.ReadFile(filepath.Join(projectPath, "node_modules", pkg, "package.json"))
	if err != nil {
		return ""
	}
	var pj struct {
		Version string `json:"version"`
	}
	if json.Unmarshal(b, &pj) != nil {
		return ""
	}
	return pj.Version
}

// CLIVersion runs the framework CLI command with --version in the
// project directory and returns the framework version it reports,
// or "" if it reports none.
func CLIVersion(projectPath string, command []string) string {
	out, err := exec.Minor().SetDir(projectPath).Output(command[0], slices.Concat(command[1:], []string{"--version"})...)
	if err != nil {
		return ""
	}
	return parseCLIVersion(out)
}

// parseCLIVersion returns the version on the "react-native: x.y.z"
// line of the version output of the framework CLI.
func parseCLIVersion(out string) string {
	for _, ln := range strings.Split(out, "\n") {
		v, ok := strings.CutPrefix(strings.TrimSpace(ln), FrameworkPackage+":")
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if _, err := ParseVersion(v); err == nil {
			return v
		}
	}
	return ""
}
