// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ParseVersion parses the given string as a semantic version in
// the same way as npm does for package versions: surrounding space
// and a leading "=" or "v" are allowed, and the rest must be a
// complete MAJOR.MINOR.PATCH version with optional pre-release and
// build metadata.
func ParseVersion(version string) (*semver.Version, error) {
	s := strings.TrimSpace(version)
	s = strings.TrimPrefix(s, "=")
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	return semver.StrictNewVersion(s)
}

// CompatibilityFlagRequired returns whether the compatibility flag must
// be passed to the run command for the given framework version. It is
// true when the version is at or above the threshold, and also when the
// version is not a valid semantic version, which usually means a custom
// build of the framework that is expected to support the flag.
func CompatibilityFlagRequired(version string, threshold *semver.Version) bool {
	v, err := ParseVersion(version)
	if err != nil {
		return true
	}
	return !v.LessThan(threshold)
}
