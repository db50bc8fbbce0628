// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetArguments(t *testing.T) {
	assert.Equal(t, []string{"--foo"}, TargetArguments([]string{"--foo"}, "MyDevice"))
	assert.Equal(t, []string{"--foo"}, TargetArguments([]string{"--foo"}, "simulator"))
	assert.Equal(t, []string{}, TargetArguments(nil, "simulator"))
	assert.Equal(t, []string{"--MyDevice"}, TargetArguments(nil, "MyDevice"))
	assert.Equal(t, []string{"--MyDevice"}, TargetArguments([]string{}, "MyDevice"))
	assert.Equal(t, []string{}, TargetArguments(nil, ""))
}

func TestTargetArgumentsCopies(t *testing.T) {
	explicit := []string{"--foo"}
	args := TargetArguments(explicit, "")
	args[0] = "--changed"
	assert.Equal(t, []string{"--foo"}, explicit)
}

func TestIOSArguments(t *testing.T) {
	assert.Equal(t, []string{}, iosArguments(nil, "simulator"))
	assert.Equal(t, []string{"--device"}, iosArguments(nil, "device"))
	assert.Equal(t, []string{"--simulator", "iPhone 15"}, iosArguments(nil, "iPhone 15"))
	assert.Equal(t, []string{"--udid", "123"}, iosArguments([]string{"--udid", "123"}, "device"))
}

func TestAndroidArguments(t *testing.T) {
	assert.Equal(t, []string{}, androidArguments(nil, "simulator"))
	assert.Equal(t, []string{}, androidArguments(nil, "device"))
	assert.Equal(t, []string{"--deviceId", "emulator-5554"}, androidArguments(nil, "emulator-5554"))
	assert.Equal(t, []string{"--variant", "release"}, androidArguments([]string{"--variant", "release"}, "emulator-5554"))
}

func TestVariantFor(t *testing.T) {
	v, err := VariantFor("MacOS")
	assert.NoError(t, err)
	assert.Equal(t, MacOSVariant, v)
	assert.Equal(t, "run-macos", v.Verb())

	for _, v := range Variants {
		got, err := VariantFor(v.Type)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
		assert.NotEmpty(t, v.SuccessRules)
		assert.NotEmpty(t, v.FailureRules)
	}

	_, err = VariantFor("tvos")
	assert.EqualError(t, err, `platform "tvos" is not supported`)

	_, err = VariantFor("andriod")
	assert.ErrorContains(t, err, `did you mean "android"?`)
	_, err = VariantFor("window")
	assert.ErrorContains(t, err, `did you mean "windows"?`)
}
