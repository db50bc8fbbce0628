// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Platform     string            `yaml:"platform"`
	RunArguments []string          `yaml:"runArguments"`
	Env          map[string]string `yaml:"env"`
}

func TestRead(t *testing.T) {
	c := &testConfig{}
	err := Read(c, strings.NewReader("platform: android\nrunArguments: [--variant, release]\nenv:\n  API_URL: http://localhost\n"))
	require.NoError(t, err)
	assert.Equal(t, "android", c.Platform)
	assert.Equal(t, []string{"--variant", "release"}, c.RunArguments)
	assert.Equal(t, map[string]string{"API_URL": "http://localhost"}, c.Env)
}
