// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package platform

import (
	"fmt"
	"maps"
	"strings"

	"cogentcore.org/launch/base/envfile"
)

// EnvResolver returns the environment for a run from the process
// environment, in os.Environ form, the inline overrides, and the
// path of an environment file, which may be empty.
type EnvResolver func(processEnv []string, overrides map[string]string, envFile string) (map[string]string, error)

// ResolveEnv is the default [EnvResolver]. Variables from the environment
// file override the process environment, and the inline overrides
// override both.
func ResolveEnv(processEnv []string, overrides map[string]string, envFile string) (map[string]string, error) {
	env := make(map[string]string, len(processEnv)+len(overrides))
	for _, kv := range processEnv {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		env[k] = v
	}
	if envFile != "" {
		fenv, err := envfile.Open(envFile)
		if err != nil {
			return nil, fmt.Errorf("reading environment file: %w", err)
		}
		maps.Copy(env, fenv)
	}
	maps.Copy(env, overrides)
	return env, nil
}
