// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"cogentcore.org/launch/base/fsx"
	"cogentcore.org/launch/base/iox/tomlx"
	"cogentcore.org/launch/base/iox/yamlx"
	"github.com/mitchellh/go-homedir"
)

// OpenConfig reads the given config object from the given file,
// choosing the format from its extension: .toml, or .yaml and .yml.
// A leading ~ in the file name is expanded to the home directory.
func OpenConfig(cfg any, file string) error {
	fn, err := homedir.Expand(file)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(fn)); ext {
	case ".toml":
		err = tomlx.Open(cfg, fn)
	case ".yaml", ".yml":
		err = yamlx.Open(cfg, fn)
	default:
		return fmt.Errorf("config file %q: unsupported format %q", file, ext)
	}
	if err != nil {
		return fmt.Errorf("config file %q: %w", file, err)
	}
	return nil
}

// configFiles returns the existing config files among [Options.DefaultFiles],
// looking in dir and, if [Options.SearchUp] is set, its parents.
func configFiles(opts *Options, dir string) []string {
	return fsx.FindFilesUp(dir, opts.DefaultFiles, opts.SearchUp)
}
