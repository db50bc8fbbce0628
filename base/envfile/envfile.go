// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envfile reads environment files in the dotenv format.
package envfile

import (
	"fmt"
	"io"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

// Parse reads environment variables from the given reader.
// Lines may start with export and end with a # comment. Values may
// be wrapped in single or double quotes; double-quoted values support
// escapes such as \n and ${VAR} references. Later definitions of a
// key override earlier ones.
func Parse(r io.Reader) (map[string]string, error) {
	env, err := godotenv.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("envfile: %w", err)
	}
	return env, nil
}

// Open reads environment variables from the given file, expanding
// a leading ~ to the home directory.
func Open(filename string) (map[string]string, error) {
	fn, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	env, err := godotenv.Read(fn)
	if err != nil {
		return nil, fmt.Errorf("envfile: reading %q: %w", fn, err)
	}
	return env, nil
}
