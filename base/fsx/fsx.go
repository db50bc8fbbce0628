// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fsx provides functions for locating files
// on the operating system filesystem.
package fsx

import (
	"io/fs"
	"os"
	"path/filepath"

	"cogentcore.org/launch/base/errors"
)

// FileExists checks whether given file exists, returning true if so,
// false if not, and error if there is an error in accessing the file.
// Directories are not files.
func FileExists(filePath string) (bool, error) {
	fileInfo, err := os.Stat(filePath)
	if err == nil {
		return !fileInfo.IsDir(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// FindFileUp returns the path of the file at the given relative path
// from dir or, if up is set, from the closest parent directory of dir
// that has it. It returns "" if there is no such file. Absolute file
// paths are returned if they exist, regardless of dir.
func FindFileUp(dir, file string, up bool) string {
	if filepath.IsAbs(file) {
		if errors.Log1(FileExists(file)) {
			return file
		}
		return ""
	}
	for {
		fn := filepath.Join(dir, file)
		if errors.Log1(FileExists(fn)) {
			return fn
		}
		pd := filepath.Dir(dir)
		if !up || pd == dir {
			return ""
		}
		dir = pd
	}
}

// FindFilesUp returns the paths of the given files found with [FindFileUp],
// in the same order, skipping those that were not found.
func FindFilesUp(dir string, files []string, up bool) []string {
	var res []string
	for _, f := range files {
		if fn := FindFileUp(dir, f, up); fn != "" {
			res = append(res, fn)
		}
	}
	return res
}
