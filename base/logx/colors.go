// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"log/slog"
	"os"

	"github.com/muesli/termenv"
)

// UseColor is whether to use color in log messages.
// It is on by default; terminals without color support
// still get plain text through the detected termenv profile.
var UseColor = true

// stdout is the termenv output used for coloring; its color
// profile is detected from [os.Stdout].
var stdout = termenv.NewOutput(os.Stdout)

// level colors, as ANSI 256 color codes
var levelColors = map[slog.Level]string{
	slog.LevelDebug: "245",
	slog.LevelInfo:  "39",
	slog.LevelWarn:  "214",
	slog.LevelError: "196",
}

// ApplyLevelColor applies the color associated with the given level to the
// given string and returns the resulting string. If [UseColor] is set
// to false, it just returns the string it was passed.
func ApplyLevelColor(level slog.Level, str string) string {
	if !UseColor {
		return str
	}
	c, ok := levelColors[level]
	if !ok {
		return str
	}
	return stdout.String(str).Foreground(stdout.Color(c)).String()
}

// CmdColor applies the color used for echoing commands to the given string.
func CmdColor(str string) string {
	if !UseColor {
		return str
	}
	return stdout.String(str).Foreground(stdout.Color("40")).Bold().String()
}

// TitleColor applies the color used for titles to the given string.
func TitleColor(str string) string {
	if !UseColor {
		return str
	}
	return stdout.String(str).Bold().Underline().String()
}
