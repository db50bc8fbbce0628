// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"fmt"
	"reflect"
	"strings"

	"cogentcore.org/launch/base/logx"
	"cogentcore.org/launch/base/reflectx"
)

// Usage returns the usage string for the app with the given
// options, config object, and commands.
func Usage[T any](opts *Options, cfg T, cmds ...*Cmd[T]) string {
	var b strings.Builder
	b.WriteString(logx.TitleColor(opts.AppTitle))
	if opts.AppAbout != "" {
		b.WriteString("\n\n" + opts.AppAbout)
	}
	fmt.Fprintf(&b, "\n\nUsage:\n\t%s [command] [flags]\n", opts.AppName)

	if len(cmds) > 0 {
		b.WriteString("\nCommands:\n")
		for _, c := range cmds {
			nm := c.Name
			if c.Root {
				nm += " (default)"
			}
			fmt.Fprintf(&b, "\t%s\t%s\n", logx.CmdColor(nm), c.Doc)
		}
		fmt.Fprintf(&b, "\thelp\tshow this help\n")
	}

	b.WriteString("\nFlags:\n")
	fmt.Fprintf(&b, "\t-%s\tthe config file to read\n", strings.Join(ConfigFlags, ", -"))
	usageFields(cfg, &b)
	return b.String()
}

func usageFields(cfg any, b *strings.Builder) {
	v := reflectx.NonPointerValue(reflect.ValueOf(cfg))
	if v.Kind() != reflect.Struct {
		return
	}
	// defaults are shown from a fresh value, not the current one
	dv := reflect.New(v.Type()).Elem()
	reflectx.SetFromDefaultTags(dv.Addr().Interface())
	for _, f := range fields(dv) {
		fmt.Fprintf(b, "\t-%s", strings.Join(f.Names, ", -"))
		if f.Desc != "" {
			b.WriteString("\t" + f.Desc)
		}
		if !f.Value.IsZero() {
			fmt.Fprintf(b, " (default %v)", f.Value.Interface())
		}
		b.WriteString("\n")
	}
}
