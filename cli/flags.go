// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	"cogentcore.org/launch/base/reflectx"
	"github.com/iancoleman/strcase"
)

// field is a settable config field exposed as a flag.
type field struct {
	// Names are the flag names, the first of which is the primary one.
	Names []string
	Desc  string
	Value reflect.Value
}

// fields returns the flag fields of the given config struct value.
// Flag names are the kebab-case field names, or the comma-separated
// names of a `flag:` tag. Fields of nested structs are included with
// their own names. Fields tagged `flag:"-"` are skipped.
func fields(v reflect.Value) []*field {
	var res []*field
	typ := v.Type()
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if !reflectx.IsLeaf(f.Type) {
			res = append(res, fields(fv)...)
			continue
		}
		names := []string{strcase.ToKebab(f.Name)}
		if tag, ok := f.Tag.Lookup("flag"); ok {
			if tag == "-" {
				continue
			}
			names = strings.Split(tag, ",")
		}
		res = append(res, &field{Names: names, Desc: f.Tag.Get("desc"), Value: fv})
	}
	return res
}

// flagValue is a [flag.Value] setting a config field.
type flagValue struct {
	v   reflect.Value
	set bool
}

func (fv *flagValue) String() string {
	if fv == nil || !fv.v.IsValid() {
		return ""
	}
	return fmt.Sprint(fv.v.Interface())
}

func (fv *flagValue) Set(s string) error {
	first := !fv.set
	fv.set = true
	switch fv.v.Kind() {
	case reflect.Slice:
		// the first use replaces the configured value; repeated uses append
		n := reflect.New(fv.v.Type()).Elem()
		if err := reflectx.SetFromString(n, s); err != nil {
			return err
		}
		if first {
			fv.v.Set(n)
		} else {
			fv.v.Set(reflect.AppendSlice(fv.v, n))
		}
		return nil
	case reflect.Map:
		return reflectx.SetMapEntry(fv.v, s)
	}
	return reflectx.SetFromString(fv.v, s)
}

// IsBoolFlag makes bool fields usable as -name without a value.
func (fv *flagValue) IsBoolFlag() bool {
	return fv.v.Kind() == reflect.Bool
}

// newFlagSet returns a flag set for the given config object,
// which must be a pointer to a struct.
func newFlagSet(name string, cfg any, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	for _, f := range fields(reflect.ValueOf(cfg).Elem()) {
		fv := &flagValue{v: f.Value}
		for _, nm := range f.Names {
			fs.Var(fv, nm, f.Desc)
		}
	}
	return fs
}
