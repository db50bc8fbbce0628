// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides additional functions for setting
// struct fields through the reflect system.
package reflectx

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mattn/go-shellwords"
)

var durationType = reflect.TypeFor[time.Duration]()

// NonPointerValue returns a non-pointer version of the given value.
func NonPointerValue(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// IsLeaf returns whether values of the given type are set as
// a whole rather than through their fields.
func IsLeaf(typ reflect.Type) bool {
	return typ.Kind() != reflect.Struct || typ == durationType
}

// SetFromDefaultTags sets the values of fields in the given struct
// based on `default:` default value struct field tags. Nested structs
// are set recursively.
func SetFromDefaultTags(obj any) error {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("reflectx.SetFromDefaultTags: expected a pointer to a struct, not %T", obj)
	}
	return setFromDefaultTags(v.Elem())
}

func setFromDefaultTags(v reflect.Value) error {
	typ := v.Type()
	var errs []error
	for i := range typ.NumField() {
		f := typ.Field(i)
		if !f.IsExported() {
			continue
		}
		fv := v.Field(i)
		if !IsLeaf(f.Type) {
			errs = append(errs, setFromDefaultTags(fv))
			continue
		}
		def, ok := f.Tag.Lookup("default")
		if !ok {
			continue
		}
		if err := SetFromString(fv, def); err != nil {
			errs = append(errs, fmt.Errorf("field %q: invalid default %q: %w", f.Name, def, err))
		}
	}
	return errors.Join(errs...)
}

// SetFromString sets the given settable value from its string
// representation. Slices of strings are split following shell quoting
// rules, and string maps are read from space-separated key=value pairs
// that are added to the map.
func SetFromString(v reflect.Value, s string) error {
	if v.Type() == durationType {
		d, err := time.ParseDuration(s)
		if err != nil {
			return err
		}
		v.SetInt(int64(d))
		return nil
	}
	switch v.Kind() {
	case reflect.String:
		v.SetString(s)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 0, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(n)
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %v", v.Type())
		}
		args, err := shellwords.Parse(s)
		if err != nil {
			return err
		}
		v.Set(reflect.ValueOf(args).Convert(v.Type()))
	case reflect.Map:
		args, err := shellwords.Parse(s)
		if err != nil {
			return err
		}
		for _, kv := range args {
			if err := SetMapEntry(v, kv); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported type %v", v.Type())
	}
	return nil
}

// SetMapEntry sets one key=value pair on the given settable string map,
// making the map if it is nil.
func SetMapEntry(v reflect.Value, kv string) error {
	mt := v.Type()
	if mt.Kind() != reflect.Map || mt.Key().Kind() != reflect.String || mt.Elem().Kind() != reflect.String {
		return fmt.Errorf("unsupported map type %v", mt)
	}
	k, val, ok := strings.Cut(kv, "=")
	if !ok || k == "" {
		return fmt.Errorf("expected key=value, not %q", kv)
	}
	if v.IsNil() {
		v.Set(reflect.MakeMap(mt))
	}
	v.SetMapIndex(reflect.ValueOf(k).Convert(mt.Key()), reflect.ValueOf(val).Convert(mt.Elem()))
	return nil
}
