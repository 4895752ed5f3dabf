/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package coerce

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"dirpx.dev/attrs/apis"
)

// Primitive tags.
const (
	TagString   = "string"
	TagInteger  = "integer"
	TagFloat    = "float"
	TagBoolean  = "boolean"
	TagTime     = "time"
	TagDuration = "duration"
	TagDateTime = "datetime"
	TagDate     = "date"
	TagUUID     = "uuid"
)

// ErrUnsupportedOption is returned by Tune for malformed pass-through options.
var ErrUnsupportedOption = errors.New("attrs(coerce): unsupported option value")

// Builtins returns a fresh map of the built-in coercers keyed by tag.
func Builtins() map[string]apis.Coercer {
	m := map[string]apis.Coercer{
		TagString:   stringCoercer{},
		TagInteger:  signed(strconv.IntSize, cast.ToIntE),
		TagFloat:    scalar(cast.ToFloat64E),
		TagBoolean:  scalar(cast.ToBoolE),
		TagTime:     timeCoercer{loc: time.UTC},
		TagDuration: scalar(cast.ToDurationE),
		TagDateTime: apis.CoercerFunc(toDateTime),
		TagDate:     apis.CoercerFunc(toDate),
		TagUUID:     apis.CoercerFunc(toUUID),

		"int8":    signed(8, cast.ToInt8E),
		"int16":   signed(16, cast.ToInt16E),
		"int32":   signed(32, cast.ToInt32E),
		"int64":   signed(64, cast.ToInt64E),
		"uint":    unsigned(strconv.IntSize, cast.ToUintE),
		"uint8":   unsigned(8, cast.ToUint8E),
		"uint16":  unsigned(16, cast.ToUint16E),
		"uint32":  unsigned(32, cast.ToUint32E),
		"uint64":  unsigned(64, cast.ToUint64E),
		"float32": scalar(cast.ToFloat32E),
	}
	for _, name := range Formats {
		m[name] = Format(name)
	}
	return m
}

// RegisterBuiltins registers every built-in coercer into reg.
func RegisterBuiltins(reg apis.Coercers) error {
	for tag, c := range Builtins() {
		if err := reg.Register(tag, c); err != nil {
			return fmt.Errorf("register %q: %w", tag, err)
		}
	}
	return nil
}

// scalar adapts a cast conversion to apis.Coercer, keeping the raw value
// on failure.
func scalar[T any](conv func(any) (T, error)) apis.Coercer {
	return apis.CoercerFunc(func(raw any) (any, error) {
		v, err := conv(raw)
		if err != nil {
			return raw, err
		}
		return v, nil
	})
}

// signed parses string input as base-10 and leaves every other input to
// cast. cast reads "010" as octal.
func signed[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int, conv func(any) (T, error)) apis.Coercer {
	return apis.CoercerFunc(func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return scalar(conv).Coerce(raw)
		}
		n, err := strconv.ParseInt(decimal(s), 10, bits)
		if err != nil {
			return raw, err
		}
		return T(n), nil
	})
}

// unsigned is signed for unsigned integer tags.
func unsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int, conv func(any) (T, error)) apis.Coercer {
	return apis.CoercerFunc(func(raw any) (any, error) {
		s, ok := raw.(string)
		if !ok {
			return scalar(conv).Coerce(raw)
		}
		n, err := strconv.ParseUint(decimal(s), 10, bits)
		if err != nil {
			return raw, err
		}
		return T(n), nil
	})
}

// decimal trims surrounding space and a zero fractional part ("12.00").
func decimal(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i > 0 && strings.Trim(s[i+1:], "0") == "" {
		return s[:i]
	}
	return s
}

// stringCoercer converts to string and, when tuned with a "format",
// validates the result against the strfmt registry.
type stringCoercer struct {
	format string
}

func (c stringCoercer) Coerce(raw any) (any, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return raw, err
	}
	if c.format != "" && !strfmt.Default.Validates(c.format, s) {
		return s, fmt.Errorf("%q is not a valid %s", s, c.format)
	}
	return s, nil
}

func (c stringCoercer) Tune(extra map[string]any) (apis.Coercer, error) {
	f, ok := extra["format"]
	if !ok {
		return c, nil
	}
	name, ok := f.(string)
	if !ok {
		return nil, fmt.Errorf("format %#v: %w", f, ErrUnsupportedOption)
	}
	if !strfmt.Default.ContainsName(name) {
		return nil, fmt.Errorf("unknown string format %q", name)
	}
	return stringCoercer{format: name}, nil
}

// timeCoercer converts to time.Time. A tuned layout takes precedence for
// string input; otherwise cast's layout detection is used.
type timeCoercer struct {
	layout string
	loc    *time.Location
}

func (c timeCoercer) Coerce(raw any) (any, error) {
	if s, ok := raw.(string); ok && c.layout != "" {
		t, err := time.ParseInLocation(c.layout, s, c.loc)
		if err != nil {
			return raw, err
		}
		return t, nil
	}
	if dt, ok := raw.(strfmt.DateTime); ok {
		return time.Time(dt), nil
	}
	t, err := cast.ToTimeInDefaultLocationE(raw, c.loc)
	if err != nil {
		return raw, err
	}
	return t, nil
}

func (c timeCoercer) Tune(extra map[string]any) (apis.Coercer, error) {
	out := c
	if v, ok := extra["layout"]; ok {
		layout, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("layout %#v: %w", v, ErrUnsupportedOption)
		}
		out.layout = layout
	}
	if v, ok := extra["location"]; ok {
		name, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("location %#v: %w", v, ErrUnsupportedOption)
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, err
		}
		out.loc = loc
	}
	return out, nil
}

func toDateTime(raw any) (any, error) {
	switch v := raw.(type) {
	case strfmt.DateTime:
		return v, nil
	case time.Time:
		return strfmt.DateTime(v), nil
	case *time.Time:
		if v != nil {
			return strfmt.DateTime(*v), nil
		}
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return raw, err
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return raw, err
	}
	return dt, nil
}

func toDate(raw any) (any, error) {
	switch v := raw.(type) {
	case strfmt.Date:
		return v, nil
	case time.Time:
		return strfmt.Date(v), nil
	case strfmt.DateTime:
		return strfmt.Date(time.Time(v)), nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return raw, err
	}
	var d strfmt.Date
	if err := d.UnmarshalText([]byte(s)); err != nil {
		return raw, err
	}
	return d, nil
}

func toUUID(raw any) (any, error) {
	switch v := raw.(type) {
	case uuid.UUID:
		return v, nil
	case [16]byte:
		return uuid.UUID(v), nil
	case []byte:
		if len(v) == 16 {
			u, err := uuid.FromBytes(v)
			if err != nil {
				return raw, err
			}
			return u, nil
		}
		u, err := uuid.ParseBytes(v)
		if err != nil {
			return raw, err
		}
		return u, nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return raw, err
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return raw, err
	}
	return u, nil
}
