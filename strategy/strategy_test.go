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

package strategy_test

import (
	"maps"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/builder"
	"dirpx.dev/attrs/coerce"
	"dirpx.dev/attrs/config"
	"dirpx.dev/attrs/registry"
	"dirpx.dev/attrs/strategy"
	"dirpx.dev/attrs/types"
)

// point is a minimal apis.Model used as an embedded structure.
type point struct{}

type pointInst struct{ vals map[string]any }

func (p pointInst) Attributes() map[string]any { return maps.Clone(p.vals) }

func (point) Name() string { return "Point" }

func (point) Build(values map[string]any) (apis.Instance, error) {
	return pointInst{vals: maps.Clone(values)}, nil
}

func (point) IsInstance(v any) bool {
	_, ok := v.(pointInst)
	return ok
}

type catalog map[string]apis.Model

func (c catalog) Lookup(name string) (apis.Model, bool) {
	m, ok := c[name]
	return m, ok
}

func newResolver(t *testing.T) apis.Resolver {
	t.Helper()
	cs := registry.NewCoercers()
	require.NoError(t, coerce.RegisterBuiltins(cs))
	cfg := config.DefaultConfig()
	return builder.New().BuildResolver(cfg, cs, catalog{"Point": point{}}, nil)
}

func opts() apis.Options {
	return apis.NewOptions(config.DefaultConfig())
}

func coercer(t *testing.T, typ apis.Type) (apis.Coercer, string) {
	t.Helper()
	c, name, err := newResolver(t).Coercer(typ, opts())
	require.NoError(t, err)
	return c, name
}

func TestStrategyNames(t *testing.T) {
	cases := []struct {
		typ  apis.Type
		want string
	}{
		{types.Any(), "identity"},
		{types.Integer(), "primitive"},
		{types.ArrayOf(types.Integer()), "collection"},
		{types.HashOf(types.String(), types.Any()), "collection"},
		{types.Ref("Point"), "embedded"},
		{types.Embed(point{}), "embedded"},
		{types.Of[[]int](), "reflect"},
		{types.Custom("upper", strategy.Identity), "custom"},
	}
	for _, tc := range cases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			_, name := coercer(t, tc.typ)
			assert.Equal(t, tc.want, name)
		})
	}
}

func TestUnknownTypes(t *testing.T) {
	res := newResolver(t)
	for _, typ := range []apis.Type{
		types.Primitive("nope"),
		types.Primitive(""),
		{Kind: apis.KindSequence},
		{Kind: apis.KindMapping, Elem: &apis.Type{}},
		types.ArrayOf(types.Primitive("nope")),
		types.Ref("Missing"),
		{Kind: apis.KindEmbedded},
		{Kind: apis.KindCustom, Tag: "x"},
		{Kind: apis.KindGo},
		types.Of[chan int](),
	} {
		t.Run(typ.String(), func(t *testing.T) {
			_, _, err := res.Coercer(typ, opts())
			require.Error(t, err)
			assert.True(t, apis.IsUnknownAttributeType(err), "got %v", err)
		})
	}
}

func TestIdentity(t *testing.T) {
	c, _ := coercer(t, types.Any())
	v := []int{1}
	got, err := c.Coerce(v)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestSequence(t *testing.T) {
	c, _ := coercer(t, types.ArrayOf(types.Integer()))

	got, err := c.Coerce([]any{"1", 2, nil})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2, nil}, got)

	got, err = c.Coerce([]string{"3"})
	require.NoError(t, err)
	assert.Equal(t, []any{3}, got)
}

func TestSequence_BestEffort(t *testing.T) {
	c, _ := coercer(t, types.ArrayOf(types.Integer()))

	got, err := c.Coerce([]any{"1", "x", "3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element 1")
	assert.Equal(t, []any{1, "x", 3}, got)

	got, err = c.Coerce("nope")
	require.ErrorIs(t, err, strategy.ErrNotSequence)
	assert.Equal(t, "nope", got)
}

func TestSequence_Property(t *testing.T) {
	c, _ := coercer(t, types.ArrayOf(types.String()))
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOf(rapid.Int()).Draw(rt, "in")
		out, err := c.Coerce(in)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}
		seq := out.([]any)
		if len(seq) != len(in) {
			rt.Fatalf("length %d, want %d", len(seq), len(in))
		}
		for i, v := range seq {
			if _, ok := v.(string); !ok {
				rt.Fatalf("element %d is %T, want string", i, v)
			}
		}
	})
}

func TestMapping(t *testing.T) {
	c, _ := coercer(t, types.HashOf(types.String(), types.Integer()))

	got, err := c.Coerce(map[string]any{"a": "1", "b": 2})
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"a": 1, "b": 2}, got)

	got, err = c.Coerce(map[int]string{1: "5"})
	require.NoError(t, err)
	assert.Equal(t, map[any]any{"1": 5}, got)
}

func TestMapping_CollidingKeysResolveDeterministically(t *testing.T) {
	c, _ := coercer(t, types.HashOf(types.Integer(), types.String()))

	for range 100 {
		got, err := c.Coerce(map[any]any{1: "int", "1": "str"})
		require.NoError(t, err)
		require.Equal(t, map[any]any{1: "str"}, got)
	}
}

func TestMapping_Errors(t *testing.T) {
	c, _ := coercer(t, types.HashOf(types.String(), types.Integer()))

	_, err := c.Coerce([]int{1})
	require.ErrorIs(t, err, strategy.ErrNotMapping)

	got, err := c.Coerce(map[string]any{"a": "x"})
	require.Error(t, err)
	assert.Equal(t, map[any]any{"a": "x"}, got)

	unhashable, _ := coercer(t, types.HashOf(types.ArrayOf(types.Any()), types.Any()))
	got, err = unhashable.Coerce(map[[1]int]any{{1}: "v"})
	require.ErrorIs(t, err, strategy.ErrUnhashableKey)
	assert.Equal(t, map[any]any{[1]int{1}: "v"}, got)
}

func TestEmbedded(t *testing.T) {
	c, _ := coercer(t, types.Ref("Point"))

	got, err := c.Coerce(map[string]any{"x": 1})
	require.NoError(t, err)
	inst, ok := got.(pointInst)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"x": 1}, inst.Attributes())

	same, err := c.Coerce(inst)
	require.NoError(t, err)
	assert.Equal(t, inst, same)

	got, err = c.Coerce(42)
	require.ErrorIs(t, err, strategy.ErrNotMappable)
	assert.Equal(t, 42, got)
}

func TestEmbedded_FromStruct(t *testing.T) {
	type src struct {
		X int    `attr:"x"`
		Y string `attr:"y"`
	}
	c, _ := coercer(t, types.Embed(point{}))

	got, err := c.Coerce(&src{X: 1, Y: "a"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x": 1, "y": "a"}, got.(pointInst).Attributes())
}

func TestToMap(t *testing.T) {
	m, ok := strategy.ToMap(map[any]any{1: "a"})
	require.True(t, ok)
	assert.Equal(t, map[string]any{"1": "a"}, m)

	_, ok = strategy.ToMap(nil)
	assert.False(t, ok)
	_, ok = strategy.ToMap("x")
	assert.False(t, ok)
	var nilPtr *struct{}
	_, ok = strategy.ToMap(nilPtr)
	assert.False(t, ok)
}

func TestPlain(t *testing.T) {
	in := []any{pointInst{vals: map[string]any{"p": pointInst{vals: map[string]any{"z": 1}}}}, map[any]any{"k": 2}}
	got := strategy.Plain(in)
	assert.Equal(t, []any{map[string]any{"p": map[string]any{"z": 1}}, map[any]any{"k": 2}}, got)
}

type settings struct {
	Port    int           `attr:"port"`
	Timeout time.Duration `attr:"timeout"`
	Tags    []string      `attr:"tags"`
}

func TestReflect_Struct(t *testing.T) {
	c, _ := coercer(t, types.Of[settings]())

	got, err := c.Coerce(map[string]any{"port": "8080", "timeout": "2s", "tags": []any{"a"}})
	require.NoError(t, err)
	assert.Equal(t, settings{Port: 8080, Timeout: 2 * time.Second, Tags: []string{"a"}}, got)

	same := settings{Port: 1}
	got, err = c.Coerce(same)
	require.NoError(t, err)
	assert.Equal(t, same, got)

	got, err = c.Coerce(pointInst{vals: map[string]any{"port": 9}})
	require.NoError(t, err)
	assert.Equal(t, settings{Port: 9}, got)
}

func TestReflect_ScalarsUsePrimitives(t *testing.T) {
	c, name := coercer(t, types.Of[*int]())
	assert.Equal(t, "reflect", name)

	got, err := c.Coerce("12")
	require.NoError(t, err)
	assert.Equal(t, 12, got)

	tc, _ := coercer(t, types.Of[time.Time]())
	got, err = tc.Coerce("2024-01-02T03:04:05Z")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(got.(time.Time)))
}

func TestReflect_SliceDecode(t *testing.T) {
	c, _ := coercer(t, types.Of[[]int]())

	got, err := c.Coerce([]any{"1", 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = c.Coerce("abc")
	require.Error(t, err)
}

func TestCustom_Tune(t *testing.T) {
	res := newResolver(t)
	o := opts()
	o.Extra = map[string]any{"layout": "2006-01-02"}

	c, _, err := res.Coercer(types.Time(), o)
	require.NoError(t, err)
	got, err := c.Coerce("2024-03-04")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC).Equal(got.(time.Time)))

	o.Extra = map[string]any{"format": "no-such-format"}
	_, _, err = res.Coercer(types.String(), o)
	require.Error(t, err)
	assert.True(t, apis.IsUnknownAttributeType(err))
}
