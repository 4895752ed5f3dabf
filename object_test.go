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

package attrs_test

import (
	"bytes"
	"log/slog"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/attrs"
	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/config"
	"dirpx.dev/attrs/types"
)

func person(t *testing.T) *attrs.Class {
	t.Helper()
	return attrs.NewClass("Person").
		MustAttribute("name", types.String()).
		MustAttribute("age", types.Integer())
}

func TestNew_EmptyLeavesAttributesAbsent(t *testing.T) {
	o, err := person(t).New(map[string]any{})
	require.NoError(t, err)

	assert.Empty(t, o.Attributes())
	_, ok := o.Get("name")
	assert.False(t, ok)
	_, ok = o.Get("age")
	assert.False(t, ok)
}

func TestNew_StringRoundTrip(t *testing.T) {
	c := attrs.NewClass("C").MustAttribute("a", types.String())

	o, err := c.New(map[string]any{"a": "x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": "x"}, o.Attributes())
}

func TestNew_CollectionCoercion(t *testing.T) {
	c := attrs.NewClass("C").MustAttribute("items", types.ArrayOf(types.Integer()))

	o, err := c.New(map[string]any{"items": []any{"1", 2, "3"}})
	require.NoError(t, err)
	v, ok := o.Get("items")
	require.True(t, ok)
	assert.Equal(t, []any{1, 2, 3}, v)
}

func TestNew_IgnoresUnknownKeys(t *testing.T) {
	o, err := person(t).New(map[string]any{"name": "A", "nope": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "A"}, o.Attributes())
}

func TestNew_LenientKeepsRawValue(t *testing.T) {
	o, err := person(t).New(map[string]any{"age": "old"})
	require.NoError(t, err)
	v, _ := o.Get("age")
	assert.Equal(t, "old", v)
}

func TestNew_IntegerStringsAreDecimal(t *testing.T) {
	c := person(t)
	for raw, want := range map[string]int{"010": 10, "08": 8, "0": 0, "12.0": 12} {
		o, err := c.New(map[string]any{"age": raw})
		require.NoError(t, err)
		v, _ := o.Get("age")
		assert.Equal(t, want, v, raw)
	}
}

func TestNew_StrictFailureAborts(t *testing.T) {
	c := attrs.NewClass("C").
		MustAttribute("a", types.String()).
		MustAttribute("b", types.Integer(), attrs.Strict(true))

	o, err := c.New(map[string]any{"a": "x", "b": "nope"})
	require.Error(t, err)
	assert.Nil(t, o)
	assert.True(t, apis.IsCoercion(err))

	var ce *apis.CoercionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "b", ce.Attribute)
	assert.Equal(t, "nope", ce.Value)
}

func TestNew_StrictRequired(t *testing.T) {
	c := attrs.NewClass("C").
		MustAttribute("a", types.String(), attrs.Strict(true)).
		MustAttribute("b", types.String(), attrs.Strict(true), attrs.Required(false))

	_, err := c.New(map[string]any{"a": nil})
	require.ErrorIs(t, err, apis.ErrNilValue)

	o, err := c.New(map[string]any{"a": "x", "b": nil})
	require.NoError(t, err)
	v, ok := o.Get("b")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestNew_NullifyBlank(t *testing.T) {
	c := attrs.NewClass("C").MustAttribute("a", types.Integer(), attrs.NullifyBlank(true))

	o := c.MustNew(map[string]any{"a": "  "})
	v, ok := o.Get("a")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestNew_Defaults(t *testing.T) {
	calls := 0
	c := attrs.NewClass("C").
		MustAttribute("static", types.Integer(), attrs.Default("7")).
		MustAttribute("produced", types.ArrayOf(types.String()), attrs.DefaultFunc(func() any {
			calls++
			return []any{1}
		})).
		MustAttribute("lazy", types.String(), attrs.Default(5), attrs.Lazy(true))

	o := c.MustNew(nil)
	assert.Equal(t, 1, calls)

	v, _ := o.Get("static")
	assert.Equal(t, 7, v)
	v, _ = o.Get("produced")
	assert.Equal(t, []any{"1"}, v)

	v, ok := o.Get("lazy")
	require.True(t, ok)
	assert.Equal(t, "5", v)

	o2 := c.MustNew(map[string]any{"produced": []any{}})
	assert.Equal(t, 1, calls, "supplied values skip the producer")
	v, _ = o2.Get("produced")
	assert.Equal(t, []any{}, v)
}

func TestDeclaredLater_NotOnExistingObjects(t *testing.T) {
	c := attrs.NewClass("C").MustAttribute("a", types.String())
	o := c.MustNew(map[string]any{"a": "x"})

	c.MustAttribute("b", types.String(), attrs.Default("d"))
	_, ok := o.Get("b")
	assert.False(t, ok)

	o2 := c.MustNew(nil)
	v, _ := o2.Get("b")
	assert.Equal(t, "d", v)
}

func TestReaderVisibility(t *testing.T) {
	c := attrs.NewClass("C").
		MustAttribute("secret", types.String(), attrs.Reader(apis.Private)).
		MustAttribute("open", types.String())

	o := c.MustNew(map[string]any{"secret": "s", "open": "o"})
	_, ok := o.Get("secret")
	assert.False(t, ok)
	assert.Equal(t, map[string]any{"open": "o"}, o.Attributes())
}

func TestSet(t *testing.T) {
	c := person(t).MustAttribute("id", types.Integer(), attrs.Writer(apis.Private))
	o := c.MustNew(map[string]any{"id": 1})

	require.NoError(t, o.Set("age", "42"))
	v, _ := o.Get("age")
	assert.Equal(t, 42, v)

	require.ErrorIs(t, o.Set("id", 2), attrs.ErrPrivateWriter)
	require.ErrorIs(t, o.Set("nope", 2), attrs.ErrUnknownAttribute)
	v, _ = o.Get("id")
	assert.Equal(t, 1, v)
}

func TestSetAttributes_Safety(t *testing.T) {
	c := person(t)
	invoked := false
	require.NoError(t, c.DefineWriter("rogueMethod", apis.Public, func(*attrs.Object, any) error {
		invoked = true
		return nil
	}))

	o := c.MustNew(nil)
	require.NoError(t, o.SetAttributes(map[string]any{"name": "A", "rogueMethod": "x"}))

	v, ok := o.Get("name")
	require.True(t, ok)
	assert.Equal(t, "A", v)
	assert.False(t, invoked, "mass assignment must never call a custom writer")
	assert.Contains(t, c.AllowedWriters(), "rogueMethod=")
}

func TestSetAttributes_SkipsPrivateWriters(t *testing.T) {
	c := person(t).MustAttribute("role", types.String(), attrs.Writer(apis.Private))
	o := c.MustNew(map[string]any{"role": "user"})

	require.NoError(t, o.SetAttributes(map[string]any{"role": "admin", "age": "3", "attributes": map[string]any{}}))
	assert.Equal(t, map[string]any{"role": "user", "age": 3}, o.Attributes())
}

func TestSetAttributes_AllOrNothing(t *testing.T) {
	c := attrs.NewClass("C").
		MustAttribute("a", types.String()).
		MustAttribute("b", types.Integer(), attrs.Strict(true))
	o := c.MustNew(map[string]any{"a": "x", "b": 1})

	err := o.SetAttributes(map[string]any{"a": "y", "b": "nope"})
	require.True(t, apis.IsCoercion(err))
	assert.Equal(t, map[string]any{"a": "x", "b": 1}, o.Attributes())
}

func TestSetAttributes_WithoutMassAssignment(t *testing.T) {
	c := attrs.NewClass("C", attrs.WithoutMassAssignment()).MustAttribute("a", types.String())
	o := c.MustNew(nil)

	require.ErrorIs(t, o.SetAttributes(map[string]any{"a": "x"}), attrs.ErrPrivateMethod)
	require.NoError(t, o.Set("a", "x"))
}

func TestInvoke(t *testing.T) {
	c := person(t)
	var got any
	require.NoError(t, c.DefineWriter("nickname", apis.Public, func(o *attrs.Object, v any) error {
		got = v
		return o.Set("name", v)
	}))
	require.NoError(t, c.DefineWriter("hidden", apis.Private, func(*attrs.Object, any) error { return nil }))
	o := c.MustNew(nil)

	require.NoError(t, o.Invoke("nickname=", "Bob"))
	assert.Equal(t, "Bob", got)
	v, _ := o.Get("name")
	assert.Equal(t, "Bob", v)

	require.NoError(t, o.Invoke("age=", "5"))
	require.NoError(t, o.Invoke("attributes=", map[string]any{"age": "6"}))
	v, _ = o.Get("age")
	assert.Equal(t, 6, v)

	require.ErrorIs(t, o.Invoke("hidden=", 1), attrs.ErrPrivateWriter)
	require.ErrorIs(t, o.Invoke("missing=", 1), attrs.ErrNoMethod)
	require.ErrorIs(t, o.Invoke("name", 1), attrs.ErrNoMethod)
	require.Error(t, o.Invoke("attributes=", 1))
}

func TestEmbedded_ViaCatalog(t *testing.T) {
	cat := attrs.NewCatalog()
	addr, err := cat.Define("Address")
	require.NoError(t, err)
	addr.MustAttribute("city", types.String())

	p, err := cat.Define("Person")
	require.NoError(t, err)
	p.MustAttribute("address", types.Ref("Address")).
		MustAttribute("previous", types.ArrayOf(types.Ref("Address")))

	o, err := p.New(map[string]any{
		"address":  map[string]any{"city": "Paris"},
		"previous": []any{map[string]any{"city": 1}},
	})
	require.NoError(t, err)

	v, _ := o.Get("address")
	inner, ok := v.(*attrs.Object)
	require.True(t, ok)
	assert.True(t, addr.IsInstance(inner))
	city, _ := inner.Get("city")
	assert.Equal(t, "Paris", city)

	same := addr.MustNew(map[string]any{"city": "Rome"})
	require.NoError(t, o.Set("address", same))
	v, _ = o.Get("address")
	assert.Same(t, same, v)

	prev, _ := o.Get("previous")
	first := prev.([]any)[0].(*attrs.Object)
	city, _ = first.Get("city")
	assert.Equal(t, "1", city)
}

func TestEmbedded_Strict(t *testing.T) {
	addr := attrs.NewClass("Address").MustAttribute("city", types.String())
	p := attrs.NewClass("Person").MustAttribute("address", types.Embed(addr), attrs.Strict(true))

	_, err := p.New(map[string]any{"address": 42})
	require.True(t, apis.IsCoercion(err))
}

func TestDecodeAndInspect(t *testing.T) {
	type target struct {
		Name string   `attr:"name"`
		Age  int      `attr:"age"`
		Tags []string `attr:"tags"`
	}
	c := person(t).MustAttribute("tags", types.ArrayOf(types.String()))
	o := c.MustNew(map[string]any{"name": "Ada", "age": "36", "tags": []any{"x"}})

	var out target
	require.NoError(t, o.Decode(&out))
	assert.Equal(t, target{Name: "Ada", Age: 36, Tags: []string{"x"}}, out)

	dump := o.Inspect()
	assert.Contains(t, dump, "Person")
	assert.Contains(t, dump, "Ada")
	assert.Contains(t, o.String(), "#<Person")
}

func TestTimeAttribute_Layout(t *testing.T) {
	c := attrs.NewClass("C").MustAttribute("day", types.Time(), attrs.Set("layout", "02/01/2006"))
	o := c.MustNew(map[string]any{"day": "03/04/2024"})

	v, _ := o.Get("day")
	assert.True(t, time.Date(2024, 4, 3, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))
}

func TestCoerceDisabled(t *testing.T) {
	c := attrs.NewClass("C").MustAttribute("n", types.Integer(), attrs.Coerce(false))
	a, _ := c.Lookup("n")
	assert.Equal(t, "identity", a.Strategy)

	o := c.MustNew(map[string]any{"n": "12"})
	v, _ := o.Get("n")
	assert.Equal(t, "12", v)
}

func TestLogging_SkippedKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := attrs.NewClass("C", attrs.WithConfig(config.NewConfig(config.WithLogger(logger)))).
		MustAttribute("a", types.Integer())

	o := c.MustNew(map[string]any{"a": "x"})
	require.NoError(t, o.SetAttributes(map[string]any{"zzz": 1}))

	out := buf.String()
	assert.Contains(t, out, "attribute declared")
	assert.Contains(t, out, "coercion failed")
	assert.Contains(t, out, "key=zzz")
	assert.Contains(t, out, "class=C")
}

func TestObject_ConcurrentAccess(t *testing.T) {
	c := person(t).MustAttribute("lazy", types.Integer(), attrs.Default(1), attrs.Lazy(true))
	o := c.MustNew(nil)

	var wg sync.WaitGroup
	workers := runtime.GOMAXPROCS(0) * 4
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := range 100 {
				switch (w + i) % 3 {
				case 0:
					_ = o.Set("age", i)
				case 1:
					_ = o.SetAttributes(map[string]any{"name": "n"})
				default:
					_ = o.Attributes()
					if v, ok := o.Get("lazy"); !ok || v != 1 {
						t.Errorf("lazy = %v, %v", v, ok)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()
}
