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

package schema_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/attrs"
	"dirpx.dev/attrs/apis"
	"dirpx.dev/attrs/schema"
)

const people = `
classes:
  - name: Address
    value_object: true
    allow_writers: [zip]
    attributes:
      - {name: street, type: string}
      - {name: zip, type: string}
  - name: Person
    strict: true
    attributes:
      - {name: name, type: string}
      - {name: tags, type: "array<string>", default: []}
      - {name: address, type: Address}
      - {name: age, type: integer, strict: false}
      - {name: email, type: string, options: {format: email}}
      - {name: role, type: string, writer: private, default: user}
  - name: Employee
    extends: Person
    attributes:
      - {name: salary, type: float}
  - name: Node
    attributes:
      - {name: value, type: any}
      - {name: children, type: "array<Node>", default: []}
`

func build(t *testing.T, src string) *attrs.Catalog {
	t.Helper()
	doc, err := schema.Parse([]byte(src))
	require.NoError(t, err)
	cat, err := doc.Build()
	require.NoError(t, err)
	return cat
}

func TestBuild_People(t *testing.T) {
	cat := build(t, people)
	assert.Equal(t, []string{"Address", "Employee", "Node", "Person"}, cat.Names())

	addr, _ := cat.Class("Address")
	assert.True(t, addr.IsValueObject())
	assert.Equal(t, []string{"zip="}, addr.AllowedWriters())

	person, _ := cat.Class("Person")
	o, err := person.New(map[string]any{
		"name":    "Ada",
		"age":     "old",
		"address": map[string]any{"street": "Main", "zip": 123},
		"email":   "ada@example.com",
	})
	require.NoError(t, err)

	got := o.Attributes()
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, "old", got["age"], "age is lenient")
	assert.Equal(t, []any{}, got["tags"])
	assert.Equal(t, "user", got["role"])
	assert.True(t, addr.IsInstance(got["address"]))

	_, err = person.New(map[string]any{"email": "not-an-email"})
	require.True(t, apis.IsCoercion(err))

	a, _ := person.Lookup("role")
	assert.Equal(t, apis.Private, a.Writer)
}

func TestBuild_Extends(t *testing.T) {
	cat := build(t, people)
	person, _ := cat.Class("Person")
	emp, _ := cat.Class("Employee")

	assert.Equal(t, []string{"name", "tags", "address", "age", "email", "role", "salary"}, emp.Names())
	assert.NotContains(t, person.Names(), "salary")
	assert.Same(t, person, emp.Parent())

	o := emp.MustNew(map[string]any{"salary": "10.5"})
	v, _ := o.Get("salary")
	assert.Equal(t, 10.5, v)
	assert.True(t, person.IsInstance(o))
}

func TestBuild_SelfReference(t *testing.T) {
	cat := build(t, people)
	node, _ := cat.Class("Node")

	o := node.MustNew(map[string]any{
		"value":    1,
		"children": []any{map[string]any{"value": 2}},
	})
	children, _ := o.Get("children")
	require.Len(t, children, 1)
	child := children.([]any)[0].(*attrs.Object)
	v, _ := child.Get("value")
	assert.Equal(t, 2, v)
}

func TestBuild_Errors(t *testing.T) {
	cases := map[string]string{
		"cycle": `
classes:
  - {name: A, extends: B}
  - {name: B, extends: A}
`,
		"cycle through reference": `
classes:
  - name: B
    attributes: [{name: a, type: A}]
  - {name: A, extends: B}
`,
		"unknown type": `
classes:
  - name: A
    attributes: [{name: a, type: "array<nope>"}]
`,
		"bad expression": `
classes:
  - name: A
    attributes: [{name: a, type: "hash<string>"}]
`,
		"bad visibility": `
classes:
  - name: A
    attributes: [{name: a, writer: hidden}]
`,
		"reserved name": `
classes:
  - name: A
    attributes: [{name: attributes}]
`,
		"unknown class": `
classes:
  - name: A
    attributes: [{name: a, type: Missing}]
`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := schema.Parse([]byte(src))
			if err != nil {
				return
			}
			_, err = doc.Build()
			require.Error(t, err)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := schema.Parse([]byte("classes:\n  - {name: A}\n  - {name: A}\n"))
	require.ErrorIs(t, err, schema.ErrDuplicateClass)

	_, err = schema.Parse([]byte("classes:\n  - {name: ''}\n"))
	require.ErrorIs(t, err, schema.ErrEmptyClassName)

	_, err = schema.Parse([]byte("classes:\n  - {name: A, extends: B}\n"))
	require.ErrorIs(t, err, schema.ErrUnknownParent)

	_, err = schema.Parse([]byte("classes:\n  - {name: A, bogus: 1}\n"))
	require.Error(t, err)

	doc, err := schema.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, doc.Classes)
}

func TestBuild_MassAssignmentDisabled(t *testing.T) {
	cat := build(t, "classes:\n  - {name: A, mass_assignment: false, attributes: [{name: a}]}\n")
	a, _ := cat.Class("A")
	o := a.MustNew(nil)
	require.ErrorIs(t, o.SetAttributes(map[string]any{"a": 1}), attrs.ErrPrivateMethod)
}

func TestLoadFileAndMarshal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(people), 0o644))

	doc, err := schema.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, doc.Classes, 4)

	out, err := schema.Marshal(doc)
	require.NoError(t, err)
	again, err := schema.Load(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, doc.Classes[1].Attributes[0], again.Classes[1].Attributes[0])

	_, err = schema.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
