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

package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/attrs"
)

type classView struct {
	Name           string          `yaml:"name"`
	Parent         string          `yaml:"parent,omitempty"`
	ValueObject    bool            `yaml:"value_object,omitempty"`
	AllowedWriters []string        `yaml:"allowed_writers,flow"`
	Attributes     []attributeView `yaml:"attributes"`
}

type attributeView struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Strategy string `yaml:"strategy"`
	Writer   string `yaml:"writer"`
	Reader   string `yaml:"reader"`
	Strict   bool   `yaml:"strict,omitempty"`
	Default  bool   `yaml:"default,omitempty"`
	Lazy     bool   `yaml:"lazy,omitempty"`
}

func newDescribeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "List the classes and attributes declared by a schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(root.schema)
			if err != nil {
				return err
			}

			views := make([]classView, 0, cat.Len())
			for _, name := range cat.Names() {
				c, _ := cat.Class(name)
				views = append(views, describe(c))
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(map[string]any{"classes": views}); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}

func describe(c *attrs.Class) classView {
	v := classView{
		Name:           c.Name(),
		ValueObject:    c.IsValueObject(),
		AllowedWriters: c.AllowedWriters(),
	}
	if p := c.Parent(); p != nil {
		v.Parent = p.Name()
	}
	for a := range c.All() {
		v.Attributes = append(v.Attributes, attributeView{
			Name:     a.Name,
			Type:     a.Type.String(),
			Strategy: a.Strategy,
			Writer:   a.Writer.String(),
			Reader:   a.Reader.String(),
			Strict:   a.Strict,
			Default:  a.Default.IsSet(),
			Lazy:     a.Lazy,
		})
	}
	return v
}
