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
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/attrs/strategy"
)

type coerceOptions struct {
	class  string
	input  string
	assign string
	dump   bool
}

func newCoerceCmd(root *rootOptions) *cobra.Command {
	opts := &coerceOptions{}

	cmd := &cobra.Command{
		Use:   "coerce",
		Short: "Build an object from a YAML payload and print its attributes",
		Long: `Build an object of --class from the mapping in --input and print the
coerced attribute snapshot as YAML.

--assign mass-assigns a second mapping after construction; keys whose
writers are not allowed are skipped. --dump prints a detailed dump instead
of YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := loadCatalog(root.schema)
			if err != nil {
				return err
			}
			class, ok := cat.Class(opts.class)
			if !ok {
				return fmt.Errorf("class %q is not declared in %s", opts.class, root.schema)
			}

			values, err := readPayload(cmd, opts.input)
			if err != nil {
				return err
			}
			obj, err := class.New(values)
			if err != nil {
				return err
			}

			if opts.assign != "" {
				extra, err := readPayload(cmd, opts.assign)
				if err != nil {
					return err
				}
				if err := obj.SetAttributes(extra); err != nil {
					return err
				}
			}

			if opts.dump {
				_, err := fmt.Fprint(cmd.OutOrStdout(), obj.Inspect())
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(strategy.Plain(obj.Attributes())); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().StringVarP(&opts.class, "class", "c", "", "Class to build")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "-", "Payload file (YAML mapping, - for stdin)")
	cmd.Flags().StringVar(&opts.assign, "assign", "", "Mapping to mass-assign after construction")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "Print a detailed dump instead of YAML")
	_ = cmd.MarkFlagRequired("class")
	return cmd
}
