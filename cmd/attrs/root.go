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
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dirpx.dev/attrs"
	"dirpx.dev/attrs/config"
	"dirpx.dev/attrs/schema"
)

type rootOptions struct {
	schema  string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "attrs",
		Short: "Coerce and inspect data against YAML class schemas",
		Long: `attrs loads class declarations from a YAML schema and uses them to
build objects from YAML payloads.

Examples:
  # Build a Person from a payload
  attrs coerce --schema people.yaml --class Person --input ada.yaml

  # List the declared classes and attributes
  attrs describe --schema people.yaml`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if opts.verbose {
				h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})
				attrs.SetConfig(config.NewConfig(config.WithLogger(slog.New(h))))
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.schema, "schema", "s", "", "Path to the YAML class schema")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log declarations and skipped keys to stderr")
	_ = cmd.MarkPersistentFlagRequired("schema")

	cmd.AddCommand(newCoerceCmd(opts), newDescribeCmd(opts))
	return cmd
}

// loadCatalog loads the schema file and declares its classes.
func loadCatalog(path string) (*attrs.Catalog, error) {
	doc, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// readPayload reads a YAML mapping from path ("-" for stdin).
func readPayload(cmd *cobra.Command, path string) (map[string]any, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open payload %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var out map[string]any
	if err := yaml.NewDecoder(r).Decode(&out); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse payload YAML: %w", err)
	}
	return out, nil
}
