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

// Package schema loads class declarations from YAML documents and builds
// them into a catalog.
package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyClassName is returned for classes without a name.
	ErrEmptyClassName = errors.New("attrs(schema): class name is empty")
	// ErrDuplicateClass is returned when a document declares a class twice.
	ErrDuplicateClass = errors.New("attrs(schema): duplicate class")
	// ErrUnknownParent is returned when extends names an undeclared class.
	ErrUnknownParent = errors.New("attrs(schema): unknown parent class")
	// ErrCycle is returned for cyclic class dependencies.
	ErrCycle = errors.New("attrs(schema): cyclic class dependency")
	// ErrInvalidVisibility is returned for writer/reader values other than
	// public and private.
	ErrInvalidVisibility = errors.New("attrs(schema): invalid visibility")
)

// LoadFile loads and parses a YAML schema document from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data)
}

// Load reads and parses a YAML schema document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	return &doc, nil
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// Validate checks class names for emptiness, duplicates and unknown parents.
func (d *Document) Validate() error {
	seen := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		if c.Name == "" {
			return ErrEmptyClassName
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateClass, c.Name)
		}
		seen[c.Name] = true
	}
	for _, c := range d.Classes {
		if c.Extends != "" && !seen[c.Extends] {
			return fmt.Errorf("%w: %s extends %s", ErrUnknownParent, c.Name, c.Extends)
		}
	}
	return nil
}
