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

package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"dirpx.dev/attrs/apis"
)

// ErrSyntax is returned for malformed type expressions.
var ErrSyntax = errors.New("attrs(types): invalid type expression")

const (
	arrayName = "array"
	hashName  = "hash"
	anyName   = "any"
)

// Parse parses a type expression:
//
//	any               unspecified type
//	string, integer   primitive tags (lowercase identifiers)
//	Address           embedded class reference (capitalized identifiers)
//	array<T>          sequence of T
//	hash<K,V>         mapping of K to V
//
// Whitespace around tokens is ignored.
func Parse(expr string) (apis.Type, error) {
	p := &parser{src: expr}
	t, err := p.parse()
	if err != nil {
		return apis.Type{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return apis.Type{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is like Parse but panics on error.
func MustParse(expr string) apis.Type {
	t, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src string
	pos int
}

func (p *parser) parse() (apis.Type, error) {
	name := p.ident()
	if name == "" {
		return apis.Type{}, p.errorf("expected type name")
	}

	switch strings.ToLower(name) {
	case arrayName:
		args, err := p.args(1)
		if err != nil {
			return apis.Type{}, err
		}
		return ArrayOf(args[0]), nil
	case hashName:
		args, err := p.args(2)
		if err != nil {
			return apis.Type{}, err
		}
		return HashOf(args[0], args[1]), nil
	case anyName:
		return Any(), nil
	}

	if unicode.IsUpper(rune(name[0])) {
		return Ref(name), nil
	}
	return Primitive(name), nil
}

// args parses "<T1,...,Tn>" with exactly n arguments.
func (p *parser) args(n int) ([]apis.Type, error) {
	if !p.accept('<') {
		return nil, p.errorf("expected '<'")
	}
	out := make([]apis.Type, 0, n)
	for i := range n {
		if i > 0 && !p.accept(',') {
			return nil, p.errorf("expected ','")
		}
		t, err := p.parse()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if !p.accept('>') {
		return nil, p.errorf("expected '>'")
	}
	return out, nil
}

func (p *parser) ident() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '_' || c == '.' || c == ':' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *parser) accept(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrSyntax, p.src, p.pos, fmt.Sprintf(format, args...))
}
