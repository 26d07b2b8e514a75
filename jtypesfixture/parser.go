// Copyright (c) 2023 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jtypesfixture

import (
	"context"
	"strings"
	"unicode"

	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// typeRefParser is a small recursive-descent parser for the fixture
// format's type-reference grammar:
//
//	typeRef  := qualRef { "[]" }
//	qualRef  := IDENT [ "<" typeArg { "," typeArg } ">" ]
//	typeArg  := "?" [ ("extends" | "super") typeRef ] | typeRef
type typeRefParser struct {
	l     *Loader
	ctx   context.Context
	scope map[string]types.Type
	src   []rune
	pos   int
}

// ParseType parses s as a top-level type reference against l's
// declaration graph, with no enclosing type parameters in scope. It
// is the entry point callers outside this package (cmd/jtypesdump,
// tests) use to build a types.Type from fixture syntax directly,
// rather than only through a declSpec's superclass/interfaces/bounds
// text.
func (l *Loader) ParseType(ctx context.Context, s string) (types.Type, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.parseTypeRef(ctx, s, nil)
}

func (l *Loader) parseTypeRef(ctx context.Context, s string, scope map[string]types.Type) (types.Type, error) {
	p := &typeRefParser{l: l, ctx: ctx, scope: scope, src: []rune(s)}
	t, err := p.typeRef()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, &jtypeserr.InvalidArgument{Op: "parseTypeRef", Msg: "trailing input in type reference " + s}
	}
	return t, nil
}

func (p *typeRefParser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

func (p *typeRefParser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *typeRefParser) expect(r rune) error {
	p.skipSpace()
	if p.peek() != r {
		return &jtypeserr.InvalidArgument{Op: "parseTypeRef", Msg: "expected " + string(r) + " in " + string(p.src)}
	}
	p.pos++
	return nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.'
}

func (p *typeRefParser) parseIdent() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) && isIdentRune(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *typeRefParser) tryKeyword(kw string) bool {
	save := p.pos
	p.skipSpace()
	rest := string(p.src[p.pos:])
	if strings.HasPrefix(rest, kw) {
		after := p.pos + len(kw)
		if after == len(p.src) || !isIdentRune(p.src[after]) {
			p.pos = after
			return true
		}
	}
	p.pos = save
	return false
}

func (p *typeRefParser) typeArg() (types.Type, error) {
	p.skipSpace()
	if p.peek() == '?' {
		p.pos++
		if p.tryKeyword("extends") {
			bound, err := p.typeRef()
			if err != nil {
				return nil, err
			}
			return types.NewWildcard(bound, nil)
		}
		if p.tryKeyword("super") {
			bound, err := p.typeRef()
			if err != nil {
				return nil, err
			}
			return types.NewWildcard(nil, bound)
		}
		return types.NewWildcard(nil, nil)
	}
	return p.typeRef()
}

func (p *typeRefParser) typeRef() (types.Type, error) {
	ident := p.parseIdent()
	if ident == "" {
		return nil, &jtypeserr.InvalidArgument{Op: "parseTypeRef", Msg: "expected a type reference in " + string(p.src)}
	}

	var result types.Type
	if scoped, ok := p.scope[ident]; ok {
		result = scoped
	} else {
		d, err := p.l.resolve(p.ctx, ident, p.scope)
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.peek() == '<' {
			p.pos++
			var args []types.Type
			for {
				a, err := p.typeArg()
				if err != nil {
					return nil, err
				}
				args = append(args, a)
				p.skipSpace()
				if p.peek() == ',' {
					p.pos++
					continue
				}
				break
			}
			if err := p.expect('>'); err != nil {
				return nil, err
			}
			result, err = types.NewDeclared(mustNone(), d, args...)
			if err != nil {
				return nil, err
			}
		} else {
			result, err = types.NewDeclared(mustNone(), d)
			if err != nil {
				return nil, err
			}
		}
	}

	for {
		p.skipSpace()
		if p.peek() != '[' {
			break
		}
		p.pos++
		if err := p.expect(']'); err != nil {
			return nil, err
		}
		arr, err := types.NewArray(result)
		if err != nil {
			return nil, err
		}
		result = arr
	}
	return result, nil
}
