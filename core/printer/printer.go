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

// Package printer renders a Type as the canonical, deterministic
// source-like string spec.md §4.8 requires: the same recursive
// descent every other core package uses, here producing a string
// instead of a derived Type. Grounded on the teacher's
// transformation.Printer, which walks a mast.Node tree emitting
// source text with the same one-case-per-variant structure.
package printer

import (
	"strings"

	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// String renders t.
func String(t types.Type) (string, error) {
	if !types.Valid(t) {
		return "", &jtypeserr.InvalidArgument{Op: "String", Msg: "foreign or nil type"}
	}
	switch v := t.(type) {
	case types.Primitive:
		return v.Kind.String(), nil
	case *types.Array:
		comp, err := String(v.Component)
		if err != nil {
			return "", err
		}
		return comp + "[]", nil
	case *types.Declared:
		return declaredString(v)
	case *types.TypeVariable:
		if v.CapturedArgument != nil {
			return "capture<<wildcard>>", nil
		}
		return v.Parameter.Name, nil
	case *types.Wildcard:
		switch {
		case v.ExtendsBound != nil:
			bound, err := String(v.ExtendsBound)
			if err != nil {
				return "", err
			}
			return "? extends " + bound, nil
		case v.SuperBound != nil:
			bound, err := String(v.SuperBound)
			if err != nil {
				return "", err
			}
			return "? super " + bound, nil
		default:
			return "?", nil
		}
	case *types.Intersection:
		parts := make([]string, len(v.Bounds))
		for i, b := range v.Bounds {
			s, err := String(b)
			if err != nil {
				return "", err
			}
			parts[i] = s
		}
		return strings.Join(parts, " & "), nil
	default:
		switch {
		case types.IsVoid(t):
			return "void", nil
		case types.IsNull(t):
			return "null", nil
		case types.IsNone(t):
			return "none", nil
		default:
			return "", &jtypeserr.Unsupported{Op: "String", Msg: "unrecognized type form"}
		}
	}
}

func declaredString(d *types.Declared) (string, error) {
	var prefix string
	if types.IsNone(d.Enclosing) {
		prefix = d.Decl.QualifiedName
	} else {
		encStr, err := String(d.Enclosing)
		if err != nil {
			return "", err
		}
		prefix = encStr + "." + d.Decl.SimpleName
	}
	if len(d.Args) == 0 {
		return prefix, nil
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		s, err := String(a)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return prefix + "<" + strings.Join(parts, ", ") + ">", nil
}
