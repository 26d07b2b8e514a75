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

// Package subst rewrites a type expression by replacing type
// variables according to a mapping (spec.md §4.3), with special
// handling for recursive variables that must refer to themselves in
// their substituted bounds. It is grounded on the teacher's
// transformation.Renamer: both packages rewrite a tree by swapping in
// replacements looked up from a table, generalized here from renaming
// identifiers to substituting type variables.
package subst

import (
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// Mapping maps a formal type parameter to its replacement type.
type Mapping map[*types.TypeParameter]types.Type

// Substitute rewrites t, replacing every TypeVariable whose parameter
// is a key of m with the corresponding type.
//
// When an entry (p -> v) maps p to a TypeVariable whose own parameter
// is p (the "recursive variable" case — v's bounds, if substituted
// naively, would still refer to the old v), a fresh unfrozen
// TypeVariable p' is pre-allocated for p. p''s bounds are then set to
// v's bounds substituted under a context that maps p to p' instead of
// v, which breaks the cycle: the new variable's bounds refer to the
// new variable, never to the old one. Finally t itself is rewritten
// under the combined mapping (fresh variables taking precedence).
func Substitute(t types.Type, m Mapping) (types.Type, error) {
	if !types.Valid(t) {
		return nil, &jtypeserr.InvalidArgument{Op: "Substitute", Msg: "foreign or nil type"}
	}
	for p, v := range m {
		if p == nil {
			return nil, &jtypeserr.InvalidArgument{Op: "Substitute", Msg: "nil parameter key in mapping"}
		}
		if !types.Valid(v) {
			return nil, &jtypeserr.InvalidArgument{Op: "Substitute", Msg: "foreign or nil substitution value"}
		}
	}

	type recursive struct {
		p *types.TypeParameter
		v *types.TypeVariable
	}
	fresh := make(map[*types.TypeParameter]*types.TypeVariable)
	var pending []recursive
	for p, v := range m {
		tv, ok := v.(*types.TypeVariable)
		if !ok || !types.ParameterEqual(tv.Parameter, p) {
			continue
		}
		p2, err := types.NewTypeVariable(p, tv.CapturedArgument)
		if err != nil {
			return nil, err
		}
		fresh[p] = p2
		pending = append(pending, recursive{p: p, v: tv})
	}

	combined := make(map[*types.TypeParameter]types.Type, len(m))
	for p, v := range m {
		combined[p] = v
	}
	for p, p2 := range fresh {
		combined[p] = p2
	}

	for _, r := range pending {
		upper, err := r.v.UpperBound()
		if err != nil {
			return nil, err
		}
		lower, err := r.v.LowerBound()
		if err != nil {
			return nil, err
		}
		newUpper, err := descend(upper, combined)
		if err != nil {
			return nil, err
		}
		newLower, err := descend(lower, combined)
		if err != nil {
			return nil, err
		}
		if err := fresh[r.p].Freeze(newUpper, newLower); err != nil {
			return nil, err
		}
	}

	return descend(t, combined)
}

// descend performs the structural rewrite of step 3: every variant is
// rewritten by reconstructing it from its recursively-substituted
// parts, except a TypeVariable, which is either swapped wholesale for
// its mapped replacement or returned unchanged — its bounds are never
// traversed in place, which is what keeps this terminating even when
// t was produced by capture conversion and contains a type variable
// that (through a sibling) refers back to itself.
func descend(t types.Type, m map[*types.TypeParameter]types.Type) (types.Type, error) {
	switch v := t.(type) {
	case types.Primitive:
		return v, nil
	case *types.Array:
		comp, err := descend(v.Component, m)
		if err != nil {
			return nil, err
		}
		return types.NewArray(comp)
	case *types.Declared:
		enc, err := descend(v.Enclosing, m)
		if err != nil {
			return nil, err
		}
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			na, err := descend(a, m)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}
		return types.NewDeclared(enc, v.Decl, args...)
	case *types.TypeVariable:
		if repl, ok := m[v.Parameter]; ok {
			return repl, nil
		}
		return v, nil
	case *types.Wildcard:
		var extends, super types.Type
		if v.ExtendsBound != nil {
			e, err := descend(v.ExtendsBound, m)
			if err != nil {
				return nil, err
			}
			extends = e
		}
		if v.SuperBound != nil {
			s, err := descend(v.SuperBound, m)
			if err != nil {
				return nil, err
			}
			super = s
		}
		return types.NewWildcard(extends, super)
	case *types.Intersection:
		bounds := make([]types.Type, len(v.Bounds))
		for i, b := range v.Bounds {
			nb, err := descend(b, m)
			if err != nil {
				return nil, err
			}
			bounds[i] = nb
		}
		return types.NewIntersection(bounds...)
	default:
		// Void, None, Null are identity types with no substructure.
		return t, nil
	}
}
