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

// Package erasure implements the JLS erasure function (spec.md §4.4):
// a straightforward recursive descent dropping type arguments. It is
// grounded on the dispatch-by-variant shape of the teacher's
// check.GenericChecker.CheckNode, specialized from a two-argument
// equivalence check to a one-argument rewrite.
package erasure

import (
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// Erasure returns the erasure of t.
func Erasure(t types.Type) (types.Type, error) {
	if !types.Valid(t) {
		return nil, &jtypeserr.InvalidArgument{Op: "Erasure", Msg: "foreign or nil type"}
	}
	switch v := t.(type) {
	case *types.Array:
		comp, err := Erasure(v.Component)
		if err != nil {
			return nil, err
		}
		return types.NewArray(comp)
	case *types.Declared:
		var enclosing types.Type
		if types.IsNone(v.Enclosing) {
			enclosing = v.Enclosing
		} else {
			e, err := Erasure(v.Enclosing)
			if err != nil {
				return nil, err
			}
			enclosing = e
		}
		return types.NewDeclared(enclosing, v.Decl)
	case *types.TypeVariable:
		upper, err := v.UpperBound()
		if err != nil {
			return nil, err
		}
		return Erasure(upper)
	case *types.Intersection:
		if len(v.Bounds) == 0 {
			return nil, &jtypeserr.InvalidArgument{Op: "Erasure", Msg: "empty intersection"}
		}
		// JLS §4.6 extension: the leftmost bound is significant.
		return Erasure(v.Bounds[0])
	default:
		// Primitive, Void, None, Null, Wildcard erase to themselves.
		return t, nil
	}
}
