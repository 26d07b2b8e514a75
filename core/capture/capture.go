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

// Package capture implements capture conversion (spec.md §4.7, JLS
// §5.1.10): replacing each wildcard argument of a parameterized type
// with a fresh type variable whose bounds are derived from the
// wildcard and the formal parameter's own declared bound. The
// two-phase construction — allocate every fresh variable first, freeze
// their bounds once all of them exist — is the same discipline
// core/types.TypeVariable documents for exactly this reason: a
// captured variable's upper bound can mention a sibling captured
// variable that does not exist yet when allocation happens.
package capture

import (
	"context"

	"github.com/go-jtypes/jtypes/core/decl"
	"github.com/go-jtypes/jtypes/core/subst"
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// Capture returns the capture conversion of d: a Declared type
// identical to d except that every wildcard argument has been replaced
// by a fresh type variable. d's enclosing type, if itself a
// parameterized Declared, is captured recursively. A d with no
// wildcard arguments (and no capturable enclosing type) is returned
// unchanged.
func Capture(ctx context.Context, p decl.WellKnownProvider, d *types.Declared) (*types.Declared, error) {
	if d == nil {
		return nil, &jtypeserr.InvalidArgument{Op: "Capture", Msg: "nil *Declared"}
	}
	if !types.Valid(d) {
		return nil, &jtypeserr.InvalidArgument{Op: "Capture", Msg: "foreign or nil type"}
	}

	newEnclosing := d.Enclosing
	if enc, ok := d.Enclosing.(*types.Declared); ok {
		capturedEnc, err := Capture(ctx, p, enc)
		if err != nil {
			return nil, err
		}
		newEnclosing = capturedEnc
	}

	hasWildcard := false
	for _, a := range d.Args {
		if _, ok := a.(*types.Wildcard); ok {
			hasWildcard = true
			break
		}
	}
	if !hasWildcard {
		if newEnclosing == d.Enclosing {
			return d, nil
		}
		return types.NewDeclared(newEnclosing, d.Decl, d.Args...)
	}

	params := d.Decl.TypeParams
	if len(params) != len(d.Args) {
		return nil, &jtypeserr.IllegalState{Op: "Capture", Msg: "argument count does not match formal parameter count"}
	}

	fresh := make([]types.Type, len(d.Args))
	var captured []int
	for i, a := range d.Args {
		if w, ok := a.(*types.Wildcard); ok {
			tv, err := types.NewTypeVariable(params[i], w)
			if err != nil {
				return nil, err
			}
			fresh[i] = tv
			captured = append(captured, i)
		} else {
			fresh[i] = a
		}
	}

	m := make(subst.Mapping, len(params))
	for i, tp := range params {
		m[tp] = fresh[i]
	}

	objType, err := objectType(ctx, p)
	if err != nil {
		return nil, err
	}

	// Each Sᵢ is frozen here against pᵢ's own (unsubstituted) declared
	// bound — not yet resolved against sibling captures — and the
	// intermediate Declared records pᵢ's prototypical variable, not Sᵢ,
	// at each captured position. The single subst.Substitute call below
	// then both swaps those prototypes for the real Sᵢ and, since each
	// (pᵢ → Sᵢ) entry is exactly the "recursive variable" case
	// core/subst already handles for self-referential bounds, re-derives
	// a final generation of fresh variables whose bounds have every
	// sibling pⱼ resolved to its own captured variable, realizing the
	// mutual recursion JLS §5.1.10 requires.
	intermediateArgs := make([]types.Type, len(d.Args))
	copy(intermediateArgs, fresh)

	for _, i := range captured {
		w := d.Args[i].(*types.Wildcard)
		proto, err := params[i].Prototype()
		if err != nil {
			return nil, err
		}
		declaredUpper, err := proto.UpperBound()
		if err != nil {
			return nil, err
		}

		var newUpper, newLower types.Type
		switch {
		case w.ExtendsBound != nil:
			newLower = types.NullType()
			switch {
			case types.Equal(declaredUpper, objType):
				newUpper = w.ExtendsBound
			case types.Equal(declaredUpper, w.ExtendsBound):
				newUpper = declaredUpper
			default:
				// A declared bound that is itself an Intersection is
				// flattened one level rather than nested.
				glb := []types.Type{w.ExtendsBound}
				if inter, ok := declaredUpper.(*types.Intersection); ok {
					glb = append(glb, inter.Bounds...)
				} else {
					glb = append(glb, declaredUpper)
				}
				newUpper, err = types.NewIntersection(glb...)
				if err != nil {
					return nil, err
				}
			}
		case w.SuperBound != nil:
			newUpper = declaredUpper
			newLower = w.SuperBound
		default:
			newUpper = declaredUpper
			newLower = types.NullType()
		}

		tv := fresh[i].(*types.TypeVariable)
		if err := tv.Freeze(newUpper, newLower); err != nil {
			return nil, err
		}

		intermediateArgs[i] = proto
	}

	intermediate, err := types.NewDeclared(newEnclosing, d.Decl, intermediateArgs...)
	if err != nil {
		return nil, err
	}
	substituted, err := subst.Substitute(intermediate, m)
	if err != nil {
		return nil, err
	}
	result, ok := substituted.(*types.Declared)
	if !ok {
		return nil, &jtypeserr.IllegalState{Op: "Capture", Msg: "substitution of a Declared did not yield a Declared"}
	}
	return result, nil
}

func objectType(ctx context.Context, p decl.WellKnownProvider) (types.Type, error) {
	objDecl, err := p.WellKnown(ctx, decl.Object)
	if err != nil {
		return nil, &jtypeserr.Provider{Op: "Capture", Err: err}
	}
	return objDecl.AsType()
}
