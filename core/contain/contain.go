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

// Package contain implements the containment (spec.md §4.6) and
// subtyping (spec.md §4.6, multi-dispatch) relations. Both are
// expressed as a single recursive dispatch over the Type variants, the
// same shape as the teacher's check.GenericChecker, which dispatches a
// two-argument comparison (expected node vs. actual node) across every
// mast.Node variant; here the two arguments are a candidate subtype and
// a candidate supertype instead of two syntax trees.
package contain

import (
	"context"

	"github.com/go-jtypes/jtypes/core/capture"
	"github.com/go-jtypes/jtypes/core/decl"
	"github.com/go-jtypes/jtypes/core/hierarchy"
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// IsSameType reports whether a and b are the same type. Wildcards are
// type arguments, not types, and never compare same to anything
// (including another structurally-identical wildcard) — containment,
// not sameness, is the relation that governs them.
func IsSameType(a, b types.Type) (bool, error) {
	if !types.Valid(a) || !types.Valid(b) {
		return false, &jtypeserr.InvalidArgument{Op: "IsSameType", Msg: "foreign or nil type"}
	}
	if _, ok := a.(*types.Wildcard); ok {
		return false, nil
	}
	if _, ok := b.(*types.Wildcard); ok {
		return false, nil
	}
	return types.Equal(a, b), nil
}

// widensTo reports whether a value of kind from may widen (JLS §5.1.2)
// to a value of kind to, including the trivial from == to case.
func widensTo(from, to types.PrimitiveKind) bool {
	if from == to {
		return true
	}
	switch from {
	case types.Byte:
		switch to {
		case types.Short, types.Int, types.Long, types.Float, types.Double:
			return true
		}
	case types.Short, types.Char:
		switch to {
		case types.Int, types.Long, types.Float, types.Double:
			return true
		}
	case types.Int:
		switch to {
		case types.Long, types.Float, types.Double:
			return true
		}
	case types.Long:
		switch to {
		case types.Float, types.Double:
			return true
		}
	case types.Float:
		return to == types.Double
	}
	return false
}

// IsSubtype reports whether sub is a subtype of sup, per the
// multi-dispatch rules of spec.md §4.6: primitive widening, array
// covariance plus the Object/Cloneable/Serializable rule, Null as the
// bottom reference type, type-variable upper-bound delegation, and
// parameterized-Declared subtyping through hierarchy resolution plus
// per-argument containment.
func IsSubtype(ctx context.Context, p decl.WellKnownProvider, sub, sup types.Type) (bool, error) {
	if !types.Valid(sub) || !types.Valid(sup) {
		return false, &jtypeserr.InvalidArgument{Op: "IsSubtype", Msg: "foreign or nil type"}
	}
	if _, ok := sub.(*types.Wildcard); ok {
		return false, &jtypeserr.InvalidArgument{Op: "IsSubtype", Msg: "wildcard is a type argument, not a type"}
	}
	if _, ok := sup.(*types.Wildcard); ok {
		return false, &jtypeserr.InvalidArgument{Op: "IsSubtype", Msg: "wildcard is a type argument, not a type"}
	}

	same, err := IsSameType(sub, sup)
	if err != nil {
		return false, err
	}
	if same {
		return true, nil
	}

	if types.IsNull(sub) {
		switch sup.(type) {
		case *types.Array, *types.Declared, *types.TypeVariable, *types.Intersection:
			return true, nil
		default:
			return false, nil
		}
	}

	if supTV, ok := sup.(*types.TypeVariable); ok {
		lower, err := supTV.LowerBound()
		if err != nil {
			return false, err
		}
		return IsSameType(lower, sub)
	}

	if _, ok := sup.(*types.Intersection); ok {
		return IsSameType(sup, sub)
	}

	switch subv := sub.(type) {
	case types.Primitive:
		supv, ok := sup.(types.Primitive)
		if !ok {
			return false, nil
		}
		return widensTo(subv.Kind, supv.Kind), nil

	case *types.Array:
		if supv, ok := sup.(*types.Array); ok {
			_, subPrim := subv.Component.(types.Primitive)
			_, supPrim := supv.Component.(types.Primitive)
			if subPrim || supPrim {
				return types.Equal(subv.Component, supv.Component), nil
			}
			return IsSubtype(ctx, p, subv.Component, supv.Component)
		}
		if supd, ok := sup.(*types.Declared); ok {
			return decl.IsArraySupertype(supd.Decl), nil
		}
		return false, nil

	case *types.Declared:
		supd, ok := sup.(*types.Declared)
		if !ok {
			return false, nil
		}
		capturedSub := subv
		for _, a := range subv.Args {
			if _, isWildcard := a.(*types.Wildcard); isWildcard {
				capturedSub, err = capture.Capture(ctx, p, subv)
				if err != nil {
					return false, err
				}
				break
			}
		}
		args, reachable, err := hierarchy.ResolveActualTypeArguments(ctx, p, supd.Decl, capturedSub)
		if err != nil {
			return false, err
		}
		if !reachable {
			return false, nil
		}
		if len(args) == 0 && len(supd.Args) != 0 {
			return false, nil
		}
		for i := range supd.Args {
			ok, err := Contains(ctx, p, supd.Args[i], args[i])
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		}
		return true, nil

	case *types.TypeVariable:
		upper, err := subv.UpperBound()
		if err != nil {
			return false, err
		}
		return IsSubtype(ctx, p, upper, sup)

	case *types.Intersection:
		for _, bound := range subv.Bounds {
			ok, err := IsSubtype(ctx, p, bound, sup)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	default:
		// Void and None are not types any value can have; they never
		// participate in subtyping.
		return false, &jtypeserr.Unsupported{Op: "IsSubtype", Msg: "void or none is not subtypeable"}
	}
}

func objectType(ctx context.Context, p decl.WellKnownProvider) (types.Type, error) {
	d, err := p.WellKnown(ctx, decl.Object)
	if err != nil {
		return nil, &jtypeserr.Provider{Op: "Contains", Err: err}
	}
	return d.AsType()
}

// bounds returns the (upper, lower) pair a type argument stands for:
// a plain type argument is its own upper and lower bound; a wildcard
// expands per spec.md §4.6's table, with an absent extends bound
// standing for Object and an absent super bound standing for Null.
func bounds(ctx context.Context, p decl.WellKnownProvider, t types.Type) (upper, lower types.Type, err error) {
	w, ok := t.(*types.Wildcard)
	if !ok {
		return t, t, nil
	}
	switch {
	case w.ExtendsBound != nil:
		return w.ExtendsBound, types.NullType(), nil
	case w.SuperBound != nil:
		obj, err := objectType(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		return obj, w.SuperBound, nil
	default:
		obj, err := objectType(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		return obj, types.NullType(), nil
	}
}

// Contains reports whether t1 contains t2 (spec.md §4.5.1): every type
// t2 could denote, t1 could also denote. Both arguments may be plain
// types or wildcards.
func Contains(ctx context.Context, p decl.WellKnownProvider, t1, t2 types.Type) (bool, error) {
	if !types.Valid(t1) || !types.Valid(t2) {
		return false, &jtypeserr.InvalidArgument{Op: "Contains", Msg: "foreign or nil type"}
	}
	upper1, lower1, err := bounds(ctx, p, t1)
	if err != nil {
		return false, err
	}
	upper2, lower2, err := bounds(ctx, p, t2)
	if err != nil {
		return false, err
	}
	upperOK, err := IsSubtype(ctx, p, upper2, upper1)
	if err != nil {
		return false, err
	}
	if !upperOK {
		return false, nil
	}
	lowerOK, err := IsSubtype(ctx, p, lower1, lower2)
	if err != nil {
		return false, err
	}
	return lowerOK, nil
}
