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

// Package hierarchy resolves the shortest inheritance path between
// two declarations and projects a subtype's actual type arguments onto
// a target supertype declaration (spec.md §4.5). The breadth-first
// search over the declaration graph is grounded on
// analyzer/core/symbolication/scope.go's scopeManager. Its traversal
// order is reproducible because it only walks ordered slices (each
// declaration's direct-supertype list and a FIFO queue); the maps it
// keeps are lookups and are never iterated.
package hierarchy

import (
	"context"

	"github.com/go-jtypes/jtypes/core/decl"
	"github.com/go-jtypes/jtypes/core/subst"
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// DirectSupertypes returns d's direct supertypes in the order spec.md
// §4.5 defines: the superclass (if any) followed by the declared
// superinterfaces, with Object substituted in when d is an interface
// declaration with no explicit superinterface.
func DirectSupertypes(ctx context.Context, p decl.WellKnownProvider, d *types.TypeDeclaration) ([]*types.Declared, error) {
	var result []*types.Declared
	if !types.IsNone(d.Superclass) {
		sc, ok := d.Superclass.(*types.Declared)
		if !ok {
			return nil, &jtypeserr.InvalidArgument{Op: "DirectSupertypes", Msg: "superclass must be Declared or None"}
		}
		result = append(result, sc)
	}
	for _, iface := range d.Interfaces {
		di, ok := iface.(*types.Declared)
		if !ok {
			return nil, &jtypeserr.InvalidArgument{Op: "DirectSupertypes", Msg: "superinterface must be Declared"}
		}
		result = append(result, di)
	}
	if d.Kind == types.InterfaceDecl && len(d.Interfaces) == 0 {
		objDecl, err := p.WellKnown(ctx, decl.Object)
		if err != nil {
			return nil, &jtypeserr.Provider{Op: "DirectSupertypes", Err: err}
		}
		objType, err := objDecl.AsType()
		if err != nil {
			return nil, err
		}
		result = append(result, objType)
	}
	return result, nil
}

// ResolveActualTypeArguments returns the actual arguments target's
// formal parameters take on when viewed through subType. The second
// return value is false ("no projection", spec.md §7's NotASubtype
// sentinel) when subType is not a Declared type or no inheritance path
// from subType to target exists.
func ResolveActualTypeArguments(ctx context.Context, p decl.WellKnownProvider, target *types.TypeDeclaration, subType types.Type) ([]types.Type, bool, error) {
	start, ok := subType.(*types.Declared)
	if !ok {
		return nil, false, nil
	}

	type node struct {
		decl *types.TypeDeclaration
		edge *types.Declared // the Declared used to reach decl from its parent; nil for start
	}

	visited := map[types.Key]bool{start.Decl.Key(): true}
	parent := map[types.Key]node{}
	queue := []*types.TypeDeclaration{start.Decl}

	found := types.DeclEqual(start.Decl, target)
	targetKey := start.Decl.Key()

	for !found && len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		supers, err := DirectSupertypes(ctx, p, cur)
		if err != nil {
			return nil, false, err
		}
		for _, s := range supers {
			key := s.Decl.Key()
			if visited[key] {
				continue
			}
			visited[key] = true
			parent[key] = node{decl: cur, edge: s}
			if types.DeclEqual(s.Decl, target) {
				found = true
				targetKey = key
				break
			}
			queue = append(queue, s.Decl)
		}
	}

	if !found {
		return nil, false, nil
	}

	if len(target.TypeParams) == 0 {
		return []types.Type{}, true, nil
	}

	// Reconstruct the path p0..pk (as Declared edge types) by walking
	// parent pointers backward from target to start, then reversing.
	var edges []*types.Declared
	curKey := targetKey
	for curKey != start.Decl.Key() {
		n, ok := parent[curKey]
		if !ok {
			break
		}
		edges = append(edges, n.edge)
		curKey = n.decl.Key()
	}
	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}

	current := start
	for _, edge := range edges {
		curDecl := current.Decl
		m := make(subst.Mapping, len(curDecl.TypeParams))
		if current.IsRaw() {
			// A raw step carries no actual arguments, so any reference
			// to one of its own formal parameters in edge is unbound.
			// Substituting each such parameter with its own prototype
			// models "unbound after inheriting from a raw type" while
			// preserving everything else edge says verbatim (fixed
			// arguments, array wrapping, and so on).
			for _, tp := range curDecl.TypeParams {
				proto, err := tp.Prototype()
				if err != nil {
					return nil, false, err
				}
				m[tp] = proto
			}
		} else {
			for i, tp := range curDecl.TypeParams {
				if i < len(current.Args) {
					m[tp] = current.Args[i]
				}
			}
		}
		substituted, err := subst.Substitute(edge, m)
		if err != nil {
			return nil, false, err
		}
		nd, ok := substituted.(*types.Declared)
		if !ok {
			return nil, false, &jtypeserr.InvalidArgument{Op: "ResolveActualTypeArguments", Msg: "substitution of a Declared edge produced a non-Declared type"}
		}
		current = nd
	}

	return current.Args, true, nil
}
