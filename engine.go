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

// Package jtypes is the public facade over the type algebra: one
// Engine value, backed by a caller-supplied decl.WellKnownProvider,
// exposes substitution, erasure, inheritance-path resolution,
// containment, subtyping, capture conversion and pretty-printing as
// plain methods. It plays the same role for this module that
// analyzer.Analyzer plays for the teacher: a thin struct wiring
// together the sub-packages that do the actual work, with no logic of
// its own beyond delegation.
package jtypes

import (
	"context"

	"github.com/go-jtypes/jtypes/core/capture"
	"github.com/go-jtypes/jtypes/core/contain"
	"github.com/go-jtypes/jtypes/core/decl"
	"github.com/go-jtypes/jtypes/core/erasure"
	"github.com/go-jtypes/jtypes/core/hierarchy"
	"github.com/go-jtypes/jtypes/core/printer"
	"github.com/go-jtypes/jtypes/core/subst"
	"github.com/go-jtypes/jtypes/core/types"
)

// Engine bundles the type algebra's operations with the declaration
// provider they resolve against.
type Engine struct {
	Provider decl.WellKnownProvider
}

// New returns an Engine backed by p.
func New(p decl.WellKnownProvider) *Engine {
	return &Engine{Provider: p}
}

// Substitute rewrites t under m (spec.md §4.3).
func (e *Engine) Substitute(t types.Type, m subst.Mapping) (types.Type, error) {
	return subst.Substitute(t, m)
}

// Erasure returns the erasure of t (spec.md §4.4).
func (e *Engine) Erasure(t types.Type) (types.Type, error) {
	return erasure.Erasure(t)
}

// ResolveActualTypeArguments projects subType's actual type arguments
// onto target (spec.md §4.5).
func (e *Engine) ResolveActualTypeArguments(ctx context.Context, target *types.TypeDeclaration, subType types.Type) ([]types.Type, bool, error) {
	return hierarchy.ResolveActualTypeArguments(ctx, e.Provider, target, subType)
}

// DirectSupertypes returns d's direct supertypes (spec.md §4.5).
func (e *Engine) DirectSupertypes(ctx context.Context, d *types.TypeDeclaration) ([]*types.Declared, error) {
	return hierarchy.DirectSupertypes(ctx, e.Provider, d)
}

// Contains reports whether t1 contains t2 (spec.md §4.5.1/§4.6).
func (e *Engine) Contains(ctx context.Context, t1, t2 types.Type) (bool, error) {
	return contain.Contains(ctx, e.Provider, t1, t2)
}

// IsSubtype reports whether sub is a subtype of sup (spec.md §4.6).
func (e *Engine) IsSubtype(ctx context.Context, sub, sup types.Type) (bool, error) {
	return contain.IsSubtype(ctx, e.Provider, sub, sup)
}

// IsSameType reports whether a and b are the same type (spec.md §4.6).
func (e *Engine) IsSameType(a, b types.Type) (bool, error) {
	return contain.IsSameType(a, b)
}

// Capture returns the capture conversion of d (spec.md §4.7).
func (e *Engine) Capture(ctx context.Context, d *types.Declared) (*types.Declared, error) {
	return capture.Capture(ctx, e.Provider, d)
}

// String renders t as canonical source-like text (spec.md §4.8).
func (e *Engine) String(t types.Type) (string, error) {
	return printer.String(t)
}

// Boxed returns the canonical Declared type for kind's boxed wrapper
// class.
func (e *Engine) Boxed(ctx context.Context, kind types.PrimitiveKind) (*types.Declared, error) {
	return decl.BoxedType(ctx, e.Provider, kind)
}
