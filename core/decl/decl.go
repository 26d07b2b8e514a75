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

// Package decl defines the Declaration Provider boundary (spec.md
// §4.2): the narrow interface the core queries for a declaration's
// superclass, superinterfaces, formal parameters and enclosing
// declaration, plus the small amount of bookkeeping ("materialization
// session", well-known-type lookup, boxing) every real provider needs
// around that interface. It implements nothing itself — the way
// analyzer/core/symbolication's SymbolTable is a pure data structure
// that the symbolicators populate, decl is a pure collaborator boundary
// that callers populate.
package decl

import (
	"context"
	"fmt"

	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// Provider is the external collaborator the core queries for type
// declarations. Implementations must guarantee (spec.md §4.2):
//   - the graph of declarations reachable from any request is fully
//     materialized before Declare returns (no late binding of bounds
//     once a declaration is handed out);
//   - equality of declarations is decided by the underlying key (same
//     key implies equal declaration value — see types.DeclEqual);
//   - an interface declaration with no explicit superinterface still
//     reports Object as its sole direct supertype.
type Provider interface {
	// Declare resolves key to a fully-populated TypeDeclaration.
	Declare(ctx context.Context, key types.Key) (*types.TypeDeclaration, error)
}

// WellKnownProvider is implemented by providers that can resolve a
// declaration by fully-qualified name, independent of whatever opaque
// Key scheme they otherwise use. The core needs this for the handful
// of JLS-privileged names every implementation must know about
// regardless of key scheme: java.lang.Object, java.lang.Cloneable,
// java.io.Serializable, and the eight boxed primitive wrapper classes
// (spec.md §4.1, §4.6 array-subtyping rule).
type WellKnownProvider interface {
	Provider
	// WellKnown resolves a declaration by fully-qualified name.
	WellKnown(ctx context.Context, qualifiedName string) (*types.TypeDeclaration, error)
}

// Well-known fully-qualified names referenced directly by the core's
// algorithms.
const (
	Object       = "java.lang.Object"
	Cloneable    = "java.lang.Cloneable"
	Serializable = "java.io.Serializable"
)

// boxedNames is indexed by types.PrimitiveKind.
var boxedNames = [...]string{
	types.Boolean: "java.lang.Boolean",
	types.Byte:    "java.lang.Byte",
	types.Short:   "java.lang.Short",
	types.Int:     "java.lang.Integer",
	types.Long:    "java.lang.Long",
	types.Char:    "java.lang.Character",
	types.Float:   "java.lang.Float",
	types.Double:  "java.lang.Double",
}

var unboxedKinds = func() map[string]types.PrimitiveKind {
	m := make(map[string]types.PrimitiveKind, len(boxedNames))
	for kind, name := range boxedNames {
		m[name] = types.PrimitiveKind(kind)
	}
	return m
}()

// BoxedName returns the fully-qualified name of kind's boxed wrapper
// class.
func BoxedName(kind types.PrimitiveKind) (string, error) {
	if kind < types.Boolean || kind > types.Double {
		return "", &jtypeserr.InvalidArgument{Op: "BoxedName", Msg: fmt.Sprintf("kind %d out of range", int(kind))}
	}
	return boxedNames[kind], nil
}

// BoxedType returns the canonical Declared type for kind's boxed
// wrapper class, resolved through p.
func BoxedType(ctx context.Context, p WellKnownProvider, kind types.PrimitiveKind) (*types.Declared, error) {
	name, err := BoxedName(kind)
	if err != nil {
		return nil, err
	}
	d, err := p.WellKnown(ctx, name)
	if err != nil {
		return nil, &jtypeserr.Provider{Op: "BoxedType", Err: err}
	}
	return d.AsType()
}

// UnboxedType returns the primitive type kind's boxed class d stands
// for. It fails with InvalidArgument when d is not the canonical
// Declared for one of the eight boxed classes.
func UnboxedType(d *types.Declared) (types.Type, error) {
	if d == nil || d.Decl == nil {
		return nil, &jtypeserr.InvalidArgument{Op: "UnboxedType", Msg: "not a boxed declared type"}
	}
	kind, ok := unboxedKinds[d.Decl.QualifiedName]
	if !ok {
		return nil, &jtypeserr.InvalidArgument{Op: "UnboxedType", Msg: fmt.Sprintf("%s is not a boxed primitive class", d.Decl.QualifiedName)}
	}
	return types.NewPrimitive(kind)
}

// IsArraySupertype reports whether d is the declaration for java.lang.Object,
// java.lang.Cloneable, or java.io.Serializable — the three types an
// array type is a subtype of (spec.md §4.6).
func IsArraySupertype(d *types.TypeDeclaration) bool {
	if d == nil {
		return false
	}
	switch d.QualifiedName {
	case Object, Cloneable, Serializable:
		return true
	default:
		return false
	}
}

// Session is the single-threaded materialization context spec.md §5
// describes: a mapping from declaration keys to the TypeDeclaration
// instances currently under construction within one top-level request,
// consulted so that declarations reachable during that request share
// identity. It is offered to Provider implementations as a convenience
// (jtypesfixture.Loader keeps its own memo maps instead); the core itself never
// constructs one, matching the teacher's scopeManager, which is built
// and owned entirely by the symbolicator that needs it.
type Session struct {
	inFlight map[types.Key]*types.TypeDeclaration
}

// NewSession returns an empty materialization session.
func NewSession() *Session {
	return &Session{inFlight: make(map[types.Key]*types.TypeDeclaration)}
}

// Get returns the in-flight (or already-finished) declaration for key,
// if this session has seen it before.
func (s *Session) Get(key types.Key) (*types.TypeDeclaration, bool) {
	d, ok := s.inFlight[key]
	return d, ok
}

// Put records d as the declaration for key within this session.
func (s *Session) Put(key types.Key, d *types.TypeDeclaration) {
	s.inFlight[key] = d
}
