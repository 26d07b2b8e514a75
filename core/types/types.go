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

// Package types is the type model at the bottom of the type algebra:
// the tagged union of reference-type forms (JLS §4) plus the element
// objects (type declarations and type parameters) those forms
// reference. The two halves live in one package because a Declared
// type points at a TypeDeclaration and a TypeDeclaration's superclass
// and superinterfaces point right back at Declared types — exactly the
// kind of mutually-recursive pair that, in the teacher's MAST model,
// keeps the generic Node variants and their declaration counterparts
// in the same package rather than splitting them across an artificial
// boundary.
package types

import (
	"fmt"
	"sync"

	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// Type is the interface every reference- or primitive-type form
// implements. The unexported marker method means only this package
// can produce values satisfying Type, the same "sealed union" trick
// the teacher uses for mast.Node (an unexported node() method).
type Type interface {
	typ()
}

// Key identifies a declaration (class or interface) to a decl.Provider.
// It must be comparable (providers are expected to hand out a string
// qualified name, a pointer, or similar); two declarations compare
// equal iff their keys compare equal (spec.md §4.2).
type Key any

// PrimitiveKind enumerates the eight JLS primitive types.
type PrimitiveKind int

const (
	Boolean PrimitiveKind = iota
	Byte
	Short
	Int
	Long
	Char
	Float
	Double
)

func (k PrimitiveKind) String() string {
	switch k {
	case Boolean:
		return "boolean"
	case Byte:
		return "byte"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Char:
		return "char"
	case Float:
		return "float"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int(k))
	}
}

// Primitive is one of the eight primitive types. It is a value type:
// two Primitives with the same Kind are the same type.
type Primitive struct {
	Kind PrimitiveKind
}

func (Primitive) typ() {}

// NewPrimitive returns the Primitive type for kind.
func NewPrimitive(kind PrimitiveKind) (Type, error) {
	if kind < Boolean || kind > Double {
		return nil, &jtypeserr.InvalidArgument{Op: "NewPrimitive", Msg: fmt.Sprintf("kind %d out of range", int(kind))}
	}
	return Primitive{Kind: kind}, nil
}

// NoTypeKind distinguishes the two "absence" forms a no-type can take.
type NoTypeKind int

const (
	VoidKind NoTypeKind = iota
	NoneKind
)

type voidType struct{}

func (voidType) typ() {}

type noneType struct{}

func (noneType) typ() {}

type nullType struct{}

func (nullType) typ() {}

var (
	theVoid Type = voidType{}
	theNone Type = noneType{}
	theNull Type = nullType{}
)

// NoType returns the Void or None singleton depending on kind, failing
// with InvalidArgument for any other kind.
func NoType(kind NoTypeKind) (Type, error) {
	switch kind {
	case VoidKind:
		return theVoid, nil
	case NoneKind:
		return theNone, nil
	default:
		return nil, &jtypeserr.InvalidArgument{Op: "NoType", Msg: fmt.Sprintf("kind %d out of range", int(kind))}
	}
}

// NullType returns the Null singleton: the subtype of every reference
// type and the lower bound of every unconstrained captured variable.
func NullType() Type { return theNull }

// IsNull reports whether t is the Null singleton.
func IsNull(t Type) bool {
	_, ok := t.(nullType)
	return ok
}

// IsVoid reports whether t is the Void singleton.
func IsVoid(t Type) bool {
	_, ok := t.(voidType)
	return ok
}

// IsNone reports whether t is the None singleton.
func IsNone(t Type) bool {
	_, ok := t.(noneType)
	return ok
}

// Array is the type "componentType[]".
type Array struct {
	Component Type
}

func (*Array) typ() {}

// NewArray constructs an Array over component.
func NewArray(component Type) (*Array, error) {
	if err := requireValid("NewArray", component); err != nil {
		return nil, err
	}
	return &Array{Component: component}, nil
}

// DeclKind enumerates the four JLS declaration kinds the core cares
// about (method/constructor type parameters are out of scope per
// spec.md §1).
type DeclKind int

const (
	ClassDecl DeclKind = iota
	InterfaceDecl
	EnumDecl
	AnnotationDecl
)

// TypeDeclaration is a class or interface declaration: a qualified
// name, formal type parameters, a single superclass, superinterfaces,
// an optional enclosing declaration, and a kind. TypeDeclarations are
// supplied by a decl.Provider (decl.Provider lives in the sibling
// core/decl package to keep the provider *interface* — a thin,
// 5%-of-budget collaborator — separate from the type model it
// populates).
type TypeDeclaration struct {
	// QualifiedName is the fully-qualified name, e.g. "java.util.List".
	QualifiedName string
	// SimpleName is the last segment of QualifiedName, e.g. "List".
	SimpleName string
	// Kind is this declaration's kind.
	Kind DeclKind
	// TypeParams is the ordered list of formal type parameters; empty
	// for a non-generic declaration.
	TypeParams []*TypeParameter
	// Superclass is a Declared type, or the None singleton if this
	// declaration has no superclass (interfaces, and java.lang.Object).
	Superclass Type
	// Interfaces is the ordered list of declared superinterfaces.
	Interfaces []Type
	// Enclosing is the lexically enclosing declaration, or nil for a
	// top-level declaration.
	Enclosing *TypeDeclaration

	key Key

	protoOnce sync.Once
	proto     *Declared
}

// NewTypeDeclaration constructs a TypeDeclaration. key is the backing
// identity the provider uses to decide equality (spec.md §4.2): two
// TypeDeclarations returned for the same key must be treated as equal
// by DeclEqual, which is exactly what it checks.
func NewTypeDeclaration(key Key, qualifiedName, simpleName string, kind DeclKind, typeParams []*TypeParameter, superclass Type, interfaces []Type, enclosing *TypeDeclaration) (*TypeDeclaration, error) {
	if superclass == nil {
		return nil, &jtypeserr.MissingOperand{Op: "NewTypeDeclaration", Msg: "superclass"}
	}
	if err := requireValid("NewTypeDeclaration", superclass); err != nil {
		return nil, err
	}
	for _, iface := range interfaces {
		if _, ok := iface.(*Declared); !ok {
			return nil, &jtypeserr.InvalidArgument{Op: "NewTypeDeclaration", Msg: "interfaces must be Declared types"}
		}
	}
	return &TypeDeclaration{
		key:           key,
		QualifiedName: qualifiedName,
		SimpleName:    simpleName,
		Kind:          kind,
		TypeParams:    typeParams,
		Superclass:    superclass,
		Interfaces:    interfaces,
		Enclosing:     enclosing,
	}, nil
}

// Key returns the backing identity supplied at construction.
func (d *TypeDeclaration) Key() Key { return d.key }

// DeclEqual reports whether a and b are the same declaration, decided
// by backing key exactly as spec.md §4.2 requires of the provider.
func DeclEqual(a, b *TypeDeclaration) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.key == b.key
}

// AsType returns D's "invocation on its own formal parameters": the
// canonical Declared whose typeArguments are exactly D's formal
// TypeParameters' prototypical TypeVariables (spec.md §3.3,
// "Prototypical type identity"). It is computed once per declaration
// and cached, the same write-once-under-concurrent-readers discipline
// the teacher's CachingLoader uses for memoized results (here realized
// with sync.Once instead of a mutex-guarded map, since there is only
// ever one value to publish).
func (d *TypeDeclaration) AsType() (*Declared, error) {
	var err error
	d.protoOnce.Do(func() {
		var enclosing Type
		if d.Enclosing != nil {
			var encDecl *Declared
			encDecl, err = d.Enclosing.AsType()
			if err != nil {
				return
			}
			enclosing = encDecl
		} else {
			enclosing, err = NoType(NoneKind)
			if err != nil {
				return
			}
		}
		args := make([]Type, len(d.TypeParams))
		for i, p := range d.TypeParams {
			var tv *TypeVariable
			tv, err = p.Prototype()
			if err != nil {
				return
			}
			args[i] = tv
		}
		d.proto = &Declared{Enclosing: enclosing, Decl: d, Args: args}
	})
	if err != nil {
		return nil, err
	}
	return d.proto, nil
}

// TypeParameter is a single formal type parameter of a TypeDeclaration:
// a simple name and an ordered list of bound types.
type TypeParameter struct {
	// Declaration is the declaring element.
	Declaration *TypeDeclaration
	// Name is the parameter's simple name, e.g. "E" in List<E>.
	Name string
	// Bounds is the ordered, non-empty list of declared bound types
	// (providers are expected to include java.lang.Object explicitly
	// when a parameter has no extends clause, mirroring how javac
	// itself records an implicit Object bound).
	Bounds []Type

	protoOnce  sync.Once
	proto      *TypeVariable
	protoErr   error
	freezeOnce sync.Once
	freezeErr  error
}

// NewTypeParameter constructs a TypeParameter. bounds must be
// non-empty.
func NewTypeParameter(declaration *TypeDeclaration, name string, bounds []Type) (*TypeParameter, error) {
	if len(bounds) == 0 {
		return nil, &jtypeserr.MissingOperand{Op: "NewTypeParameter", Msg: "bounds"}
	}
	return &TypeParameter{Declaration: declaration, Name: name, Bounds: bounds}, nil
}

// PendingPrototype returns p's prototypical TypeVariable, allocating
// it if necessary without freezing its bounds. This is the first of
// Prototype's two construction phases, exposed so a decl.Provider
// building a declaration with a self-referential bound — F-bounded
// polymorphism, e.g. "E extends Comparable<E>" — can obtain the
// placeholder to embed inside Bounds before Bounds is itself set and
// Prototype is called. Ordinary callers should use Prototype.
func (p *TypeParameter) PendingPrototype() (*TypeVariable, error) {
	p.protoOnce.Do(func() {
		p.proto, p.protoErr = NewTypeVariable(p, nil)
	})
	return p.proto, p.protoErr
}

// Prototype returns p's prototypical TypeVariable: a TypeVariable
// whose parameter is p itself, whose upperBound is p's single bound
// verbatim (or the bounds wrapped in an Intersection when p has more
// than one), and whose lowerBound is Null. The bounds are read, and
// the variable frozen, on first call — so a provider populating p's
// Bounds after obtaining a PendingPrototype placeholder must finish
// doing so before anything calls Prototype.
func (p *TypeParameter) Prototype() (*TypeVariable, error) {
	tv, err := p.PendingPrototype()
	if err != nil {
		return nil, err
	}
	p.freezeOnce.Do(func() {
		var upper Type
		switch len(p.Bounds) {
		case 0:
			p.freezeErr = &jtypeserr.MissingOperand{Op: "TypeParameter.Prototype", Msg: "bounds"}
			return
		case 1:
			upper = p.Bounds[0]
		default:
			inter, err := NewIntersection(p.Bounds...)
			if err != nil {
				p.freezeErr = err
				return
			}
			upper = inter
		}
		p.freezeErr = tv.Freeze(upper, NullType())
	})
	return tv, p.freezeErr
}

// ParameterEqual reports whether a and b originate from the same
// declaration position — per spec.md §3.2, the provider guarantees
// this by handing out the same *TypeParameter value for the same
// formal parameter every time, so pointer identity is the contract.
func ParameterEqual(a, b *TypeParameter) bool {
	return a == b
}

// Declared is a nominal reference type: a declaration, actual type
// arguments (0 or len(declaration.TypeParams)), and an enclosing type.
type Declared struct {
	// Enclosing is a Declared type, or the None singleton for a
	// top-level type.
	Enclosing Type
	// Decl is the declaration this type names.
	Decl *TypeDeclaration
	// Args is the ordered list of actual type arguments; empty for a
	// raw or non-generic invocation.
	Args []Type
}

func (*Declared) typ() {}

// NewDeclared constructs a Declared type. args must be empty (raw) or
// exactly len(decl.TypeParams) long (spec.md §3.3, "Declared
// well-formedness").
func NewDeclared(enclosing Type, decl *TypeDeclaration, args ...Type) (*Declared, error) {
	if decl == nil {
		return nil, &jtypeserr.MissingOperand{Op: "NewDeclared", Msg: "decl"}
	}
	if enclosing == nil {
		return nil, &jtypeserr.MissingOperand{Op: "NewDeclared", Msg: "enclosing"}
	}
	if err := requireValid("NewDeclared", enclosing); err != nil {
		return nil, err
	}
	if len(args) != 0 && len(args) != len(decl.TypeParams) {
		return nil, &jtypeserr.InvalidArgument{Op: "NewDeclared", Msg: fmt.Sprintf("%d type arguments for %d formal parameters", len(args), len(decl.TypeParams))}
	}
	for _, a := range args {
		if err := requireValid("NewDeclared", a); err != nil {
			return nil, err
		}
	}
	return &Declared{Enclosing: enclosing, Decl: decl, Args: append([]Type(nil), args...)}, nil
}

// IsRaw reports whether d is a raw type: a generic declaration
// invoked with zero actual type arguments.
func (d *Declared) IsRaw() bool {
	return len(d.Args) == 0 && len(d.Decl.TypeParams) > 0
}

// TypeVariable is a use of a formal type parameter, or a fresh
// variable introduced by capture conversion. Per spec.md §3.3 it is
// built in two phases: NewTypeVariable creates the unfrozen value,
// then Freeze sets its bounds exactly once. Bounds may only be read
// after Freeze has run. This mirrors how capture conversion must be
// able to construct a variable whose own upper bound refers back to
// itself (or to a sibling variable being constructed in the same
// batch) before that bound exists.
type TypeVariable struct {
	// Parameter is the formal type parameter this variable is a use
	// of (for a captured variable, the formal parameter in the
	// declaration being captured).
	Parameter *TypeParameter
	// CapturedArgument is the original wildcard this variable was
	// created to capture, or nil if this is not a captured variable.
	CapturedArgument *Wildcard

	mu     sync.Mutex
	frozen bool
	upper  Type
	lower  Type
}

func (*TypeVariable) typ() {}

// NewTypeVariable creates an unfrozen TypeVariable for parameter, with
// an optional capturedArgument. Its bounds must be set with Freeze
// before they can be read.
func NewTypeVariable(parameter *TypeParameter, capturedArgument *Wildcard) (*TypeVariable, error) {
	if parameter == nil {
		return nil, &jtypeserr.MissingOperand{Op: "NewTypeVariable", Msg: "parameter"}
	}
	return &TypeVariable{Parameter: parameter, CapturedArgument: capturedArgument}, nil
}

// Freeze sets tv's upper and lower bounds. It may be called exactly
// once per TypeVariable; a second call returns IllegalState.
func (tv *TypeVariable) Freeze(upper, lower Type) error {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	if tv.frozen {
		return &jtypeserr.IllegalState{Op: "TypeVariable.Freeze", Msg: "bounds already frozen"}
	}
	if upper == nil || lower == nil {
		return &jtypeserr.MissingOperand{Op: "TypeVariable.Freeze", Msg: "upper and lower bounds are required"}
	}
	tv.upper, tv.lower = upper, lower
	tv.frozen = true
	return nil
}

// UpperBound returns tv's upper bound, or IllegalState if tv has not
// been frozen yet.
func (tv *TypeVariable) UpperBound() (Type, error) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	if !tv.frozen {
		return nil, &jtypeserr.IllegalState{Op: "TypeVariable.UpperBound", Msg: "bounds not yet frozen"}
	}
	return tv.upper, nil
}

// LowerBound returns tv's lower bound, or IllegalState if tv has not
// been frozen yet.
func (tv *TypeVariable) LowerBound() (Type, error) {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	if !tv.frozen {
		return nil, &jtypeserr.IllegalState{Op: "TypeVariable.LowerBound", Msg: "bounds not yet frozen"}
	}
	return tv.lower, nil
}

// IsFrozen reports whether Freeze has already run.
func (tv *TypeVariable) IsFrozen() bool {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	return tv.frozen
}

// GetTypeVariable is the one-shot constructor for already-fully-known
// bounds: it runs both construction phases back to back. Capture
// conversion (core/capture) instead calls NewTypeVariable and Freeze
// separately, with other fresh variables constructed in between, so
// that bounds can reference sibling variables that do not exist yet
// at the time this variable is created.
func GetTypeVariable(parameter *TypeParameter, upper, lower Type, capturedArgument *Wildcard) (*TypeVariable, error) {
	tv, err := NewTypeVariable(parameter, capturedArgument)
	if err != nil {
		return nil, err
	}
	if err := tv.Freeze(upper, lower); err != nil {
		return nil, err
	}
	return tv, nil
}

// Wildcard is a type argument of the form "?", "? extends B" or
// "? super B". At most one of ExtendsBound / SuperBound is set.
type Wildcard struct {
	ExtendsBound Type
	SuperBound   Type
}

func (*Wildcard) typ() {}

// NewWildcard constructs a Wildcard. extends and super are nilable;
// supplying both is InvalidArgument (spec.md §3.3, "Wildcard
// well-formedness").
func NewWildcard(extendsBound, superBound Type) (*Wildcard, error) {
	if extendsBound != nil && superBound != nil {
		return nil, &jtypeserr.InvalidArgument{Op: "NewWildcard", Msg: "at most one of extends/super may be set"}
	}
	if extendsBound != nil {
		if err := requireValid("NewWildcard", extendsBound); err != nil {
			return nil, err
		}
	}
	if superBound != nil {
		if err := requireValid("NewWildcard", superBound); err != nil {
			return nil, err
		}
	}
	return &Wildcard{ExtendsBound: extendsBound, SuperBound: superBound}, nil
}

// IsUnbounded reports whether w has neither an extends nor a super
// bound (conceptually "? extends Object").
func (w *Wildcard) IsUnbounded() bool {
	return w.ExtendsBound == nil && w.SuperBound == nil
}

// Intersection is a non-empty ordered list of bound types, the type
// form behind "T1 & T2 & ...".
type Intersection struct {
	Bounds []Type
}

func (*Intersection) typ() {}

// NewIntersection constructs an Intersection. bounds must be
// non-empty.
func NewIntersection(bounds ...Type) (*Intersection, error) {
	if len(bounds) == 0 {
		return nil, &jtypeserr.InvalidArgument{Op: "NewIntersection", Msg: "intersection must have at least one bound"}
	}
	for _, b := range bounds {
		if err := requireValid("NewIntersection", b); err != nil {
			return nil, err
		}
	}
	return &Intersection{Bounds: append([]Type(nil), bounds...)}, nil
}

// requireValid rejects nil interfaces and typed-nil pointers. Because
// Type's marker method is unexported, any value that type-switches
// into one of the cases below was necessarily produced by this
// package's own constructors; a "foreign Type instance" can therefore
// only arise as a nil or typed-nil value slipping through.
func requireValid(op string, t Type) error {
	switch v := t.(type) {
	case nil:
		return &jtypeserr.InvalidArgument{Op: op, Msg: "nil type"}
	case Primitive, voidType, noneType, nullType:
		return nil
	case *Array:
		if v == nil {
			return &jtypeserr.InvalidArgument{Op: op, Msg: "nil *Array"}
		}
	case *Declared:
		if v == nil {
			return &jtypeserr.InvalidArgument{Op: op, Msg: "nil *Declared"}
		}
	case *TypeVariable:
		if v == nil {
			return &jtypeserr.InvalidArgument{Op: op, Msg: "nil *TypeVariable"}
		}
	case *Wildcard:
		if v == nil {
			return &jtypeserr.InvalidArgument{Op: op, Msg: "nil *Wildcard"}
		}
	case *Intersection:
		if v == nil {
			return &jtypeserr.InvalidArgument{Op: op, Msg: "nil *Intersection"}
		}
	default:
		return &jtypeserr.InvalidArgument{Op: op, Msg: "foreign Type implementation"}
	}
	return nil
}

// Valid reports whether t is a non-nil, non-foreign Type value. It is
// exported so sibling core packages can validate constructor inputs
// with the same rule this package applies to itself.
func Valid(t Type) bool {
	return requireValid("Valid", t) == nil
}

// typeVarPair identifies an (a, b) TypeVariable comparison in flight,
// used to detect the cycles capture conversion's mutually-recursive
// bounds introduce (spec.md §4.7, §9 "Cyclic bounds without cycles in
// construction").
type typeVarPair struct {
	a, b *TypeVariable
}

// Equal reports whether a and b are structurally equal, recursively,
// per spec.md §3.1's equality rule. Wildcards never compare equal to
// anything via IsSameType (see core/contain), but Equal itself is the
// lower-level structural check Equal composes other algorithms from,
// including wildcard-to-wildcard comparison needed by e.g. capture's
// own bookkeeping.
func Equal(a, b Type) bool {
	return equal(a, b, make(map[typeVarPair]bool))
}

func equal(a, b Type, seen map[typeVarPair]bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Primitive:
		bv, ok := b.(Primitive)
		return ok && av.Kind == bv.Kind
	case voidType:
		_, ok := b.(voidType)
		return ok
	case noneType:
		_, ok := b.(noneType)
		return ok
	case nullType:
		_, ok := b.(nullType)
		return ok
	case *Array:
		bv, ok := b.(*Array)
		return ok && equal(av.Component, bv.Component, seen)
	case *Declared:
		bv, ok := b.(*Declared)
		if !ok || !DeclEqual(av.Decl, bv.Decl) || len(av.Args) != len(bv.Args) {
			return false
		}
		if !equal(av.Enclosing, bv.Enclosing, seen) {
			return false
		}
		for i := range av.Args {
			if !equal(av.Args[i], bv.Args[i], seen) {
				return false
			}
		}
		return true
	case *TypeVariable:
		bv, ok := b.(*TypeVariable)
		if !ok {
			return false
		}
		if av == bv {
			return true
		}
		if !ParameterEqual(av.Parameter, bv.Parameter) {
			return false
		}
		key := typeVarPair{av, bv}
		if seen[key] {
			// Already comparing this exact pair further up the call
			// stack: a capture-converted bound refers back to one of
			// its siblings. Assume equal (coinductive equality) rather
			// than looping forever.
			return true
		}
		seen[key] = true
		if (av.CapturedArgument == nil) != (bv.CapturedArgument == nil) {
			return false
		}
		if av.CapturedArgument != nil && !equal(av.CapturedArgument, bv.CapturedArgument, seen) {
			return false
		}
		if !av.frozen || !bv.frozen {
			return av.frozen == bv.frozen && av == bv
		}
		return equal(av.upper, bv.upper, seen) && equal(av.lower, bv.lower, seen)
	case *Wildcard:
		bv, ok := b.(*Wildcard)
		if !ok {
			return false
		}
		if (av.ExtendsBound == nil) != (bv.ExtendsBound == nil) {
			return false
		}
		if av.ExtendsBound != nil && !equal(av.ExtendsBound, bv.ExtendsBound, seen) {
			return false
		}
		if (av.SuperBound == nil) != (bv.SuperBound == nil) {
			return false
		}
		if av.SuperBound != nil && !equal(av.SuperBound, bv.SuperBound, seen) {
			return false
		}
		return true
	case *Intersection:
		bv, ok := b.(*Intersection)
		if !ok || len(av.Bounds) != len(bv.Bounds) {
			return false
		}
		for i := range av.Bounds {
			if !equal(av.Bounds[i], bv.Bounds[i], seen) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a hash consistent with Equal: Equal(a, b) implies
// Hash(a) == Hash(b). Like Equal, it guards against the cycles
// captured type variables introduce: a TypeVariable already being
// hashed further up the call stack contributes a fixed marker value.
func Hash(t Type) uint64 {
	return hash(t, make(map[*TypeVariable]bool))
}

const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

func mix(h uint64, parts ...uint64) uint64 {
	for _, p := range parts {
		h ^= p
		h *= fnvPrime
	}
	return h
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= fnvPrime
	}
	return h
}

func hash(t Type, inProgress map[*TypeVariable]bool) uint64 {
	h := uint64(fnvOffset)
	switch v := t.(type) {
	case nil:
		return mix(h, 0)
	case Primitive:
		return mix(h, 1, uint64(v.Kind))
	case voidType:
		return mix(h, 2)
	case noneType:
		return mix(h, 3)
	case nullType:
		return mix(h, 4)
	case *Array:
		return mix(h, 5, hash(v.Component, inProgress))
	case *Declared:
		h = mix(h, 6)
		h = hashString(h, fmt.Sprintf("%v", v.Decl.Key()))
		h = mix(h, hash(v.Enclosing, inProgress), uint64(len(v.Args)))
		for _, a := range v.Args {
			h = mix(h, hash(a, inProgress))
		}
		return h
	case *TypeVariable:
		if inProgress[v] {
			return mix(h, 7, uint64(uintptr(fnvOffset)))
		}
		inProgress[v] = true
		h = mix(h, 7)
		h = hashString(h, fmt.Sprintf("%p", v.Parameter))
		if v.CapturedArgument != nil {
			h = mix(h, hash(v.CapturedArgument, inProgress))
		}
		if v.frozen {
			h = mix(h, hash(v.upper, inProgress), hash(v.lower, inProgress))
		}
		return h
	case *Wildcard:
		h = mix(h, 8)
		if v.ExtendsBound != nil {
			h = mix(h, 1, hash(v.ExtendsBound, inProgress))
		}
		if v.SuperBound != nil {
			h = mix(h, 2, hash(v.SuperBound, inProgress))
		}
		return h
	case *Intersection:
		h = mix(h, 9, uint64(len(v.Bounds)))
		for _, b := range v.Bounds {
			h = mix(h, hash(b, inProgress))
		}
		return h
	default:
		return mix(h, 99)
	}
}
