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

// Package jtypesfixture is a YAML-driven decl.Provider for tests and
// the conformance suite: it reads a declaration graph described in a
// small textual format and materializes types.TypeDeclaration values on
// demand, memoizing by qualified name within one Loader the way
// pkgloading.CachingLoader (the sibling cgrushko-tools_jvm_autodeps
// repo) de-duplicates loads within one session.
package jtypesfixture

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/go-jtypes/jtypes/core/decl"
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/internal/jtypeserr"
)

// typeParamSpec describes one formal type parameter. It unmarshals
// from either a bare string ("E", an implicit java.lang.Object bound)
// or a mapping with an explicit bounds list.
type typeParamSpec struct {
	Name   string
	Bounds []string
}

func (t *typeParamSpec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Name = value.Value
		return nil
	}
	var m struct {
		Name   string   `yaml:"name"`
		Bounds []string `yaml:"bounds"`
	}
	if err := value.Decode(&m); err != nil {
		return err
	}
	t.Name, t.Bounds = m.Name, m.Bounds
	return nil
}

type declSpec struct {
	Name       string          `yaml:"name"`
	Kind       string          `yaml:"kind"`
	TypeParams []typeParamSpec `yaml:"typeParams"`
	Superclass string          `yaml:"superclass"`
	Interfaces []string        `yaml:"interfaces"`
	Enclosing  string          `yaml:"enclosing"`
}

type document struct {
	Declarations []declSpec `yaml:"declarations"`
}

// Loader is a decl.Provider and decl.WellKnownProvider backed by a
// parsed YAML document. Declarations are resolved lazily and
// memoized, so forward references between declarations (List
// mentioning Collection before Collection's own entry) are fine.
type Loader struct {
	mu       sync.Mutex
	raw      map[string]declSpec
	built    map[string]*types.TypeDeclaration
	building map[string]bool
}

// NewLoader parses data as a fixture document and returns a Loader
// ready to resolve any declaration it names, plus the built-in
// java.lang.Object / Cloneable / Serializable, java.lang.Number,
// java.lang.String and the eight boxed primitive wrapper classes (the
// six numeric ones extending Number), each overridable by an entry of
// the same name in data.
func NewLoader(data []byte) (*Loader, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &jtypeserr.InvalidArgument{Op: "NewLoader", Msg: "malformed YAML: " + err.Error()}
	}

	raw := make(map[string]declSpec, len(doc.Declarations)+11)
	var errs error
	for _, spec := range doc.Declarations {
		if spec.Name == "" {
			errs = multierr.Append(errs, &jtypeserr.InvalidArgument{Op: "NewLoader", Msg: "declaration with empty name"})
			continue
		}
		if _, dup := raw[spec.Name]; dup {
			errs = multierr.Append(errs, &jtypeserr.InvalidArgument{Op: "NewLoader", Msg: "duplicate declaration " + spec.Name})
			continue
		}
		raw[spec.Name] = spec
	}
	if errs != nil {
		return nil, errs
	}

	for name, spec := range builtinSpecs() {
		if _, exists := raw[name]; !exists {
			raw[name] = spec
		}
	}

	return &Loader{
		raw:      raw,
		built:    make(map[string]*types.TypeDeclaration),
		building: make(map[string]bool),
	}, nil
}

func builtinSpecs() map[string]declSpec {
	specs := map[string]declSpec{
		decl.Object:       {Name: decl.Object, Kind: "class"},
		decl.Cloneable:    {Name: decl.Cloneable, Kind: "interface"},
		decl.Serializable: {Name: decl.Serializable, Kind: "interface"},
	}
	specs["java.lang.Number"] = declSpec{Name: "java.lang.Number", Kind: "class", Superclass: decl.Object}
	specs["java.lang.String"] = declSpec{Name: "java.lang.String", Kind: "class", Superclass: decl.Object}
	for _, name := range []string{"java.lang.Boolean", "java.lang.Character"} {
		specs[name] = declSpec{Name: name, Kind: "class", Superclass: decl.Object}
	}
	for _, name := range []string{
		"java.lang.Byte", "java.lang.Short", "java.lang.Integer",
		"java.lang.Long", "java.lang.Float", "java.lang.Double",
	} {
		specs[name] = declSpec{Name: name, Kind: "class", Superclass: "java.lang.Number"}
	}
	return specs
}

// Declare resolves key, which must be the declaration's qualified
// name (the string Loader uses as its decl.Key).
func (l *Loader) Declare(ctx context.Context, key types.Key) (*types.TypeDeclaration, error) {
	name, ok := key.(string)
	if !ok {
		return nil, &jtypeserr.InvalidArgument{Op: "Loader.Declare", Msg: "key must be a qualified name string"}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(ctx, name, nil)
}

// WellKnown resolves a declaration by qualified name.
func (l *Loader) WellKnown(ctx context.Context, qualifiedName string) (*types.TypeDeclaration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.resolve(ctx, qualifiedName, nil)
}

// resolve materializes the declaration named name. outerScope carries
// the in-scope type parameters of any lexically enclosing declaration
// currently under construction (nil at the top level). Must be called
// with l.mu held.
func (l *Loader) resolve(ctx context.Context, name string, outerScope map[string]types.Type) (*types.TypeDeclaration, error) {
	if d, ok := l.built[name]; ok {
		return d, nil
	}
	if l.building[name] {
		return nil, &jtypeserr.IllegalState{Op: "Loader.resolve", Msg: "cyclic declaration reference through " + name}
	}
	spec, ok := l.raw[name]
	if !ok {
		return nil, &jtypeserr.InvalidArgument{Op: "Loader.resolve", Msg: "unknown declaration " + name}
	}
	l.building[name] = true
	defer delete(l.building, name)

	kind, err := parseKind(spec.Kind)
	if err != nil {
		return nil, err
	}

	var enclosing *types.TypeDeclaration
	if spec.Enclosing != "" {
		enclosing, err = l.resolve(ctx, spec.Enclosing, outerScope)
		if err != nil {
			return nil, err
		}
	}

	scope := make(map[string]types.Type, len(outerScope)+len(spec.TypeParams))
	for k, v := range outerScope {
		scope[k] = v
	}
	if enclosing != nil {
		for _, tp := range enclosing.TypeParams {
			proto, err := tp.Prototype()
			if err != nil {
				return nil, err
			}
			scope[tp.Name] = proto
		}
	}

	tps := make([]*types.TypeParameter, len(spec.TypeParams))
	for i, pspec := range spec.TypeParams {
		tp := &types.TypeParameter{Name: pspec.Name}
		tps[i] = tp
		placeholder, err := tp.PendingPrototype()
		if err != nil {
			return nil, err
		}
		scope[pspec.Name] = placeholder
	}

	// java.lang.Object itself needs neither a default bound nor a
	// default superclass, and cannot resolve itself while under
	// construction.
	var objDecl *types.TypeDeclaration
	var objType types.Type
	if name != decl.Object {
		if objDecl, err = l.resolve(ctx, decl.Object, nil); err != nil {
			return nil, err
		}
		if objType, err = objDecl.AsType(); err != nil {
			return nil, err
		}
	}

	for i, pspec := range spec.TypeParams {
		if len(pspec.Bounds) == 0 {
			tps[i].Bounds = []types.Type{objType}
			continue
		}
		bounds := make([]types.Type, len(pspec.Bounds))
		for j, boundStr := range pspec.Bounds {
			t, err := l.parseTypeRef(ctx, boundStr, scope)
			if err != nil {
				return nil, err
			}
			bounds[j] = t
		}
		tps[i].Bounds = bounds
	}

	var superclass types.Type
	switch {
	case spec.Superclass != "":
		superclass, err = l.parseTypeRef(ctx, spec.Superclass, scope)
		if err != nil {
			return nil, err
		}
	case kind == types.InterfaceDecl || kind == types.AnnotationDecl || name == decl.Object:
		superclass, err = types.NoType(types.NoneKind)
		if err != nil {
			return nil, err
		}
	default:
		superclass, err = types.NewDeclared(mustNone(), objDecl)
		if err != nil {
			return nil, err
		}
	}

	interfaces := make([]types.Type, len(spec.Interfaces))
	for i, ifaceStr := range spec.Interfaces {
		t, err := l.parseTypeRef(ctx, ifaceStr, scope)
		if err != nil {
			return nil, err
		}
		interfaces[i] = t
	}

	simpleName := name
	if idx := strings.LastIndexByte(name, '.'); idx >= 0 {
		simpleName = name[idx+1:]
	}

	built, err := types.NewTypeDeclaration(name, name, simpleName, kind, tps, superclass, interfaces, enclosing)
	if err != nil {
		return nil, err
	}
	for _, tp := range tps {
		tp.Declaration = built
	}

	l.built[name] = built
	return built, nil
}

func mustNone() types.Type {
	n, _ := types.NoType(types.NoneKind)
	return n
}

func parseKind(s string) (types.DeclKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "class":
		return types.ClassDecl, nil
	case "interface":
		return types.InterfaceDecl, nil
	case "enum":
		return types.EnumDecl, nil
	case "annotation":
		return types.AnnotationDecl, nil
	default:
		return 0, &jtypeserr.InvalidArgument{Op: "Loader.resolve", Msg: fmt.Sprintf("unknown declaration kind %q", s)}
	}
}
