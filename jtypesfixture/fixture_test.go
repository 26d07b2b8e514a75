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

package jtypesfixture_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/jtypesfixture"
)

func TestLoaderResolvesBuiltins(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`declarations: []`))
	require.NoError(t, err)
	ctx := context.Background()

	d, err := l.WellKnown(ctx, "java.lang.Object")
	require.NoError(t, err)
	require.Equal(t, "java.lang.Object", d.QualifiedName)

	d, err = l.Declare(ctx, "java.lang.Integer")
	require.NoError(t, err)
	require.Equal(t, "java.lang.Integer", d.QualifiedName)
}

func TestLoaderForwardReference(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.List
    kind: interface
    typeParams: [E]
    interfaces: ["com.example.Collection<E>"]
  - name: com.example.Collection
    kind: interface
    typeParams: [E]
`))
	require.NoError(t, err)
	ctx := context.Background()

	listDecl, err := l.Declare(ctx, "com.example.List")
	require.NoError(t, err)
	require.Len(t, listDecl.Interfaces, 1)

	iface, ok := listDecl.Interfaces[0].(*types.Declared)
	require.True(t, ok)
	require.Equal(t, "com.example.Collection", iface.Decl.QualifiedName)
}

func TestLoaderSelfReferentialBound(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.Enum
    kind: class
    typeParams:
      - name: E
        bounds: ["com.example.Enum<E>"]
`))
	require.NoError(t, err)
	ctx := context.Background()

	enumDecl, err := l.Declare(ctx, "com.example.Enum")
	require.NoError(t, err)
	require.Len(t, enumDecl.TypeParams, 1)

	tp := enumDecl.TypeParams[0]
	require.Len(t, tp.Bounds, 1)
	bound, ok := tp.Bounds[0].(*types.Declared)
	require.True(t, ok)
	require.Equal(t, "com.example.Enum", bound.Decl.QualifiedName)

	tv, err := tp.Prototype()
	require.NoError(t, err)
	require.Same(t, tv, bound.Args[0], "the self-referential bound must reference the parameter's own prototype")
}

func TestLoaderCyclicDeclarationReferenceIsError(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.A
    kind: class
    superclass: com.example.B
  - name: com.example.B
    kind: class
    superclass: com.example.A
`))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.Declare(ctx, "com.example.A")
	require.Error(t, err)
}

func TestLoaderDuplicateDeclarationIsError(t *testing.T) {
	_, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.Foo
    kind: class
  - name: com.example.Foo
    kind: class
`))
	require.Error(t, err)
}

func TestLoaderEmptyNameIsError(t *testing.T) {
	_, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: ""
    kind: class
`))
	require.Error(t, err)
}

func TestLoaderUnknownDeclarationIsError(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`declarations: []`))
	require.NoError(t, err)
	_, err = l.Declare(context.Background(), "com.example.DoesNotExist")
	require.Error(t, err)
}

func TestLoaderDeclareRejectsNonStringKey(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`declarations: []`))
	require.NoError(t, err)
	_, err = l.Declare(context.Background(), 42)
	require.Error(t, err)
}

func TestParseTypeArrayWildcardAndRaw(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.List
    kind: interface
    typeParams: [E]
`))
	require.NoError(t, err)
	ctx := context.Background()

	arr, err := l.ParseType(ctx, "java.lang.Integer[][]")
	require.NoError(t, err)
	outer, ok := arr.(*types.Array)
	require.True(t, ok)
	inner, ok := outer.Component.(*types.Array)
	require.True(t, ok)
	comp, ok := inner.Component.(*types.Declared)
	require.True(t, ok)
	require.Equal(t, "java.lang.Integer", comp.Decl.QualifiedName)

	extends, err := l.ParseType(ctx, "com.example.List<? extends java.lang.Integer>")
	require.NoError(t, err)
	listExtends, ok := extends.(*types.Declared)
	require.True(t, ok)
	w, ok := listExtends.Args[0].(*types.Wildcard)
	require.True(t, ok)
	require.NotNil(t, w.ExtendsBound)

	super, err := l.ParseType(ctx, "com.example.List<? super java.lang.Integer>")
	require.NoError(t, err)
	listSuper, ok := super.(*types.Declared)
	require.True(t, ok)
	w, ok = listSuper.Args[0].(*types.Wildcard)
	require.True(t, ok)
	require.NotNil(t, w.SuperBound)

	unbounded, err := l.ParseType(ctx, "com.example.List<?>")
	require.NoError(t, err)
	listUnbounded, ok := unbounded.(*types.Declared)
	require.True(t, ok)
	w, ok = listUnbounded.Args[0].(*types.Wildcard)
	require.True(t, ok)
	require.True(t, w.IsUnbounded())

	raw, err := l.ParseType(ctx, "com.example.List")
	require.NoError(t, err)
	rawDecl, ok := raw.(*types.Declared)
	require.True(t, ok)
	require.True(t, rawDecl.IsRaw())
}

func TestParseTypeRejectsTrailingInput(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`declarations: []`))
	require.NoError(t, err)
	_, err = l.ParseType(context.Background(), "java.lang.Object garbage")
	require.Error(t, err)
}

func TestParseTypeRejectsUnknownIdentifier(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`declarations: []`))
	require.NoError(t, err)
	_, err = l.ParseType(context.Background(), "com.example.DoesNotExist")
	require.Error(t, err)
}
