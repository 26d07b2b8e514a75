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

package hierarchy_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/go-jtypes/jtypes/core/hierarchy"
	"github.com/go-jtypes/jtypes/core/printer"
	"github.com/go-jtypes/jtypes/core/types"
	"github.com/go-jtypes/jtypes/jtypesfixture"
)

const graph = `
declarations:
  - name: java.util.Collection
    kind: interface
    typeParams: [E]
  - name: java.util.List
    kind: interface
    typeParams: [E]
    interfaces: ["java.util.Collection<E>"]
  - name: java.util.ArrayList
    kind: class
    typeParams: [E]
    interfaces: ["java.util.List<E>"]
`

func mustNone(t *testing.T) types.Type {
	t.Helper()
	n, err := types.NoType(types.NoneKind)
	require.NoError(t, err)
	return n
}

func TestDirectSupertypesOrdersSuperclassBeforeInterfaces(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.Base
    kind: class
  - name: com.example.IfaceA
    kind: interface
  - name: com.example.IfaceB
    kind: interface
  - name: com.example.Sub
    kind: class
    superclass: com.example.Base
    interfaces: ["com.example.IfaceA", "com.example.IfaceB"]
`))
	require.NoError(t, err)
	ctx := context.Background()
	sub, err := l.Declare(ctx, "com.example.Sub")
	require.NoError(t, err)

	supers, err := hierarchy.DirectSupertypes(ctx, l, sub)
	require.NoError(t, err)
	require.Len(t, supers, 3)
	require.Equal(t, "com.example.Base", supers[0].Decl.QualifiedName)
	require.Equal(t, "com.example.IfaceA", supers[1].Decl.QualifiedName)
	require.Equal(t, "com.example.IfaceB", supers[2].Decl.QualifiedName)
}

func TestDirectSupertypesDefaultsInterfaceToObject(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.Marker
    kind: interface
`))
	require.NoError(t, err)
	ctx := context.Background()
	d, err := l.Declare(ctx, "com.example.Marker")
	require.NoError(t, err)

	supers, err := hierarchy.DirectSupertypes(ctx, l, d)
	require.NoError(t, err)
	require.Len(t, supers, 1)
	require.Equal(t, "java.lang.Object", supers[0].Decl.QualifiedName)
}

func TestResolveActualTypeArgumentsThroughHierarchy(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(graph))
	require.NoError(t, err)
	ctx := context.Background()

	listDecl, err := l.Declare(ctx, "java.util.List")
	require.NoError(t, err)
	arrayListDecl, err := l.Declare(ctx, "java.util.ArrayList")
	require.NoError(t, err)
	integerDecl, err := l.Declare(ctx, "java.lang.Integer")
	require.NoError(t, err)
	integerType, err := integerDecl.AsType()
	require.NoError(t, err)

	arrayListOfInteger, err := types.NewDeclared(mustNone(t), arrayListDecl, integerType)
	require.NoError(t, err)

	args, ok, err := hierarchy.ResolveActualTypeArguments(ctx, l, listDecl, arrayListOfInteger)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, args, 1)
	require.True(t, types.Equal(args[0], integerType))
}

func TestResolveActualTypeArgumentsNoProjectionWhenUnreachable(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(graph))
	require.NoError(t, err)
	ctx := context.Background()

	listDecl, err := l.Declare(ctx, "java.util.List")
	require.NoError(t, err)
	numberDecl, err := l.Declare(ctx, "java.lang.Number")
	require.NoError(t, err)
	numberType, err := numberDecl.AsType()
	require.NoError(t, err)

	_, ok, err := hierarchy.ResolveActualTypeArguments(ctx, l, listDecl, numberType)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveActualTypeArgumentsShortCircuitsOnNoFormalParams(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: com.example.Base
    kind: class
  - name: com.example.Sub
    kind: class
    superclass: com.example.Base
`))
	require.NoError(t, err)
	ctx := context.Background()

	baseDecl, err := l.Declare(ctx, "com.example.Base")
	require.NoError(t, err)
	subDecl, err := l.Declare(ctx, "com.example.Sub")
	require.NoError(t, err)
	subType, err := subDecl.AsType()
	require.NoError(t, err)

	args, ok, err := hierarchy.ResolveActualTypeArguments(ctx, l, baseDecl, subType)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, args)
}

func TestResolveActualTypeArgumentsRendersProjectedArgumentSlice(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(`
declarations:
  - name: java.util.Map
    kind: interface
    typeParams: [K, V]
  - name: java.util.HashMap
    kind: class
    typeParams: [K, V]
    interfaces: ["java.util.Map<K, V>"]
  - name: java.util.List
    kind: interface
    typeParams: [E]
`))
	require.NoError(t, err)
	ctx := context.Background()

	mapDecl, err := l.Declare(ctx, "java.util.Map")
	require.NoError(t, err)
	hashMapDecl, err := l.Declare(ctx, "java.util.HashMap")
	require.NoError(t, err)
	listDecl, err := l.Declare(ctx, "java.util.List")
	require.NoError(t, err)
	stringDecl, err := l.Declare(ctx, "java.lang.String")
	require.NoError(t, err)
	integerDecl, err := l.Declare(ctx, "java.lang.Integer")
	require.NoError(t, err)
	stringType, err := stringDecl.AsType()
	require.NoError(t, err)
	integerType, err := integerDecl.AsType()
	require.NoError(t, err)

	listOfInteger, err := types.NewDeclared(mustNone(t), listDecl, integerType)
	require.NoError(t, err)

	hashMapOfStringListOfInteger, err := types.NewDeclared(mustNone(t), hashMapDecl, stringType, listOfInteger)
	require.NoError(t, err)

	args, ok, err := hierarchy.ResolveActualTypeArguments(ctx, l, mapDecl, hashMapOfStringListOfInteger)
	require.NoError(t, err)
	require.True(t, ok)

	rendered := make([]string, len(args))
	for i, a := range args {
		s, err := printer.String(a)
		require.NoError(t, err)
		rendered[i] = s
	}

	want := []string{"java.lang.String", "java.util.List<java.lang.Integer>"}
	if diff := cmp.Diff(want, rendered); diff != "" {
		t.Fatalf("projected type-argument slice mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveActualTypeArgumentsNotDeclaredIsNoProjection(t *testing.T) {
	l, err := jtypesfixture.NewLoader([]byte(graph))
	require.NoError(t, err)
	ctx := context.Background()

	listDecl, err := l.Declare(ctx, "java.util.List")
	require.NoError(t, err)

	intType, err := types.NewPrimitive(types.Int)
	require.NoError(t, err)

	_, ok, err := hierarchy.ResolveActualTypeArguments(ctx, l, listDecl, intType)
	require.NoError(t, err)
	require.False(t, ok)
}
