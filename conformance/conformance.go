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

// Package conformance is a provider-agnostic test suite for the
// properties spec.md §8 requires of any decl.WellKnownProvider-backed
// type algebra. It plays the role the teacher's check.LangChecker
// interface plays for check.GenericChecker: one fixed algorithm run
// against an interchangeable, caller-supplied implementation — here a
// provider built from a textual fixture rather than a language-specific
// checker.
package conformance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jtypes/jtypes"
	"github.com/go-jtypes/jtypes/core/decl"
	"github.com/go-jtypes/jtypes/core/subst"
	"github.com/go-jtypes/jtypes/core/types"
)

// NewProvider builds a decl.WellKnownProvider from the textual
// declaration graph source. jtypesfixture.NewLoader, adapted to this
// signature, is the reference implementation.
type NewProvider func(source string) (decl.WellKnownProvider, error)

const sampleGraph = `
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
  - name: java.lang.Comparable
    kind: interface
    typeParams: [T]
  - name: java.lang.Number
    kind: class
  - name: java.lang.Integer
    kind: class
    superclass: java.lang.Number
    interfaces: ["java.lang.Comparable<java.lang.Integer>"]
`

// Run executes the property checks below (subtype reflexivity and
// transitivity, invariance, wildcard covariance, null bottom, erasure
// idempotence, substitute-identity, same-type reflexivity and
// hierarchy projection) against the provider built by newProvider.
// Capture round-trip and shortest-path determinism are not checked
// here, and the concrete end-to-end scenarios are separate tests in
// scenarios_test.go.
func Run(t *testing.T, newProvider NewProvider) {
	t.Helper()
	ctx := context.Background()

	p, err := newProvider(sampleGraph)
	require.NoError(t, err)
	e := jtypes.New(p)

	listDecl, err := p.Declare(ctx, "java.util.List")
	require.NoError(t, err)
	arrayListDecl, err := p.Declare(ctx, "java.util.ArrayList")
	require.NoError(t, err)
	integerDecl, err := p.Declare(ctx, "java.lang.Integer")
	require.NoError(t, err)
	numberDecl, err := p.Declare(ctx, "java.lang.Number")
	require.NoError(t, err)

	integerType, err := integerDecl.AsType()
	require.NoError(t, err)
	numberType, err := numberDecl.AsType()
	require.NoError(t, err)

	listOfInteger, err := types.NewDeclared(mustNone(), listDecl, integerType)
	require.NoError(t, err)
	arrayListOfInteger, err := types.NewDeclared(mustNone(), arrayListDecl, integerType)
	require.NoError(t, err)

	t.Run("ReflexivityOfSubtype", func(t *testing.T) {
		ok, err := e.IsSubtype(ctx, listOfInteger, listOfInteger)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("TransitivityThroughHierarchy", func(t *testing.T) {
		ok, err := e.IsSubtype(ctx, arrayListOfInteger, listOfInteger)
		require.NoError(t, err)
		require.True(t, ok, "ArrayList<Integer> <: List<Integer>")

		collDecl, err := p.Declare(ctx, "java.util.Collection")
		require.NoError(t, err)
		collOfInteger, err := types.NewDeclared(mustNone(), collDecl, integerType)
		require.NoError(t, err)

		ok, err = e.IsSubtype(ctx, arrayListOfInteger, collOfInteger)
		require.NoError(t, err)
		require.True(t, ok, "ArrayList<Integer> <: Collection<Integer> transitively")
	})

	t.Run("InvarianceWithoutWildcards", func(t *testing.T) {
		listOfNumber, err := types.NewDeclared(mustNone(), listDecl, numberType)
		require.NoError(t, err)
		ok, err := e.IsSubtype(ctx, listOfInteger, listOfNumber)
		require.NoError(t, err)
		require.False(t, ok, "List<Integer> is not a subtype of List<Number>")
	})

	t.Run("CovarianceWithWildcard", func(t *testing.T) {
		wc, err := types.NewWildcard(numberType, nil)
		require.NoError(t, err)
		listOfExtendsNumber, err := types.NewDeclared(mustNone(), listDecl, wc)
		require.NoError(t, err)
		ok, err := e.IsSubtype(ctx, listOfInteger, listOfExtendsNumber)
		require.NoError(t, err)
		require.True(t, ok, "List<Integer> <: List<? extends Number>")
	})

	t.Run("NullIsBottomOfEveryReferenceType", func(t *testing.T) {
		ok, err := e.IsSubtype(ctx, types.NullType(), listOfInteger)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("ErasureIsIdempotent", func(t *testing.T) {
		erased, err := e.Erasure(listOfInteger)
		require.NoError(t, err)
		erasedTwice, err := e.Erasure(erased)
		require.NoError(t, err)
		require.True(t, types.Equal(erased, erasedTwice))
	})

	t.Run("SubstituteWithEmptyMappingIsIdentity", func(t *testing.T) {
		out, err := e.Substitute(listOfInteger, subst.Mapping{})
		require.NoError(t, err)
		require.True(t, types.Equal(listOfInteger, out))
	})

	t.Run("StructuralEqualityIsReflexive", func(t *testing.T) {
		same, err := e.IsSameType(listOfInteger, listOfInteger)
		require.NoError(t, err)
		require.True(t, same)
	})

	t.Run("ResolveActualTypeArgumentsThroughHierarchy", func(t *testing.T) {
		args, ok, err := e.ResolveActualTypeArguments(ctx, listDecl, arrayListOfInteger)
		require.NoError(t, err)
		require.True(t, ok)
		require.Len(t, args, 1)
		require.True(t, types.Equal(args[0], integerType))
	})

	t.Run("NoProjectionWhenUnrelated", func(t *testing.T) {
		numberAsDeclared, err := numberDecl.AsType()
		require.NoError(t, err)
		_, ok, err := e.ResolveActualTypeArguments(ctx, listDecl, numberAsDeclared)
		require.NoError(t, err)
		require.False(t, ok)
	})
}

func mustNone() types.Type {
	n, _ := types.NoType(types.NoneKind)
	return n
}
