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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jtypes/jtypes/core/types"
)

func mustNone(t *testing.T) types.Type {
	t.Helper()
	n, err := types.NoType(types.NoneKind)
	require.NoError(t, err)
	return n
}

func declareClass(t *testing.T, name string, typeParams []*types.TypeParameter) *types.TypeDeclaration {
	t.Helper()
	d, err := types.NewTypeDeclaration(name, name, name, types.ClassDecl, typeParams, mustNone(t), nil, nil)
	require.NoError(t, err)
	return d
}

func TestStructuralEquality(t *testing.T) {
	listDecl := declareClass(t, "List", []*types.TypeParameter{})
	tp, err := types.NewTypeParameter(listDecl, "E", []types.Type{mustNone(t)})
	require.NoError(t, err)
	listDecl.TypeParams = []*types.TypeParameter{tp}

	stringDecl := declareClass(t, "String", nil)
	stringType, err := stringDecl.AsType()
	require.NoError(t, err)

	a, err := types.NewDeclared(mustNone(t), listDecl, stringType)
	require.NoError(t, err)
	b, err := types.NewDeclared(mustNone(t), listDecl, stringType)
	require.NoError(t, err)

	require.True(t, types.Equal(a, b), "two Declared built from equal arguments must compare equal")
	require.Equal(t, types.Hash(a), types.Hash(b), "equal types must hash equal")

	intDecl := declareClass(t, "Integer", nil)
	intType, err := intDecl.AsType()
	require.NoError(t, err)
	c, err := types.NewDeclared(mustNone(t), listDecl, intType)
	require.NoError(t, err)
	require.False(t, types.Equal(a, c))
}

func TestArrayEquality(t *testing.T) {
	intDecl := declareClass(t, "Integer", nil)
	intType, err := intDecl.AsType()
	require.NoError(t, err)

	a1, err := types.NewArray(intType)
	require.NoError(t, err)
	a2, err := types.NewArray(intType)
	require.NoError(t, err)
	require.True(t, types.Equal(a1, a2))
	require.Equal(t, types.Hash(a1), types.Hash(a2))

	nested, err := types.NewArray(a1)
	require.NoError(t, err)
	require.False(t, types.Equal(a1, nested))
}

func TestWildcardEqualIsStructural(t *testing.T) {
	objDecl := declareClass(t, "Object", nil)
	objType, err := objDecl.AsType()
	require.NoError(t, err)

	w1, err := types.NewWildcard(objType, nil)
	require.NoError(t, err)
	w2, err := types.NewWildcard(objType, nil)
	require.NoError(t, err)

	require.True(t, types.Equal(w1, w2), "Equal is the lower-level structural check and does compare wildcards")
	require.True(t, w1.IsUnbounded() == false)

	unbounded, err := types.NewWildcard(nil, nil)
	require.NoError(t, err)
	require.True(t, unbounded.IsUnbounded())
}

func TestNewWildcardRejectsBothBounds(t *testing.T) {
	objDecl := declareClass(t, "Object", nil)
	objType, err := objDecl.AsType()
	require.NoError(t, err)

	_, err = types.NewWildcard(objType, objType)
	require.Error(t, err)
}

func TestTypeParameterPrototypeFreezesOnce(t *testing.T) {
	objDecl := declareClass(t, "Object", nil)
	objType, err := objDecl.AsType()
	require.NoError(t, err)

	tp, err := types.NewTypeParameter(nil, "T", []types.Type{objType})
	require.NoError(t, err)

	tv1, err := tp.Prototype()
	require.NoError(t, err)
	tv2, err := tp.Prototype()
	require.NoError(t, err)
	require.Same(t, tv1, tv2, "Prototype must return the same TypeVariable on every call")

	upper, err := tv1.UpperBound()
	require.NoError(t, err)
	require.True(t, types.Equal(upper, objType))

	lower, err := tv1.LowerBound()
	require.NoError(t, err)
	require.True(t, types.IsNull(lower))
}

func TestTypeParameterSelfReferentialBound(t *testing.T) {
	tp := &types.TypeParameter{Name: "E"}
	enumDecl := declareClass(t, "Enum", []*types.TypeParameter{tp})
	placeholder, err := tp.PendingPrototype()
	require.NoError(t, err)

	selfBound, err := types.NewDeclared(mustNone(t), enumDecl, placeholder)
	require.NoError(t, err)
	tp.Bounds = []types.Type{selfBound}

	tv, err := tp.Prototype()
	require.NoError(t, err)
	require.Same(t, placeholder, tv)

	upper, err := tv.UpperBound()
	require.NoError(t, err)
	upperDeclared, ok := upper.(*types.Declared)
	require.True(t, ok)
	require.Len(t, upperDeclared.Args, 1)
	require.Same(t, tv, upperDeclared.Args[0], "the bound must reference the very variable it belongs to")
}

func TestTypeVariableFreezeIsOneShot(t *testing.T) {
	tp, err := types.NewTypeParameter(nil, "T", []types.Type{mustNone(t)})
	require.NoError(t, err)
	tv, err := types.NewTypeVariable(tp, nil)
	require.NoError(t, err)

	require.False(t, tv.IsFrozen())
	require.NoError(t, tv.Freeze(types.NullType(), types.NullType()))
	require.True(t, tv.IsFrozen())
	require.Error(t, tv.Freeze(types.NullType(), types.NullType()))
}

func TestTypeVariableUnfrozenReadIsError(t *testing.T) {
	tp, err := types.NewTypeParameter(nil, "T", []types.Type{mustNone(t)})
	require.NoError(t, err)
	tv, err := types.NewTypeVariable(tp, nil)
	require.NoError(t, err)

	_, err = tv.UpperBound()
	require.Error(t, err)
	_, err = tv.LowerBound()
	require.Error(t, err)
}

func TestDeclaredRawness(t *testing.T) {
	listDecl := declareClass(t, "List", nil)
	tp, err := types.NewTypeParameter(listDecl, "E", []types.Type{mustNone(t)})
	require.NoError(t, err)
	listDecl.TypeParams = []*types.TypeParameter{tp}

	raw, err := types.NewDeclared(mustNone(t), listDecl)
	require.NoError(t, err)
	require.True(t, raw.IsRaw())

	objDecl := declareClass(t, "Object", nil)
	objType, err := objDecl.AsType()
	require.NoError(t, err)
	parameterized, err := types.NewDeclared(mustNone(t), listDecl, objType)
	require.NoError(t, err)
	require.False(t, parameterized.IsRaw())

	_, err = types.NewDeclared(mustNone(t), listDecl, objType, objType)
	require.Error(t, err, "wrong argument count must be rejected")
}

func TestNewIntersectionRequiresBounds(t *testing.T) {
	_, err := types.NewIntersection()
	require.Error(t, err)

	objDecl := declareClass(t, "Object", nil)
	objType, err := objDecl.AsType()
	require.NoError(t, err)
	serDecl := declareClass(t, "Serializable", nil)
	serType, err := serDecl.AsType()
	require.NoError(t, err)

	inter, err := types.NewIntersection(objType, serType)
	require.NoError(t, err)
	require.Len(t, inter.Bounds, 2)
}

func TestDeclEqualByKey(t *testing.T) {
	a := declareClass(t, "com.example.Foo", nil)
	b := declareClass(t, "com.example.Foo", nil)
	require.True(t, types.DeclEqual(a, b), "same key must compare equal even across distinct TypeDeclaration values")

	c := declareClass(t, "com.example.Bar", nil)
	require.False(t, types.DeclEqual(a, c))
}
