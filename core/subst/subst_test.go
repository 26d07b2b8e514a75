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

package subst_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-jtypes/jtypes/core/subst"
	"github.com/go-jtypes/jtypes/core/types"
)

func mustNone(t *testing.T) types.Type {
	t.Helper()
	n, err := types.NoType(types.NoneKind)
	require.NoError(t, err)
	return n
}

func TestSubstituteWithEmptyMappingIsIdentity(t *testing.T) {
	listDecl, err := types.NewTypeDeclaration("List", "List", "List", types.InterfaceDecl, nil, mustNone(t), nil, nil)
	require.NoError(t, err)
	tp, err := types.NewTypeParameter(listDecl, "E", []types.Type{mustNone(t)})
	require.NoError(t, err)
	listDecl.TypeParams = []*types.TypeParameter{tp}

	stringDecl, err := types.NewTypeDeclaration("String", "String", "String", types.ClassDecl, nil, mustNone(t), nil, nil)
	require.NoError(t, err)
	stringType, err := stringDecl.AsType()
	require.NoError(t, err)

	listOfString, err := types.NewDeclared(mustNone(t), listDecl, stringType)
	require.NoError(t, err)

	out, err := subst.Substitute(listOfString, subst.Mapping{})
	require.NoError(t, err)
	require.True(t, types.Equal(listOfString, out))
}

func TestSubstituteReplacesTypeVariable(t *testing.T) {
	objDecl, err := types.NewTypeDeclaration("Object", "Object", "Object", types.ClassDecl, nil, mustNone(t), nil, nil)
	require.NoError(t, err)
	objType, err := objDecl.AsType()
	require.NoError(t, err)

	listDecl, err := types.NewTypeDeclaration("List", "List", "List", types.InterfaceDecl, nil, mustNone(t), nil, nil)
	require.NoError(t, err)
	tp, err := types.NewTypeParameter(listDecl, "E", []types.Type{objType})
	require.NoError(t, err)
	listDecl.TypeParams = []*types.TypeParameter{tp}

	eVar, err := tp.Prototype()
	require.NoError(t, err)
	listOfE, err := types.NewDeclared(mustNone(t), listDecl, eVar)
	require.NoError(t, err)

	stringDecl, err := types.NewTypeDeclaration("String", "String", "String", types.ClassDecl, nil, mustNone(t), nil, nil)
	require.NoError(t, err)
	stringType, err := stringDecl.AsType()
	require.NoError(t, err)

	out, err := subst.Substitute(listOfE, subst.Mapping{tp: stringType})
	require.NoError(t, err)

	listOfString, err := types.NewDeclared(mustNone(t), listDecl, stringType)
	require.NoError(t, err)
	require.True(t, types.Equal(out, listOfString))
}

func TestSubstituteBreaksSelfReferentialCycle(t *testing.T) {
	enumDecl, err := types.NewTypeDeclaration("Enum", "Enum", "Enum", types.ClassDecl, nil, mustNone(t), nil, nil)
	require.NoError(t, err)
	tp := &types.TypeParameter{Name: "E"}
	enumDecl.TypeParams = []*types.TypeParameter{tp}
	placeholder, err := tp.PendingPrototype()
	require.NoError(t, err)
	selfBound, err := types.NewDeclared(mustNone(t), enumDecl, placeholder)
	require.NoError(t, err)
	tp.Bounds = []types.Type{selfBound}

	original, err := tp.Prototype()
	require.NoError(t, err)

	// Substituting a recursive variable for itself must produce a
	// *new* variable whose bound refers to the new variable, not the
	// original, so the two remain distinct objects with equal shape.
	out, err := subst.Substitute(original, subst.Mapping{tp: original})
	require.NoError(t, err)

	outVar, ok := out.(*types.TypeVariable)
	require.True(t, ok)
	require.NotSame(t, original, outVar)
	require.True(t, types.Equal(original, outVar), "structurally the two self-referential variables are equal")
}

func TestSubstituteRejectsForeignType(t *testing.T) {
	_, err := subst.Substitute(nil, subst.Mapping{})
	require.Error(t, err)
}
