package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestMakeType(t *testing.T) {
	be.Equal(t, TypeInt, MakeType(TypeInt, false))
	be.Equal(t, TypeInt|listFlag, MakeType(TypeInt, true))
	// Clearing the flag from an already-flagged base.
	be.Equal(t, TypeInt, MakeType(TypeInt|listFlag, false))
}

func TestTypeBaseAndIsList(t *testing.T) {
	scalar := TypeDouble
	list := MakeType(TypeDouble, true)

	be.Equal(t, false, scalar.IsList())
	be.True(t, list.IsList())
	be.Equal(t, TypeDouble, scalar.Base())
	be.Equal(t, TypeDouble, list.Base())
}

func TestListAndScalarAreNeverEqual(t *testing.T) {
	for _, base := range []Type{TypeInt, TypeDouble, TypeBool, TypeString} {
		if MakeType(base, true) == MakeType(base, false) {
			t.Errorf("list and scalar %s compare equal", TypeToString(base))
		}
	}
}

func TestEffectiveType(t *testing.T) {
	tests := []struct {
		name     string
		decl     *ASTNode
		expected Type
	}{
		{
			name:     "scalar int",
			decl:     &ASTNode{Kind: NodeVarDecl, String: "x", DeclType: TypeInt, Size: 1},
			expected: TypeInt,
		},
		{
			name:     "fixed-size list of int",
			decl:     &ASTNode{Kind: NodeVarDecl, String: "xs", DeclType: TypeInt, Size: 3},
			expected: TypeInt | listFlag,
		},
		{
			name:     "scalar bool",
			decl:     &ASTNode{Kind: NodeVarDecl, String: "b", DeclType: TypeBool, Size: 1},
			expected: TypeBool,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			be.Equal(t, test.expected, EffectiveType(test.decl))
		})
	}
}

func TestTypeFromName(t *testing.T) {
	for name, expected := range map[string]Type{
		"void":   TypeVoid,
		"int":    TypeInt,
		"double": TypeDouble,
		"bool":   TypeBool,
		"string": TypeString,
	} {
		got, ok := TypeFromName(name)
		be.True(t, ok)
		be.Equal(t, expected, got)
	}

	_, ok := TypeFromName("Point")
	be.Equal(t, false, ok)
}

func TestTypeToString(t *testing.T) {
	tests := []struct {
		t        Type
		expected string
	}{
		{TypeInt, "int"},
		{TypeVoid, "void"},
		{MakeType(TypeInt, true), "int[]"},
		{MakeType(TypeString, true), "string[]"},
		{typeUserBase, "type(16)"},
		{MakeType(typeUserBase+1, true), "type(17)[]"},
	}

	for _, test := range tests {
		be.Equal(t, test.expected, TypeToString(test.t))
	}
}
