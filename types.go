package main

import "fmt"

// Type is the packed encoding for Marl types: the low bits identify the
// base kind (a builtin or a user-defined structure reference) and the high
// nibble marks "list of that base kind". Two types are the same iff the
// integers are equal, flag included, so a scalar and a list of the same
// base never compare equal.
type Type uint32

// listFlag marks a type value as a list of its base type.
const listFlag Type = 0xF0000000

// Builtin base type codes.
//
// TypeVoid doubles as the unknown/mismatch sentinel: an unresolved
// identifier, an unresolved callee, an empty list literal, and a
// non-homogeneous list literal all compute to TypeVoid. Callers must
// disambiguate "void" from "unknown" by context.
const (
	TypeVoid   Type = 0
	TypeInt    Type = 1
	TypeDouble Type = 2
	TypeBool   Type = 3
	TypeString Type = 4
)

// typeUserBase is the first base code available for user-defined types
// (structure references). The AST codec interns codes starting here.
const typeUserBase Type = 16

// MakeType combines a base code with the list flag.
func MakeType(base Type, isList bool) Type {
	if isList {
		return base | listFlag
	}
	return base &^ listFlag
}

// Base strips the list flag from a type value.
func (t Type) Base() Type {
	return t &^ listFlag
}

// IsList reports whether the type value is list-flagged.
func (t Type) IsList() bool {
	return t&listFlag != 0
}

// EffectiveType returns the type a declaration is checked as everywhere:
// the declared base type for a scalar (size 1), or a list of it for a
// fixed-size list declaration.
func EffectiveType(decl *ASTNode) Type {
	if decl.Size == 1 {
		return decl.DeclType
	}
	return decl.DeclType | listFlag
}

// TypeFromName maps a builtin type name to its base code.
func TypeFromName(name string) (Type, bool) {
	switch name {
	case "void":
		return TypeVoid, true
	case "int":
		return TypeInt, true
	case "double":
		return TypeDouble, true
	case "bool":
		return TypeBool, true
	case "string":
		return TypeString, true
	default:
		return TypeVoid, false
	}
}

var typeNames = map[Type]string{
	TypeVoid:   "void",
	TypeInt:    "int",
	TypeDouble: "double",
	TypeBool:   "bool",
	TypeString: "string",
}

// TypeToString renders a type value for diagnostics: "int", "int[]",
// "type(17)" for user-defined base codes.
func TypeToString(t Type) string {
	name, ok := typeNames[t.Base()]
	if !ok {
		name = fmt.Sprintf("type(%d)", uint32(t.Base()))
	}
	if t.IsList() {
		return name + "[]"
	}
	return name
}
