package main

import (
	"strconv"
	"strings"
)

// NodeKind represents different types of AST nodes.
type NodeKind string

const (
	NodeProgram    NodeKind = "NodeProgram"
	NodeBlock      NodeKind = "NodeBlock"
	NodeBinary     NodeKind = "NodeBinary"
	NodeAssign     NodeKind = "NodeAssign"
	NodeReturn     NodeKind = "NodeReturn"
	NodeVarDecl    NodeKind = "NodeVarDecl"
	NodeFuncDecl   NodeKind = "NodeFuncDecl"
	NodeStructDecl NodeKind = "NodeStructDecl"
	NodeCall       NodeKind = "NodeCall"
	NodeListLit    NodeKind = "NodeListLit"
	NodeIdent      NodeKind = "NodeIdent"
	NodeInteger    NodeKind = "NodeInteger"
	NodeDouble     NodeKind = "NodeDouble"
	NodeBool       NodeKind = "NodeBool"
	NodeString     NodeKind = "NodeString"
)

// ASTNode represents a node in the abstract syntax tree. The tree is built
// by the parsing stage (or deserialized by the AST codec) before analysis
// begins and is immutable during the semantic pass; the pass only reads
// nodes and registers declaration nodes into the SemanticContext.
type ASTNode struct {
	Kind NodeKind

	// NodeIdent, NodeString: identifier or literal text.
	// NodeAssign, NodeCall, NodeVarDecl, NodeFuncDecl, NodeStructDecl:
	// the identifier the node declares or refers to.
	String string
	// NodeInteger:
	Integer int64
	// NodeDouble:
	Float float64
	// NodeBool:
	Bool bool
	// NodeBinary:
	Op string

	// NodeVarDecl, NodeFuncDecl: declared base type.
	DeclType Type
	// Source spelling of DeclType when it came from the codec; used only
	// to round-trip user-defined type names through ToSExpr.
	TypeName string
	// NodeVarDecl: 1 = scalar, >1 = fixed-size list.
	Size int64
	// NodeFuncDecl: the function returns a list of DeclType.
	ListReturn bool
	// NodeFuncDecl: parameter declarations (NodeVarDecl nodes).
	// NodeStructDecl: member declarations.
	Params []*ASTNode

	// NodeProgram, NodeBlock, NodeListLit: ordered statements/elements.
	// NodeBinary: [lhs, rhs]. NodeAssign, NodeReturn: [expr] (return may
	// have none). NodeVarDecl: [initializer] when present.
	// NodeFuncDecl: [body]. NodeCall: arguments.
	Children []*ASTNode
}

// typeSpelling returns the serialized name for a declaration's base type.
func typeSpelling(node *ASTNode) string {
	if node.TypeName != "" {
		return node.TypeName
	}
	return TypeToString(node.DeclType)
}

// ToSExpr converts an AST node to its s-expression string representation,
// the inverse of DecodeProgram.
func ToSExpr(node *ASTNode) string {
	switch node.Kind {
	case NodeProgram:
		parts := []string{"program"}
		for _, child := range node.Children {
			parts = append(parts, ToSExpr(child))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeBlock:
		parts := []string{"block"}
		for _, child := range node.Children {
			parts = append(parts, ToSExpr(child))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeBinary:
		lhs := ToSExpr(node.Children[0])
		rhs := ToSExpr(node.Children[1])
		return "(binary " + strconv.Quote(node.Op) + " " + lhs + " " + rhs + ")"
	case NodeAssign:
		return "(assign " + strconv.Quote(node.String) + " " + ToSExpr(node.Children[0]) + ")"
	case NodeReturn:
		if len(node.Children) == 0 {
			return "(return)"
		}
		return "(return " + ToSExpr(node.Children[0]) + ")"
	case NodeVarDecl:
		s := "(var " + strconv.Quote(node.String) + " " + typeSpelling(node) + " " + strconv.FormatInt(node.Size, 10)
		if len(node.Children) > 0 {
			s += " " + ToSExpr(node.Children[0])
		}
		return s + ")"
	case NodeFuncDecl:
		shape := "scalar"
		if node.ListReturn {
			shape = "list"
		}
		params := []string{"params"}
		for _, p := range node.Params {
			params = append(params, "(param "+strconv.Quote(p.String)+" "+typeSpelling(p)+" "+strconv.FormatInt(p.Size, 10)+")")
		}
		return "(func " + strconv.Quote(node.String) + " " + typeSpelling(node) + " " + shape +
			" (" + strings.Join(params, " ") + ") " + ToSExpr(node.Children[0]) + ")"
	case NodeStructDecl:
		parts := []string{"struct", strconv.Quote(node.String)}
		for _, m := range node.Params {
			parts = append(parts, "(member "+strconv.Quote(m.String)+" "+typeSpelling(m)+" "+strconv.FormatInt(m.Size, 10)+")")
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeCall:
		parts := []string{"call", strconv.Quote(node.String)}
		for _, arg := range node.Children {
			parts = append(parts, ToSExpr(arg))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeListLit:
		parts := []string{"list"}
		for _, elem := range node.Children {
			parts = append(parts, ToSExpr(elem))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case NodeIdent:
		return "(ident " + strconv.Quote(node.String) + ")"
	case NodeInteger:
		return "(int " + strconv.FormatInt(node.Integer, 10) + ")"
	case NodeDouble:
		return "(double " + strconv.FormatFloat(node.Float, 'g', -1, 64) + ")"
	case NodeBool:
		if node.Bool {
			return "(bool true)"
		}
		return "(bool false)"
	case NodeString:
		return "(string " + strconv.Quote(node.String) + ")"
	default:
		return ""
	}
}
