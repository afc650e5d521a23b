package main

import (
	"fmt"
	"strconv"

	"github.com/marl-lang/marl/sexpr"
)

// DecodeProgram deserializes the s-expression form of a Marl AST document,
// as produced by the parsing stage (and by ToSExpr). The grammar:
//
//	(program <decl>...)
//	(func "name" <type> scalar|list (params (param "x" <type> <size>)...) <block>)
//	(struct "Name" (member "x" <type> <size>)...)
//	(var "x" <type> <size> [<init>])
//	(block <stmt>...)
//	(assign "x" <expr>)
//	(return [<expr>])
//	(binary "op" <lhs> <rhs>)
//	(call "f" <arg>...)
//	(list <elem>...)
//	(ident "x") (int N) (double F) (bool true|false) (string "s")
//
// Builtin type names map to their base codes; any other type name is
// interned as a user-defined (structure reference) base code, stable within
// one document.
func DecodeProgram(input string) (*ASTNode, error) {
	root, err := sexpr.Parse(input)
	if err != nil {
		return nil, err
	}
	dec := &astDecoder{types: map[string]Type{}, nextUser: typeUserBase}
	node, err := dec.decode(root)
	if err != nil {
		return nil, err
	}
	if node.Kind != NodeProgram {
		return nil, fmt.Errorf("expected (program ...) at top level, got %s", node.Kind)
	}
	return node, nil
}

// DecodeNode deserializes a single AST node, not necessarily a program.
// Useful for building statement or expression fragments in tests.
func DecodeNode(input string) (*ASTNode, error) {
	root, err := sexpr.Parse(input)
	if err != nil {
		return nil, err
	}
	dec := &astDecoder{types: map[string]Type{}, nextUser: typeUserBase}
	return dec.decode(root)
}

type astDecoder struct {
	types    map[string]Type
	nextUser Type
}

// typeCode resolves a type name: builtins get their fixed codes, anything
// else is interned as a user-defined base code.
func (d *astDecoder) typeCode(name string) Type {
	if t, ok := TypeFromName(name); ok {
		return t
	}
	if t, ok := d.types[name]; ok {
		return t
	}
	t := d.nextUser
	d.nextUser++
	d.types[name] = t
	return t
}

func (d *astDecoder) decode(s *sexpr.Node) (*ASTNode, error) {
	if s.Type != sexpr.NodeList || len(s.Items) == 0 || s.Items[0].Type != sexpr.NodeSymbol {
		return nil, fmt.Errorf("expected a (head ...) form, got %s", s.String())
	}
	head := s.Items[0].Text
	args := s.Items[1:]

	switch head {
	case "program":
		node := &ASTNode{Kind: NodeProgram}
		for _, item := range args {
			child, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil

	case "block":
		node := &ASTNode{Kind: NodeBlock}
		for _, item := range args {
			child, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil

	case "func":
		if len(args) != 5 {
			return nil, fmt.Errorf("func: expected name, type, scalar|list, params, body")
		}
		name, err := atomString(args[0], "func name")
		if err != nil {
			return nil, err
		}
		typeName, err := atomSymbol(args[1], "func return type")
		if err != nil {
			return nil, err
		}
		shape, err := atomSymbol(args[2], "func return shape")
		if err != nil {
			return nil, err
		}
		if shape != "scalar" && shape != "list" {
			return nil, fmt.Errorf("func '%s': return shape must be scalar or list, got %s", name, shape)
		}
		params, err := d.decodeParams(args[3], name)
		if err != nil {
			return nil, err
		}
		body, err := d.decode(args[4])
		if err != nil {
			return nil, err
		}
		if body.Kind != NodeBlock {
			return nil, fmt.Errorf("func '%s': body must be a block", name)
		}
		return &ASTNode{
			Kind:       NodeFuncDecl,
			String:     name,
			DeclType:   d.typeCode(typeName),
			TypeName:   typeName,
			ListReturn: shape == "list",
			Params:     params,
			Children:   []*ASTNode{body},
		}, nil

	case "struct":
		if len(args) < 1 {
			return nil, fmt.Errorf("struct: expected a name")
		}
		name, err := atomString(args[0], "struct name")
		if err != nil {
			return nil, err
		}
		node := &ASTNode{Kind: NodeStructDecl, String: name}
		for _, item := range args[1:] {
			member, err := d.decodeDecl(item, "member")
			if err != nil {
				return nil, err
			}
			node.Params = append(node.Params, member)
		}
		return node, nil

	case "var":
		decl, err := d.decodeDecl(s, "var")
		if err != nil {
			return nil, err
		}
		return decl, nil

	case "assign":
		if len(args) != 2 {
			return nil, fmt.Errorf("assign: expected target and value")
		}
		target, err := atomString(args[0], "assign target")
		if err != nil {
			return nil, err
		}
		value, err := d.decode(args[1])
		if err != nil {
			return nil, err
		}
		return &ASTNode{Kind: NodeAssign, String: target, Children: []*ASTNode{value}}, nil

	case "return":
		node := &ASTNode{Kind: NodeReturn}
		if len(args) > 1 {
			return nil, fmt.Errorf("return: expected at most one expression")
		}
		if len(args) == 1 {
			expr, err := d.decode(args[0])
			if err != nil {
				return nil, err
			}
			node.Children = []*ASTNode{expr}
		}
		return node, nil

	case "binary":
		if len(args) != 3 {
			return nil, fmt.Errorf("binary: expected operator, lhs, rhs")
		}
		op, err := atomString(args[0], "binary operator")
		if err != nil {
			return nil, err
		}
		lhs, err := d.decode(args[1])
		if err != nil {
			return nil, err
		}
		rhs, err := d.decode(args[2])
		if err != nil {
			return nil, err
		}
		return &ASTNode{Kind: NodeBinary, Op: op, Children: []*ASTNode{lhs, rhs}}, nil

	case "call":
		if len(args) < 1 {
			return nil, fmt.Errorf("call: expected a callee name")
		}
		name, err := atomString(args[0], "call callee")
		if err != nil {
			return nil, err
		}
		node := &ASTNode{Kind: NodeCall, String: name}
		for _, item := range args[1:] {
			arg, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, arg)
		}
		return node, nil

	case "list":
		node := &ASTNode{Kind: NodeListLit}
		for _, item := range args {
			elem, err := d.decode(item)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, elem)
		}
		return node, nil

	case "ident":
		name, err := exactlyOneString(args, "ident")
		if err != nil {
			return nil, err
		}
		return &ASTNode{Kind: NodeIdent, String: name}, nil

	case "int":
		if len(args) != 1 || args[0].Type != sexpr.NodeInteger {
			return nil, fmt.Errorf("int: expected one integer literal")
		}
		value, err := strconv.ParseInt(args[0].Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("int: %w", err)
		}
		return &ASTNode{Kind: NodeInteger, Integer: value}, nil

	case "double":
		if len(args) != 1 || (args[0].Type != sexpr.NodeFloat && args[0].Type != sexpr.NodeInteger) {
			return nil, fmt.Errorf("double: expected one numeric literal")
		}
		value, err := strconv.ParseFloat(args[0].Text, 64)
		if err != nil {
			return nil, fmt.Errorf("double: %w", err)
		}
		return &ASTNode{Kind: NodeDouble, Float: value}, nil

	case "bool":
		if len(args) != 1 {
			return nil, fmt.Errorf("bool: expected true or false")
		}
		flag, err := atomSymbol(args[0], "bool literal")
		if err != nil || (flag != "true" && flag != "false") {
			return nil, fmt.Errorf("bool: expected true or false")
		}
		return &ASTNode{Kind: NodeBool, Bool: flag == "true"}, nil

	case "string":
		value, err := exactlyOneString(args, "string")
		if err != nil {
			return nil, err
		}
		return &ASTNode{Kind: NodeString, String: value}, nil

	default:
		return nil, fmt.Errorf("unknown form '%s'", head)
	}
}

// decodeParams decodes a (params (param "x" <type> <size>)...) list.
func (d *astDecoder) decodeParams(s *sexpr.Node, funcName string) ([]*ASTNode, error) {
	if s.Type != sexpr.NodeList || len(s.Items) == 0 ||
		s.Items[0].Type != sexpr.NodeSymbol || s.Items[0].Text != "params" {
		return nil, fmt.Errorf("func '%s': expected a (params ...) list", funcName)
	}
	var params []*ASTNode
	for _, item := range s.Items[1:] {
		param, err := d.decodeDecl(item, "param")
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	return params, nil
}

// decodeDecl decodes a (var|param|member "x" <type> <size> [<init>]) form
// into a NodeVarDecl. Only var forms may carry an initializer.
func (d *astDecoder) decodeDecl(s *sexpr.Node, want string) (*ASTNode, error) {
	if s.Type != sexpr.NodeList || len(s.Items) == 0 ||
		s.Items[0].Type != sexpr.NodeSymbol || s.Items[0].Text != want {
		return nil, fmt.Errorf("expected a (%s ...) form, got %s", want, s.String())
	}
	args := s.Items[1:]
	maxArgs := 3
	if want == "var" {
		maxArgs = 4
	}
	if len(args) < 3 || len(args) > maxArgs {
		return nil, fmt.Errorf("%s: expected name, type, size", want)
	}
	name, err := atomString(args[0], want+" name")
	if err != nil {
		return nil, err
	}
	typeName, err := atomSymbol(args[1], want+" type")
	if err != nil {
		return nil, err
	}
	if args[2].Type != sexpr.NodeInteger {
		return nil, fmt.Errorf("%s '%s': size must be an integer", want, name)
	}
	size, err := strconv.ParseInt(args[2].Text, 10, 64)
	if err != nil || size < 1 {
		return nil, fmt.Errorf("%s '%s': invalid size %s", want, name, args[2].Text)
	}
	decl := &ASTNode{
		Kind:     NodeVarDecl,
		String:   name,
		DeclType: d.typeCode(typeName),
		TypeName: typeName,
		Size:     size,
	}
	if len(args) == 4 {
		init, err := d.decode(args[3])
		if err != nil {
			return nil, err
		}
		decl.Children = []*ASTNode{init}
	}
	return decl, nil
}

func atomString(s *sexpr.Node, what string) (string, error) {
	if s.Type != sexpr.NodeString {
		return "", fmt.Errorf("%s: expected a string, got %s", what, s.String())
	}
	return s.Text, nil
}

func atomSymbol(s *sexpr.Node, what string) (string, error) {
	if s == nil || s.Type != sexpr.NodeSymbol {
		return "", fmt.Errorf("%s: expected a symbol", what)
	}
	return s.Text, nil
}

func exactlyOneString(args []*sexpr.Node, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%s: expected one string argument", what)
	}
	return atomString(args[0], what)
}
