package main

import "fmt"

// Analyze performs semantic analysis on one statement or declaration node.
// A nil error means the node passed. Analysis is fail-fast: the first error
// aborts the enclosing construct and nothing after it is inspected.
func Analyze(node *ASTNode, ctx *SemanticContext) error {
	switch node.Kind {
	case NodeProgram:
		return AnalyzeProgram(node, ctx)
	case NodeBlock:
		return analyzeBlock(node, ctx)
	case NodeBinary:
		return analyzeBinary(node, ctx)
	case NodeAssign:
		return analyzeAssign(node, ctx)
	case NodeReturn:
		return analyzeReturn(node, ctx)
	case NodeVarDecl:
		return analyzeVarDecl(node, ctx)
	case NodeFuncDecl:
		return analyzeFuncDecl(node, ctx)
	case NodeCall:
		return analyzeCall(node, ctx)
	default:
		// Literals, identifiers, and list literals carry no checks of
		// their own; they are judged by the types they compute.
		return nil
	}
}

// AnalyzeProgram registers every top-level function and structure first,
// so calls may refer to declarations appearing later in the unit, then
// analyzes each declaration in order. Registration is independent of the
// analysis verdict: a function stays resolvable (by calls and by the
// recursion check) even when its own body fails.
func AnalyzeProgram(program *ASTNode, ctx *SemanticContext) error {
	for _, decl := range program.Children {
		switch decl.Kind {
		case NodeFuncDecl:
			if !ctx.DeclareFunction(decl) {
				return fmt.Errorf("error: duplicate declaration of function '%s'", decl.String)
			}
		case NodeStructDecl:
			if !ctx.DeclareStruct(decl) {
				return fmt.Errorf("error: duplicate declaration of struct '%s'", decl.String)
			}
		}
	}
	for _, decl := range program.Children {
		if decl.Kind == NodeStructDecl {
			// Name uniqueness is the only structure check at this
			// layer; member types belong to a later pass.
			continue
		}
		if err := Analyze(decl, ctx); err != nil {
			return err
		}
	}
	return nil
}

// analyzeBlock pushes a scope inheriting the current expected return type,
// analyzes each statement in order, and pops the scope. The pop is deferred
// so an early failure cannot unbalance the scope stack.
func analyzeBlock(block *ASTNode, ctx *SemanticContext) error {
	ctx.PushScope(ctx.CurrentReturnType())
	defer ctx.PopScope()
	for _, stmt := range block.Children {
		if err := Analyze(stmt, ctx); err != nil {
			return err
		}
	}
	return nil
}

func analyzeBinary(node *ASTNode, ctx *SemanticContext) error {
	lhs := ExprType(node.Children[0], ctx)
	rhs := ExprType(node.Children[1], ctx)
	if lhs != rhs {
		return fmt.Errorf("error: binary operator type mismatch for op %s: %s vs %s",
			node.Op, TypeToString(lhs), TypeToString(rhs))
	}
	return nil
}

func analyzeAssign(node *ASTNode, ctx *SemanticContext) error {
	target := ctx.LookupVariable(node.String)
	if target == nil {
		return fmt.Errorf("error: assignment to undefined variable '%s'", node.String)
	}
	want := EffectiveType(target)
	got := ExprType(node.Children[0], ctx)
	if got != want {
		return fmt.Errorf("error: type mismatch for assignment to '%s': expected %s, got %s",
			node.String, TypeToString(want), TypeToString(got))
	}
	return nil
}

func analyzeReturn(node *ASTNode, ctx *SemanticContext) error {
	got := TypeVoid
	if len(node.Children) > 0 {
		got = ExprType(node.Children[0], ctx)
	}
	want := ctx.CurrentReturnType()
	if got != want {
		return fmt.Errorf("error: returning %s when %s was expected",
			TypeToString(got), TypeToString(want))
	}
	return nil
}

func analyzeVarDecl(node *ASTNode, ctx *SemanticContext) error {
	if !ctx.DeclareVariable(node) {
		return fmt.Errorf("error: duplicate declaration of variable '%s'", node.String)
	}
	if len(node.Children) > 0 {
		init := node.Children[0]
		if ExprType(init, ctx) != EffectiveType(node) || Analyze(init, ctx) != nil {
			return fmt.Errorf("error: type mismatch for '%s'", node.String)
		}
	}
	return nil
}

// analyzeFuncDecl checks a function body under a fresh scope seeded with
// the parameters and the declared effective return type, then runs the
// recursion check over the body. Registering the declaration into the
// context is the driver's job and happens regardless of this verdict.
func analyzeFuncDecl(node *ASTNode, ctx *SemanticContext) error {
	ctx.PushScope(MakeType(node.DeclType, node.ListReturn))
	defer ctx.PopScope()
	for _, param := range node.Params {
		ctx.DeclareVariable(param)
	}
	body := node.Children[0]
	if err := Analyze(body, ctx); err != nil {
		return err
	}
	if CheckRecursion(body, ctx, node) {
		return fmt.Errorf("error: recursive function call in '%s'", node.String)
	}
	return nil
}

// analyzeCall checks a function call in statement position: the callee must
// resolve, the argument count must match exactly, and each argument's
// computed type is compared against the parameter's bare base type. A
// list-valued argument therefore never matches (its computed type carries
// the list flag), while a scalar argument is accepted for a list-declared
// parameter of the same base.
func analyzeCall(node *ASTNode, ctx *SemanticContext) error {
	callee := ctx.LookupFunction(node.String)
	if callee == nil {
		return fmt.Errorf("error: call to undefined function '%s'", node.String)
	}
	if len(node.Children) != len(callee.Params) {
		return fmt.Errorf("error: call to '%s' with invalid number of arguments: %d expected, %d provided",
			node.String, len(callee.Params), len(node.Children))
	}
	for i, arg := range node.Children {
		if ExprType(arg, ctx) != callee.Params[i].DeclType {
			return fmt.Errorf("error: type mismatch for argument %d when calling '%s'",
				i+1, node.String)
		}
	}
	return nil
}

// ExprType computes the type of an expression node. TypeVoid is both the
// void type and the unknown/mismatch sentinel; callers disambiguate by
// context.
func ExprType(node *ASTNode, ctx *SemanticContext) Type {
	switch node.Kind {
	case NodeInteger:
		return TypeInt
	case NodeDouble:
		return TypeDouble
	case NodeBool:
		return TypeBool
	case NodeString:
		return TypeString
	case NodeIdent:
		if v := ctx.LookupVariable(node.String); v != nil {
			return EffectiveType(v)
		}
		return TypeVoid
	case NodeCall:
		if f := ctx.LookupFunction(node.String); f != nil {
			return MakeType(f.DeclType, f.ListReturn)
		}
		return TypeVoid
	case NodeListLit:
		return listLiteralType(node, ctx)
	case NodeBinary:
		lhs := ExprType(node.Children[0], ctx)
		if lhs != ExprType(node.Children[1], ctx) {
			return TypeVoid
		}
		return lhs
	default:
		return TypeVoid
	}
}

// listLiteralType computes the type of a list literal: the sentinel for an
// empty literal, a list of the element type when every element agrees, and
// the same sentinel again when any element differs.
func listLiteralType(node *ASTNode, ctx *SemanticContext) Type {
	if len(node.Children) == 0 {
		return TypeVoid
	}
	elem := ExprType(node.Children[0], ctx)
	for _, e := range node.Children[1:] {
		if ExprType(e, ctx) != elem {
			return TypeVoid
		}
	}
	return elem | listFlag
}

// CheckRecursion reports whether the body can reach a call back to target,
// directly or through other functions. The traversal carries a visited set
// so a call cycle that does not include target terminates and counts as
// "not recursive for this target" instead of looping forever.
func CheckRecursion(body *ASTNode, ctx *SemanticContext, target *ASTNode) bool {
	return checkRecursion(body, ctx, target, map[string]bool{})
}

func checkRecursion(node *ASTNode, ctx *SemanticContext, target *ASTNode, visited map[string]bool) bool {
	switch node.Kind {
	case NodeBlock:
		for _, stmt := range node.Children {
			if checkRecursion(stmt, ctx, target, visited) {
				return true
			}
		}
	case NodeCall:
		if node.String == target.String {
			return true
		}
		if visited[node.String] {
			return false
		}
		visited[node.String] = true
		callee := ctx.LookupFunction(node.String)
		if callee == nil || len(callee.Children) == 0 {
			// Undefined callees are reported by analyzeCall;
			// externs have no body to traverse.
			return false
		}
		return checkRecursion(callee.Children[0], ctx, target, visited)
	}
	return false
}
