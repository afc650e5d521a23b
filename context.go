package main

// scope is one lexical nesting level: the variables declared in it plus the
// return type expected of return statements analyzed under it. Keeping both
// in a single record makes the stack-parity invariant structural instead of
// something push/pop must maintain by hand.
type scope struct {
	vars       []*ASTNode
	returnType Type
}

// SemanticContext carries all state for one compilation unit's semantic
// pass: the stack of lexical scopes and the flat, non-overloadable
// registries of functions and structures. A context is created once per
// analysis run, mutated only by that run, and discarded afterwards.
type SemanticContext struct {
	scopes  []scope
	funcs   []*ASTNode
	structs []*ASTNode
}

// NewSemanticContext creates a context holding the root (void) scope.
func NewSemanticContext() *SemanticContext {
	ctx := &SemanticContext{}
	ctx.PushScope(TypeVoid)
	return ctx
}

// PushScope enters a new lexical scope expecting the given return type.
func (ctx *SemanticContext) PushScope(returnType Type) {
	ctx.scopes = append(ctx.scopes, scope{returnType: returnType})
}

// PopScope leaves the current scope. Variables declared in it are lexically
// dead afterwards and can never be resolved again.
func (ctx *SemanticContext) PopScope() {
	ctx.scopes = ctx.scopes[:len(ctx.scopes)-1]
}

// ScopeDepth returns the number of live scopes, root scope included.
func (ctx *SemanticContext) ScopeDepth() int {
	return len(ctx.scopes)
}

// CurrentReturnType returns the expected return type at the current scope.
func (ctx *SemanticContext) CurrentReturnType() Type {
	return ctx.scopes[len(ctx.scopes)-1].returnType
}

// DeclareVariable registers a variable declaration into the current scope.
// It reports false without mutating anything when the identifier is already
// declared in that same scope; shadowing an outer scope's variable is
// permitted.
func (ctx *SemanticContext) DeclareVariable(decl *ASTNode) bool {
	top := &ctx.scopes[len(ctx.scopes)-1]
	for _, v := range top.vars {
		if v.String == decl.String {
			return false
		}
	}
	top.vars = append(top.vars, decl)
	return true
}

// DeclareFunction registers a function declaration into the flat global
// registry, rejecting duplicates by identifier.
func (ctx *SemanticContext) DeclareFunction(decl *ASTNode) bool {
	for _, f := range ctx.funcs {
		if f.String == decl.String {
			return false
		}
	}
	ctx.funcs = append(ctx.funcs, decl)
	return true
}

// DeclareStruct registers a structure declaration into the flat global
// registry, rejecting duplicates by identifier.
func (ctx *SemanticContext) DeclareStruct(decl *ASTNode) bool {
	for _, s := range ctx.structs {
		if s.String == decl.String {
			return false
		}
	}
	ctx.structs = append(ctx.structs, decl)
	return true
}

// LookupVariable searches the scopes innermost-first and returns the first
// declaration with the given identifier, giving lexical shadowing
// semantics. It returns nil when no live scope declares the identifier.
func (ctx *SemanticContext) LookupVariable(ident string) *ASTNode {
	for i := len(ctx.scopes) - 1; i >= 0; i-- {
		for _, v := range ctx.scopes[i].vars {
			if v.String == ident {
				return v
			}
		}
	}
	return nil
}

// LookupFunction returns the registered function declaration with the given
// identifier, or nil.
func (ctx *SemanticContext) LookupFunction(ident string) *ASTNode {
	for _, f := range ctx.funcs {
		if f.String == ident {
			return f
		}
	}
	return nil
}

// LookupStruct returns the registered structure declaration with the given
// identifier, or nil.
func (ctx *SemanticContext) LookupStruct(ident string) *ASTNode {
	for _, s := range ctx.structs {
		if s.String == ident {
			return s
		}
	}
	return nil
}
