package main

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestDirectRecursion(t *testing.T) {
	err := analyzeSource(t, `(program
		(func "loop" void scalar (params)
			(block (call "loop"))))`)
	be.Err(t, err)
	be.Equal(t, "error: recursive function call in 'loop'", err.Error())
}

func TestIndirectRecursion(t *testing.T) {
	// ping calls pong calls ping: both declarations are recursive, but
	// fail-fast analysis reports the first one checked.
	err := analyzeSource(t, `(program
		(func "ping" void scalar (params)
			(block (call "pong")))
		(func "pong" void scalar (params)
			(block (call "ping"))))`)
	be.Err(t, err)
	be.Equal(t, "error: recursive function call in 'ping'", err.Error())
}

func TestRecursionThroughChain(t *testing.T) {
	err := analyzeSource(t, `(program
		(func "a" void scalar (params) (block (call "b")))
		(func "b" void scalar (params) (block (call "c")))
		(func "c" void scalar (params) (block (call "a"))))`)
	be.Err(t, err)
	be.Equal(t, "error: recursive function call in 'a'", err.Error())
}

func TestNonRecursiveCallChain(t *testing.T) {
	err := analyzeSource(t, `(program
		(func "top" void scalar (params) (block (call "mid")))
		(func "mid" void scalar (params) (block (call "leaf")))
		(func "leaf" void scalar (params) (block)))`)
	be.Err(t, err, nil)
}

func TestDiamondCallGraphIsNotRecursive(t *testing.T) {
	// Two paths reach the same leaf; the visited set keeps the second
	// path from being mistaken for a cycle.
	err := analyzeSource(t, `(program
		(func "top" void scalar (params)
			(block (call "left") (call "right")))
		(func "left" void scalar (params) (block (call "leaf")))
		(func "right" void scalar (params) (block (call "leaf")))
		(func "leaf" void scalar (params) (block)))`)
	be.Err(t, err, nil)
}

func TestCycleNotInvolvingTargetTerminates(t *testing.T) {
	// The traversal from entry reaches the a<->b cycle. Entry itself is
	// not part of the cycle, so its check must terminate and pass; the
	// recursion is then reported against a, the first cycle member
	// analyzed.
	err := analyzeSource(t, `(program
		(func "entry" void scalar (params) (block (call "a")))
		(func "a" void scalar (params) (block (call "b")))
		(func "b" void scalar (params) (block (call "a"))))`)
	be.Err(t, err)
	be.Equal(t, "error: recursive function call in 'a'", err.Error())
}

func TestCheckRecursionUndefinedCallee(t *testing.T) {
	ctx := NewSemanticContext()
	target := mustDecode(t, `(func "f" void scalar (params) (block (call "nowhere")))`)
	be.True(t, ctx.DeclareFunction(target))

	// Undefined callees terminate the walk; the missing function is a
	// call-site diagnostic, not a recursion verdict.
	be.Equal(t, false, CheckRecursion(target.Children[0], ctx, target))
}

func TestCheckRecursionBodylessCallee(t *testing.T) {
	ctx := NewSemanticContext()
	extern := &ASTNode{Kind: NodeFuncDecl, String: "print", DeclType: TypeVoid}
	be.True(t, ctx.DeclareFunction(extern))
	target := mustDecode(t, `(func "f" void scalar (params) (block (call "print")))`)
	be.True(t, ctx.DeclareFunction(target))

	be.Equal(t, false, CheckRecursion(target.Children[0], ctx, target))
}

func TestCheckRecursionDeepBlocks(t *testing.T) {
	ctx := NewSemanticContext()
	target := mustDecode(t, `(func "f" void scalar (params)
		(block (block (block (call "f")))))`)
	be.True(t, ctx.DeclareFunction(target))

	be.True(t, CheckRecursion(target.Children[0], ctx, target))
}

func TestRecursionDoesNotLeakAcrossChecks(t *testing.T) {
	// Every CheckRecursion call starts with a fresh visited set, so a
	// prior check never suppresses a later verdict.
	ctx := NewSemanticContext()
	helper := mustDecode(t, `(func "helper" void scalar (params) (block))`)
	f := mustDecode(t, `(func "f" void scalar (params) (block (call "helper")))`)
	g := mustDecode(t, `(func "g" void scalar (params) (block (call "helper") (call "g")))`)
	be.True(t, ctx.DeclareFunction(helper))
	be.True(t, ctx.DeclareFunction(f))
	be.True(t, ctx.DeclareFunction(g))

	be.Equal(t, false, CheckRecursion(f.Children[0], ctx, f))
	be.True(t, CheckRecursion(g.Children[0], ctx, g))
}
