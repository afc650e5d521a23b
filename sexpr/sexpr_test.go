package sexpr

import (
	"testing"

	"github.com/nalgeon/be"
)

func TestParseAtoms(t *testing.T) {
	tests := []struct {
		input        string
		expectedType NodeType
		expectedText string
	}{
		{"foo", NodeSymbol, "foo"},
		{"scalar", NodeSymbol, "scalar"},
		{"kebab-name", NodeSymbol, "kebab-name"},
		{"42", NodeInteger, "42"},
		{"-7", NodeInteger, "-7"},
		{"+3", NodeInteger, "+3"},
		{"3.25", NodeFloat, "3.25"},
		{"-0.5", NodeFloat, "-0.5"},
		{"1e9", NodeFloat, "1e9"},
		{"2.5e-3", NodeFloat, "2.5e-3"},
		{`"hello"`, NodeString, "hello"},
		{`""`, NodeString, ""},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			node, err := Parse(test.input)
			be.Err(t, err, nil)
			be.Equal(t, test.expectedType, node.Type)
			be.Equal(t, test.expectedText, node.Text)
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	node, err := Parse(`"a\"b\\c\nd\te"`)
	be.Err(t, err, nil)
	be.Equal(t, "a\"b\\c\nd\te", node.Text)
}

func TestParseList(t *testing.T) {
	node, err := Parse(`(call "f" (int 1) (int 2))`)
	be.Err(t, err, nil)
	be.Equal(t, NodeList, node.Type)
	be.Equal(t, 4, len(node.Items))
	be.Equal(t, NodeSymbol, node.Items[0].Type)
	be.Equal(t, "call", node.Items[0].Text)
	be.Equal(t, NodeString, node.Items[1].Type)
	be.Equal(t, NodeList, node.Items[2].Type)
}

func TestParseEmptyList(t *testing.T) {
	node, err := Parse(`()`)
	be.Err(t, err, nil)
	be.Equal(t, NodeList, node.Type)
	be.Equal(t, 0, len(node.Items))
}

func TestParseNestedLists(t *testing.T) {
	node, err := Parse(`(a (b (c)) d)`)
	be.Err(t, err, nil)
	be.Equal(t, 3, len(node.Items))
	be.Equal(t, 2, len(node.Items[1].Items))
	be.Equal(t, 1, len(node.Items[1].Items[1].Items))
}

func TestParseComments(t *testing.T) {
	node, err := Parse(`; leading comment
		(block ; trailing comment
			(int 1))`)
	be.Err(t, err, nil)
	be.Equal(t, NodeList, node.Type)
	be.Equal(t, 2, len(node.Items))
}

func TestParseMultilineWhitespace(t *testing.T) {
	node, err := Parse("(program\n\t(func \"f\"\n\t\tvoid scalar (params) (block)))")
	be.Err(t, err, nil)
	be.Equal(t, NodeList, node.Type)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated list", `(a b`},
		{"stray close paren", `)`},
		{"trailing datum", `(a) (b)`},
		{"unterminated string", `"abc`},
		{"bad escape", `"a\q"`},
		{"stray character", `@`},
		{"empty input", ``},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.input)
			be.Err(t, err)
		})
	}
}

func TestNodeString(t *testing.T) {
	tests := []struct {
		node     *Node
		expected string
	}{
		{NewSymbol("scalar"), "scalar"},
		{NewInteger("42"), "42"},
		{NewFloat("2.5"), "2.5"},
		{NewString(`say "hi"`), `"say \"hi\""`},
		{NewList([]*Node{NewSymbol("int"), NewInteger("1")}), "(int 1)"},
		{NewList(nil), "()"},
	}

	for _, test := range tests {
		be.Equal(t, test.expected, test.node.String())
	}
}

func TestIsAtom(t *testing.T) {
	be.True(t, NewSymbol("x").IsAtom())
	be.True(t, NewInteger("1").IsAtom())
	be.Equal(t, false, NewList(nil).IsAtom())
}
