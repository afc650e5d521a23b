package sexpr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Fence languages recognized in a corpus document.
const (
	// FenceInput holds the serialized AST of the program under test.
	FenceInput = "marl-ast"
	// FenceVerdict holds either "ok" or the expected diagnostic text.
	FenceVerdict = "verdict"
)

// TestCase represents one semantic-analysis test case extracted from a
// Markdown corpus document.
type TestCase struct {
	Name    string // heading text after "Test: "
	Input   string // serialized AST from the marl-ast fence
	Verdict string // "ok" or the expected diagnostic
}

// ExpectsOK reports whether the case expects analysis to pass.
func (tc *TestCase) ExpectsOK() bool {
	return strings.TrimSpace(tc.Verdict) == "ok"
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
// A case begins at a heading of the form "Test: <name>" and collects one
// marl-ast fence and one verdict fence.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)

	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var current *TestCase

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			if strings.HasPrefix(headingText, "Test: ") {
				if current != nil {
					if err := validateTestCase(current); err != nil {
						return ast.WalkStop, err
					}
					testCases = append(testCases, *current)
				}
				current = &TestCase{Name: strings.TrimPrefix(headingText, "Test: ")}
			}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)

			if language != FenceInput && language != FenceVerdict {
				// Plain code blocks are prose; anything else is a typo.
				if language != "" {
					return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s'", lineNum, language)
				}
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
			}

			switch language {
			case FenceInput:
				if current.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences in test '%s'", lineNum, FenceInput, current.Name)
				}
				current.Input = strings.TrimRight(content, "\n")
			case FenceVerdict:
				if current.Verdict != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple %s fences in test '%s'", lineNum, FenceVerdict, current.Name)
				}
				current.Verdict = strings.TrimRight(content, "\n")
			}
		}

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if current != nil {
		if err := validateTestCase(current); err != nil {
			return nil, err
		}
		testCases = append(testCases, *current)
	}

	return testCases, nil
}

// extractTextFromNode extracts plain text content from a markdown node.
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})

	return buf.String()
}

// extractCodeBlockContent extracts the content from a fenced code block.
func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer

	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}

	return buf.String()
}

// validateTestCase ensures a test case has both fences.
func validateTestCase(tc *TestCase) error {
	if tc.Input == "" {
		return fmt.Errorf("test '%s' has no %s fence", tc.Name, FenceInput)
	}
	if tc.Verdict == "" {
		return fmt.Errorf("test '%s' has no %s fence", tc.Name, FenceVerdict)
	}
	return nil
}

// getLineNumber calculates the line number of a given AST node.
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	lineNum := 1
	for i := 0; i < startPos && i < len(source); i++ {
		if source[i] == '\n' {
			lineNum++
		}
	}
	return lineNum
}
