package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marl-lang/marl/sexpr"
	"github.com/nalgeon/be"
)

// TestCorpus runs every test case extracted from the Markdown documents
// under test/. Each case decodes a serialized program, analyzes it under a
// fresh context, and compares the outcome against the verdict fence.
func TestCorpus(t *testing.T) {
	files, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(files) > 0)

	for _, file := range files {
		content, err := os.ReadFile(file)
		be.Err(t, err, nil)

		cases, err := sexpr.ExtractTestCases(string(content))
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		be.True(t, len(cases) > 0)

		for _, tc := range cases {
			t.Run(filepath.Base(file)+"/"+tc.Name, func(t *testing.T) {
				program, err := DecodeProgram(tc.Input)
				be.Err(t, err, nil)

				err = AnalyzeProgram(program, NewSemanticContext())
				if tc.ExpectsOK() {
					be.Err(t, err, nil)
					return
				}
				be.Err(t, err)
				be.Equal(t, tc.Verdict, err.Error())
			})
		}
	}
}
