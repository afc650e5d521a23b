package main

import (
	"flag"
	"fmt"
	"os"
)

func showUsage() {
	fmt.Fprintf(os.Stderr, `Marl - semantic analysis for the Marl compiler front end

Usage:
    marl <command> [arguments]

Commands:
    check <file>    Run semantic analysis over a serialized AST document
    ast <file>      Decode an AST document and dump its canonical form
    help            Show this help message

Examples:
    marl check examples/sum.ast
    marl check -config marl.toml -v program.ast
    marl ast program.ast

Use "marl <command> -h" for more information about a command.
`)
}

func checkCommand(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	verbose := fs.Bool("v", false, "Show verbose checking details")
	configPath := fs.String("config", "marl.toml", "Path to the configuration file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: marl check [-v] [-config file] <file>\n")
		fmt.Fprintf(os.Stderr, "Run semantic analysis over a serialized AST document\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config %s: %v\n", *configPath, err)
		os.Exit(1)
	}
	if cfg.Verbose {
		*verbose = true
	}

	if *verbose {
		fmt.Printf("Checking %s...\n", filename)
	}

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	program, err := DecodeProgram(string(source))
	if err != nil {
		fmt.Printf("Decode errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}

	ctx := NewSemanticContext()
	if err := cfg.RegisterExterns(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error in config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	if err := AnalyzeProgram(program, ctx); err != nil {
		fmt.Printf("Semantic errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}

	fmt.Printf("%s: no errors found\n", filename)

	if *verbose {
		fmt.Printf("AST: %s\n", ToSExpr(program))
	}
}

func astCommand(args []string) {
	fs := flag.NewFlagSet("ast", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: marl ast <file>\n")
		fmt.Fprintf(os.Stderr, "Decode an AST document and dump its canonical form\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		os.Exit(1)
	}

	filename := fs.Arg(0)

	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file %s: %v\n", filename, err)
		os.Exit(1)
	}

	program, err := DecodeProgram(string(source))
	if err != nil {
		fmt.Printf("Decode errors in %s:\n%v\n", filename, err)
		os.Exit(1)
	}

	fmt.Println(ToSExpr(program))
}

func main() {
	if len(os.Args) < 2 {
		showUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "check":
		checkCommand(args)
	case "ast":
		astCommand(args)
	case "help", "-h", "--help":
		showUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		showUsage()
		os.Exit(1)
	}
}
