package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config controls the marl CLI and the set of runtime-provided functions
// visible to analyzed programs.
type Config struct {
	Verbose bool     `toml:"verbose"`
	Externs []Extern `toml:"extern"`
}

// Extern declares a function implemented by the runtime rather than by the
// compilation unit. Externs are registered into the context before analysis
// so programs may call them; having no body, they contribute nothing to
// recursion checks. A parameter or return type may carry a "[]" suffix to
// declare it list-valued.
type Extern struct {
	Name    string   `toml:"name"`
	Params  []string `toml:"params"`
	Returns string   `toml:"returns"`
	List    bool     `toml:"list"`
}

// LoadConfig reads a marl.toml file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RegisterExterns declares every configured extern into ctx as a body-less
// function declaration.
func (cfg *Config) RegisterExterns(ctx *SemanticContext) error {
	for _, ext := range cfg.Externs {
		base, _, err := externType(ext.Returns)
		if err != nil {
			return fmt.Errorf("error: extern '%s': %w", ext.Name, err)
		}
		decl := &ASTNode{
			Kind:       NodeFuncDecl,
			String:     ext.Name,
			DeclType:   base,
			TypeName:   strings.TrimSuffix(ext.Returns, "[]"),
			ListReturn: ext.List || strings.HasSuffix(ext.Returns, "[]"),
		}
		for i, p := range ext.Params {
			pbase, isList, err := externType(p)
			if err != nil {
				return fmt.Errorf("error: extern '%s': %w", ext.Name, err)
			}
			size := int64(1)
			if isList {
				size = 2 // any size above 1 marks a list declaration
			}
			decl.Params = append(decl.Params, &ASTNode{
				Kind:     NodeVarDecl,
				String:   fmt.Sprintf("arg%d", i),
				DeclType: pbase,
				TypeName: strings.TrimSuffix(p, "[]"),
				Size:     size,
			})
		}
		if !ctx.DeclareFunction(decl) {
			return fmt.Errorf("error: duplicate declaration of function '%s'", ext.Name)
		}
	}
	return nil
}

// externType resolves a builtin type name with an optional "[]" suffix.
func externType(name string) (Type, bool, error) {
	isList := strings.HasSuffix(name, "[]")
	base, ok := TypeFromName(strings.TrimSuffix(name, "[]"))
	if !ok {
		return TypeVoid, false, fmt.Errorf("unknown type '%s'", name)
	}
	return base, isList, nil
}
