package parser

import (
	"github.com/thiremani/lox/ast"
)

// Script is interactive input: either a program or a single bare
// expression written without a trailing ';'.
type Script struct {
	Program    *ast.SourceFile
	Expression ast.Expression
}

func (s *Script) Node() ast.Node {
	if s.Expression != nil {
		return s.Expression
	}
	return s.Program
}

type ScriptParser struct {
	file   string
	src    string
	opts   []Option
	errors []error
}

func NewScriptParser(file, src string, opts ...Option) *ScriptParser {
	return &ScriptParser{file: file, src: src, opts: opts}
}

func (sp *ScriptParser) Errors() []error {
	return sp.errors
}

// Parse tries the input as a program first. When that fails it retries it
// as a bare expression; if both fail the program error is reported.
func (sp *ScriptParser) Parse() *Script {
	sp.errors = nil

	program, err := Parse(sp.file, sp.src, sp.opts...)
	if err == nil {
		return &Script{Program: program}
	}

	if exp, expErr := ParseExpression(sp.file, sp.src, sp.opts...); expErr == nil {
		return &Script{Expression: exp}
	}

	sp.errors = append(sp.errors, err)
	return nil
}
