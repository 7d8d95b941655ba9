package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/lox/ast"
)

func TestScriptProgram(t *testing.T) {
	sp := NewScriptParser("repl", "var x = 1; print x;")
	script := sp.Parse()
	require.Empty(t, sp.Errors())
	require.NotNil(t, script)
	require.Nil(t, script.Expression)
	require.Len(t, script.Program.Declarations, 2)
	require.Equal(t, script.Program, script.Node())
}

func TestScriptExpression(t *testing.T) {
	tests := []struct {
		input  string
		expStr string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"x = 5", "(x = 5)"},
		{"f(a, b)", "f(a, b)"},
		{"!done", "(!done)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			sp := NewScriptParser("repl", tt.input)
			script := sp.Parse()
			require.Empty(t, sp.Errors(), "unexpected parse errors for input %q: %v", tt.input, sp.Errors())
			require.Nil(t, script.Program)
			require.Equal(t, tt.expStr, script.Expression.String())
			require.Equal(t, ast.Node(script.Expression), script.Node())
		})
	}
}

func TestScriptErrorsReportProgram(t *testing.T) {
	sp := NewScriptParser("repl", "print 1")
	require.Nil(t, sp.Parse())
	require.Len(t, sp.Errors(), 1)
	require.EqualError(t, sp.Errors()[0], "repl:1:8:expected ';', found end of input")
	require.True(t, IsIncomplete(sp.Errors()[0]))

	sp = NewScriptParser("repl", "1 + 2 = 3")
	require.Nil(t, sp.Parse())
	require.EqualError(t, sp.Errors()[0], "repl:1:7:expected end of statement or binary operator, found '='")
	require.False(t, IsIncomplete(sp.Errors()[0]))
}

func TestScriptParserReuse(t *testing.T) {
	sp := NewScriptParser("repl", "print")
	require.Nil(t, sp.Parse())
	require.Len(t, sp.Errors(), 1)

	// errors do not pile up across calls
	require.Nil(t, sp.Parse())
	require.Len(t, sp.Errors(), 1)
}

func TestScriptOptions(t *testing.T) {
	sp := NewScriptParser("repl", "f(1, 2, 3)", MaxArgs(2))
	require.Nil(t, sp.Parse())
	require.EqualError(t, sp.Errors()[0], "repl:1:9:can't have more than 2 arguments")
}
