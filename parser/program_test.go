package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/lox/ast"
	"github.com/thiremani/lox/lexer"
	"github.com/thiremani/lox/token"
)

const sampleProgram = `// fibonacci
fun fib(n) {
  if (n <= 1) return n;
  return fib(n - 2) + fib(n - 1);
}

var limit = 10;
var i;
for (i = 0; i < limit; i = i + 1) {
  print fib(i);
}

fun greet(first, last) {
  print "hello " + first + " " + last;
}

while (!done and count != 0) count = count - 1;
if (a) if (b) print 1; else print 2;
greet("ada", "lovelace");
`

func TestFuncDef(t *testing.T) {
	fd := requireOnlyStmt[*ast.FuncDef](t, "fun add(a, b) { return a + b; }")
	require.Equal(t, "add", fd.FunName.Value)
	require.Equal(t, []string{"a", "b"}, fd.ParamNames())
	require.Len(t, fd.Params.Commas, 1)
	require.Len(t, fd.Body.Declarations, 1)
	require.Equal(t, "fun add(a, b) { return (a + b); }", fd.String())

	fd = requireOnlyStmt[*ast.FuncDef](t, "fun f() {}")
	require.Nil(t, fd.Params, "an empty parameter list has no function_arguments node")
	require.Empty(t, fd.ParamNames())
	require.Empty(t, fd.Body.Declarations)
	require.Equal(t, "fun f() { }", fd.String())

	fd = requireOnlyStmt[*ast.FuncDef](t, "fun one(x) { print x; }")
	require.Equal(t, []string{"x"}, fd.ParamNames())
	require.Empty(t, fd.Params.Commas)
}

func TestFuncDefErrors(t *testing.T) {
	tests := []struct {
		input    string
		expError string
	}{
		{"fun (a) {}", "test:1:5:expected identifier, found '('"},
		{"fun f {}", "test:1:7:expected '(', found '{'"},
		{"fun f(1) {}", "test:1:7:expected identifier or ')', found number 1 (to close '(' at 1:6)"},
		{"fun f(a b) {}", "test:1:9:expected ',' or ')', found identifier b (to close '(' at 1:6)"},
		{"fun f(a,) {}", "test:1:9:expected identifier, found ')'"},
		{"fun f(a) print a;", "test:1:10:expected '{', found 'print'"},
		{"fun f() {", "test:1:10:expected '}', found end of input (to close '{' at 1:9)"},
		{"fun print() {}", "test:1:5:expected identifier, found 'print'"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse("test", tt.input)
			require.EqualError(t, err, tt.expError)
		})
	}
}

func TestVarDecl(t *testing.T) {
	vd := requireOnlyStmt[*ast.VarDecl](t, "var x;")
	require.Equal(t, "x", vd.Name.Value)
	require.Nil(t, vd.Value)
	require.Empty(t, vd.Assign.Literal)
	require.Equal(t, "var x;", vd.String())

	vd = requireOnlyStmt[*ast.VarDecl](t, "var x = 1 + 2 * 3;")
	testInfixExpression(t, vd.Value, 1, "+", func(t *testing.T, exp ast.Expression) {
		testInfixExpression(t, exp, 2, "*", 3)
	})
	require.Equal(t, "var x = (1 + (2 * 3));", vd.String())

	vd = requireOnlyStmt[*ast.VarDecl](t, "var y = x = 2;")
	assign, ok := vd.Value.(*ast.AssignExpr)
	require.True(t, ok)
	require.Equal(t, "x", assign.AssignTarget.Value)
}

func TestVarDeclErrors(t *testing.T) {
	tests := []struct {
		input    string
		expError string
	}{
		{"var = 1;", "test:1:5:expected identifier, found '='"},
		{"var x = ;", "test:1:9:expected expression, found ';'"},
		{"var x = 1", "test:1:10:expected ';', found end of input"},
		{"var x 1;", "test:1:7:expected ';', found number 1"},
		{"var 1x;", "test:1:5:expected identifier, found number 1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse("test", tt.input)
			require.EqualError(t, err, tt.expError)
		})
	}
}

func TestEmptyProgram(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "// just a comment\n"} {
		sf := parseOK(t, input)
		require.Empty(t, sf.Declarations)
		require.Equal(t, ast.SourceFileKind, sf.Kind())
	}
}

func TestDeclarationOrder(t *testing.T) {
	sf := parseOK(t, sampleProgram)

	kinds := make([]ast.Kind, 0, len(sf.Declarations))
	for _, d := range sf.Declarations {
		kinds = append(kinds, d.Kind())
	}
	require.Equal(t, []ast.Kind{
		ast.FuncDefKind,
		ast.VarDeclKind,
		ast.VarDeclKind,
		ast.ForStmtKind,
		ast.FuncDefKind,
		ast.WhileStmtKind,
		ast.IfStmtKind,
		ast.ExprStmtKind,
	}, kinds)
}

// Every token except grouping parentheses and end of input must be
// reachable from the tree, in source order.
func TestTokensRoundTrip(t *testing.T) {
	inputs := []string{
		sampleProgram,
		"for (;;) {}",
		"for (var i = 0; ; ) print i;",
		"return;",
		"x = y = -!z;",
		`print "";`,
	}

	for _, input := range inputs {
		sf := parseOK(t, input)

		want := lexer.Tokenize("test", input)
		require.Equal(t, token.EOF, want[len(want)-1].Type)
		want = want[:len(want)-1]

		require.Equal(t, want, ast.Tokens(sf))
	}
}

func TestGroupingParensDropped(t *testing.T) {
	sf := parseOK(t, "print (1 + 2) * 3;")

	var lits []string
	for _, tk := range ast.Tokens(sf) {
		lits = append(lits, tk.Literal)
	}
	require.Equal(t, []string{"print", "1", "+", "2", "*", "3", ";"}, lits)
}

func TestFieldLabels(t *testing.T) {
	sf := parseOK(t, "fun f(a) { a = g(a); }")

	counts := map[string]int{}
	ast.Inspect(sf, func(n ast.Node) bool {
		for _, c := range ast.Children(n) {
			if c.Field != "" {
				counts[c.Field]++
				_, ok := c.Node.(*ast.Identifier)
				require.Truef(t, ok, "field %s must label an identifier, got %T", c.Field, c.Node)
			}
		}
		return true
	})

	require.Equal(t, map[string]int{
		ast.FieldFunName:      1,
		ast.FieldAssignTarget: 1,
		ast.FieldFunction:     1,
	}, counts)
}

func TestTree(t *testing.T) {
	sf := parseOK(t, "x = -a;")

	tree := ast.NewTree(sf)
	require.Equal(t, ast.SourceFileKind, tree.Kind)
	require.Len(t, tree.Children, 1)

	stmt := tree.Children[0]
	require.Equal(t, ast.ExprStmtKind, stmt.Kind)
	require.Equal(t, "test:1:1", stmt.Pos)

	assign := stmt.Children[0]
	require.Equal(t, ast.AssignExprKind, assign.Kind)
	require.Len(t, assign.Children, 2)
	require.Equal(t, ast.FieldAssignTarget, assign.Children[0].Field)
	require.Equal(t, "x", assign.Children[0].Text)

	neg := assign.Children[1]
	require.Equal(t, ast.UnaryExprKind, neg.Kind)
	require.Equal(t, "-", neg.Operator)
	require.Equal(t, "test:1:5", neg.Pos)
}
