package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thiremani/lox/ast"
	"gopkg.in/yaml.v3"
)

type result struct {
	stdout string
	stderr string
	err    error
}

// setup points the CLI at a fresh config and cache and returns the cache
// directory.
func setup(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	cacheDir := filepath.Join(dir, "cache")
	cfg := fmt.Sprintf("[cache]\ndir = %q\n%s", cacheDir, extra)
	cfgPath := filepath.Join(dir, "lox.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0644))
	t.Setenv("LOX_CONFIG", cfgPath)
	return cacheDir
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeSource(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestParseCommand(t *testing.T) {
	setup(t, "")
	path := writeSource(t, "a.lox", "var x = 1 + 2 * 3;\nprint -x;\n")

	res := run(t, "", "parse", path)
	require.NoError(t, res.err)
	require.Equal(t, "var x = (1 + (2 * 3));\nprint (-x);\n", res.stdout)
}

func TestParseStdin(t *testing.T) {
	setup(t, "")

	res := run(t, "if (a) if (b) print 1; else print 2;", "parse")
	require.NoError(t, res.err)
	require.Equal(t, "if (a) if (b) print 1; else print 2;\n", res.stdout)

	res = run(t, "", "parse", "-")
	require.NoError(t, res.err)
	require.Empty(t, res.stdout)
}

func TestParseFormats(t *testing.T) {
	setup(t, "")

	res := run(t, "x = f(1);", "parse", "--format", "yaml")
	require.NoError(t, res.err)
	var tree ast.Tree
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &tree))
	require.Equal(t, ast.SourceFileKind, tree.Kind)
	assign := tree.Children[0].Children[0]
	require.Equal(t, ast.AssignExprKind, assign.Kind)
	require.Equal(t, ast.FieldAssignTarget, assign.Children[0].Field)
	require.Equal(t, ast.FieldFunction, assign.Children[1].Children[0].Field)

	res = run(t, "x = f(1);", "parse", "-f", "json")
	require.NoError(t, res.err)
	tree = ast.Tree{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &tree))
	require.Equal(t, "<stdin>:1:1", tree.Children[0].Pos)

	res = run(t, "x;", "parse", "--format", "xml")
	require.ErrorContains(t, res.err, "output.format")
}

func TestFormatFlagIgnoresCase(t *testing.T) {
	setup(t, "")

	res := run(t, "print 1;", "parse", "--format", "YAML")
	require.NoError(t, res.err)
	var tree ast.Tree
	require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &tree))
	require.Equal(t, ast.SourceFileKind, tree.Kind)

	res = run(t, "x", "tokens", "-f", "Json")
	require.NoError(t, res.err)
	require.True(t, json.Valid([]byte(res.stdout)))

	res = run(t, "1 + 2\n", "repl", "-f", "JSON")
	require.NoError(t, res.err)
	tree = ast.Tree{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &tree))
	require.Equal(t, ast.BinaryExprKind, tree.Kind)
	require.Equal(t, "+", tree.Operator)
}

func TestParseFormatFromConfig(t *testing.T) {
	setup(t, "[output]\nformat = \"json\"\n")

	res := run(t, "print 1;", "parse")
	require.NoError(t, res.err)
	require.True(t, json.Valid([]byte(res.stdout)))
}

func TestParseErrors(t *testing.T) {
	setup(t, "")
	good := writeSource(t, "good.lox", "print 1;")
	bad := writeSource(t, "bad.lox", "print 1")

	res := run(t, "", "parse", good, bad)
	require.EqualError(t, res.err, "1 of 2 inputs had errors")
	require.Equal(t, "print 1;\n", res.stdout)
	require.Contains(t, res.stderr, bad+":1:8:expected ';', found end of input")

	res = run(t, "", "parse", filepath.Join(t.TempDir(), "missing.lox"))
	require.ErrorContains(t, res.err, "reading")
}

func TestParseLimitFlags(t *testing.T) {
	setup(t, "")

	res := run(t, "f(1, 2, 3);", "parse", "--max-args", "2")
	require.Error(t, res.err)
	require.Contains(t, res.stderr, "<stdin>:1:9:can't have more than 2 arguments")

	res = run(t, "((((1))));", "parse", "--max-depth", "3")
	require.Error(t, res.err)
	require.Contains(t, res.stderr, "nesting depth exceeds 3")
}

func TestParseCache(t *testing.T) {
	cacheDir := setup(t, "")
	path := writeSource(t, "a.lox", "print 1 + 2;")

	res := run(t, "", "parse", "-v", path)
	require.NoError(t, res.err)
	require.Contains(t, res.stderr, "cache store")

	entries, err := os.ReadDir(filepath.Join(cacheDir, "parse"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	res = run(t, "", "parse", "-v", path)
	require.NoError(t, res.err)
	require.Equal(t, "print (1 + 2);\n", res.stdout)
	require.Contains(t, res.stderr, "using cached tree")

	// a different format is a different entry
	res = run(t, "", "parse", "-v", "-f", "yaml", path)
	require.NoError(t, res.err)
	require.NotContains(t, res.stderr, "using cached tree")
}

func TestParseNoCache(t *testing.T) {
	cacheDir := setup(t, "")

	res := run(t, "print 1;", "parse", "--no-cache")
	require.NoError(t, res.err)
	_, err := os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err))

	cacheDir = setup(t, "enabled = false\n")
	res = run(t, "print 1;", "parse")
	require.NoError(t, res.err)
	_, err = os.Stat(cacheDir)
	require.True(t, os.IsNotExist(err))
}

func TestTokensCommand(t *testing.T) {
	setup(t, "")

	res := run(t, "var x = 1;", "tokens")
	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 6)
	require.Equal(t, []string{"<stdin>:1:1", "keyword", "var", "var"}, strings.Fields(lines[0]))
	require.Equal(t, []string{"<stdin>:1:5", "identifier", "IDENT", "x"}, strings.Fields(lines[1]))
	require.Equal(t, []string{"<stdin>:1:11", "end", "of", "input", "EOF"}, strings.Fields(lines[5]))

	res = run(t, "@", "tokens", "-f", "json")
	require.NoError(t, res.err)
	var records []tokenRecord
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &records))
	require.Len(t, records, 2)
	require.Equal(t, "ILLEGAL", records[0].Type)
	require.Equal(t, "@", records[0].Literal)
}

func TestCheckCommand(t *testing.T) {
	setup(t, "")
	good := writeSource(t, "good.lox", "fun f(a) { return a; }")
	bad := writeSource(t, "bad.lox", "{ print 1;")

	res := run(t, "", "check", good)
	require.NoError(t, res.err)
	require.Empty(t, res.stdout)

	res = run(t, "", "check", good, bad)
	require.EqualError(t, res.err, "1 of 2 inputs had errors")
	require.Equal(t, bad+":1:11:expected '}', found end of input (to close '{' at 1:1)\n", res.stdout)
}

func TestReplCommand(t *testing.T) {
	setup(t, "")

	res := run(t, "var x = 1;\n1 +\n2\n\n:bogus\nprint )\n:quit\nprint 3;\n", "repl")
	require.NoError(t, res.err)
	require.Equal(t, "var x = 1;\n(1 + 2)\n", res.stdout)
	require.Contains(t, res.stderr, "unknown command")
	require.Contains(t, res.stderr, "repl:1:7:expected expression, found ')'")
}

func TestReplIncompleteAtEOF(t *testing.T) {
	setup(t, "")

	res := run(t, "{ print 1;\n", "repl")
	require.NoError(t, res.err)
	require.Empty(t, res.stdout)
	require.Contains(t, res.stderr, "expected '}', found end of input")
}

func TestVersionCommand(t *testing.T) {
	t.Setenv("LOX_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	res := run(t, "", "version")
	require.NoError(t, res.err)
	require.True(t, strings.HasPrefix(res.stdout, "lox dev ("))
}

func TestBadConfig(t *testing.T) {
	t.Setenv("LOX_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	res := run(t, "print 1;", "parse")
	require.ErrorContains(t, res.err, "config file not found")

	path := writeSource(t, "lox.toml", "[parser]\nmax_args = 2\n")
	res = run(t, "f(1, 2, 3);", "--config", path, "check")
	require.ErrorContains(t, res.err, "1 of 1 inputs had errors")
	require.Contains(t, res.stdout, "can't have more than 2 arguments")
}
