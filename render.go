package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/thiremani/lox/ast"
	"github.com/thiremani/lox/config"
	"github.com/thiremani/lox/token"
	"gopkg.in/yaml.v3"
)

// stdinName labels input read from standard input.
const stdinName = "<stdin>"

type source struct {
	name string
	text string
}

// readSources reads each named file; no names or "-" reads stdin.
func readSources(args []string, stdin io.Reader) ([]source, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	out := make([]source, 0, len(args))
	for _, name := range args {
		var data []byte
		var err error
		if name == "-" {
			name = stdinName
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		out = append(out, source{name: name, text: string(data)})
	}
	return out, nil
}

// renderTree formats n as an S-expression listing, YAML or JSON.
func renderTree(n ast.Node, format string) ([]byte, error) {
	switch format {
	case config.FormatSExpr:
		s := n.String()
		if s == "" {
			return nil, nil
		}
		return []byte(s + "\n"), nil
	case config.FormatYAML:
		return yaml.Marshal(ast.NewTree(n))
	case config.FormatJSON:
		return marshalJSON(ast.NewTree(n))
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// tokenRecord is the serialized form of one token.
type tokenRecord struct {
	Type    string `yaml:"type" json:"type"`
	Class   string `yaml:"class" json:"class"`
	Literal string `yaml:"literal,omitempty" json:"literal,omitempty"`
	Pos     string `yaml:"pos" json:"pos"`
}

// renderTokens lists toks one per line, or as a YAML/JSON sequence.
func renderTokens(toks []token.Token, format string) ([]byte, error) {
	switch format {
	case config.FormatSExpr:
		var out bytes.Buffer
		w := tabwriter.NewWriter(&out, 0, 4, 2, ' ', 0)
		for _, t := range toks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Pos, t.Class(), t.Type, t.Literal)
		}
		if err := w.Flush(); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	case config.FormatYAML, config.FormatJSON:
		records := make([]tokenRecord, 0, len(toks))
		for _, t := range toks {
			records = append(records, tokenRecord{
				Type:    t.Type.String(),
				Class:   t.Class().String(),
				Literal: t.Literal,
				Pos:     t.Pos.String(),
			})
		}
		if format == config.FormatYAML {
			return yaml.Marshal(records)
		}
		return marshalJSON(records)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}
