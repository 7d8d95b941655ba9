package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/thiremani/lox/parser"
)

const (
	promptMain  = "lox> "
	promptCont  = "...  "
	historyFile = ".lox_history"
	replName    = "repl"
)

// prompter reads one line of input. liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// lineReader is the prompter used when stdin is not a terminal.
type lineReader struct {
	sc *bufio.Scanner
}

func (r *lineReader) Prompt(string) (string, error) {
	if !r.sc.Scan() {
		if err := r.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.sc.Text(), nil
}

func newReplCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively",
		Long: `Read declarations or a bare expression and print the parsed tree.

Input that ends in the middle of a construct continues on the next line.
Type :quit or press Ctrl-D to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Output.Format = strings.ToLower(format)
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
				return a.replTerminal(cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return a.repl(&lineReader{sc: bufio.NewScanner(in)}, cmd.OutOrStdout(), cmd.ErrOrStderr(), nil)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: sexpr, yaml or json (default from config)")
	return cmd
}

func (a *app) replTerminal(stdout, stderr io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	return a.repl(ln, stdout, stderr, ln.AppendHistory)
}

// repl runs the read-parse-print loop until end of input or :quit.
// remember, when set, records each complete entry.
func (a *app) repl(p prompter, stdout, stderr io.Writer, remember func(string)) error {
	for {
		src, ok := a.readEntry(p)
		if !ok {
			return nil
		}

		trimmed := strings.TrimSpace(src)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit", ":q":
				return nil
			default:
				fmt.Fprintln(stderr, "unknown command. Type :quit to exit.")
			}
			continue
		}

		if remember != nil {
			remember(strings.ReplaceAll(src, "\n", " "))
		}

		sp := parser.NewScriptParser(replName, src, a.parserOptions()...)
		script := sp.Parse()
		if script == nil {
			for _, err := range sp.Errors() {
				fmt.Fprintln(stderr, err)
			}
			continue
		}

		out, err := renderTree(script.Node(), a.cfg.Output.Format)
		if err != nil {
			return err
		}
		stdout.Write(out)
	}
}

// readEntry keeps reading lines while the accumulated input fails
// only because it ended too early. It returns false at end of input.
func (a *app) readEntry(p prompter) (string, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			// flush a pending partial entry so its error is reported
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			a.log.Error("reading input", "err", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		sp := parser.NewScriptParser(replName, src, a.parserOptions()...)
		if sp.Parse() != nil {
			return src, true
		}
		if parser.IsIncomplete(sp.Errors()[0]) {
			continue
		}
		return src, true
	}
}
