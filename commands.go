package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thiremani/lox/cache"
	"github.com/thiremani/lox/lexer"
	"github.com/thiremani/lox/parser"
)

// outputFlags are shared by the commands that print something.
type outputFlags struct {
	format   string
	maxDepth int
	maxArgs  int
	noCache  bool
}

func (f *outputFlags) register(cmd *cobra.Command, withFormat, withCache bool) {
	if withFormat {
		cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: sexpr, yaml or json (default from config)")
	}
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "maximum nesting depth (default from config)")
	cmd.Flags().IntVar(&f.maxArgs, "max-args", 0, "maximum call arguments and parameters (default from config)")
	if withCache {
		cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "do not read or write the parse cache")
	}
}

// apply lets explicitly set flags override the loaded configuration.
func (f *outputFlags) apply(cmd *cobra.Command, a *app) error {
	if cmd.Flags().Changed("format") {
		a.cfg.Output.Format = strings.ToLower(f.format)
	}
	if cmd.Flags().Changed("max-depth") {
		a.cfg.Parser.MaxDepth = f.maxDepth
	}
	if cmd.Flags().Changed("max-args") {
		a.cfg.Parser.MaxArgs = f.maxArgs
	}
	if f.noCache {
		a.cfg.Cache.Enabled = false
	}
	return a.cfg.Validate()
}

func failed(n, total int) error {
	if n == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d inputs had errors", n, total)
}

func newParseCmd(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "parse [file...]",
		Short: "Print the syntax tree of each file",
		Long: `Parse each file (or standard input) and print its syntax tree.

The sexpr format prints one fully parenthesized declaration per line.
The yaml and json formats print the tree with node kinds, field labels
and positions. Rendered trees are cached; see [cache] in lox.toml.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a); err != nil {
				return err
			}
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			var c *cache.Cache
			if a.cfg.Cache.Enabled {
				dir := a.cfg.Cache.Dir
				if dir == "" {
					dir = cache.DefaultDir()
				}
				c = cache.New(dir,
					cache.Keep(a.cfg.Cache.Keep),
					cache.MinAge(a.cfg.Cache.MinAge.Duration),
					cache.WithLogger(a.log))
			}

			errs := 0
			for _, src := range sources {
				out, err := a.parseOne(c, src)
				if err != nil {
					printError(cmd.ErrOrStderr(), err)
					errs++
					continue
				}
				cmd.OutOrStdout().Write(out)
			}
			return failed(errs, len(sources))
		},
	}
	flags.register(cmd, true, true)
	return cmd
}

// parseOne renders src in the configured format, going through c when it
// is not nil. Failed parses are never cached.
func (a *app) parseOne(c *cache.Cache, src source) ([]byte, error) {
	format := a.cfg.Output.Format

	var key cache.Key
	if c != nil {
		key = cache.NewKey(
			[]byte(src.name),
			[]byte(src.text),
			[]byte(format),
			[]byte(strconv.Itoa(a.cfg.Parser.MaxDepth)),
			[]byte(strconv.Itoa(a.cfg.Parser.MaxArgs)),
			[]byte(Version),
		)
		out, ok, err := c.Get(key)
		if err != nil {
			a.log.Warn("cache read failed", "err", err)
		} else if ok {
			a.log.Debug("using cached tree", "file", src.name)
			return out, nil
		}
	}

	a.log.Debug("parsing", "file", src.name, "bytes", len(src.text))
	sf, err := parser.Parse(src.name, src.text, a.parserOptions()...)
	if err != nil {
		return nil, err
	}
	out, err := renderTree(sf, format)
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.Put(key, out); err != nil {
			a.log.Warn("cache write failed", "err", err)
		}
	}
	return out, nil
}

func newTokensCmd(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "tokens [file...]",
		Short: "Print the token stream of each file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a); err != nil {
				return err
			}
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			for _, src := range sources {
				out, err := renderTokens(lexer.Tokenize(src.name, src.text), a.cfg.Output.Format)
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(out)
			}
			return nil
		},
	}
	flags.register(cmd, true, false)
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Report syntax errors without printing trees",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.apply(cmd, a); err != nil {
				return err
			}
			sources, err := readSources(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			errs := 0
			for _, src := range sources {
				if _, err := parser.Parse(src.name, src.text, a.parserOptions()...); err != nil {
					fmt.Fprintln(cmd.OutOrStdout(), err)
					errs++
					continue
				}
				a.log.Info("ok", "file", src.name)
			}
			return failed(errs, len(sources))
		},
	}
	flags.register(cmd, false, false)
	return cmd
}
