package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/thiremani/lox/config"
	"github.com/thiremani/lox/parser"
)

// app is the state shared by all subcommands once the root command has
// loaded its configuration.
type app struct {
	cfgFile string
	verbose bool

	cfg *config.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "lox",
		Short: "Parser for the Lox language",
		Long: `lox parses Lox source into a syntax tree.

Commands:
  parse    print the syntax tree of each file
  tokens   print the token stream of each file
  check    report syntax errors only
  repl     parse input interactively`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default: $LOX_CONFIG, ./lox.toml, then the user config dir)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newParseCmd(a),
		newTokensCmd(a),
		newCheckCmd(a),
		newReplCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// init loads the configuration and installs the logger.
func (a *app) init(logOut io.Writer) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.Load(a.cfgFile)
	} else {
		a.cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	level, err := config.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		return err
	}
	if a.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)

	a.log.Debug("config loaded",
		"max_depth", a.cfg.Parser.MaxDepth,
		"max_args", a.cfg.Parser.MaxArgs,
		"format", a.cfg.Output.Format,
		"cache", a.cfg.Cache.Enabled)
	return nil
}

func (a *app) parserOptions() []parser.Option {
	return []parser.Option{
		parser.MaxDepth(a.cfg.Parser.MaxDepth),
		parser.MaxArgs(a.cfg.Parser.MaxArgs),
	}
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v\n", err)
}

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
