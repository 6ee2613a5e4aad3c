// Command cmdtree parses a command line against a model file and prints the resolved command path,
// the bound parameters and the remaining arguments.
//
//	cmdtree -model animals.yaml -- dog 12 4 --good-boy --name Rufus
//	cmdtree -model animals.yaml -line 'dog 12 4 --name "Rufus the dog"'
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/mfridman/xflag"

	"github.com/mfridman/cmdtree"
	"github.com/mfridman/cmdtree/internal/modelfile"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

type config struct {
	model      string
	mode       string
	ignoreCase bool
	line       string
	format     string
	verbose    bool
}

func run(args []string, stdout, stderr io.Writer) error {
	// Everything after the first "--" belongs to the parsed command line, including further "--".
	toolArgs, argv := args, []string(nil)
	if i := slices.Index(args, "--"); i >= 0 {
		toolArgs, argv = args[:i], args[i+1:]
	}

	var cfg config
	fs := flag.NewFlagSet("cmdtree", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.model, "model", "", "path to a YAML or TOML model file (required)")
	fs.StringVar(&cfg.mode, "mode", "strict", "parsing mode: strict or relaxed")
	fs.BoolVar(&cfg.ignoreCase, "ignore-case", false, "compare command and long option names case-insensitively")
	fs.StringVar(&cfg.line, "line", "", "parse a single shell-quoted command line instead of the arguments after --")
	fs.StringVar(&cfg.format, "format", "auto", "output format: auto, text or json")
	fs.BoolVar(&cfg.verbose, "v", false, "log parser decisions to stderr")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  cmdtree -model <file> [flags] [-- args...]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := xflag.ParseToEnd(fs, toolArgs); err != nil {
		return err
	}
	argv = append(fs.Args(), argv...)

	if cfg.model == "" {
		return errors.New("missing required flag: -model")
	}
	if cfg.line != "" && len(argv) > 0 {
		return errors.New("-line cannot be combined with arguments")
	}
	opts, err := cfg.parseOptions(stderr)
	if err != nil {
		return err
	}
	format, err := resolveFormat(cfg.format, stdout)
	if err != nil {
		return err
	}

	model, err := modelfile.Load(cfg.model)
	if err != nil {
		return err
	}
	var res *cmdtree.Result
	if cfg.line != "" {
		res, err = cmdtree.ParseLine(model, cfg.line, opts)
	} else {
		res, err = cmdtree.Parse(model, argv, opts)
	}
	if err != nil {
		return err
	}

	switch format {
	case formatJSON:
		return writeJSON(stdout, res)
	default:
		width := terminalWidth(stdout)
		if res.HelpRequested() {
			_, err := fmt.Fprintln(stdout, usage(model, res.Tree, width))
			return err
		}
		return writeText(stdout, res, width)
	}
}

func (c *config) parseOptions(stderr io.Writer) (*cmdtree.ParseOptions, error) {
	opts := &cmdtree.ParseOptions{}
	switch strings.ToLower(c.mode) {
	case "strict":
		opts.Mode = cmdtree.Strict
	case "relaxed":
		opts.Mode = cmdtree.Relaxed
	default:
		return nil, fmt.Errorf("invalid -mode %q: must be strict or relaxed", c.mode)
	}
	if c.ignoreCase {
		opts.CaseSensitivity = cmdtree.CaseInsensitive
	}
	if c.verbose {
		opts.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return opts, nil
}
