// Package cmd implements the CLI command structure for tdo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tdo-cli/tdo/internal/config"
	"github.com/tdo-cli/tdo/internal/handler"
	"github.com/tdo-cli/tdo/internal/logging"
	"github.com/tdo-cli/tdo/internal/markup"
)

// Version is set via ldflags at build time.
var Version = "dev"

// env carries the resolved configuration and file selection shared by every
// subcommand.
type env struct {
	cfg     *config.Config
	log     *log.Logger
	path    string
	day     time.Time
	dayName string
	// dated is true when the file was selected by day rather than -file.
	// Only dated files get templates and the already-exists guard.
	dated bool
}

// Run executes the tdo CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tdo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")
	file := fs.String("file", "", "Todo file name inside the directory (without extension)")

	cfg, err := config.Load(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger := logging.FromConfig(cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)

	// Optional day positional (y/t/tmr) ahead of the subcommand. Today is
	// the default.
	remaining := fs.Args()
	day := time.Now()
	dayName := "today"
	if len(remaining) > 0 {
		if offset, name, ok := dayToken(remaining[0]); ok {
			day = day.AddDate(0, 0, offset)
			dayName = name
			remaining = remaining[1:]
		}
	}

	e := &env{cfg: cfg, log: logger, day: day, dayName: dayName}
	if *file != "" {
		e.path = filepath.Join(cfg.Directory, *file+config.FileExtension)
	} else {
		e.path = cfg.FilePath(day)
		e.dated = true
	}

	subcommand := "show"
	if len(remaining) > 0 && !strings.HasPrefix(remaining[0], "-") {
		subcommand = remaining[0]
		remaining = remaining[1:]
	}

	switch subcommand {
	case "new":
		return newCommand(ctx, e, remaining)
	case "edit":
		return editCommand(ctx, e)
	case "show":
		return showCommand(e, remaining)
	case "raw":
		return rawCommand(e)
	case "eww":
		return ewwCommand(e)
	case "links":
		return linksCommand(e)
	case "open-link":
		return openLinkCommand(ctx, e, remaining)
	case "open-link-raw":
		return openLinkRawCommand(ctx, e, remaining)
	case "tokens":
		return tokensCommand(e)
	case "doctor":
		return doctorCommand(e)
	case "tui":
		return tuiCommand(ctx, e)
	case "config":
		return configCommand(e)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// dayToken maps a day argument to its offset from today.
func dayToken(arg string) (offset int, name string, ok bool) {
	switch arg {
	case "y":
		return -1, "yesterday", true
	case "t":
		return 0, "today", true
	case "tmr":
		return 1, "tomorrow", true
	default:
		return 0, "", false
	}
}

// printer returns the canonical printer for this configuration.
func (e *env) printer() markup.Printer {
	return markup.Printer{Style: e.cfg.Style()}
}

// registry returns the link-handler registry for this configuration.
func (e *env) registry() handler.Registry {
	return handler.Registry(e.cfg.Handlers)
}

// loadDocument reads and parses the selected todo file.
func (e *env) loadDocument() (*markup.File, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("todo file %s does not exist", e.path)
		}
		return nil, fmt.Errorf("reading %s: %w", e.path, err)
	}
	doc, err := markup.Parse(e.cfg.Tables(), markup.Lex(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing %s:\n%w", e.path, err)
	}
	return doc, nil
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("tdo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tdo - Dated todo files with markup, links and exports")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tdo [options] [y|t|tmr] [command] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The optional day argument selects yesterday, today (default) or")
	fmt.Fprintln(w, "tomorrow's file; -file selects a named file instead.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  new [-editor]              Create the file (from template for dated files)")
	fmt.Fprintln(w, "  edit                       Open the file in the editor")
	fmt.Fprintln(w, "  show [-plain]              Parse and print the file (default command)")
	fmt.Fprintln(w, "  raw                        Print the parsed tree as JSON")
	fmt.Fprintln(w, "  eww                        Print todos as eww widget markup")
	fmt.Fprintln(w, "  links                      List links with their ids")
	fmt.Fprintln(w, "  open-link <id>             Open a link by id")
	fmt.Fprintln(w, "  open-link-raw <handler> <path>  Open a path with a handler")
	fmt.Fprintln(w, "  tokens                     Dump the token stream")
	fmt.Fprintln(w, "  doctor                     Check config, files and handlers")
	fmt.Fprintln(w, "  tui                        Browse the file in a terminal viewer")
	fmt.Fprintln(w, "  config                     Print the resolved configuration")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
