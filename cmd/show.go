package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/tdo-cli/tdo/internal/export"
	"github.com/tdo-cli/tdo/internal/markup"
	"github.com/tdo-cli/tdo/internal/render"
	"github.com/tdo-cli/tdo/internal/ui"
)

// showCommand parses the file and prints it, styled when stdout is a
// terminal.
func showCommand(e *env, args []string) error {
	fs := flag.NewFlagSet("tdo show", flag.ContinueOnError)
	plain := fs.Bool("plain", false, "Disable ANSI styling")
	if err := fs.Parse(args); err != nil {
		return err
	}

	doc, err := e.loadDocument()
	if err != nil {
		return err
	}

	printer := e.printer()
	if !*plain && ui.IsTTY(os.Stdout) {
		// narrow terminals win over the configured width
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < printer.Style.Width {
			printer.Style.Width = w
		}
		fmt.Print(render.Document(doc, printer))
		return nil
	}
	fmt.Print(printer.Print(doc))
	return nil
}

// rawCommand prints the parsed tree as JSON.
func rawCommand(e *env) error {
	doc, err := e.loadDocument()
	if err != nil {
		return err
	}
	data, err := export.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// ewwCommand prints every todo as eww widget markup.
func ewwCommand(e *env) error {
	doc, err := e.loadDocument()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(export.EwwTodos(doc, e.printer()), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding todos: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// linksCommand lists every link with its id.
func linksCommand(e *env) error {
	doc, err := e.loadDocument()
	if err != nil {
		return err
	}
	for i, link := range doc.Links() {
		fmt.Printf("%d %s - %s:%s\n", i, link.Name, link.Handler, link.Path)
	}
	return nil
}

// openLinkCommand opens a link by the id linksCommand reported.
func openLinkCommand(ctx context.Context, e *env, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: tdo open-link <id>")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid link id %q", args[0])
	}

	doc, err := e.loadDocument()
	if err != nil {
		return err
	}
	links := doc.Links()
	if id < 0 || id >= len(links) {
		return fmt.Errorf("id %d is out of bounds, max is %d", id, len(links)-1)
	}
	return e.registry().Open(ctx, links[id].Handler, links[id].Path)
}

// openLinkRawCommand opens a path with a named handler directly.
func openLinkRawCommand(ctx context.Context, e *env, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: tdo open-link-raw <handler> <path>")
	}
	return e.registry().Open(ctx, args[0], args[1])
}

// tokensCommand dumps the token stream for debugging.
func tokensCommand(e *env) error {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("todo file %s does not exist", e.path)
		}
		return fmt.Errorf("reading %s: %w", e.path, err)
	}
	for i, tok := range markup.Lex(string(data)) {
		fmt.Printf("%3d %s\n", i, tok)
	}
	return nil
}

// configCommand prints the resolved configuration.
func configCommand(e *env) error {
	data, err := json.MarshalIndent(e.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
