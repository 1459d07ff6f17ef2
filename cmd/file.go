package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// newCommand creates the selected todo file, seeding dated files from the
// configured template.
func newCommand(ctx context.Context, e *env, args []string) error {
	fs := flag.NewFlagSet("tdo new", flag.ContinueOnError)
	openEditor := fs.Bool("editor", false, "Open the editor after creating")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if e.dated {
		if _, err := os.Stat(e.path); err == nil {
			return fmt.Errorf("todo for %s already exists", e.dayName)
		}
	}

	if err := os.MkdirAll(e.cfg.Directory, 0755); err != nil {
		return fmt.Errorf("create todo directory: %w", err)
	}

	var content []byte
	if e.dated {
		if template := e.cfg.TemplateFor(e.day, time.Now()); template != "" {
			data, err := os.ReadFile(template)
			if err != nil {
				return fmt.Errorf("reading template %s: %w", template, err)
			}
			content = data
		}
	}

	if err := os.WriteFile(e.path, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", e.path, err)
	}
	e.log.Debug("created todo file", "path", e.path)

	if *openEditor {
		return editFile(ctx, e)
	}
	return nil
}

// editCommand opens the selected file in the editor.
func editCommand(ctx context.Context, e *env) error {
	if _, err := os.Stat(e.path); err != nil {
		return fmt.Errorf("todo file %s does not exist", e.path)
	}
	return editFile(ctx, e)
}

func editFile(ctx context.Context, e *env) error {
	editor := e.cfg.Editor
	if editor == "" {
		return fmt.Errorf("no editor configured and $EDITOR is unset")
	}

	// the editor setting may carry arguments, e.g. "code -w"
	parts := strings.Fields(editor)
	cmd := exec.CommandContext(ctx, parts[0], append(parts[1:], e.path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %s: %w", parts[0], err)
	}
	return nil
}
