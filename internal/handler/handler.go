// Package handler opens link paths with user-configured commands.
package handler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// pathPlaceholder in a handler argument is replaced with the link path.
const pathPlaceholder = "{path}"

// UnknownHandlerError reports a link whose handler has no configured command.
type UnknownHandlerError struct {
	Handler string
}

func (e *UnknownHandlerError) Error() string {
	return fmt.Sprintf("no handler configured for %q", e.Handler)
}

// Registry maps handler names to the argv used to open a path.
type Registry map[string][]string

// Known reports whether a handler has a configured command.
func (r Registry) Known(name string) bool {
	_, ok := r[name]
	return ok
}

// Command builds the argv for opening path with the named handler. The
// path replaces every "{path}" placeholder; a handler with no placeholder
// gets the path appended.
func (r Registry) Command(name, path string) ([]string, error) {
	argv, ok := r[name]
	if !ok || len(argv) == 0 {
		return nil, &UnknownHandlerError{Handler: name}
	}

	out := make([]string, len(argv))
	replaced := false
	for i, arg := range argv {
		if strings.Contains(arg, pathPlaceholder) {
			replaced = true
		}
		out[i] = strings.ReplaceAll(arg, pathPlaceholder, path)
	}
	if !replaced {
		out = append(out, path)
	}
	return out, nil
}

// Open runs the named handler on path, inheriting stdio so interactive
// handlers work. It blocks until the handler exits.
func (r Registry) Open(ctx context.Context, name, path string) error {
	argv, err := r.Command(name, path)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("handler %s: %w", name, err)
	}
	return nil
}
