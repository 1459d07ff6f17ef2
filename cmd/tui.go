package cmd

import (
	"context"

	"github.com/tdo-cli/tdo/internal/ui"
)

// tuiCommand opens the selected file in the terminal viewer.
func tuiCommand(ctx context.Context, e *env) error {
	return ui.RunTUI(ctx, ui.Options{
		Path:     e.path,
		Tables:   e.cfg.Tables(),
		Printer:  e.printer(),
		Registry: e.registry(),
	})
}
