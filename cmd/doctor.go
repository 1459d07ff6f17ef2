package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/tdo-cli/tdo/internal/export"
)

// doctorCommand checks the configuration, the selected file, and the
// handler commands.
func doctorCommand(e *env) error {
	fmt.Println("tdo doctor")
	fmt.Println("==========")
	fmt.Println()

	allOK := true
	cfg := e.cfg

	fmt.Printf("Todo directory: %s\n", cfg.Directory)
	if info, err := os.Stat(cfg.Directory); err != nil {
		fmt.Printf("  ❌ %v\n", err)
		allOK = false
	} else if !info.IsDir() {
		fmt.Println("  ❌ not a directory")
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Editor:")
	if cfg.Editor == "" {
		fmt.Println("  ❌ not configured and $EDITOR is unset")
		allOK = false
	} else if _, err := exec.LookPath(strings.Fields(cfg.Editor)[0]); err != nil {
		fmt.Printf("  ❌ %s: %v\n", cfg.Editor, err)
		allOK = false
	} else {
		fmt.Printf("  ✅ %s\n", cfg.Editor)
	}
	fmt.Println()

	fmt.Println("Templates:")
	templates := map[string]string{"template": cfg.Template, "template_tomorrow": cfg.TemplateTomorrow}
	for _, name := range []string{"template", "template_tomorrow"} {
		path := templates[name]
		if path == "" {
			fmt.Printf("  ✅ %s: not set\n", name)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("  ❌ %s: %v\n", name, err)
			allOK = false
		} else {
			fmt.Printf("  ✅ %s: %s\n", name, path)
		}
	}
	fmt.Println()

	fmt.Println("Handlers:")
	if len(cfg.Handlers) == 0 {
		fmt.Println("  ✅ none configured")
	}
	names := make([]string, 0, len(cfg.Handlers))
	for name := range cfg.Handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		argv := cfg.Handlers[name]
		if len(argv) == 0 {
			fmt.Printf("  ❌ %s: empty command\n", name)
			allOK = false
			continue
		}
		if _, err := exec.LookPath(argv[0]); err != nil {
			fmt.Printf("  ❌ %s: %v\n", name, err)
			allOK = false
		} else {
			fmt.Printf("  ✅ %s: %s\n", name, strings.Join(argv, " "))
		}
	}
	fmt.Println()

	fmt.Printf("Todo file: %s\n", e.path)
	if _, err := os.Stat(e.path); err != nil {
		fmt.Println("  ✅ does not exist yet")
	} else if doc, err := e.loadDocument(); err != nil {
		fmt.Printf("  ❌ %v\n", err)
		allOK = false
	} else if data, err := export.Marshal(doc); err != nil {
		fmt.Printf("  ❌ export: %v\n", err)
		allOK = false
	} else if err := export.ValidateJSON(data); err != nil {
		fmt.Printf("  ❌ schema: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ parses and exports cleanly")
	}
	fmt.Println()

	if !allOK {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
