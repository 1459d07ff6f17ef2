// Package config handles configuration loading and defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/tdo-cli/tdo/internal/markup"
)

// Source represents where a configuration value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultDirectory = "~/todo"
	DefaultBullet    = "-"
	DefaultWidth     = 80
	FileTimeLayout   = "02012006"
	FileExtension    = ".todo"
)

// Config holds the full configuration for tdo.
type Config struct {
	// Paths
	Directory        string `toml:"directory" json:"directory"`
	Template         string `toml:"template" json:"template,omitempty"`
	TemplateTomorrow string `toml:"template_tomorrow" json:"template_tomorrow,omitempty"`

	// Editor command for the edit/new flows. Falls back to $EDITOR.
	Editor string `toml:"editor" json:"editor,omitempty"`

	// Rendering
	BulletPoint string `toml:"bullet_point" json:"bullet_point"`
	Width       int    `toml:"width" json:"width"`

	// TodoState maps raw bracket text to display text, e.g. "x" -> "DONE".
	TodoState map[string]string `toml:"todo_state" json:"todo_state,omitempty"`

	// TodoStateOps controls how states are printed.
	TodoStateOps TodoStateOps `toml:"todo_state_ops" json:"todo_state_ops"`

	// Handlers maps link-handler names to the argv used to open a path.
	// "{path}" in an argument is replaced with the link's path.
	Handlers map[string][]string `toml:"handlers" json:"handlers,omitempty"`

	// Logging configuration
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps" json:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller" json:"log_caller"`
}

// TodoStateOps configures how todo states print.
type TodoStateOps struct {
	// Default is rendered for todos without a state.
	Default string `toml:"default" json:"default"`
	// Brackets wraps states in brackets. Unset means true.
	Brackets *bool `toml:"brackets" json:"brackets,omitempty"`
}

// BracketsEnabled reports the bracket policy; brackets are on unless the
// config turned them off explicitly.
func (o TodoStateOps) BracketsEnabled() bool {
	return o.Brackets == nil || *o.Brackets
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.tdo/tdo.toml or OS-specific config dir)
// 3. Project config file (tdo.toml or .tdo.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}

	setDefaults(cfg)

	if userConfigFile := findUserConfigFile(); userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
	}

	if projectConfigFile := findProjectConfigFile(); projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
	}

	loadFromEnv(cfg)

	if err := parseFlags(cfg, fs, args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Directory = DefaultDirectory
	cfg.BulletPoint = DefaultBullet
	cfg.Width = DefaultWidth

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
}

// findProjectConfigFile looks for a config file in the current directory.
func findProjectConfigFile() string {
	names := []string{"tdo.toml", ".tdo.toml"}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// findUserConfigFile looks for a user-level config file.
// Checks ~/.tdo/tdo.toml first, then falls back to OS-specific config
// directories if ~/.tdo doesn't exist.
func findUserConfigFile() string {
	home, err := os.UserHomeDir()
	if err == nil {
		userConfigPath := filepath.Join(home, ".tdo", "tdo.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	if cfgDir := osUserConfigDir(); cfgDir != "" {
		userConfigPath := filepath.Join(cfgDir, "tdo", "tdo.toml")
		if _, err := os.Stat(userConfigPath); err == nil {
			return userConfigPath
		}
	}

	return ""
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// loadConfigFile loads TOML config from the given file.
func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TDO_DIR"); v != "" {
		cfg.Directory = v
	}
	if v := os.Getenv("TDO_EDITOR"); v != "" {
		cfg.Editor = v
	}
	if v := os.Getenv("TDO_TEMPLATE"); v != "" {
		cfg.Template = v
	}
	if v := os.Getenv("TDO_BULLET"); v != "" {
		cfg.BulletPoint = v
	}
	if v := os.Getenv("TDO_WIDTH"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Width = i
		}
	}
	if v := os.Getenv("TDO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TDO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TDO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv("TDO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("tdo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.Directory, "dir", cfg.Directory, "Directory holding todo files")
	fs.StringVar(&cfg.Editor, "editor", cfg.Editor, "Editor command")
	fs.StringVar(&cfg.BulletPoint, "bullet", cfg.BulletPoint, "Bullet marker")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Wrap width for rendered output")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	return fs.Parse(args)
}

// finalizeConfig computes derived values after all sources are merged.
func finalizeConfig(cfg *Config) error {
	var err error
	if cfg.Directory, err = expandPath(cfg.Directory); err != nil {
		return fmt.Errorf("directory: %w", err)
	}
	if cfg.Template, err = expandPath(cfg.Template); err != nil {
		return fmt.Errorf("template: %w", err)
	}
	if cfg.TemplateTomorrow, err = expandPath(cfg.TemplateTomorrow); err != nil {
		return fmt.Errorf("template_tomorrow: %w", err)
	}
	if cfg.Editor == "" {
		cfg.Editor = os.Getenv("EDITOR")
	}
	if cfg.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", cfg.Width)
	}
	return nil
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

// FilePath returns the todo file path for the given day.
func (c *Config) FilePath(day time.Time) string {
	return filepath.Join(c.Directory, day.Format(FileTimeLayout)+FileExtension)
}

// TemplateFor returns the template file for the given day: tomorrow's
// template when the day is after today and one is configured, otherwise the
// regular template. Empty means no template.
func (c *Config) TemplateFor(day, today time.Time) string {
	if c.TemplateTomorrow != "" && day.After(today) {
		return c.TemplateTomorrow
	}
	return c.Template
}

// Tables returns the parser lookup tables derived from this config.
func (c *Config) Tables() markup.Tables {
	handlers := make(map[string]bool, len(c.Handlers))
	for name := range c.Handlers {
		handlers[name] = true
	}
	return markup.Tables{States: c.TodoState, Handlers: handlers}
}

// Style returns the printer style derived from this config.
func (c *Config) Style() markup.Style {
	return markup.Style{
		Bullet:       c.BulletPoint,
		DefaultState: c.TodoStateOps.Default,
		Brackets:     c.TodoStateOps.BracketsEnabled(),
		Width:        c.Width,
	}
}
