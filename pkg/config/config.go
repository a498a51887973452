// Package config loads account-picker configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	env "github.com/caarlos0/env/v11"
	charmlog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	appDirName        = "account-picker"
	configFilename    = "config.yaml"
	accountsFilename  = "accounts.json"
	envPrefix         = "ACCOUNT_PICKER_"
	envConfigOverride = "ACCOUNT_PICKER_CONFIG"
)

// Config represents the YAML configuration for account-picker.
//
// Example YAML:
//
// accounts_file: ~/.config/account-picker/accounts.json
// theme: catppuccin
// keys:
//   up: [up, k]
//   down: [down, j]
// log:
//   level: debug
//   file: ~/.cache/account-picker.log
type Config struct {
	// AccountsFile is the JSON registry read by the file-backed directory.
	// Empty means the default location under the config dir.
	AccountsFile string `yaml:"accounts_file,omitempty" env:"ACCOUNTS_FILE"`

	// Theme is one of: dark | light | catppuccin | none | auto.
	Theme string `yaml:"theme,omitempty" env:"THEME"`

	// AltScreen runs the picker in the terminal's alternate screen.
	AltScreen bool `yaml:"alt_screen" env:"ALT_SCREEN"`

	Keys Keys      `yaml:"keys,omitempty"`
	Log  LogConfig `yaml:"log,omitempty" envPrefix:"LOG_"`
}

// Keys lists the key names bound to each picker action.
// Names follow bubbletea's KeyMsg.String() form ("up", "k", "enter", "ctrl+c").
type Keys struct {
	Up     []string `yaml:"up,omitempty"`
	Down   []string `yaml:"down,omitempty"`
	Select []string `yaml:"select,omitempty"`
	Quit   []string `yaml:"quit,omitempty"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level string `yaml:"level,omitempty" env:"LEVEL"`

	// File is a path, "stderr", "stdout", or empty to discard.
	File string `yaml:"file,omitempty" env:"FILE"`
}

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config not found")

var knownThemes = map[string]struct{}{
	"": {}, "auto": {}, "dark": {}, "light": {}, "none": {}, "off": {},
	"catppuccin": {}, "catppuccin-mocha": {}, "mocha": {},
}

// Defaults returns the configuration used when no file is present.
func Defaults() *Config {
	return &Config{
		Theme:     "auto",
		AltScreen: true,
		Keys: Keys{
			Up:     []string{"up", "k"},
			Down:   []string{"down", "j"},
			Select: []string{"enter"},
			Quit:   []string{"ctrl+c", "esc", "q"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load discovers and loads the YAML configuration, then applies .env and
// ACCOUNT_PICKER_* environment overrides.
//
// If explicitPath is empty, it searches in order:
// 1. $ACCOUNT_PICKER_CONFIG
// 2. $XDG_CONFIG_HOME/account-picker/config.yaml
// 3. ~/.config/account-picker/config.yaml
//
// A missing file is not an error unless it was requested explicitly.
// Returns the parsed Config and the file path that was used ("" when none).
func Load(explicitPath string) (*Config, string, error) {
	cfg := Defaults()
	used := ""

	if p := expandPath(strings.TrimSpace(explicitPath)); p != "" {
		if err := decodeFile(p, cfg); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, p, fmt.Errorf("%w: %s", ErrConfigNotFound, p)
			}
			return nil, p, err
		}
		used = p
	} else {
		for _, c := range PathCandidates() {
			c = expandPath(c)
			if c == "" {
				continue
			}
			err := decodeFile(c, cfg)
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			if err != nil {
				return nil, c, err
			}
			used = c
			break
		}
	}

	// Best-effort: a .env in the working directory may carry ACCOUNT_PICKER_* overrides.
	_ = godotenv.Load()

	if err := applyEnv(cfg, nil); err != nil {
		return nil, used, err
	}
	cfg.AccountsFile = expandPath(cfg.AccountsFile)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		if used != "" {
			return nil, used, fmt.Errorf("invalid config %s: %w", used, err)
		}
		return nil, used, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, used, nil
}

// applyEnv overlays ACCOUNT_PICKER_* variables on cfg. A nil environment means os.Environ.
func applyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml %s: %w", path, err)
	}
	return nil
}

// PathCandidates returns possible configuration file paths, in priority order.
func PathCandidates() []string {
	var out []string
	if v := os.Getenv(envConfigOverride); v != "" {
		out = append(out, v)
	}
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		out = append(out, filepath.Join(xdg, appDirName, configFilename))
	}
	home, _ := os.UserHomeDir()
	if home != "" {
		out = append(out, filepath.Join(home, ".config", appDirName, configFilename))
	}
	return out
}

// Validate performs sanity checks on the configuration.
//
// - every key action needs at least one binding
// - a key may only be bound to one action
// - theme must be a known name
// - log level must be parseable
func (c *Config) Validate() error {
	bindings := []struct {
		name string
		keys []string
	}{
		{"keys.up", c.Keys.Up},
		{"keys.down", c.Keys.Down},
		{"keys.select", c.Keys.Select},
		{"keys.quit", c.Keys.Quit},
	}
	owner := map[string]string{}
	for _, b := range bindings {
		if len(b.keys) == 0 {
			return fmt.Errorf("%s: at least one key is required", b.name)
		}
		for i, k := range b.keys {
			k = strings.TrimSpace(k)
			if k == "" {
				return fmt.Errorf("%s[%d]: empty key name", b.name, i)
			}
			if prev, dup := owner[k]; dup {
				return fmt.Errorf("%s[%d]: key %q already bound in %s", b.name, i, k, prev)
			}
			owner[k] = b.name
		}
	}

	if _, ok := knownThemes[strings.ToLower(strings.TrimSpace(c.Theme))]; !ok {
		return fmt.Errorf("theme: unknown theme %q (expected: dark|light|catppuccin|none|auto)", c.Theme)
	}

	if lvl := strings.TrimSpace(c.Log.Level); lvl != "" {
		if _, err := charmlog.ParseLevel(strings.ToLower(lvl)); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

// DefaultConfigDir returns the directory path for this application's files.
// Precedence:
//  1. $XDG_CONFIG_HOME/account-picker
//  2. ~/.config/account-picker
func DefaultConfigDir() (string, error) {
	if xdg := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// AccountsPath returns the configured registry path, or the default one.
func (c *Config) AccountsPath() (string, error) {
	if p := strings.TrimSpace(c.AccountsFile); p != "" {
		return p, nil
	}
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, accountsFilename), nil
}

func expandPath(p string) string {
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~") {
		home, _ := os.UserHomeDir()
		if home != "" {
			if p == "~" {
				p = home
			} else if strings.HasPrefix(p, "~/") {
				p = filepath.Join(home, p[2:])
			}
			// "~user" is left alone.
		}
	}
	return p
}
