// Package config parses Axiom's flat runtime configuration file
// (spec.md §6): one `key=value` per line, under the platform's per-user
// config directory. It is a small hand-rolled scanner rather than
// `spf13/viper` (the teacher's config library, see DESIGN.md) — a flat
// unordered key=value file has no use for viper's format-detection or
// live-reload machinery; that library is reserved for internal/pkgmgr's
// structured TOML manifest instead.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Known keys, documented by `axiom conf describe` (spec.md §6,
// SPEC_FULL.md §4's "conf command family").
const (
	KeyStackLimit = "stack_limit"
	KeyLibDir     = "lib_dir"
	KeyColor      = "color"
	KeyVerbose    = "verbose"
)

var defaults = map[string]string{
	KeyStackLimit: "512",
	KeyLibDir:     "",
	KeyColor:      "true",
	KeyVerbose:    "false",
}

var descriptions = map[string]string{
	KeyStackLimit: "maximum nested user call frames before a stack-overflow error (default 512; stored only, `axiom run` uses the built-in limit of 512)",
	KeyLibDir:     "directory searched for local library modules (unused; internal/loader is inert)",
	KeyColor:      "whether diagnostics are rendered with ANSI color (true/false; stored only, not read by run/chk/fmt)",
	KeyVerbose:    "whether CLI commands print additional tracing output (true/false; stored only, not read by any command)",
}

// Config is the parsed key=value file plus any unknown keys it
// preserved verbatim, per spec.md §6 ("unknown keys emit a warning and
// are preserved").
type Config struct {
	Values  map[string]string
	Unknown []string
}

// Path returns the location of the configuration file: conf.txt under
// os.UserConfigDir()/axiom, the Go stdlib's cross-platform analogue of
// original_source's HOME/LOCALAPPDATA probing chain in
// module_loader.rs::get_default_lib_dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "axiom", "conf.txt"), nil
}

// Load reads the configuration file, seeding every known key with its
// default before overlaying file contents. A missing file is not an
// error; it behaves as if empty.
func Load() (*Config, []string, error) {
	cfg := &Config{Values: make(map[string]string, len(defaults))}
	for k, v := range defaults {
		cfg.Values[k] = v
	}

	path, err := Path()
	if err != nil {
		return cfg, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil, nil
		}
		return cfg, nil, err
	}
	defer f.Close()

	var warnings []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			warnings = append(warnings, fmt.Sprintf("ignoring malformed line: %q", line))
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		if _, known := defaults[key]; !known {
			cfg.Unknown = append(cfg.Unknown, key)
			warnings = append(warnings, fmt.Sprintf("unknown config key %q", key))
		}
		cfg.Values[key] = value
	}
	if err := scanner.Err(); err != nil {
		return cfg, warnings, err
	}
	return cfg, warnings, nil
}

// Save writes cfg back to Path(), creating its parent directory if
// needed. Keys are written in sorted order for a stable diff.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	keys := make([]string, 0, len(cfg.Values))
	for k := range cfg.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, cfg.Values[k])
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// Set updates a single key, parsing a `key=value` spec as produced by
// `axiom conf set`.
func Set(cfg *Config, spec string) error {
	key, value, ok := strings.Cut(spec, "=")
	if !ok {
		return fmt.Errorf("invalid spec %q: expected key=value", spec)
	}
	cfg.Values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	return nil
}

// Reset restores every known key to its default and clears unknown
// keys.
func Reset(cfg *Config) {
	cfg.Values = make(map[string]string, len(defaults))
	for k, v := range defaults {
		cfg.Values[k] = v
	}
	cfg.Unknown = nil
}

// Describe returns the documentation string for a known key, or "" if
// key is not recognized.
func Describe(key string) string {
	return descriptions[key]
}

// KnownKeys returns the fixed set of recognized keys in a stable order.
func KnownKeys() []string {
	keys := []string{KeyStackLimit, KeyLibDir, KeyColor, KeyVerbose}
	return keys
}
