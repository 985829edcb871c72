// Package format implements Axiom's source formatter: a printer over
// the parsed AST that re-emits canonical source text, grounded on the
// teacher's internal/format package (its Formatter/Config split and
// YAML-backed config idiom) and on axm/src/fmt.rs (original_source)
// for the canonical spacing rules it must reproduce.
package format

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config controls the printer's layout choices. Axiom has no field
// alignment or comment-preservation concerns (the lexer discards line
// comments, axm/src/fmt.rs §4.1), so Config is smaller than the
// teacher's: indent width and trailing-newline policy are the only
// knobs spec.md's idempotence property actually depends on.
type Config struct {
	IndentSize     int  `yaml:"indent_size"`
	TrailingNewline bool `yaml:"trailing_newline"`
}

// DefaultConfig returns the formatter defaults used by `axiom fmt`.
func DefaultConfig() *Config {
	return &Config{IndentSize: 4, TrailingNewline: true}
}

// LoadConfig loads a `format:` section from a YAML file at path,
// falling back to DefaultConfig when the file is absent.
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Format Config `yaml:"format"`
	}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	cfg := &wrapper.Format
	if cfg.IndentSize == 0 {
		cfg.IndentSize = 4
	}
	return cfg, nil
}
