// Package loader is the deprecated `.rax` module loader. It is retained
// for reference, grounded on original_source's module_loader.rs, but is
// intentionally inert: every standard-library behavior lives in the
// intrinsic registry (internal/stdlib) instead, and internal/interp's
// execItem rejects `loc` imports with an ImportError before this package
// is ever reached (spec.md §9 "Deprecated surface").
package loader

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader mirrors the shape of the original ModuleLoader: a cache field
// and a lib-dir field, neither of which this package's callers populate
// from anywhere other than tests, since no caller resolves modules
// through it.
type Loader struct {
	loaded map[string]string
	libDir string
}

// New constructs a Loader rooted at libDir.
func New(libDir string) *Loader {
	return &Loader{loaded: make(map[string]string), libDir: libDir}
}

// WithDefaultPath constructs a Loader rooted at the platform default
// library directory, creating it if absent.
func WithDefaultPath() *Loader {
	dir := DefaultLibDir()
	os.MkdirAll(dir, 0o755)
	return New(dir)
}

// DefaultLibDir resolves ~/.axiom/lib via os.UserHomeDir, the Go
// stdlib's cross-platform analogue of the original's HOME/LOCALAPPDATA
// probing chain in module_loader.rs::get_default_lib_dir.
func DefaultLibDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".axiom", "lib")
	}
	return filepath.Join(home, ".axiom", "lib")
}

// Load always fails: dynamic `.rax` module loading is deprecated in
// favor of the static intrinsic registry (internal/stdlib).
func (l *Loader) Load(name string) (string, error) {
	return "", fmt.Errorf("dynamic module loading (.rax) is deprecated: %q is now a static intrinsic", name)
}

// LoadAllStdlib always fails for the same reason as Load.
func (l *Loader) LoadAllStdlib() (map[string]string, error) {
	return nil, fmt.Errorf("dynamic module loading (.rax) is deprecated: all standard library modules are static intrinsics")
}
