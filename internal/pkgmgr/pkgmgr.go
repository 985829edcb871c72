// Package pkgmgr reads and writes the `Axiomite.toml` project manifest
// and manages the `~/.axiomlibs` package cache (spec.md §6, SPEC_FULL.md
// §2.4), following the teacher's config-loading idiom
// (internal/cli/config/config.go) but pointed at TOML via
// `github.com/spf13/viper`'s `SetConfigType("toml")` instead of YAML.
// The core evaluator never parses or depends on this package's output
// (spec.md §6's "its parsing is outside the core").
package pkgmgr

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/viper"
)

// Manifest mirrors an Axiomite.toml project file.
type Manifest struct {
	Name         string            `mapstructure:"name"`
	Version      string            `mapstructure:"version"`
	Dependencies map[string]string `mapstructure:"dependencies"`
}

// ManifestPath is the conventional manifest filename at a project root.
const ManifestPath = "Axiomite.toml"

// LoadManifest reads Axiomite.toml from dir, returning an empty
// Manifest (not an error) when the file does not exist.
func LoadManifest(dir string) (*Manifest, error) {
	v := viper.New()
	v.SetConfigName("Axiomite")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	m := &Manifest{Dependencies: make(map[string]string)}
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return m, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ManifestPath, err)
	}
	if err := v.Unmarshal(m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestPath, err)
	}
	if m.Dependencies == nil {
		m.Dependencies = make(map[string]string)
	}
	return m, nil
}

// SaveManifest writes m to dir/Axiomite.toml.
func SaveManifest(dir string, m *Manifest) error {
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("name", m.Name)
	v.Set("version", m.Version)
	v.Set("dependencies", m.Dependencies)
	return v.WriteConfigAs(filepath.Join(dir, ManifestPath))
}

// CacheDir returns the `~/.axiomlibs` package cache directory, grounded
// on original_source's build_system.rs::get_axiomlibs_dir.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".axiomlibs"
	}
	return filepath.Join(home, ".axiomlibs")
}

// Manager performs package operations against a project's manifest and
// the shared cache directory.
type Manager struct {
	ProjectDir string
	CachePath  string
}

// New constructs a Manager rooted at the current working directory,
// creating the cache directory if absent.
func New() (*Manager, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	cache := CacheDir()
	if err := os.MkdirAll(cache, 0o755); err != nil {
		return nil, err
	}
	return &Manager{ProjectDir: dir, CachePath: cache}, nil
}

// Add records name (and its version constraint, if name contains "@")
// as a dependency in the project manifest.
func (m *Manager) Add(name string) error {
	manifest, err := LoadManifest(m.ProjectDir)
	if err != nil {
		return err
	}
	pkg, version := splitVersion(name)
	manifest.Dependencies[pkg] = version
	return SaveManifest(m.ProjectDir, manifest)
}

// Remove deletes name from the project manifest's dependency set.
func (m *Manager) Remove(name string) error {
	manifest, err := LoadManifest(m.ProjectDir)
	if err != nil {
		return err
	}
	delete(manifest.Dependencies, name)
	return SaveManifest(m.ProjectDir, manifest)
}

// Upgrade re-pins name to "latest" in the manifest; resolving what
// "latest" means against a registry is outside this package's scope.
func (m *Manager) Upgrade(name string) error {
	manifest, err := LoadManifest(m.ProjectDir)
	if err != nil {
		return err
	}
	if _, ok := manifest.Dependencies[name]; !ok {
		return fmt.Errorf("package %q is not a dependency", name)
	}
	manifest.Dependencies[name] = "latest"
	return SaveManifest(m.ProjectDir, manifest)
}

// List returns the project's declared dependencies as "name@version"
// strings, sorted for stable output.
func (m *Manager) List() ([]string, error) {
	manifest, err := LoadManifest(m.ProjectDir)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(manifest.Dependencies))
	for name, version := range manifest.Dependencies {
		out = append(out, fmt.Sprintf("%s@%s", name, version))
	}
	sort.Strings(out)
	return out, nil
}

// Info describes a single dependency's pinned version from the project
// manifest.
func (m *Manager) Info(name string) (string, error) {
	manifest, err := LoadManifest(m.ProjectDir)
	if err != nil {
		return "", err
	}
	version, ok := manifest.Dependencies[name]
	if !ok {
		return "", fmt.Errorf("package %q is not a dependency", name)
	}
	return fmt.Sprintf("%s@%s", name, version), nil
}

// LocalInfo describes the project's own manifest (`axiom pkg info .`).
func (m *Manager) LocalInfo() (*Manifest, error) {
	return LoadManifest(m.ProjectDir)
}

func splitVersion(name string) (string, string) {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '@' {
			return name[:i], name[i+1:]
		}
	}
	return name, "latest"
}
