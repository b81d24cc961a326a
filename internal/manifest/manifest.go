// Package manifest reads project manifest and lockfile declarations.
// Every loader treats an absent file as "no signal" and returns nil
// without error; only unreadable or malformed present files fail.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// PackageJSON is the subset of package.json crewkit inspects.
type PackageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`

	// Workspaces is either an array of globs or {"packages": [...]}.
	Workspaces json.RawMessage `json:"workspaces"`
}

// WorkspaceGlobs normalizes the two workspace declaration shapes.
func (p *PackageJSON) WorkspaceGlobs() []string {
	if p == nil || len(p.Workspaces) == 0 {
		return nil
	}

	var globs []string
	if err := json.Unmarshal(p.Workspaces, &globs); err == nil {
		return globs
	}

	var wrapped struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(p.Workspaces, &wrapped); err == nil {
		return wrapped.Packages
	}
	return nil
}

// HasDependency reports whether name appears in either dependency group.
func (p *PackageJSON) HasDependency(name string) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Dependencies[name]; ok {
		return true
	}
	_, ok := p.DevDependencies[name]
	return ok
}

// LoadPackageJSON reads <root>/package.json. Absent file returns (nil, nil).
func LoadPackageJSON(root string) (*PackageJSON, error) {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse package.json: %w", err)
	}
	return &pkg, nil
}

// PnpmWorkspace is the pnpm-workspace.yaml declaration.
type PnpmWorkspace struct {
	Packages []string `yaml:"packages"`
}

// LoadPnpmWorkspace reads <root>/pnpm-workspace.yaml. Absent returns (nil, nil).
func LoadPnpmWorkspace(root string) (*PnpmWorkspace, error) {
	data, err := os.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pnpm-workspace.yaml: %w", err)
	}

	var ws PnpmWorkspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("failed to parse pnpm-workspace.yaml: %w", err)
	}
	return &ws, nil
}

// CargoManifest is the subset of Cargo.toml crewkit inspects. Dependency
// values may be version strings or tables; only the names are used.
type CargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Dependencies    map[string]any `toml:"dependencies"`
	DevDependencies map[string]any `toml:"dev-dependencies"`
}

// LoadCargoManifest reads <root>/Cargo.toml. Absent returns (nil, nil).
func LoadCargoManifest(root string) (*CargoManifest, error) {
	path := filepath.Join(root, "Cargo.toml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to inspect Cargo.toml: %w", err)
	}

	var m CargoManifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("failed to parse Cargo.toml: %w", err)
	}
	return &m, nil
}

// PyProject is the subset of pyproject.toml crewkit inspects.
type PyProject struct {
	Project struct {
		Name         string   `toml:"name"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
}

// LoadPyProject reads <root>/pyproject.toml. Absent returns (nil, nil).
func LoadPyProject(root string) (*PyProject, error) {
	path := filepath.Join(root, "pyproject.toml")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to inspect pyproject.toml: %w", err)
	}

	var p PyProject
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pyproject.toml: %w", err)
	}
	return &p, nil
}

// ReadRoot reads a file directly under root. Unlike the typed loaders it
// propagates os.IsNotExist so callers can branch on absence themselves.
func ReadRoot(root, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(root, name))
}

// Exists reports whether a file named name exists directly under root.
func Exists(root, name string) bool {
	info, err := os.Stat(filepath.Join(root, name))
	return err == nil && !info.IsDir()
}
