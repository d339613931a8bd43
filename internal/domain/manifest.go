package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ManifestFile is the per-package manifest document name.
const ManifestFile = "package.json"

var (
	ErrManifestNotFound = errors.New("package.json not found")
	ErrNotDirectory     = errors.New("not a directory")
	ErrNoWorkspace      = errors.New("no workspace declaration found")
)

// DependencyKind names one of the four dependency blocks of a manifest.
type DependencyKind int

const (
	Dependencies DependencyKind = iota
	DevDependencies
	PeerDependencies
	OptionalDependencies
)

// DependencyKinds lists every block in manifest order.
var DependencyKinds = []DependencyKind{
	Dependencies,
	DevDependencies,
	PeerDependencies,
	OptionalDependencies,
}

func (k DependencyKind) String() string {
	switch k {
	case DevDependencies:
		return "devDependencies"
	case PeerDependencies:
		return "peerDependencies"
	case OptionalDependencies:
		return "optionalDependencies"
	default:
		return "dependencies"
	}
}

// DependencyMap is an insertion-ordered name -> declared version mapping.
type DependencyMap = orderedmap.OrderedMap[string, string]

// Workspaces is the root workspace declaration. Both the plain list form and
// the object form with a nested packages list normalize to Patterns.
type Workspaces struct {
	Patterns []string
	Nested   bool
}

func (w *Workspaces) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		w.Patterns = list
		w.Nested = false
		return nil
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("workspaces must be a list of globs or an object with a packages list: %w", err)
	}
	w.Patterns = obj.Packages
	w.Nested = true
	return nil
}

// Manifest is the typed view over the package.json fields the linter needs.
type Manifest struct {
	Name                 string         `json:"name"`
	Version              string         `json:"version"`
	Private              *bool          `json:"private"`
	PackageManager       *string        `json:"packageManager"`
	Workspaces           *Workspaces    `json:"workspaces"`
	Dependencies         *DependencyMap `json:"dependencies"`
	DevDependencies      *DependencyMap `json:"devDependencies"`
	PeerDependencies     *DependencyMap `json:"peerDependencies"`
	OptionalDependencies *DependencyMap `json:"optionalDependencies"`
	Config               *Config        `json:"monolint"`
}

// Block returns the dependency block of the given kind, nil when absent.
func (m *Manifest) Block(kind DependencyKind) *DependencyMap {
	switch kind {
	case DevDependencies:
		return m.DevDependencies
	case PeerDependencies:
		return m.PeerDependencies
	case OptionalDependencies:
		return m.OptionalDependencies
	default:
		return m.Dependencies
	}
}

func (m *Manifest) IsPrivate() bool {
	return m.Private != nil && *m.Private
}

// DeclaredDependency is one entry of a dependency block.
type DeclaredDependency struct {
	Name    string
	Version string
	Kind    DependencyKind
}

// Declared lists the entries of the given blocks in block order, then
// declaration order.
func (m *Manifest) Declared(kinds ...DependencyKind) []DeclaredDependency {
	var out []DeclaredDependency
	for _, kind := range kinds {
		block := m.Block(kind)
		if block == nil {
			continue
		}
		for pair := block.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, DeclaredDependency{Name: pair.Key, Version: pair.Value, Kind: kind})
		}
	}
	return out
}

// Package is a workspace member: its directory and decoded manifest.
type Package struct {
	// Dir is the absolute directory holding the manifest.
	Dir string
	// Path is the directory relative to the workspace root, "./"-prefixed.
	// The root package uses ".".
	Path     string
	Manifest Manifest
}

// Name returns the manifest name, falling back to the directory name.
func (p *Package) Name() string {
	if p.Manifest.Name != "" {
		return p.Manifest.Name
	}
	return filepath.Base(p.Dir)
}

// RootPackage is the workspace anchor.
type RootPackage struct {
	Package
}

// Workspaces returns the root manifest's declared patterns, or nil when the
// field is absent.
func (r *RootPackage) Workspaces() *Workspaces {
	return r.Manifest.Workspaces
}

// EmbeddedConfig returns the tool configuration block of the root manifest.
func (r *RootPackage) EmbeddedConfig() Config {
	if r.Manifest.Config == nil {
		return Config{}
	}
	return *r.Manifest.Config
}
