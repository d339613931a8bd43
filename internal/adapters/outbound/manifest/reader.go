// Package manifest reads package.json files and rewrites them, along with
// pnpm-workspace.yaml, without disturbing their formatting.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/monolint/monolint/internal/domain"
)

var _ domain.ManifestReader = (*Reader)(nil)

// Reader decodes the manifest of a directory.
type Reader struct{}

func NewReader() *Reader { return &Reader{} }

// Read returns the package in dir. Path is left for the caller, which knows
// the workspace root.
func (r *Reader) Read(dir string) (*domain.Package, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", dir, domain.ErrNotDirectory)
	}

	path := filepath.Join(abs, domain.ManifestFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s in %q: %w", domain.ManifestFile, dir, domain.ErrManifestNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m domain.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	return &domain.Package{Dir: abs, Manifest: m}, nil
}
