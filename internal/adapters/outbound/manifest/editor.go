package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/monolint/monolint/internal/adapters/outbound/jsonfmt"
	"github.com/monolint/monolint/internal/domain"
)

var _ domain.ManifestEditor = (*Editor)(nil)

// newManifestStyle is the layout of manifests the editor creates.
var newManifestStyle = jsonfmt.Style{Indent: "  ", Newline: "\n", FinalNewline: true}

// Editor applies format-preserving edits to workspace documents.
type Editor struct{}

func NewEditor() *Editor { return &Editor{} }

// EditManifest re-reads dir/package.json, runs edit and writes the result
// back in the detected style when edit reports a change.
func (e *Editor) EditManifest(dir string, edit func(domain.ManifestDocument) (bool, error)) error {
	path := filepath.Join(dir, domain.ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := jsonfmt.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	changed, err := edit(doc)
	if err != nil {
		return fmt.Errorf("editing %s: %w", path, err)
	}
	if !changed {
		return nil
	}

	out, err := doc.Bytes()
	if err != nil {
		return fmt.Errorf("serializing %s: %w", path, err)
	}
	return writeFile(path, out)
}

// CreateManifest writes a minimal private manifest into dir. An existing
// manifest is left alone.
func (e *Editor) CreateManifest(dir, name string) error {
	path := filepath.Join(dir, domain.ManifestFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	doc := jsonfmt.New(newManifestStyle)
	if err := doc.SetString(name, "name"); err != nil {
		return err
	}
	if err := doc.SetString("0.0.0", "version"); err != nil {
		return err
	}
	if err := doc.SetBool(true, "private"); err != nil {
		return err
	}

	out, err := doc.Bytes()
	if err != nil {
		return err
	}
	return writeFile(path, out)
}

// RemoveWorkspaceEntries deletes exactly entries from the workspace
// declaration the patterns were read from.
func (e *Editor) RemoveWorkspaceEntries(root string, source domain.WorkspaceSource, entries []string) error {
	switch source {
	case domain.SourceExternal:
		return removeYAMLEntries(filepath.Join(root, domain.WorkspaceFile), entries)
	case domain.SourceManifestNested:
		return e.removeJSONEntries(root, entries, "workspaces", "packages")
	default:
		return e.removeJSONEntries(root, entries, "workspaces")
	}
}

func (e *Editor) removeJSONEntries(root string, entries []string, path ...string) error {
	return e.EditManifest(root, func(doc domain.ManifestDocument) (bool, error) {
		current := doc.Strings(path...)
		kept := slices.DeleteFunc(slices.Clone(current), func(p string) bool {
			return slices.Contains(entries, p)
		})
		if len(kept) == len(current) {
			return false, nil
		}
		return true, doc.SetStrings(kept, path...)
	})
}

func writeFile(path string, data []byte) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
