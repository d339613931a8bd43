package rules

import (
	"fmt"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/monolint/monolint/internal/domain"
)

// MissingManifest is reported for a workspace directory without a manifest.
type MissingManifest struct {
	fixState
	// Path is the "./"-prefixed directory relative to the workspace root.
	Path string
}

func NewMissingManifest(dir string) *MissingManifest {
	return &MissingManifest{Path: dir}
}

func (i *MissingManifest) Name() string        { return domain.RuleMissingManifest }
func (i *MissingManifest) Level() domain.Level { return i.levelOr(domain.LevelWarning) }

func (i *MissingManifest) Message() string {
	return fmt.Sprintf("   %s/%s doesn't exist.", i.Path, domain.ManifestFile)
}

func (i *MissingManifest) Why() string {
	return "All packages matching the workspace should have a package.json file."
}

// Fix writes a minimal private manifest named after the directory.
func (i *MissingManifest) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if scope.Kind != domain.ScopeNone {
		return nil
	}
	dir := filepath.Join(fc.Root, filepath.FromSlash(i.Path))
	if err := fc.Editor.CreateManifest(dir, path.Base(i.Path)); err != nil {
		return err
	}
	i.markFixed()
	return nil
}

// NonExistentPackages is reported when workspace patterns match nothing.
type NonExistentPackages struct {
	fixState
	Source    domain.WorkspaceSource
	Patterns  []string
	Unmatched []string
}

func NewNonExistentPackages(desc domain.WorkspaceDescriptor, unmatched []string) *NonExistentPackages {
	return &NonExistentPackages{
		Source:    desc.Source,
		Patterns:  slices.Clone(desc.Patterns),
		Unmatched: slices.Clone(unmatched),
	}
}

func (i *NonExistentPackages) Name() string        { return domain.RuleNonExistentPackages }
func (i *NonExistentPackages) Level() domain.Level { return i.levelOr(domain.LevelWarning) }

func (i *NonExistentPackages) Message() string {
	const hint = "← Workspace has paths defined..."
	const miss = "← but this one doesn't match any package"

	lines := make([]string, 0, len(i.Patterns))
	for _, p := range i.Patterns {
		unmatched := slices.Contains(i.Unmatched, p)
		switch {
		case i.Source == domain.SourceExternal && unmatched:
			lines = append(lines, fmt.Sprintf("  -  - '%s'   %s", p, miss))
		case i.Source == domain.SourceExternal:
			lines = append(lines, fmt.Sprintf("  │  - '%s'", p))
		case unmatched:
			lines = append(lines, fmt.Sprintf(`  -     "%s",   %s`, p, miss))
		default:
			lines = append(lines, fmt.Sprintf(`  │     "%s",`, p))
		}
	}

	if i.Source == domain.SourceExternal {
		return fmt.Sprintf("  │ packages:   %s\n%s", hint, strings.Join(lines, "\n"))
	}

	field := `"workspaces": [`
	closing := "  │   ],"
	if i.Source == domain.SourceManifestNested {
		field = `"workspaces": { "packages": [`
		closing = "  │   ] },"
	}
	return box(append(append([]string{fmt.Sprintf("  │   %s   %s", field, hint)}, lines...), closing)...)
}

func (i *NonExistentPackages) Why() string {
	return "All paths defined in the workspace should match at least one package."
}

// Fix removes exactly the unmatched entries from the workspace declaration.
func (i *NonExistentPackages) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if scope.Kind != domain.ScopeNone {
		return nil
	}
	if err := fc.Editor.RemoveWorkspaceEntries(fc.Root, i.Source, i.Unmatched); err != nil {
		return err
	}
	i.markFixed()
	return nil
}
