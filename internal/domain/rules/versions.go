package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/monolint/monolint/internal/domain"
)

// VersionEntry is one package's declaration of a dependency.
type VersionEntry struct {
	// Path is the "./"-prefixed package directory, "." for the root.
	Path    string
	Version domain.Version
}

// MultipleVersions is reported when packages disagree on the declared
// version of a dependency.
type MultipleVersions struct {
	fixState
	Dependency string
	// Entries are sorted ascending by version.
	Entries []VersionEntry
}

// NewMultipleVersions sorts entries ascending by version, keeping discovery
// order between equal versions.
func NewMultipleVersions(dependency string, entries []VersionEntry) *MultipleVersions {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b VersionEntry) int {
		return a.Version.Compare(b.Version)
	})
	return &MultipleVersions{Dependency: dependency, Entries: sorted}
}

// Lowest is the first entry of the sorted set.
func (i *MultipleVersions) Lowest() domain.Version { return i.Entries[0].Version }

// Highest is the last entry of the sorted set.
func (i *MultipleVersions) Highest() domain.Version { return i.Entries[len(i.Entries)-1].Version }

func (i *MultipleVersions) Name() string        { return domain.RuleMultipleVersions }
func (i *MultipleVersions) Level() domain.Level { return i.levelOr(domain.LevelError) }

func (i *MultipleVersions) versions() []domain.Version {
	out := make([]domain.Version, len(i.Entries))
	for idx, e := range i.Entries {
		out[idx] = e.Version
	}
	return out
}

// Message lists every declaration, grouped under its parent directory.
func (i *MultipleVersions) Message() string {
	sorted := i.versions()
	var lines []string
	var group string
	for idx, e := range i.Entries {
		parent, leaf := splitEntryPath(e.Path)
		pad := 26 - len(leaf)
		if pad < 3 {
			pad = 3
		}
		version := fmt.Sprintf("%s%s   %s", strings.Repeat(" ", pad), e.Version, marker(e.Version, sorted))

		switch {
		case idx > 0 && parent == group:
			lines = append(lines, "      "+leaf+version)
		case parent == ".":
			lines = append(lines, "  ./"+leaf+"  "+version)
		default:
			lines = append(lines, "  "+parent, "      "+leaf+version)
		}
		group = parent
	}
	return strings.Join(lines, "\n")
}

// splitEntryPath splits "./packages/a" into "./packages" and "a". The root
// is labelled by its manifest.
func splitEntryPath(p string) (parent, leaf string) {
	if p == "." || p == "./" {
		return ".", domain.ManifestFile
	}
	idx := strings.LastIndex(p, "/")
	if idx < 0 {
		return ".", p
	}
	return p[:idx], p[idx+1:]
}

func (i *MultipleVersions) Why() string {
	return fmt.Sprintf("Dependency %s has multiple versions defined in the workspace.", i.Dependency)
}

// Fix rewrites every declaration of the dependency to one chosen version.
// Declining the prompt leaves the workspace untouched.
func (i *MultipleVersions) Fix(fc *domain.FixContext, _ domain.Scope) error {
	chosen, ok, err := chooseVersion(fc, i.Dependency, i.versions())
	if err != nil || !ok {
		return err
	}

	for _, e := range i.Entries {
		dir := fc.Dir(domain.PackageScope(e.Path))
		err := fc.Editor.EditManifest(dir, func(doc domain.ManifestDocument) (bool, error) {
			return setDeclared(doc, i.Dependency, chosen)
		})
		if err != nil {
			return err
		}
	}
	i.markFixed()
	return nil
}

// setDeclared overwrites name in dependencies and devDependencies wherever
// it is declared with a different version.
func setDeclared(doc domain.ManifestDocument, name, version string) (bool, error) {
	changed := false
	for _, kind := range []domain.DependencyKind{domain.Dependencies, domain.DevDependencies} {
		current, ok := doc.GetString(kind.String(), name)
		if !ok || current == version {
			continue
		}
		if err := doc.SetString(version, kind.String(), name); err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}
