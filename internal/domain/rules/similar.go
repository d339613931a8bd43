package rules

import (
	"fmt"
	"strings"

	"github.com/monolint/monolint/internal/domain"
)

// Family is a group of dependencies released in lockstep.
type Family string

const (
	FamilyReact         Family = "React"
	FamilyNextJS        Family = "Next.js"
	FamilyTurborepo     Family = "Turborepo"
	FamilyTanstackQuery Family = "Tanstack Query"
)

// families lists the families in report order.
var families = []Family{FamilyReact, FamilyNextJS, FamilyTurborepo, FamilyTanstackQuery}

var familyMembers = map[string]Family{
	"react":     FamilyReact,
	"react-dom": FamilyReact,

	"next":                     FamilyNextJS,
	"@next/eslint-plugin-next": FamilyNextJS,
	"eslint-config-next":       FamilyNextJS,
	"@next/bundle-analyzer":    FamilyNextJS,
	"@next/third-parties":      FamilyNextJS,
	"@next/mdx":                FamilyNextJS,

	"turbo":               FamilyTurborepo,
	"turbo-ignore":        FamilyTurborepo,
	"eslint-config-turbo": FamilyTurborepo,
	"eslint-plugin-turbo": FamilyTurborepo,
	"@turbo/gen":          FamilyTurborepo,
	"@turbo/workspaces":   FamilyTurborepo,

	"@tanstack/eslint-plugin-query":                 FamilyTanstackQuery,
	"@tanstack/query-async-storage-persister":       FamilyTanstackQuery,
	"@tanstack/query-broadcast-client-experimental": FamilyTanstackQuery,
	"@tanstack/query-core":                          FamilyTanstackQuery,
	"@tanstack/query-devtools":                      FamilyTanstackQuery,
	"@tanstack/query-persist-client-core":           FamilyTanstackQuery,
	"@tanstack/query-sync-storage-persister":        FamilyTanstackQuery,
	"@tanstack/react-query":                         FamilyTanstackQuery,
	"@tanstack/react-query-devtools":                FamilyTanstackQuery,
	"@tanstack/react-query-persist-client":          FamilyTanstackQuery,
	"@tanstack/react-query-next-experimental":       FamilyTanstackQuery,
	"@tanstack/solid-query":                         FamilyTanstackQuery,
	"@tanstack/solid-query-devtools":                FamilyTanstackQuery,
	"@tanstack/solid-query-persist-client":          FamilyTanstackQuery,
	"@tanstack/svelte-query":                        FamilyTanstackQuery,
	"@tanstack/svelte-query-devtools":               FamilyTanstackQuery,
	"@tanstack/svelte-query-persist-client":         FamilyTanstackQuery,
	"@tanstack/vue-query":                           FamilyTanstackQuery,
	"@tanstack/vue-query-devtools":                  FamilyTanstackQuery,
	"@tanstack/angular-query-devtools-experimental": FamilyTanstackQuery,
	"@tanstack/angular-query-experimental":          FamilyTanstackQuery,
}

// FamilyOf returns the family of a dependency name.
func FamilyOf(name string) (Family, bool) {
	f, ok := familyMembers[name]
	return f, ok
}

// FamilyMember is one declared member of a family within a manifest.
type FamilyMember struct {
	Name    string
	Kind    domain.DependencyKind
	Version domain.Version
}

// UnsyncSimilar is reported when members of a family are declared with
// different versions in one manifest.
type UnsyncSimilar struct {
	fixState
	Family  Family
	Members []FamilyMember
}

// CheckUnsyncSimilar reports, per family, the members of pkg's runtime and
// dev dependencies that do not share one version.
func CheckUnsyncSimilar(pkg *domain.Package) []domain.Issue {
	byFamily := make(map[Family][]FamilyMember)
	for _, dep := range pkg.Manifest.Declared(domain.Dependencies, domain.DevDependencies) {
		family, ok := FamilyOf(dep.Name)
		if !ok {
			continue
		}
		v, err := domain.ParseVersion(dep.Version)
		if err != nil || !v.IsValid() {
			continue
		}
		byFamily[family] = append(byFamily[family], FamilyMember{Name: dep.Name, Kind: dep.Kind, Version: v})
	}

	var issues []domain.Issue
	for _, family := range families {
		members := byFamily[family]
		if len(members) < 2 || allEqual(members) {
			continue
		}
		issues = append(issues, &UnsyncSimilar{Family: family, Members: members})
	}
	return issues
}

func allEqual(members []FamilyMember) bool {
	for _, m := range members[1:] {
		if !m.Version.Equal(members[0].Version) {
			return false
		}
	}
	return true
}

func (i *UnsyncSimilar) Name() string        { return domain.RuleUnsyncSimilar }
func (i *UnsyncSimilar) Level() domain.Level { return i.levelOr(domain.LevelError) }

func (i *UnsyncSimilar) Message() string {
	lines := make([]string, 0, len(i.Members)+2)
	var kind domain.DependencyKind = -1
	for idx, m := range i.Members {
		if m.Kind != kind {
			if kind >= 0 {
				lines = append(lines, "  │   },")
			}
			lines = append(lines, fmt.Sprintf(`  │   "%s": {`, m.Kind))
			kind = m.Kind
		}
		sep := ","
		if idx == len(i.Members)-1 || i.Members[idx+1].Kind != m.Kind {
			sep = ""
		}
		lines = append(lines, fmt.Sprintf(`  ~      "%s": "%s"%s`, m.Name, m.Version, sep))
	}
	lines = append(lines, "  │   }")
	return box(lines...)
}

func (i *UnsyncSimilar) Why() string {
	return fmt.Sprintf("%s dependencies aren't synced.", i.Family)
}

// Fix aligns every member of the family in the manifest to one version.
func (i *UnsyncSimilar) Fix(fc *domain.FixContext, scope domain.Scope) error {
	if !targetsManifest(scope) {
		return nil
	}
	versions := make([]domain.Version, len(i.Members))
	names := make([]string, len(i.Members))
	for idx, m := range i.Members {
		versions[idx] = m.Version
		names[idx] = m.Name
	}

	chosen, ok, err := chooseVersion(fc, fmt.Sprintf("%s (%s)", i.Family, strings.Join(names, ", ")), versions)
	if err != nil || !ok {
		return err
	}

	err = fc.Editor.EditManifest(fc.Dir(scope), func(doc domain.ManifestDocument) (bool, error) {
		changed := false
		for _, m := range i.Members {
			current, ok := doc.GetString(m.Kind.String(), m.Name)
			if !ok || current == chosen {
				continue
			}
			if err := doc.SetString(chosen, m.Kind.String(), m.Name); err != nil {
				return false, err
			}
			changed = true
		}
		return changed, nil
	})
	if err != nil {
		return err
	}
	i.markFixed()
	return nil
}
