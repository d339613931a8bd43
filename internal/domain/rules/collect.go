package rules

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/monolint/monolint/internal/domain"
)

// Collect runs every check against the root package and the resolved
// workspace. Issues are recorded in fix order: root rules, resolution
// diagnostics, per-package rules in discovery order, then the
// workspace-wide aggregate.
func Collect(cfg domain.Config, root *domain.RootPackage, desc domain.WorkspaceDescriptor, res *domain.Resolution) *domain.IssuesList {
	issues := domain.NewIssuesList(cfg.IgnoreRule)
	rootScope := domain.RootScope()

	issues.Add(rootScope, CheckRootPrivate(root))
	issues.Add(rootScope, CheckRootPackageManager(root))
	issues.Add(rootScope, CheckRootDependencies(root))
	for _, kind := range domain.DependencyKinds[1:] {
		issues.Add(rootScope, CheckEmptyDependencies(&root.Package, kind))
	}
	for _, kind := range domain.DependencyKinds {
		issues.Add(rootScope, CheckUnorderedDependencies(&root.Package, kind))
	}
	for _, issue := range CheckUnsyncSimilar(&root.Package) {
		issues.AddRaw(rootScope, issue)
	}

	if res == nil {
		res = &domain.Resolution{}
	}
	for _, dir := range res.MissingManifests {
		issues.AddRaw(domain.NoScope(), NewMissingManifest(dir))
	}
	if len(res.Unmatched) > 0 {
		issues.AddRaw(domain.NoScope(), NewNonExistentPackages(desc, res.Unmatched))
	}

	members := []*domain.Package{&root.Package}
	for _, pkg := range res.Packages {
		if cfg.IsPackageIgnored(pkg) {
			continue
		}
		members = append(members, pkg)

		scope := domain.PackageScope(pkg.Path)
		for _, kind := range domain.DependencyKinds {
			issues.Add(scope, CheckEmptyDependencies(pkg, kind))
		}
		for _, kind := range domain.DependencyKinds {
			issues.Add(scope, CheckUnorderedDependencies(pkg, kind))
		}
		issues.Add(scope, CheckTypesInDependencies(pkg))
		for _, issue := range CheckUnsyncSimilar(pkg) {
			issues.AddRaw(scope, issue)
		}
	}

	for _, issue := range CheckMultipleVersions(members, cfg.IgnoreDependency) {
		issues.AddRaw(domain.NoScope(), issue)
	}

	return issues
}

// CheckMultipleVersions aggregates the runtime and dev dependencies of
// members and reports every dependency declared with diverging versions.
// Unparseable versions and ranges without comparators are left out.
func CheckMultipleVersions(members []*domain.Package, ignore []string) []domain.Issue {
	all := orderedmap.New[string, *orderedmap.OrderedMap[string, domain.Version]]()
	for _, pkg := range members {
		for _, dep := range pkg.Manifest.Declared(domain.Dependencies, domain.DevDependencies) {
			v, err := domain.ParseVersion(dep.Version)
			if err != nil || !v.IsValid() {
				continue
			}
			byPath, ok := all.Get(dep.Name)
			if !ok {
				byPath = orderedmap.New[string, domain.Version]()
				all.Set(dep.Name, byPath)
			}
			byPath.Set(pkg.Path, v)
		}
	}

	var issues []domain.Issue
	for pair := all.Oldest(); pair != nil; pair = pair.Next() {
		name := pair.Key
		if isDependencyIgnored(name, ignore) {
			continue
		}

		var entries []VersionEntry
		for e := pair.Value.Oldest(); e != nil; e = e.Next() {
			if isVersionIgnored(name, e.Value, ignore) {
				continue
			}
			entries = append(entries, VersionEntry{Path: e.Key, Version: e.Value})
		}
		if len(entries) < 2 || allEntriesEqual(entries) {
			continue
		}
		issues = append(issues, NewMultipleVersions(name, entries))
	}
	return issues
}

func allEntriesEqual(entries []VersionEntry) bool {
	for _, e := range entries[1:] {
		if !e.Version.Equal(entries[0].Version) {
			return false
		}
	}
	return true
}

// isDependencyIgnored matches name against the patterns without a version.
func isDependencyIgnored(name string, ignore []string) bool {
	for _, pattern := range ignore {
		if dep, version := domain.SplitDependencyPattern(pattern); version == "" && domain.MatchPattern(dep, name) {
			return true
		}
	}
	return false
}

// isVersionIgnored matches a single declaration against name@version
// patterns.
func isVersionIgnored(name string, v domain.Version, ignore []string) bool {
	for _, pattern := range ignore {
		dep, version := domain.SplitDependencyPattern(pattern)
		if version != "" && domain.MatchPattern(dep, name) && version == v.String() {
			return true
		}
	}
	return false
}
