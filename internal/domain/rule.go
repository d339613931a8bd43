package domain

// Rule machine names, as accepted by ignore_rule.
const (
	RuleRootPrivateField      = "root-package-private-field"
	RuleRootPackageManager    = "root-package-manager-field"
	RuleRootDependencies      = "root-package-dependencies"
	RuleEmptyDependencies     = "empty-dependencies"
	RuleUnorderedDependencies = "unordered-dependencies"
	RuleMissingManifest       = "packages-without-package-json"
	RuleNonExistentPackages   = "non-existent-packages"
	RuleTypesInDependencies   = "types-in-dependencies"
	RuleMultipleVersions      = "multiple-dependency-versions"
	RuleUnsyncSimilar         = "unsync-similar-dependencies"
)

// RuleInfo describes one catalog entry.
type RuleInfo struct {
	Name        string `json:"name"`
	Level       Level  `json:"level"`
	Fixable     bool   `json:"fixable"`
	Description string `json:"description"`
}

// Rules is the catalog in check order.
var Rules = []RuleInfo{
	{RuleRootPrivateField, LevelError, true, "The root package.json must set \"private\": true."},
	{RuleRootPackageManager, LevelError, false, "The root package.json must declare a packageManager."},
	{RuleRootDependencies, LevelWarning, true, "The root package.json should only declare devDependencies."},
	{RuleEmptyDependencies, LevelError, true, "Dependency blocks must not be empty objects."},
	{RuleUnorderedDependencies, LevelError, true, "Dependency blocks must be sorted alphabetically."},
	{RuleMissingManifest, LevelWarning, true, "Every workspace directory must contain a package.json."},
	{RuleNonExistentPackages, LevelWarning, true, "Workspace patterns must match at least one directory."},
	{RuleTypesInDependencies, LevelError, true, "Private packages must keep @types/* in devDependencies."},
	{RuleMultipleVersions, LevelError, true, "A dependency must be declared with one version across the workspace."},
	{RuleUnsyncSimilar, LevelError, true, "Related dependencies must share one version within a package."},
}

// IsKnownRule reports whether name is a rule of the catalog.
func IsKnownRule(name string) bool {
	for _, r := range Rules {
		if r.Name == name {
			return true
		}
	}
	return false
}
