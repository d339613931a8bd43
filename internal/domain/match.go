package domain

import "strings"

// MatchPattern matches a name against an ignore pattern. Supported forms are
// an exact name, "*", "prefix*", "*suffix" and "*substring*".
func MatchPattern(pattern, name string) bool {
	if name == "" {
		return false
	}
	if pattern == "*" {
		return true
	}

	leading := strings.HasPrefix(pattern, "*")
	trailing := strings.HasSuffix(pattern, "*")
	core := strings.TrimSuffix(strings.TrimPrefix(pattern, "*"), "*")

	switch {
	case leading && trailing:
		return strings.Contains(name, core)
	case trailing:
		return strings.HasPrefix(name, core)
	case leading:
		return strings.HasSuffix(name, core)
	default:
		return name == pattern
	}
}

// SplitDependencyPattern splits "name@version" into its parts. Scoped names
// keep their leading "@".
func SplitDependencyPattern(pattern string) (name, version string) {
	idx := strings.LastIndex(pattern, "@")
	if idx <= 0 {
		return pattern, ""
	}
	return pattern[:idx], pattern[idx+1:]
}
