package domain

import (
	"fmt"
	"slices"
)

// SelectPolicy decides which version a divergence fix converges on.
type SelectPolicy string

const (
	SelectPrompt  SelectPolicy = ""
	SelectHighest SelectPolicy = "highest"
	SelectLowest  SelectPolicy = "lowest"
)

// ConfigFile is the optional YAML config file name in the workspace root.
const ConfigFile = ".monolint.yaml"

// Config holds a run configuration. It is assembled from command line
// flags, the monolint block of the root manifest and .monolint.yaml.
type Config struct {
	// Path is the workspace root directory.
	Path string `yaml:"-" json:"-"`

	Fix              bool         `yaml:"fix"               json:"fix,omitempty"`
	Select           SelectPolicy `yaml:"select"            json:"select,omitempty"`
	NoInstall        bool         `yaml:"no_install"        json:"noInstall,omitempty"`
	FailOnWarnings   bool         `yaml:"fail_on_warnings"  json:"failOnWarnings,omitempty"`
	IgnoreDependency []string     `yaml:"ignore_dependency" json:"ignoreDependency,omitempty"`
	IgnorePackage    []string     `yaml:"ignore_package"    json:"ignorePackage,omitempty"`
	IgnoreRule       []string     `yaml:"ignore_rule"       json:"ignoreRule,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() Config {
	return Config{}
}

// Merge layers other beneath c: lists are concatenated, booleans are OR'd
// and the first non-empty select policy wins.
func (c Config) Merge(other Config) Config {
	out := c
	if out.Path == "" {
		out.Path = other.Path
	}
	out.Fix = c.Fix || other.Fix
	out.NoInstall = c.NoInstall || other.NoInstall
	out.FailOnWarnings = c.FailOnWarnings || other.FailOnWarnings
	if out.Select == SelectPrompt {
		out.Select = other.Select
	}
	out.IgnoreDependency = appendUnique(slices.Clone(c.IgnoreDependency), other.IgnoreDependency)
	out.IgnorePackage = appendUnique(slices.Clone(c.IgnorePackage), other.IgnorePackage)
	out.IgnoreRule = appendUnique(slices.Clone(c.IgnoreRule), other.IgnoreRule)
	return out
}

func appendUnique(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	switch c.Select {
	case SelectPrompt, SelectHighest, SelectLowest:
	default:
		return fmt.Errorf("unknown select %q (valid: highest, lowest)", c.Select)
	}

	for _, name := range c.IgnoreRule {
		if !IsKnownRule(name) {
			return fmt.Errorf("unknown rule %q in ignore_rule", name)
		}
	}

	for _, p := range c.IgnoreDependency {
		if p == "" {
			return fmt.Errorf("ignore_dependency contains an empty pattern")
		}
	}
	for _, p := range c.IgnorePackage {
		if p == "" {
			return fmt.Errorf("ignore_package contains an empty pattern")
		}
	}

	return nil
}

// IsPackageIgnored reports whether a package name or relative path matches
// any ignore_package pattern.
func (c Config) IsPackageIgnored(pkg *Package) bool {
	for _, pattern := range c.IgnorePackage {
		if MatchPattern(pattern, pkg.Manifest.Name) || MatchPattern(pattern, pkg.Path) {
			return true
		}
	}
	return false
}
